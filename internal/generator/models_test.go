package generator

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	data = Output{
		ScenarioInitializers: []*FunctionLocator{
			{FullPackageName: "github.com/example/shop/steps", FunctionName: "InitializeScenario"},
		},
		PackageName:        "shop",
		CurrentPackagePath: "github.com/example/shop",
	}

	expected = `// Code generated by gherkin-report init. DO NOT EDIT.

package shop

import (
	"github.com/cucumber/godog"
	"github.com/denizgursoy/gherkin-report/pkg/godog_formatter"
	steps "github.com/example/shop/steps"
	"testing"
)

func TestFeatures(t *testing.T) {
	godog_formatter.Register(godog_formatter.Options{})

	suite := godog.TestSuite{
		Name: "shop",
		Options: &godog.Options{
			Format:   "pretty,gherkin-report",
			Paths:    []string{"features"},
			TestingT: t,
		},
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			steps.InitializeScenario(sc)
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
`
)

func TestOutput_Generate(t *testing.T) {
	t.Run("should generate correct output files", func(t *testing.T) {
		builder := &strings.Builder{}
		err := data.Generate(builder)

		require.Nil(t, err)
		require.EqualValues(t, expected, builder.String())
	})

	t.Run("should call same package initializers directly", func(t *testing.T) {
		output := Output{
			ScenarioInitializers: []*FunctionLocator{
				{FullPackageName: "github.com/example/shop", FunctionName: "initializeLocal"},
			},
			SuiteInitializers: []*FunctionLocator{
				{FullPackageName: "github.com/example/shop/hooks", FunctionName: "InitializeSuite"},
			},
			PackageName:        "shop",
			CurrentPackagePath: "github.com/example/shop",
			Paths:              []string{"features/cart", "features/pay"},
			Tags:               "@smoke",
			OutputDir:          "reports",
			Title:              "Shop",
		}

		builder := &strings.Builder{}
		require.NoError(t, output.Generate(builder))
		code := builder.String()

		require.Contains(t, code, "\t\t\tinitializeLocal(sc)\n")
		require.Contains(t, code, "\t\t\thooks.InitializeSuite(ts)\n")
		require.Contains(t, code, `[]string{"features/cart", "features/pay"}`)
		require.Contains(t, code, `"@smoke"`)
		require.Contains(t, code, `OutputDir: "reports"`)
		require.Contains(t, code, `Title:     "Shop"`)
		require.NotContains(t, code, `shop "github.com/example/shop"`)

		_, err := parser.ParseFile(token.NewFileSet(), GeneratedFile, code, parser.AllErrors)
		require.NoError(t, err)
	})

	t.Run("should default to package main", func(t *testing.T) {
		builder := &strings.Builder{}
		require.NoError(t, (&Output{}).Generate(builder))
		require.Contains(t, builder.String(), "package main\n")
	})
}
