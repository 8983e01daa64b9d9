package generator

import (
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/denizgursoy/gherkin-report/pkg/godog_formatter"
)

const (
	godogPath     = "github.com/cucumber/godog"
	formatterPath = "github.com/denizgursoy/gherkin-report/pkg/godog_formatter"

	// GeneratedFile is the harness file written into the target package.
	GeneratedFile = "gherkin_report_test.go"
)

type (
	FunctionLocator struct {
		FullPackageName string
		FunctionName    string
	}

	Output struct {
		ScenarioInitializers []*FunctionLocator // func(*godog.ScenarioContext)
		SuiteInitializers    []*FunctionLocator // func(*godog.TestSuiteContext)
		CurrentPackagePath   string             // Full import path of the package where the test file is generated
		PackageName          string             // Short package name; if empty, defaults to "main"

		// Settings passed on to the suite and the formatter.
		Paths     []string
		Tags      string
		OutputDir string
		Title     string
	}
)

// isSamePackage returns true when the function is in the same package as the
// generated test file and therefore should be called without an import qualifier.
func (o *Output) isSamePackage(fullPkg string) bool {
	return o.CurrentPackagePath != "" && fullPkg == o.CurrentPackagePath
}

// qualOrLocal returns a jen.Statement that either qualifies the function call with
// its package path (for external packages) or calls it directly (for same-package).
func (o *Output) qualOrLocal(fullPkg, funcName string) *jen.Statement {
	if o.isSamePackage(fullPkg) {
		return jen.Id(funcName)
	}
	return jen.Qual(fullPkg, funcName)
}

func (o *Output) calls(functions []*FunctionLocator, arg string) []jen.Code {
	calls := make([]jen.Code, 0, len(functions))
	for _, fn := range functions {
		calls = append(calls, o.qualOrLocal(fn.FullPackageName, fn.FunctionName).Call(jen.Id(arg)))
	}
	return calls
}

func (o *Output) Generate(writer io.Writer) error {
	pkgName := o.PackageName
	if pkgName == "" {
		pkgName = "main"
	}
	file := jen.NewFile(pkgName)
	file.HeaderComment("Code generated by gherkin-report init. DO NOT EDIT.")
	file.ImportName(godogPath, "godog")
	file.ImportName(formatterPath, "godog_formatter")

	register := jen.Dict{}
	if o.OutputDir != "" {
		register[jen.Id("OutputDir")] = jen.Lit(o.OutputDir)
	}
	if o.Title != "" {
		register[jen.Id("Title")] = jen.Lit(o.Title)
	}

	paths := o.Paths
	if len(paths) == 0 {
		paths = []string{"features"}
	}
	options := jen.Dict{
		jen.Id("Format"): jen.Lit("pretty," + godog_formatter.FormatterName),
		jen.Id("Paths"): jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, path := range paths {
				g.Lit(path)
			}
		}),
		jen.Id("TestingT"): jen.Id("t"),
	}
	if o.Tags != "" {
		options[jen.Id("Tags")] = jen.Lit(o.Tags)
	}

	suite := jen.Dict{
		jen.Id("Name"): jen.Lit(pkgName),
		jen.Id("ScenarioInitializer"): jen.Func().Params(
			jen.Id("sc").Op("*").Qual(godogPath, "ScenarioContext"),
		).Block(o.calls(o.ScenarioInitializers, "sc")...),
		jen.Id("Options"): jen.Op("&").Qual(godogPath, "Options").Values(options),
	}
	if len(o.SuiteInitializers) > 0 {
		suite[jen.Id("TestSuiteInitializer")] = jen.Func().Params(
			jen.Id("ts").Op("*").Qual(godogPath, "TestSuiteContext"),
		).Block(o.calls(o.SuiteInitializers, "ts")...)
	}

	file.Func().Id("TestFeatures").Params(
		jen.Id("t").Op("*").Qual("testing", "T"),
	).Block(
		jen.Qual(formatterPath, "Register").Call(jen.Qual(formatterPath, "Options").Values(register)),
		jen.Line(),
		jen.Id("suite").Op(":=").Qual(godogPath, "TestSuite").Values(suite),
		jen.If(jen.Id("suite").Dot("Run").Call().Op("!=").Lit(0)).Block(
			jen.Id("t").Dot("Fatal").Call(jen.Lit("non-zero status returned, failed to run feature tests")),
		),
	)

	_, err := writer.Write([]byte(file.GoString()))

	return err
}
