package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/denizgursoy/gherkin-report/internal/config"
	"github.com/denizgursoy/gherkin-report/internal/generator"
	"github.com/denizgursoy/gherkin-report/pkg/models"
	"github.com/denizgursoy/gherkin-report/pkg/reporter"
)

const (
	resultsFile  = "../../pkg/cucumber_json/testdata/results.json"
	featuresRoot = "../../pkg/cucumber_json"
)

func sinkOf(sink ReportSink) Option {
	return WithSinkFactory(func(*config.Config) (ReportSink, error) {
		return sink, nil
	})
}

func TestRunReplay(t *testing.T) {
	t.Run("should write the report and print a summary", func(t *testing.T) {
		controller := gomock.NewController(t)
		sink := NewMockReportSink(controller)
		var written reporter.ReportModel
		sink.EXPECT().Write(gomock.Any()).DoAndReturn(func(model reporter.ReportModel) error {
			written = model
			return nil
		})
		sink.EXPECT().IndexPath().Return("reports/index.html")

		var out, errOut bytes.Buffer
		a := New(&out, &errOut, sinkOf(sink))

		err := a.RunReplay(context.Background(), &config.Config{FeaturesRoot: featuresRoot, NoColor: true}, resultsFile)
		require.NoError(t, err)

		require.Len(t, written.Features, 1)
		rows := written.Features[0].Scenarios[1].Outline.Examples[0].Rows
		require.Equal(t, models.Failed, rows[1].State)

		require.Contains(t, out.String(), "Checkout.html")
		require.Contains(t, out.String(), "14 step(s) (12 passed, 1 failed, 1 skipped)")
		require.Contains(t, out.String(), "Report: reports/index.html (1 feature(s))")
		require.Empty(t, errOut.String())
	})

	t.Run("should fail when the sink fails", func(t *testing.T) {
		controller := gomock.NewController(t)
		sink := NewMockReportSink(controller)
		sink.EXPECT().Write(gomock.Any()).Return(errors.New("disk full"))

		var out, errOut bytes.Buffer
		a := New(&out, &errOut, sinkOf(sink))

		err := a.RunReplay(context.Background(), &config.Config{FeaturesRoot: featuresRoot}, resultsFile)
		require.Error(t, err)
		require.Contains(t, err.Error(), "report incomplete")
		require.Contains(t, err.Error(), "disk full")
		require.NotContains(t, out.String(), "Report:")
	})

	t.Run("should return error for missing results", func(t *testing.T) {
		var out, errOut bytes.Buffer
		a := New(&out, &errOut)

		err := a.RunReplay(context.Background(), &config.Config{}, "testdata/missing.json")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("should reject invalid tag expression", func(t *testing.T) {
		var out, errOut bytes.Buffer
		a := New(&out, &errOut)

		err := a.RunReplay(context.Background(), &config.Config{Tags: "@a and"}, resultsFile)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid tag expression")
	})

	t.Run("should write html pages", func(t *testing.T) {
		dir := t.TempDir()
		var out, errOut bytes.Buffer
		a := New(&out, &errOut)

		cfg := &config.Config{FeaturesRoot: featuresRoot, OutputDir: dir, Title: "Shop", NoColor: true}
		require.NoError(t, a.RunReplay(context.Background(), cfg, resultsFile))

		require.FileExists(t, filepath.Join(dir, "index.html"))
		require.FileExists(t, filepath.Join(dir, "Checkout.html"))
		index, err := os.ReadFile(filepath.Join(dir, "index.html"))
		require.NoError(t, err)
		require.Contains(t, string(index), "Shop")
	})
}

func TestRunInit(t *testing.T) {
	inModule := func(t *testing.T) string {
		t.Helper()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module github.com/example/shop\n\ngo 1.25\n"), 0o644))
		return dir
	}
	initializers := &generator.Output{ScenarioInitializers: []*generator.FunctionLocator{
		{FullPackageName: "github.com/example/shop", FunctionName: "InitializeScenario"},
	}}

	t.Run("should write harness and config", func(t *testing.T) {
		controller := gomock.NewController(t)
		scanner := generator.NewMockInitializerScanner(controller)
		dir := inModule(t)
		scanner.EXPECT().FindInitializers(gomock.Any(), dir).Return(initializers, nil)

		var out, errOut bytes.Buffer
		a := New(&out, &errOut, WithScanner(scanner))

		require.NoError(t, a.RunInit(context.Background(), &config.Config{NoColor: true, Tags: "@smoke"}, dir))

		require.FileExists(t, filepath.Join(dir, generator.GeneratedFile))
		cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
		require.NoError(t, err)
		require.Equal(t, &config.Config{OutputDir: "reports", Tags: "@smoke", Paths: []string{"features"}}, cfg)
		require.Contains(t, out.String(), "created  "+filepath.Join(dir, config.DefaultFile))
		require.Contains(t, errOut.String(), "could not search feature files")
	})

	t.Run("should report the feature files the harness runs", func(t *testing.T) {
		controller := gomock.NewController(t)
		scanner := generator.NewMockInitializerScanner(controller)
		dir := inModule(t)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "specs", "cart"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "specs", "cart", "cart.feature"), []byte("Feature: Cart\n"), 0o644))
		scanner.EXPECT().FindInitializers(gomock.Any(), dir).Return(initializers, nil)

		var out, errOut bytes.Buffer
		a := New(&out, &errOut, WithScanner(scanner))

		require.NoError(t, a.RunInit(context.Background(), &config.Config{Paths: []string{"specs"}, Verbose: true}, dir))
		require.Contains(t, errOut.String(), "feature files found")
		require.Contains(t, errOut.String(), "count=1")
	})

	t.Run("should keep an existing config", func(t *testing.T) {
		controller := gomock.NewController(t)
		scanner := generator.NewMockInitializerScanner(controller)
		dir := inModule(t)
		configPath := filepath.Join(dir, config.DefaultFile)
		require.NoError(t, os.WriteFile(configPath, []byte("title: Mine\n"), 0o644))
		scanner.EXPECT().FindInitializers(gomock.Any(), dir).Return(initializers, nil)

		var out, errOut bytes.Buffer
		a := New(&out, &errOut, WithScanner(scanner))

		require.NoError(t, a.RunInit(context.Background(), &config.Config{NoColor: true}, dir))

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		require.Equal(t, "title: Mine\n", string(content))
		require.Contains(t, out.String(), "exists   "+configPath)
	})

	t.Run("should fail without initializers", func(t *testing.T) {
		controller := gomock.NewController(t)
		scanner := generator.NewMockInitializerScanner(controller)
		dir := inModule(t)
		scanner.EXPECT().FindInitializers(gomock.Any(), dir).Return(&generator.Output{}, nil)

		var out, errOut bytes.Buffer
		a := New(&out, &errOut, WithScanner(scanner))

		err := a.RunInit(context.Background(), &config.Config{}, dir)
		require.ErrorIs(t, err, generator.ErrNoInitializer)
		require.NoFileExists(t, filepath.Join(dir, config.DefaultFile))
	})
}

func TestRunSchema(t *testing.T) {
	for _, kind := range []string{"config", "results"} {
		t.Run(kind, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RunSchema(&buf, kind))
			require.Contains(t, buf.String(), `"$schema"`)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		require.Error(t, RunSchema(&bytes.Buffer{}, "other"))
	})
}

func TestCommand(t *testing.T) {
	t.Run("should require results flag", func(t *testing.T) {
		var out, errOut bytes.Buffer
		cmd := New(&out, &errOut).Command()
		cmd.SetArgs([]string{"replay"})

		err := cmd.Execute()
		require.Error(t, err)
		require.Contains(t, err.Error(), `"results"`)
	})

	t.Run("should merge flags over the config file", func(t *testing.T) {
		controller := gomock.NewController(t)
		sink := NewMockReportSink(controller)
		sink.EXPECT().Write(gomock.Any()).Return(nil)
		sink.EXPECT().IndexPath().Return("index.html")

		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("features_root: nowhere\ntags: \"@seasonal\"\n"), 0o644))

		var out, errOut bytes.Buffer
		var seen *config.Config
		a := New(&out, &errOut, WithSinkFactory(func(cfg *config.Config) (ReportSink, error) {
			seen = cfg
			return sink, nil
		}))
		cmd := a.Command()
		cmd.SetArgs([]string{"replay", "--config", configPath, "--results", resultsFile, "--features-root", featuresRoot, "--no-color"})

		require.NoError(t, cmd.Execute())
		require.Equal(t, featuresRoot, seen.FeaturesRoot)
		require.Equal(t, "@seasonal", seen.Tags)
		require.Contains(t, out.String(), "1 scenario(s), 1 rule(s)")
	})

	t.Run("should print schema", func(t *testing.T) {
		var out, errOut bytes.Buffer
		cmd := New(&out, &errOut).Command()
		cmd.SetArgs([]string{"schema", "results"})

		require.NoError(t, cmd.Execute())
		require.Contains(t, out.String(), "Cucumber JSON results")
	})

	t.Run("should reject unknown schema", func(t *testing.T) {
		var out, errOut bytes.Buffer
		cmd := New(&out, &errOut).Command()
		cmd.SetArgs([]string{"schema", "other"})

		require.Error(t, cmd.Execute())
	})
}
