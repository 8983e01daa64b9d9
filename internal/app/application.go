// Package app wires the gherkin-report command line.
package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/denizgursoy/gherkin-report/internal/config"
	"github.com/denizgursoy/gherkin-report/internal/generator"
	"github.com/denizgursoy/gherkin-report/internal/ui"
	"github.com/denizgursoy/gherkin-report/pkg/cucumber_json"
	"github.com/denizgursoy/gherkin-report/pkg/gherkin_parser"
	"github.com/denizgursoy/gherkin-report/pkg/render"
	"github.com/denizgursoy/gherkin-report/pkg/reporter"
)

const defaultOutputDir = "reports"

// SinkFactory creates the sink a replay writes its report to.
type SinkFactory func(cfg *config.Config) (ReportSink, error)

type Application struct {
	scanner generator.InitializerScanner
	newSink SinkFactory
	out     io.Writer
	errOut  io.Writer
}

type Option func(*Application)

func WithScanner(scanner generator.InitializerScanner) Option {
	return func(a *Application) {
		a.scanner = scanner
	}
}

func WithSinkFactory(factory SinkFactory) Option {
	return func(a *Application) {
		a.newSink = factory
	}
}

func New(out, errOut io.Writer, opts ...Option) *Application {
	a := &Application{
		scanner: generator.NewSourceScanner(),
		newSink: htmlSink,
		out:     out,
		errOut:  errOut,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func htmlSink(cfg *config.Config) (ReportSink, error) {
	opts := []render.WriterOption{render.WithOutputDir(cfg.OutputDir)}
	if cfg.Title != "" {
		opts = append(opts, render.WithTitle(cfg.Title))
	}
	return render.NewWriter(opts...)
}

// Execute runs the command line and exits with status 1 on failure.
func Execute() {
	a := New(os.Stdout, os.Stderr)
	if err := a.Command().ExecuteContext(context.Background()); err != nil {
		ui.NewConsole(os.Stderr, true).Failure(err)
		os.Exit(1)
	}
}

// Command builds the root command with its subcommands.
func (a *Application) Command() *cobra.Command {
	var configPath string
	flags := &config.Config{}

	root := &cobra.Command{
		Use:           "gherkin-report",
		Short:         "gherkin-report renders cucumber runs as HTML pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultFile+")")
	root.PersistentFlags().StringVar(&flags.OutputDir, "output-dir", "", "directory the report pages are written to")
	root.PersistentFlags().StringVar(&flags.Title, "title", "", "title shown on every page")
	root.PersistentFlags().StringVar(&flags.Tags, "tags", "", "tag expression selecting the reported scenarios")
	root.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "log debug messages")

	load := func() (*config.Config, error) {
		fileConfig, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return config.MergeConfigs(fileConfig, flags), nil
	}

	var resultsPath string
	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Render a cucumber JSON results file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return a.RunReplay(cmd.Context(), cfg, resultsPath)
		},
	}
	replayCmd.Flags().StringVar(&resultsPath, "results", "", "cucumber JSON results file")
	replayCmd.Flags().StringVar(&flags.FeaturesRoot, "features-root", "", "directory feature paths are resolved against")
	_ = replayCmd.MarkFlagRequired("results")

	initCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a godog test harness writing the report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return a.RunInit(cmd.Context(), cfg, dir)
		},
	}
	initCmd.Flags().StringSliceVar(&flags.Paths, "paths", nil, "feature files or directories the harness runs")

	schemaCmd := &cobra.Command{
		Use:       "schema config|results",
		Short:     "Print the JSON schema of the config or results file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"config", "results"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSchema(cmd.OutOrStdout(), args[0])
		},
	}

	root.AddCommand(replayCmd, initCmd, schemaCmd)
	return root
}

func (a *Application) logger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
}

// RunReplay renders the results file and prints a summary. Features that
// could not be reported are listed and make the run fail.
func (a *Application) RunReplay(ctx context.Context, cfg *config.Config, resultsPath string) error {
	logger := a.logger(cfg)
	console := ui.NewConsole(a.out, !cfg.NoColor)

	results, err := cucumber_json.ReadFile(resultsPath)
	if err != nil {
		return err
	}
	replayer, err := cucumber_json.NewReplayer(
		cucumber_json.WithFeaturesRoot(cfg.FeaturesRoot),
		cucumber_json.WithTags(cfg.Tags),
		cucumber_json.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	sink, err := a.newSink(cfg)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r := reporter.New(
		reporter.WithSink(sink),
		reporter.WithTemplateLoader(replayer.TemplateLoader()),
		reporter.WithLogger(logger),
	)
	replayErr := replayer.Replay(results, r)

	model, _ := r.Report()
	console.StatsTable(model)
	console.Summary(r.Counters())

	if replayErr != nil {
		return fmt.Errorf("report incomplete: %w", replayErr)
	}
	console.Written(sink.IndexPath(), len(model.Features))
	return nil
}

// RunInit writes the godog harness into dir and a config file next to it
// unless one exists.
func (a *Application) RunInit(ctx context.Context, cfg *config.Config, dir string) error {
	console := ui.NewConsole(a.out, !cfg.NoColor)

	path, err := generator.StartGenerator(ctx, a.scanner, dir, generator.Options{
		Paths:     cfg.Paths,
		Tags:      cfg.Tags,
		OutputDir: cmp.Or(cfg.OutputDir, defaultOutputDir),
		Title:     cfg.Title,
	})
	if err != nil {
		return err
	}
	console.Created(path)

	paths := cfg.Paths
	if len(paths) == 0 {
		paths = []string{"features"}
	}
	a.checkFeatures(cfg, dir, paths)

	configPath := filepath.Join(dir, config.DefaultFile)
	if _, err := os.Stat(configPath); err == nil {
		console.Exists(configPath)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", configPath, err)
	}
	defer file.Close()

	err = config.Write(file, &config.Config{
		OutputDir: cmp.Or(cfg.OutputDir, defaultOutputDir),
		Title:     cfg.Title,
		Tags:      cfg.Tags,
		Paths:     paths,
	})
	if err != nil {
		return err
	}
	console.Created(configPath)
	return nil
}

// checkFeatures warns when the harness would run no feature files.
func (a *Application) checkFeatures(cfg *config.Config, dir string, paths []string) {
	logger := a.logger(cfg)

	directories := make([]string, 0, len(paths))
	for _, path := range paths {
		directories = append(directories, filepath.Join(dir, path))
	}
	files, err := gherkin_parser.SearchFeatureFilesIn(directories)
	if err != nil {
		logger.Warn("could not search feature files", "error", err)
		return
	}
	if len(files) == 0 {
		logger.Warn("no feature files found", "paths", paths)
		return
	}
	logger.Info("feature files found", "count", len(files))
}

// RunSchema prints the JSON schema named by kind.
func RunSchema(w io.Writer, kind string) error {
	var (
		data []byte
		err  error
	)
	switch kind {
	case "config":
		data, err = config.GenerateJSONSchema()
	case "results":
		data, err = cucumber_json.GenerateJSONSchema()
	default:
		return fmt.Errorf("unknown schema %q", kind)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
