// Package godog_formatter plugs the report engine into godog as a formatter.
//
// godog hands the formatter each parsed feature together with its source and
// then reports pickles and pickle steps. The formatter converts each feature
// into the live tree, keeps the source for template re-parsing and forwards
// every callback to a reporter.Reporter as an event.
package godog_formatter

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/gherkin-report/pkg/gherkin_parser"
	"github.com/denizgursoy/gherkin-report/pkg/models"
	"github.com/denizgursoy/gherkin-report/pkg/render"
	"github.com/denizgursoy/gherkin-report/pkg/reporter"
)

// FormatterName is the name to pass to godog's Format option.
const FormatterName = "gherkin-report"

// Options configures the formatter.
type Options struct {
	// OutputDir nests the written pages under a directory.
	OutputDir string
	// Title is shown on every page.
	Title string
	// Sink replaces the HTML writer.
	Sink   reporter.Sink
	Logger reporter.Logger
}

// Register makes the formatter available to godog under FormatterName.
func Register(opts Options) {
	godog.Format(FormatterName, "Writes an HTML page per feature and an index page.",
		func(suite string, w io.Writer) godog.Formatter {
			return New(suite, w, opts)
		})
}

type feature struct {
	live  *models.Feature
	nodes *gherkin_parser.NodeIndex
	rules map[*models.Scenario]*models.Rule
}

// Formatter translates godog callbacks into report events. godog may call it
// from several goroutines; callbacks are serialized.
type Formatter struct {
	mu       sync.Mutex
	suite    string
	out      io.Writer
	reporter *reporter.Reporter
	loader   *gherkin_parser.MemoryLoader
	features map[string]*feature
	entered  map[*models.Rule]bool
	errs     []error
}

var _ godog.Formatter = (*Formatter)(nil)

func New(suite string, out io.Writer, opts Options) *Formatter {
	f := &Formatter{
		suite:    suite,
		out:      out,
		loader:   gherkin_parser.NewMemoryLoader(),
		features: make(map[string]*feature),
		entered:  make(map[*models.Rule]bool),
	}

	sink := opts.Sink
	if sink == nil {
		title := opts.Title
		if title == "" {
			title = suite
		}
		writerOpts := []render.WriterOption{render.WithOutputDir(opts.OutputDir)}
		if title != "" {
			writerOpts = append(writerOpts, render.WithTitle(title))
		}
		writer, err := render.NewWriter(writerOpts...)
		if err != nil {
			f.errs = append(f.errs, err)
		} else {
			sink = writer
		}
	}

	reporterOpts := []reporter.Option{reporter.WithTemplateLoader(f.loader)}
	if sink != nil {
		reporterOpts = append(reporterOpts, reporter.WithSink(sink))
	}
	if opts.Logger != nil {
		reporterOpts = append(reporterOpts, reporter.WithLogger(opts.Logger))
	}
	f.reporter = reporter.New(reporterOpts...)
	return f
}

func (f *Formatter) TestRunStarted() {}

// Feature converts the document into the live tree and announces it.
func (f *Formatter) Feature(document *messages.GherkinDocument, uri string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.features[uri]; ok {
		return
	}
	live, err := gherkin_parser.LiveFromDocument(uri, document)
	if err != nil {
		f.errs = append(f.errs, fmt.Errorf("could not convert feature %s: %w", uri, err))
		return
	}
	f.loader.Put(uri, content)

	ft := &feature{
		live:  live,
		nodes: gherkin_parser.NewNodeIndex(live),
		rules: make(map[*models.Scenario]*models.Rule),
	}
	for _, rule := range live.Rules {
		for _, scenario := range rule.Scenarios {
			ft.rules[scenario] = rule
		}
	}
	f.features[uri] = ft
	f.handle(reporter.FeatureStarted{Feature: live})
}

// Pickle announces the scenario a pickle was built from, entering its rule
// first when needed.
func (f *Formatter) Pickle(pickle *messages.Pickle) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ft, ok := f.features[pickle.Uri]
	if !ok {
		return
	}
	scenario, ok := ft.nodes.Scenario(pickle.AstNodeIds)
	if !ok {
		f.errs = append(f.errs, fmt.Errorf("no scenario for pickle %q in %s", pickle.Name, pickle.Uri))
		return
	}
	if rule, ok := ft.rules[scenario]; ok && !f.entered[rule] {
		f.entered[rule] = true
		f.handle(reporter.RuleEntered{Rule: rule})
	}
	f.handle(reporter.ScenarioStarted{Scenario: scenario})
}

func (f *Formatter) Defined(*messages.Pickle, *messages.PickleStep, *godog.StepDefinition) {}

func (f *Formatter) Passed(pickle *messages.Pickle, step *messages.PickleStep, _ *godog.StepDefinition) {
	f.step(pickle, step, reporter.StepPassed, nil)
}

func (f *Formatter) Failed(pickle *messages.Pickle, step *messages.PickleStep, _ *godog.StepDefinition, err error) {
	f.step(pickle, step, reporter.StepFailed, err)
}

func (f *Formatter) Ambiguous(pickle *messages.Pickle, step *messages.PickleStep, _ *godog.StepDefinition, err error) {
	f.step(pickle, step, reporter.StepFailed, err)
}

func (f *Formatter) Skipped(pickle *messages.Pickle, step *messages.PickleStep, _ *godog.StepDefinition) {
	f.step(pickle, step, reporter.StepSkipped, nil)
}

func (f *Formatter) Undefined(pickle *messages.Pickle, step *messages.PickleStep, _ *godog.StepDefinition) {
	f.step(pickle, step, reporter.StepSkipped, nil)
}

func (f *Formatter) Pending(pickle *messages.Pickle, step *messages.PickleStep, _ *godog.StepDefinition) {
	f.step(pickle, step, reporter.StepSkipped, nil)
}

func (f *Formatter) step(pickle *messages.Pickle, pickleStep *messages.PickleStep, status reporter.StepStatus, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ft, ok := f.features[pickle.Uri]
	if !ok {
		return
	}
	step, ok := ft.nodes.Step(pickleStep.AstNodeIds)
	if !ok {
		f.errs = append(f.errs, fmt.Errorf("no step for %q in %s", pickleStep.Text, pickle.Uri))
		return
	}
	f.handle(reporter.ScenarioStep{Step: step, Status: status, Err: err})
}

// Summary finishes the stream, which builds and writes the report.
func (f *Formatter) Summary() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handle(reporter.StreamFinished{})
	if err := errors.Join(f.errs...); err != nil {
		fmt.Fprintf(f.out, "%s: report incomplete: %v\n", FormatterName, err)
	}
}

// Err returns every error met so far.
func (f *Formatter) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return errors.Join(f.errs...)
}

// Counters returns the event counters of the run.
func (f *Formatter) Counters() reporter.Counters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reporter.Counters()
}

func (f *Formatter) handle(event reporter.Event) {
	if err := f.reporter.Handle(event); err != nil {
		f.errs = append(f.errs, err)
	}
}
