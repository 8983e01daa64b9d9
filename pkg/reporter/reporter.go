// Package reporter aggregates a stream of test-execution events into a
// report model.
//
// Events arrive in document order. Features are stored once per distinct
// content, step outcomes are tracked by content identity, and the model is
// built once the stream finishes. Outline expansions are reconciled with the
// outline template re-parsed from the feature source.
package reporter

import (
	"errors"
	"fmt"

	"github.com/denizgursoy/gherkin-report/pkg/gherkin_parser"
)

// Reporter is the single sequential consumer of an event stream. It is not
// safe for concurrent use.
type Reporter struct {
	sink     Sink
	loader   TemplateLoader
	logger   Logger
	store    *DocumentStore
	tracker  *OutcomeTracker
	finished bool
}

// New creates a Reporter. Without options templates are re-parsed from the
// file system and the model is only available through Report.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		loader: gherkin_parser.FileLoader{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = &NoopLogger{}
	}
	r.store = NewDocumentStore(r.loader, r.logger)
	r.tracker = NewOutcomeTracker()
	return r
}

// Handle consumes one event. On StreamFinished the report model is built and
// written to the sink; feature failures and the sink error are joined.
func (r *Reporter) Handle(event Event) error {
	if r.finished {
		return ErrStreamFinished
	}

	switch e := event.(type) {
	case FeatureStarted:
		if e.Feature == nil {
			return errors.New("feature started without a feature")
		}
		r.logger.Debug("feature started", "feature", e.Feature.Name, "path", e.Feature.Path)
		r.store.Add(e.Feature)
	case RuleEntered:
		r.tracker.observeRule()
	case ScenarioStarted:
		r.tracker.observeScenario()
	case ScenarioStep:
		if e.Step == nil {
			return errors.New("scenario step without a step")
		}
		r.tracker.observeStep(e)
	case StreamFinished:
		r.finished = true
		return r.finish()
	default:
		return fmt.Errorf("unknown event %T", event)
	}
	return nil
}

func (r *Reporter) finish() error {
	model, buildErr := r.Report()
	if buildErr != nil {
		r.logger.Warn("some features were left out of the report", "failures", len(model.Failures))
	}
	if r.sink == nil {
		return buildErr
	}
	if err := r.sink.Write(model); err != nil {
		return errors.Join(buildErr, fmt.Errorf("could not write report: %w", err))
	}
	r.logger.Info("report written", "features", len(model.Features))
	return buildErr
}

// Report builds the report model from the events handled so far.
func (r *Reporter) Report() (ReportModel, error) {
	return Build(r.store, r.tracker)
}

// Counters returns the run-wide event counters.
func (r *Reporter) Counters() Counters {
	return r.tracker.Counters()
}

// Features returns the number of distinct features seen.
func (r *Reporter) Features() int {
	return r.store.Len()
}
