package cucumber_json

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/denizgursoy/gherkin-report/pkg/gherkin_parser"
	"github.com/denizgursoy/gherkin-report/pkg/models"
	"github.com/denizgursoy/gherkin-report/pkg/reporter"
)

// Handler consumes replayed events. *reporter.Reporter implements it.
type Handler interface {
	Handle(event reporter.Event) error
}

// Replayer turns results into events, reading the feature sources the
// results refer to.
type Replayer struct {
	root   string
	tags   string
	filter tagexpressions.Evaluatable
	logger reporter.Logger
}

// Option configures a Replayer.
type Option func(*Replayer)

// WithFeaturesRoot resolves result URIs against dir.
func WithFeaturesRoot(dir string) Option {
	return func(r *Replayer) {
		r.root = dir
	}
}

// WithTags replays only scenarios matching the tag expression.
func WithTags(expression string) Option {
	return func(r *Replayer) {
		r.tags = expression
	}
}

func WithLogger(logger reporter.Logger) Option {
	return func(r *Replayer) {
		r.logger = logger
	}
}

func NewReplayer(opts ...Option) (*Replayer, error) {
	r := &Replayer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = &reporter.NoopLogger{}
	}
	if r.tags != "" {
		filter, err := tagexpressions.Parse(r.tags)
		if err != nil {
			return nil, fmt.Errorf("invalid tag expression %q: %w", r.tags, err)
		}
		r.filter = filter
	}
	return r, nil
}

// TemplateLoader returns the loader that re-parses templates from the same
// root the replayer reads sources from.
func (r *Replayer) TemplateLoader() reporter.TemplateLoader {
	return gherkin_parser.FileLoader{Root: r.root}
}

// Replay hands every result to the handler in file order and finishes the
// stream. Results that cannot be matched to their source are skipped and
// reported in the returned error.
func (r *Replayer) Replay(results []Feature, handler Handler) error {
	errs := make([]error, 0)
	for _, result := range results {
		if err := r.replayFeature(result, handler); err != nil {
			errs = append(errs, err)
		}
	}
	if err := handler.Handle(reporter.StreamFinished{}); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (r *Replayer) readLive(uri string) (*models.Feature, error) {
	path := uri
	if r.root != "" && !filepath.IsAbs(uri) {
		path = filepath.Join(r.root, uri)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", path, err)
	}
	return gherkin_parser.ParseLive(uri, bytes.NewReader(content))
}

// lineIndex finds live tree nodes by source line.
type lineIndex struct {
	scenarios   map[int]*models.Scenario
	rules       map[*models.Scenario]*models.Rule
	backgrounds map[int]*models.Step
}

func newLineIndex(feature *models.Feature) *lineIndex {
	idx := &lineIndex{
		scenarios:   make(map[int]*models.Scenario),
		rules:       make(map[*models.Scenario]*models.Rule),
		backgrounds: make(map[int]*models.Step),
	}
	addBackground := func(background *models.Background) {
		if background == nil {
			return
		}
		for _, step := range background.Steps {
			idx.backgrounds[step.Position.Line] = step
		}
	}

	addBackground(feature.Background)
	for _, scenario := range feature.Scenarios {
		idx.scenarios[scenario.Position.Line] = scenario
	}
	for _, rule := range feature.Rules {
		addBackground(rule.Background)
		for _, scenario := range rule.Scenarios {
			idx.scenarios[scenario.Position.Line] = scenario
			idx.rules[scenario] = rule
		}
	}
	return idx
}

// step finds a step of the scenario, or of a background, at line.
func (idx *lineIndex) step(scenario *models.Scenario, line int) (*models.Step, bool) {
	if scenario != nil {
		for _, step := range scenario.Steps {
			if step.Position.Line == line {
				return step, true
			}
		}
	}
	step, ok := idx.backgrounds[line]
	return step, ok
}

func (r *Replayer) replayFeature(result Feature, handler Handler) error {
	live, err := r.readLive(result.URI)
	if err != nil {
		return err
	}
	if err := handler.Handle(reporter.FeatureStarted{Feature: live}); err != nil {
		return err
	}

	idx := newLineIndex(live)
	entered := make(map[*models.Rule]bool)
	errs := make([]error, 0)

	for _, element := range result.Elements {
		var scenario *models.Scenario
		if element.Type != TypeBackground {
			var ok bool
			scenario, ok = idx.scenarios[element.Line]
			if !ok {
				errs = append(errs, fmt.Errorf("%s:%d: no scenario for %q", result.URI, element.Line, element.Name))
				continue
			}
			if !r.matches(result, element) {
				r.logger.Debug("scenario filtered out", "scenario", element.Name, "tags", r.tags)
				continue
			}
			if rule, ok := idx.rules[scenario]; ok && !entered[rule] {
				entered[rule] = true
				if err := handler.Handle(reporter.RuleEntered{Rule: rule}); err != nil {
					return err
				}
			}
			if err := handler.Handle(reporter.ScenarioStarted{Scenario: scenario}); err != nil {
				return err
			}
		}

		for _, s := range element.Steps {
			step, ok := idx.step(scenario, s.Line)
			if !ok {
				errs = append(errs, fmt.Errorf("%s:%d: no step for %q", result.URI, s.Line, s.Name))
				continue
			}
			status, stepErr := statusOf(s.Result)
			if err := handler.Handle(reporter.ScenarioStep{Step: step, Status: status, Err: stepErr}); err != nil {
				return err
			}
		}
	}
	return errors.Join(errs...)
}

func (r *Replayer) matches(feature Feature, element Element) bool {
	if r.filter == nil {
		return true
	}
	tags := make([]string, 0, len(feature.Tags)+len(element.Tags))
	for _, tag := range feature.Tags {
		tags = append(tags, tag.Name)
	}
	for _, tag := range element.Tags {
		tags = append(tags, tag.Name)
	}
	return r.filter.Evaluate(tags)
}

// statusOf maps a result status onto a step status. Undefined and pending
// steps did not run; ambiguous steps failed.
func statusOf(result Result) (reporter.StepStatus, error) {
	switch result.Status {
	case StatusPassed:
		return reporter.StepPassed, nil
	case StatusFailed, StatusAmbiguous:
		message := result.ErrorMessage
		if message == "" {
			message = result.Status
		}
		return reporter.StepFailed, errors.New(message)
	default:
		return reporter.StepSkipped, nil
	}
}
