package reporter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/flytam/filenamify"

	"github.com/denizgursoy/gherkin-report/pkg/models"
)

const (
	indexFilename   = "index.html"
	defaultFilename = "feature"
)

// Build walks every distinct feature of the store into a report model.
// Features whose template could not be loaded or whose outlines could not be
// reconciled are left out and reported in ReportModel.Failures; the returned
// error joins those failures.
func Build(store *DocumentStore, tracker *OutcomeTracker) (ReportModel, error) {
	documents := slices.Clone(store.documents)
	slices.SortStableFunc(documents, func(a, b *document) int {
		return cmp.Or(
			strings.Compare(a.live.Name, b.live.Name),
			strings.Compare(a.live.Path, b.live.Path),
		)
	})

	model := ReportModel{
		Features: make([]FeatureReport, 0, len(documents)),
		Index:    IndexReport{Entries: make([]IndexEntry, 0, len(documents))},
	}
	taken := map[string]bool{indexFilename: true}
	errs := make([]error, 0)

	for _, doc := range documents {
		report, err := buildFeature(doc, tracker)
		if err != nil {
			failure := FeatureFailure{Name: doc.live.Name, Path: doc.live.Path, Err: err}
			model.Failures = append(model.Failures, failure)
			errs = append(errs, &failure)
			continue
		}
		report.Filename = featureFilename(report.Name, taken)

		model.Features = append(model.Features, report)
		model.Index.Entries = append(model.Index.Entries, IndexEntry{
			Name:        report.Name,
			Description: report.Description,
			Link:        report.Filename,
			Stats:       report.Stats,
		})
		model.Index.Totals = model.Index.Totals.add(report.Stats)
	}

	return model, errors.Join(errs...)
}

func buildFeature(doc *document, tracker *OutcomeTracker) (FeatureReport, error) {
	if doc.err != nil {
		return FeatureReport{}, doc.err
	}
	live := doc.live
	rec := newReconciler(live, doc.template, tracker)

	scenarios, err := scenarioViews(live.Scenarios, rec, tracker)
	if err != nil {
		return FeatureReport{}, err
	}

	rules := make([]RuleView, 0, len(live.Rules))
	for _, rule := range live.Rules {
		ruleScenarios, err := scenarioViews(rule.Scenarios, rec, tracker)
		if err != nil {
			return FeatureReport{}, err
		}
		rules = append(rules, RuleView{
			Keyword:     rule.Keyword,
			Name:        rule.Name,
			Description: rule.Description,
			Tags:        rule.Tags,
			Line:        rule.Position.Line,
			Background:  backgroundView(rule.Background, tracker),
			Scenarios:   ruleScenarios,
		})
	}

	return FeatureReport{
		Keyword:     live.Keyword,
		Name:        live.Name,
		Description: live.Description,
		Tags:        live.Tags,
		Path:        live.Path,
		Background:  backgroundView(live.Background, tracker),
		Scenarios:   scenarios,
		Rules:       rules,
		Stats:       featureStats(live, tracker),
	}, nil
}

// scenarioViews renders plain scenarios directly and hands expansions to the
// reconciler, which renders each outline once.
func scenarioViews(scenarios []*models.Scenario, rec *reconciler, tracker *OutcomeTracker) ([]ScenarioView, error) {
	views := make([]ScenarioView, 0, len(scenarios))
	for _, scenario := range scenarios {
		if !scenario.IsOutline() {
			views = append(views, scenarioView(scenario, tracker))
			continue
		}
		view, err := rec.reconcile(scenario)
		if err != nil {
			return nil, err
		}
		if view != nil {
			views = append(views, *view)
		}
	}
	return views, nil
}

func scenarioView(scenario *models.Scenario, tracker *OutcomeTracker) ScenarioView {
	steps := stepViews(scenario.Steps, tracker)
	return ScenarioView{
		Keyword:     scenario.Keyword,
		Name:        scenario.Name,
		Description: scenario.Description,
		Tags:        scenario.Tags,
		Line:        scenario.Position.Line,
		State:       RowState(outcomesOf(steps)),
		Steps:       steps,
	}
}

func backgroundView(background *models.Background, tracker *OutcomeTracker) *BackgroundView {
	if background == nil {
		return nil
	}
	return &BackgroundView{
		Keyword: background.Keyword,
		Name:    background.Name,
		Line:    background.Position.Line,
		Steps:   stepViews(background.Steps, tracker),
	}
}

func stepViews(steps []*models.Step, tracker *OutcomeTracker) []StepView {
	views := make([]StepView, len(steps))
	for i, step := range steps {
		views[i] = stepView(step)
		views[i].Outcome = tracker.Lookup(step)
		views[i].Message = tracker.Message(step)
	}
	return views
}

func stepView(step *models.Step) StepView {
	view := StepView{
		Keyword: step.Keyword,
		Text:    step.Text,
		Line:    step.Position.Line,
	}
	if step.Table != nil {
		view.Table = step.Table.Data()
	}
	if step.DocString != nil {
		view.DocString = step.DocString.Content
	}
	return view
}

// templateStepViews renders outline template steps. Templates never run, so
// every step is NotRun without a message.
func templateStepViews(steps []*models.Step) []StepView {
	views := make([]StepView, len(steps))
	for i, step := range steps {
		views[i] = stepView(step)
		views[i].Outcome = models.NotRun
	}
	return views
}

func outcomesOf(steps []StepView) []models.StepOutcome {
	outcomes := make([]models.StepOutcome, len(steps))
	for i, step := range steps {
		outcomes[i] = step.Outcome
	}
	return outcomes
}

// featureStats counts over top-level and rule scenarios of the live tree.
func featureStats(feature *models.Feature, tracker *OutcomeTracker) FeatureStats {
	stats := FeatureStats{Rules: len(feature.Rules)}
	for _, scenario := range feature.AllScenarios() {
		stats.Scenarios++
		stats.Steps += len(scenario.Steps)
		for _, step := range scenario.Steps {
			switch tracker.Lookup(step) {
			case models.Failed:
				stats.Errors++
			case models.NotRun:
				stats.Skipped++
			}
		}
	}
	return stats
}

// featureFilename derives a file name from the feature name and suffixes it
// until it is not taken.
func featureFilename(name string, taken map[string]bool) string {
	base, err := filenamify.Filenamify(name, filenamify.Options{Replacement: "_"})
	if err != nil || base == "" {
		base = defaultFilename
	}

	filename := base + ".html"
	for n := 2; taken[strings.ToLower(filename)]; n++ {
		filename = fmt.Sprintf("%s-%d.html", base, n)
	}
	taken[strings.ToLower(filename)] = true
	return filename
}
