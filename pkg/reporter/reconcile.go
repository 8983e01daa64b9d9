package reporter

import (
	"github.com/denizgursoy/gherkin-report/pkg/identity"
	"github.com/denizgursoy/gherkin-report/pkg/models"
)

// RowPosition returns the line at which the expansion of data row rowIndex
// (0-based, header excluded) of an examples block starting at examplesLine
// is found: the keyword line is followed by the header row and then the data
// rows, with no blank lines in between.
func RowPosition(examplesLine, rowIndex int) int {
	return examplesLine + 2 + rowIndex
}

// RowState derives the state of an example row from its step outcomes: any
// failure fails the row, a row passes only when every step passed. Every
// other mix, including passed steps next to unexecuted ones, is NotRun.
func RowState(outcomes []models.StepOutcome) models.StepOutcome {
	passed := 0
	for _, outcome := range outcomes {
		switch outcome {
		case models.Failed:
			return models.Failed
		case models.Passed:
			passed++
		}
	}
	if passed == len(outcomes) {
		return models.Passed
	}
	return models.NotRun
}

// reconciler maps the expansions of a live feature back onto the outlines of
// its template tree. It is scoped to one feature.
type reconciler struct {
	live     *models.Feature
	template *models.Feature
	tracker  *OutcomeTracker
	done     map[identity.Key]bool
}

func newReconciler(live, template *models.Feature, tracker *OutcomeTracker) *reconciler {
	return &reconciler{
		live:     live,
		template: template,
		tracker:  tracker,
		done:     make(map[identity.Key]bool),
	}
}

// reconcile renders the outline the expansion belongs to. Returns nil when
// that outline was already rendered for an earlier expansion.
func (r *reconciler) reconcile(expanded *models.Scenario) (*ScenarioView, error) {
	key := identity.ScenarioKey(expanded)
	if r.done[key] {
		return nil, nil
	}
	r.done[key] = true

	outline := r.findOutline(key)
	if outline == nil {
		return nil, &ReconciliationError{Feature: r.live.Name, Outline: expanded.Name, Kind: MissingOutline}
	}

	candidates := r.candidates(key, outline)
	view := &OutlineView{Examples: make([]ExamplesView, 0, len(outline.Examples))}
	for _, block := range outline.Examples {
		examples, err := r.examplesView(outline, block, candidates)
		if err != nil {
			return nil, err
		}
		view.Examples = append(view.Examples, examples)
	}

	scenario := scenarioView(outline, r.tracker)
	scenario.Steps = templateStepViews(outline.Steps)
	scenario.Outline = view
	scenario.State = outlineState(view)
	return &scenario, nil
}

func (r *reconciler) findOutline(key identity.Key) *models.Scenario {
	if r.template == nil {
		return nil
	}
	for _, scenario := range r.template.AllScenarios() {
		if scenario.IsOutline() && identity.ScenarioKey(scenario) == key {
			return scenario
		}
	}
	return nil
}

// candidates returns the live expansions of the outline: same scenario key
// and every examples block known to the template.
func (r *reconciler) candidates(key identity.Key, outline *models.Scenario) map[int]*models.Scenario {
	known := make(map[identity.Key]bool, len(outline.Examples))
	for _, block := range outline.Examples {
		known[identity.ExamplesKey(block)] = true
	}

	byLine := make(map[int]*models.Scenario)
	for _, scenario := range r.live.AllScenarios() {
		if !scenario.IsOutline() || identity.ScenarioKey(scenario) != key {
			continue
		}
		contained := true
		for _, block := range scenario.Examples {
			if !known[identity.ExamplesKey(block)] {
				contained = false
				break
			}
		}
		if contained {
			byLine[scenario.Position.Line] = scenario
		}
	}
	return byLine
}

func (r *reconciler) examplesView(outline *models.Scenario, block *models.Examples, candidates map[int]*models.Scenario) (ExamplesView, error) {
	fail := func(kind ReconciliationKind) *ReconciliationError {
		return &ReconciliationError{Feature: r.live.Name, Outline: outline.Name, Examples: block.Name, Kind: kind}
	}
	if block.Table == nil {
		return ExamplesView{}, fail(MissingTable)
	}
	if block.Table.Len() == 0 {
		return ExamplesView{}, fail(MissingHeader)
	}

	view := ExamplesView{
		Keyword:     block.Keyword,
		Name:        block.Name,
		Description: block.Description,
		Tags:        block.Tags,
		Line:        block.Position.Line,
		Headers:     block.Table.Headers(),
		Rows:        make([]ExampleRowView, 0, block.Table.Len()-1),
	}
	for i, row := range block.Table.SkipHeader() {
		line := RowPosition(block.Position.Line, i)
		expanded, ok := candidates[line]
		if !ok {
			err := fail(MissingRow)
			err.Row = i
			err.Line = line
			return ExamplesView{}, err
		}

		steps := stepViews(expanded.Steps, r.tracker)
		view.Rows = append(view.Rows, ExampleRowView{
			Cells:    row.Values(),
			Line:     line,
			Scenario: expanded.Name,
			State:    RowState(outcomesOf(steps)),
			Steps:    steps,
		})
	}
	return view, nil
}

// outlineState folds the row states of every examples block.
func outlineState(view *OutlineView) models.StepOutcome {
	states := make([]models.StepOutcome, 0)
	for _, examples := range view.Examples {
		for _, row := range examples.Rows {
			states = append(states, row.State)
		}
	}
	if len(states) == 0 {
		return models.NotRun
	}
	return RowState(states)
}
