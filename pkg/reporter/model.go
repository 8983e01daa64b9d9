package reporter

import "github.com/denizgursoy/gherkin-report/pkg/models"

// ReportModel is the render-ready result of one report generation.
type ReportModel struct {
	// Features holds every successfully built feature, sorted by name.
	Features []FeatureReport
	Index    IndexReport
	// Failures lists the features left out of Features and Index.
	Failures []FeatureFailure
}

// FeatureStats summarizes the scenarios of one feature, rules included.
type FeatureStats struct {
	Scenarios int
	Rules     int
	Steps     int
	Errors    int
	Skipped   int
}

func (s FeatureStats) add(other FeatureStats) FeatureStats {
	return FeatureStats{
		Scenarios: s.Scenarios + other.Scenarios,
		Rules:     s.Rules + other.Rules,
		Steps:     s.Steps + other.Steps,
		Errors:    s.Errors + other.Errors,
		Skipped:   s.Skipped + other.Skipped,
	}
}

type FeatureReport struct {
	Keyword     string
	Name        string
	Description string
	Tags        []string
	Path        string
	// Filename is the suggested output file name, unique within the report.
	Filename   string
	Background *BackgroundView
	Scenarios  []ScenarioView
	Rules      []RuleView
	Stats      FeatureStats
}

type RuleView struct {
	Keyword     string
	Name        string
	Description string
	Tags        []string
	Line        int
	Background  *BackgroundView
	Scenarios   []ScenarioView
}

type BackgroundView struct {
	Keyword string
	Name    string
	Line    int
	Steps   []StepView
}

// ScenarioView is a plain scenario, or an outline when Outline is set.
type ScenarioView struct {
	Keyword     string
	Name        string
	Description string
	Tags        []string
	Line        int
	State       models.StepOutcome
	Steps       []StepView
	Outline     *OutlineView
}

// OutlineView is an outline template with its examples reconciled against
// the expanded scenarios that ran.
type OutlineView struct {
	Examples []ExamplesView
}

type ExamplesView struct {
	Keyword     string
	Name        string
	Description string
	Tags        []string
	Line        int
	Headers     []string
	Rows        []ExampleRowView
}

// ExampleRowView is one data row and the expansion that realized it.
type ExampleRowView struct {
	Cells    []string
	Line     int
	Scenario string
	State    models.StepOutcome
	Steps    []StepView
}

type StepView struct {
	Keyword   string
	Text      string
	Line      int
	Outcome   models.StepOutcome
	Message   string
	Table     [][]string
	DocString string
}

// IndexReport lists the features of the report, sorted by name.
type IndexReport struct {
	Entries []IndexEntry
	Totals  FeatureStats
}

type IndexEntry struct {
	Name        string
	Description string
	Link        string
	Stats       FeatureStats
}
