// Package models holds the feature document tree shared by the parser, the
// aggregation engine and the renderers.
package models

// Position is a source location inside a feature file.
type Position struct {
	Line   int
	Column int
}

// Span is the inclusive range of source lines a scenario definition occupies.
type Span struct {
	Start int
	End   int
}

// Feature is a parsed feature file.
//
// The same file can be represented by two trees: the live tree, in which every
// Scenario Outline row has been expanded into a standalone Scenario, and the
// template tree, in which outlines keep their un-expanded Examples tables.
type Feature struct {
	Path        string
	Keyword     string
	Name        string
	Description string
	Tags        []string
	Position    Position
	Background  *Background
	Rules       []*Rule
	Scenarios   []*Scenario
}

// Rule groups scenarios under a business rule.
type Rule struct {
	ID          string
	Keyword     string
	Name        string
	Description string
	Tags        []string
	Position    Position
	Background  *Background
	Scenarios   []*Scenario
}

// Background holds steps shared by every scenario of a feature or rule.
type Background struct {
	ID          string
	Keyword     string
	Name        string
	Description string
	Position    Position
	Steps       []*Step
}

// Scenario is a plain scenario, an outline (template tree) or an outline
// expansion for one example row (live tree).
type Scenario struct {
	// ID is the parser id of the scenario definition. Expanded rows share the
	// id of their outline and carry the id of the example row in RowID.
	ID    string
	RowID string

	Keyword     string
	Name        string
	Description string
	Tags        []string

	// Position is where the scenario starts. For an expanded row it is the
	// line of the example row that produced it.
	Position Position

	// Span covers the scenario definition. Expanded rows keep the span of
	// their outline.
	Span Span

	Steps    []*Step
	Examples []*Examples
}

// IsOutline reports whether the scenario carries examples. In the template
// tree this marks an outline; in the live tree an outline expansion.
func (s *Scenario) IsOutline() bool {
	return len(s.Examples) > 0
}

// Examples is an example block of a Scenario Outline.
type Examples struct {
	ID          string
	Keyword     string
	Name        string
	Description string
	Tags        []string
	Position    Position

	// Table holds the header row followed by the data rows. Nil when the
	// block has no table.
	Table *Table
}

// Step is a single Given/When/Then step.
type Step struct {
	// ID is the parser id of the step definition and RowID the id of the
	// example row it was expanded for, if any. Neither takes part in the
	// step's identity.
	ID    string
	RowID string

	Keyword   string
	Text      string
	Position  Position
	Table     *Table
	DocString *DocString
}

// DocString is a multi-line string argument attached to a step.
type DocString struct {
	MediaType string
	Content   string
}

// AllScenarios returns the top-level scenarios followed by the scenarios of
// every rule, in document order.
func (f *Feature) AllScenarios() []*Scenario {
	all := make([]*Scenario, 0, len(f.Scenarios))
	all = append(all, f.Scenarios...)
	for _, rule := range f.Rules {
		all = append(all, rule.Scenarios...)
	}
	return all
}

// HasOutlines reports whether any scenario of the feature, including those
// nested in rules, carries examples.
func (f *Feature) HasOutlines() bool {
	for _, scenario := range f.AllScenarios() {
		if scenario.IsOutline() {
			return true
		}
	}
	return false
}
