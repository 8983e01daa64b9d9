// Package cucumber_json replays a cucumber JSON results file, as written by
// godog's cucumber formatter, as report events.
package cucumber_json

// Feature is one feature of a results file.
type Feature struct {
	URI         string    `json:"uri" jsonschema:"description=Path of the feature file"`
	ID          string    `json:"id,omitempty"`
	Keyword     string    `json:"keyword,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Line        int       `json:"line,omitempty"`
	Tags        []Tag     `json:"tags,omitempty"`
	Elements    []Element `json:"elements,omitempty"`
}

// Element is a scenario, an outline row or a background.
type Element struct {
	ID          string `json:"id,omitempty"`
	Keyword     string `json:"keyword,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Line is the scenario line, or the example row line for outline rows.
	Line  int    `json:"line" jsonschema:"minimum=1"`
	Type  string `json:"type,omitempty" jsonschema:"enum=scenario,enum=background"`
	Tags  []Tag  `json:"tags,omitempty"`
	Steps []Step `json:"steps,omitempty"`
}

type Step struct {
	Keyword string `json:"keyword"`
	Name    string `json:"name"`
	Line    int    `json:"line" jsonschema:"minimum=1"`
	Result  Result `json:"result"`
}

type Result struct {
	Status       string `json:"status" jsonschema:"enum=passed,enum=failed,enum=skipped,enum=undefined,enum=pending,enum=ambiguous"`
	ErrorMessage string `json:"error_message,omitempty"`
	// Duration is in nanoseconds.
	Duration int64 `json:"duration,omitempty"`
}

type Tag struct {
	Name string `json:"name"`
	Line int    `json:"line,omitempty"`
}

const (
	StatusPassed    = "passed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
	StatusUndefined = "undefined"
	StatusPending   = "pending"
	StatusAmbiguous = "ambiguous"

	TypeBackground = "background"
)
