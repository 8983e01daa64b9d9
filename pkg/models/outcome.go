package models

// StepOutcome represents the last observed outcome of a step.
type StepOutcome int

const (
	// NotRun covers steps that were never executed, were skipped, or belong to
	// an outline template (templates are never executed directly).
	NotRun StepOutcome = iota
	// Passed indicates the step executed successfully.
	Passed
	// Failed indicates the step failed (assertion, panic, or returned error).
	Failed
)

// String returns a human-readable label for the step outcome.
func (o StepOutcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case NotRun:
		return "not run"
	default:
		return "unknown"
	}
}
