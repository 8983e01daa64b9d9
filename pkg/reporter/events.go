package reporter

import "github.com/denizgursoy/gherkin-report/pkg/models"

// Event is a single test-execution event. Events are handed to the Reporter
// in document order.
type Event interface {
	event()
}

// FeatureStarted announces a feature in its live, expanded form.
type FeatureStarted struct {
	Feature *models.Feature
}

// RuleEntered announces a rule of the current feature.
type RuleEntered struct {
	Rule *models.Rule
}

// ScenarioStarted announces a scenario or an outline expansion.
type ScenarioStarted struct {
	Scenario *models.Scenario
}

// ScenarioStep reports the outcome of one step.
type ScenarioStep struct {
	Step   *models.Step
	Status StepStatus
	// Err is the failure reason. Only meaningful for StepFailed.
	Err error
}

// StreamFinished is the terminal event.
type StreamFinished struct{}

func (FeatureStarted) event()  {}
func (RuleEntered) event()     {}
func (ScenarioStarted) event() {}
func (ScenarioStep) event()    {}
func (StreamFinished) event()  {}

// StepStatus is the outcome a runner reports for a step.
type StepStatus int

const (
	// StepPassed indicates the step executed successfully.
	StepPassed StepStatus = iota
	// StepFailed indicates the step failed.
	StepFailed
	// StepSkipped indicates the step did not run.
	StepSkipped
)

// String returns a human-readable label for the step status.
func (s StepStatus) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}
