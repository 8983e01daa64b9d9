package reporter

import (
	"github.com/denizgursoy/gherkin-report/pkg/identity"
	"github.com/denizgursoy/gherkin-report/pkg/models"
)

// Counters are run-wide totals, one increment per event. They cannot be
// attributed to a feature; per-feature statistics are recomputed from the
// document tree.
type Counters struct {
	Scenarios int
	Rules     int
	Steps     int
	Errors    int
	Skipped   int
}

// OutcomeTracker maps step identities to their last reported outcome.
type OutcomeTracker struct {
	outcomes map[identity.Key]models.StepOutcome
	messages map[identity.Key]string
	counters Counters
}

func NewOutcomeTracker() *OutcomeTracker {
	return &OutcomeTracker{
		outcomes: make(map[identity.Key]models.StepOutcome),
		messages: make(map[identity.Key]string),
	}
}

// Record overwrites any prior outcome of the step. The message is kept for
// failed steps and cleared otherwise.
func (t *OutcomeTracker) Record(step *models.Step, outcome models.StepOutcome, message string) {
	key := identity.StepKey(step)
	t.outcomes[key] = outcome
	if outcome == models.Failed {
		t.messages[key] = message
	} else {
		delete(t.messages, key)
	}
}

// Lookup returns the last recorded outcome, NotRun if the step never ran.
func (t *OutcomeTracker) Lookup(step *models.Step) models.StepOutcome {
	outcome, ok := t.outcomes[identity.StepKey(step)]
	if !ok {
		return models.NotRun
	}
	return outcome
}

// Message returns the failure message of the step's last failed outcome.
func (t *OutcomeTracker) Message(step *models.Step) string {
	return t.messages[identity.StepKey(step)]
}

// Counters returns a copy of the run-wide counters.
func (t *OutcomeTracker) Counters() Counters {
	return t.counters
}

func (t *OutcomeTracker) observeScenario() {
	t.counters.Scenarios++
}

func (t *OutcomeTracker) observeRule() {
	t.counters.Rules++
}

// observeStep counts a step event and records its outcome. Skipped steps are
// counted but not recorded, so they keep whatever outcome the same step had.
func (t *OutcomeTracker) observeStep(event ScenarioStep) {
	t.counters.Steps++
	switch event.Status {
	case StepPassed:
		t.Record(event.Step, models.Passed, "")
	case StepFailed:
		t.counters.Errors++
		message := ""
		if event.Err != nil {
			message = event.Err.Error()
		}
		t.Record(event.Step, models.Failed, message)
	case StepSkipped:
		t.counters.Skipped++
	}
}
