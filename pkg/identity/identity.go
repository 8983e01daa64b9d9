// Package identity derives stable, content-based keys for feature document
// entities.
//
// Keys only depend on semantic fields, so the same step, scenario or examples
// block parsed twice from the same source (once by the test runner, once by
// the reporter) maps to the same key.
package identity

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/denizgursoy/gherkin-report/pkg/models"
)

// Key is a content-derived identity.
type Key uint64

// String returns the key as a fixed-width hex string.
func (k Key) String() string {
	return fmt.Sprintf("%016x", uint64(k))
}

// Field kinds keep different entity types from colliding on equal content.
const (
	kindStep     = "step"
	kindScenario = "scenario"
	kindExamples = "examples"
	kindFeature  = "feature"
)

// StepKey hashes a step's keyword, text and data table.
func StepKey(step *models.Step) Key {
	h := newHasher(kindStep)
	h.step(step)
	return h.sum()
}

// ScenarioKey hashes a scenario's keyword and span. Rows expanded from an
// outline keep the outline's span and therefore share its key.
func ScenarioKey(scenario *models.Scenario) Key {
	h := newHasher(kindScenario)
	h.scenarioHeader(scenario)
	return h.sum()
}

// ExamplesKey hashes an examples block's keyword, name, description, line
// and header row. Data rows are left out so a block restricted to one row
// keys the same as the full block.
func ExamplesKey(examples *models.Examples) Key {
	h := newHasher(kindExamples)
	h.examples(examples)
	return h.sum()
}

// FeatureKey hashes the full content of a feature document.
func FeatureKey(feature *models.Feature) Key {
	h := newHasher(kindFeature)
	h.str(feature.Path)
	h.str(feature.Keyword)
	h.str(feature.Name)
	h.str(feature.Description)
	h.strs(feature.Tags)
	h.background(feature.Background)
	h.num(len(feature.Rules))
	for _, rule := range feature.Rules {
		h.str(rule.Keyword)
		h.str(rule.Name)
		h.str(rule.Description)
		h.strs(rule.Tags)
		h.num(rule.Position.Line)
		h.background(rule.Background)
		h.scenarios(rule.Scenarios)
	}
	h.scenarios(feature.Scenarios)
	return h.sum()
}

type hasher struct {
	d *xxhash.Digest
}

func newHasher(kind string) *hasher {
	h := &hasher{d: xxhash.New()}
	h.str(kind)
	return h
}

func (h *hasher) sum() Key {
	return Key(h.d.Sum64())
}

// str writes a length-prefixed string so field boundaries stay unambiguous.
func (h *hasher) str(s string) {
	h.num(len(s))
	_, _ = h.d.WriteString(s)
}

func (h *hasher) num(n int) {
	_, _ = h.d.WriteString(strconv.Itoa(n))
	_, _ = h.d.WriteString(";")
}

func (h *hasher) strs(values []string) {
	h.num(len(values))
	for _, v := range values {
		h.str(v)
	}
}

func (h *hasher) table(table *models.Table) {
	if table == nil {
		h.num(-1)
		return
	}
	data := table.Data()
	h.num(len(data))
	for _, row := range data {
		h.strs(row)
	}
}

func (h *hasher) step(step *models.Step) {
	h.str(step.Keyword)
	h.str(step.Text)
	h.table(step.Table)
}

func (h *hasher) scenarioHeader(scenario *models.Scenario) {
	h.str(scenario.Keyword)
	h.num(scenario.Span.Start)
	h.num(scenario.Span.End)
}

func (h *hasher) examples(examples *models.Examples) {
	h.str(examples.Keyword)
	h.str(examples.Name)
	h.str(examples.Description)
	h.num(examples.Position.Line)
	if examples.Table == nil {
		h.num(-1)
		return
	}
	h.strs(examples.Table.Headers())
}

func (h *hasher) background(background *models.Background) {
	if background == nil {
		h.num(-1)
		return
	}
	h.str(background.Keyword)
	h.str(background.Name)
	h.num(len(background.Steps))
	for _, step := range background.Steps {
		h.step(step)
	}
}

func (h *hasher) scenarios(scenarios []*models.Scenario) {
	h.num(len(scenarios))
	for _, scenario := range scenarios {
		h.scenarioHeader(scenario)
		h.str(scenario.Name)
		h.str(scenario.Description)
		h.strs(scenario.Tags)
		h.num(scenario.Position.Line)
		h.num(len(scenario.Steps))
		for _, step := range scenario.Steps {
			h.step(step)
			h.num(step.Position.Line)
		}
		h.num(len(scenario.Examples))
		for _, examples := range scenario.Examples {
			h.examples(examples)
			h.table(examples.Table)
		}
	}
}
