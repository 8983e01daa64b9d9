package gherkin_parser

import (
	"strings"

	"github.com/denizgursoy/gherkin-report/pkg/models"
)

// NodeIndex finds live tree nodes by the parser ids pickles refer to.
//
// A pickle's AST node ids are the scenario id, followed by the example row id
// for outline expansions. Pickle steps follow the same layout with the step id.
type NodeIndex struct {
	scenarios map[string]*models.Scenario
	steps     map[string]*models.Step
}

// NewNodeIndex indexes every scenario and step of a live tree.
func NewNodeIndex(feature *models.Feature) *NodeIndex {
	idx := &NodeIndex{
		scenarios: make(map[string]*models.Scenario),
		steps:     make(map[string]*models.Step),
	}

	idx.addBackground(feature.Background)
	for _, rule := range feature.Rules {
		idx.addBackground(rule.Background)
	}
	for _, scenario := range feature.AllScenarios() {
		idx.scenarios[nodeKey(scenario.ID, scenario.RowID)] = scenario
		for _, step := range scenario.Steps {
			idx.steps[nodeKey(step.ID, step.RowID)] = step
		}
	}
	return idx
}

func (idx *NodeIndex) addBackground(background *models.Background) {
	if background == nil {
		return
	}
	for _, step := range background.Steps {
		idx.steps[nodeKey(step.ID, "")] = step
	}
}

// Scenario returns the scenario a pickle was built from.
func (idx *NodeIndex) Scenario(astNodeIDs []string) (*models.Scenario, bool) {
	s, ok := idx.scenarios[nodeKey(astNodeIDs...)]
	return s, ok
}

// Step returns the step a pickle step was built from.
func (idx *NodeIndex) Step(astNodeIDs []string) (*models.Step, bool) {
	s, ok := idx.steps[nodeKey(astNodeIDs...)]
	return s, ok
}

func nodeKey(ids ...string) string {
	nonEmpty := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			nonEmpty = append(nonEmpty, id)
		}
	}
	return strings.Join(nonEmpty, "/")
}
