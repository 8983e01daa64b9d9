package reporter

import (
	"github.com/denizgursoy/gherkin-report/pkg/models"
)

func step(keyword, text string, line int) *models.Step {
	return &models.Step{Keyword: keyword, Text: text, Position: models.Position{Line: line}}
}

func plainScenario(name string, line int, steps ...*models.Step) *models.Scenario {
	end := line
	if len(steps) > 0 {
		end = steps[len(steps)-1].Position.Line
	}
	return &models.Scenario{
		Keyword:  "Scenario",
		Name:     name,
		Position: models.Position{Line: line},
		Span:     models.Span{Start: line, End: end},
		Steps:    steps,
	}
}

// outlineTemplate is an outline at line 5 whose examples block starts at
// line 10, with a header row at 11 and data rows at 12 and 13.
func outlineTemplate() *models.Feature {
	return &models.Feature{
		Path: "outline.feature",
		Name: "Outline",
		Scenarios: []*models.Scenario{{
			Keyword:  "Scenario Outline",
			Name:     "value <v>",
			Position: models.Position{Line: 5},
			Span:     models.Span{Start: 5, End: 13},
			Steps: []*models.Step{
				step("Given ", "the value <v>", 6),
				step("Then ", "it is accepted", 7),
			},
			Examples: []*models.Examples{{
				Keyword:  "Examples",
				Position: models.Position{Line: 10},
				Table: models.NewTableWithLines(
					[][]string{{"v"}, {"1"}, {"2"}},
					[]int{11, 12, 13},
				),
			}},
		}},
	}
}

func expansion(value string, line int) *models.Scenario {
	return &models.Scenario{
		Keyword:  "Scenario Outline",
		Name:     "value " + value,
		Position: models.Position{Line: line},
		Span:     models.Span{Start: 5, End: 13},
		Steps: []*models.Step{
			step("Given ", "the value "+value, 6),
			step("Then ", "it is accepted", 7),
		},
		Examples: []*models.Examples{{
			Keyword:  "Examples",
			Position: models.Position{Line: 10},
			Table:    models.NewTableWithLines([][]string{{"v"}, {value}}, []int{11, line}),
		}},
	}
}

func outlineLive(expansions ...*models.Scenario) *models.Feature {
	return &models.Feature{
		Path:      "outline.feature",
		Name:      "Outline",
		Scenarios: expansions,
	}
}

func namedFeature(name string) *models.Feature {
	return &models.Feature{
		Path:      name + ".feature",
		Name:      name,
		Scenarios: []*models.Scenario{plainScenario("only", 2, step("Given ", name+" exists", 3))},
	}
}

// staticLoader serves fixed template trees by path.
type staticLoader map[string]*models.Feature

func (l staticLoader) Load(path string) (*models.Feature, error) {
	return l[path], nil
}
