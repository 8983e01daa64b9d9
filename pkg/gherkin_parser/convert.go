package gherkin_parser

import (
	"errors"
	"strings"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/gherkin-report/pkg/models"
)

var ErrNoFeature = errors.New("document has no feature")

// TemplateFromDocument converts a parsed document into the template tree.
func TemplateFromDocument(path string, document *messages.GherkinDocument) (*models.Feature, error) {
	return convertDocument(path, document, false)
}

// LiveFromDocument converts a parsed document into the live tree, expanding
// every outline into one Scenario per example row. Parser ids are kept so the
// tree can be correlated with pickles built from the same document.
func LiveFromDocument(path string, document *messages.GherkinDocument) (*models.Feature, error) {
	return convertDocument(path, document, true)
}

func convertDocument(path string, document *messages.GherkinDocument, expand bool) (*models.Feature, error) {
	if document == nil || document.Feature == nil {
		return nil, ErrNoFeature
	}
	f := document.Feature
	feature := &models.Feature{
		Path:        path,
		Keyword:     f.Keyword,
		Name:        f.Name,
		Description: strings.TrimSpace(f.Description),
		Tags:        tagNames(f.Tags),
		Position:    position(f.Location),
	}

	for _, child := range f.Children {
		switch {
		case child.Background != nil:
			feature.Background = convertBackground(child.Background)
		case child.Rule != nil:
			feature.Rules = append(feature.Rules, convertRule(child.Rule, expand))
		case child.Scenario != nil:
			feature.Scenarios = append(feature.Scenarios, convertScenario(child.Scenario, expand)...)
		}
	}
	return feature, nil
}

func convertRule(r *messages.Rule, expand bool) *models.Rule {
	rule := &models.Rule{
		ID:          r.Id,
		Keyword:     r.Keyword,
		Name:        r.Name,
		Description: strings.TrimSpace(r.Description),
		Tags:        tagNames(r.Tags),
		Position:    position(r.Location),
	}
	for _, child := range r.Children {
		switch {
		case child.Background != nil:
			rule.Background = convertBackground(child.Background)
		case child.Scenario != nil:
			rule.Scenarios = append(rule.Scenarios, convertScenario(child.Scenario, expand)...)
		}
	}
	return rule
}

func convertBackground(b *messages.Background) *models.Background {
	steps := make([]*models.Step, len(b.Steps))
	for i, s := range b.Steps {
		steps[i] = convertStep(s)
	}
	return &models.Background{
		ID:          b.Id,
		Keyword:     b.Keyword,
		Name:        b.Name,
		Description: strings.TrimSpace(b.Description),
		Position:    position(b.Location),
		Steps:       steps,
	}
}

// convertScenario returns the scenario itself, or its expansions when expand
// is set and the scenario is an outline with example rows.
func convertScenario(s *messages.Scenario, expand bool) []*models.Scenario {
	steps := make([]*models.Step, len(s.Steps))
	for i, step := range s.Steps {
		steps[i] = convertStep(step)
	}
	examples := make([]*models.Examples, len(s.Examples))
	for i, ex := range s.Examples {
		examples[i] = convertExamples(ex)
	}

	scenario := &models.Scenario{
		ID:          s.Id,
		Keyword:     s.Keyword,
		Name:        s.Name,
		Description: strings.TrimSpace(s.Description),
		Tags:        tagNames(s.Tags),
		Position:    position(s.Location),
		Span:        scenarioSpan(s),
		Steps:       steps,
		Examples:    examples,
	}
	if !expand || len(examples) == 0 {
		return []*models.Scenario{scenario}
	}
	return expandOutline(scenario, s.Examples)
}

func convertExamples(ex *messages.Examples) *models.Examples {
	return &models.Examples{
		ID:          ex.Id,
		Keyword:     ex.Keyword,
		Name:        ex.Name,
		Description: strings.TrimSpace(ex.Description),
		Tags:        tagNames(ex.Tags),
		Position:    position(ex.Location),
		Table:       models.NewTableFromExamples(ex),
	}
}

func convertStep(s *messages.Step) *models.Step {
	step := &models.Step{
		ID:       s.Id,
		Keyword:  s.Keyword,
		Text:     s.Text,
		Position: position(s.Location),
		Table:    models.NewTableFromDataTable(s.DataTable),
	}
	if s.DocString != nil {
		step.DocString = &models.DocString{
			MediaType: s.DocString.MediaType,
			Content:   s.DocString.Content,
		}
	}
	return step
}

// scenarioSpan covers the scenario line through the last line of its steps,
// their arguments and its example tables.
func scenarioSpan(s *messages.Scenario) models.Span {
	start := position(s.Location).Line
	end := start
	extend := func(line int) {
		if line > end {
			end = line
		}
	}

	for _, step := range s.Steps {
		extend(position(step.Location).Line)
		if step.DataTable != nil {
			for _, row := range step.DataTable.Rows {
				extend(position(row.Location).Line)
			}
		}
		if step.DocString != nil {
			// opening delimiter, content lines, closing delimiter
			extend(position(step.DocString.Location).Line + strings.Count(step.DocString.Content, "\n") + 2)
		}
	}
	for _, ex := range s.Examples {
		extend(position(ex.Location).Line)
		if ex.TableHeader != nil {
			extend(position(ex.TableHeader.Location).Line)
		}
		for _, row := range ex.TableBody {
			extend(position(row.Location).Line)
		}
	}
	return models.Span{Start: start, End: end}
}

func position(location *messages.Location) models.Position {
	if location == nil {
		return models.Position{}
	}
	return models.Position{
		Line:   int(location.Line),
		Column: int(location.Column),
	}
}

func tagNames(tags []*messages.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
