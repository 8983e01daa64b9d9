package gherkin_parser

import (
	"strings"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/gherkin-report/pkg/models"
)

// expandOutline builds one Scenario per data row of every examples block.
// An expansion sits at the line of its row, keeps the outline's span and
// carries the originating block reduced to the header and its own row.
func expandOutline(outline *models.Scenario, raw []*messages.Examples) []*models.Scenario {
	expanded := make([]*models.Scenario, 0)
	for i, ex := range raw {
		block := outline.Examples[i]
		if block.Table == nil || ex.TableHeader == nil {
			continue
		}
		headers := block.Table.Headers()

		for rowIndex, row := range ex.TableBody {
			values := make([]string, len(row.Cells))
			for j, cell := range row.Cells {
				values[j] = cell.Value
			}
			replace := placeholderReplacer(headers, values)

			steps := make([]*models.Step, len(outline.Steps))
			for j, step := range outline.Steps {
				steps[j] = expandStep(step, row.Id, replace)
			}

			tags := make([]string, 0, len(outline.Tags)+len(block.Tags))
			tags = append(tags, outline.Tags...)
			tags = append(tags, block.Tags...)

			expanded = append(expanded, &models.Scenario{
				ID:          outline.ID,
				RowID:       row.Id,
				Keyword:     outline.Keyword,
				Name:        replace.Replace(outline.Name),
				Description: outline.Description,
				Tags:        tags,
				Position:    position(row.Location),
				Span:        outline.Span,
				Steps:       steps,
				Examples: []*models.Examples{{
					ID:          block.ID,
					Keyword:     block.Keyword,
					Name:        block.Name,
					Description: block.Description,
					Tags:        block.Tags,
					Position:    block.Position,
					Table:       block.Table.Subset(rowIndex),
				}},
			})
		}
	}
	return expanded
}

func expandStep(step *models.Step, rowID string, replace *strings.Replacer) *models.Step {
	expanded := &models.Step{
		ID:       step.ID,
		RowID:    rowID,
		Keyword:  step.Keyword,
		Text:     replace.Replace(step.Text),
		Position: step.Position,
	}
	if step.Table != nil {
		data := step.Table.Data()
		lines := make([]int, 0, step.Table.Len())
		for i, row := range step.Table.All() {
			for j := range data[i] {
				data[i][j] = replace.Replace(data[i][j])
			}
			lines = append(lines, row.Line())
		}
		expanded.Table = models.NewTableWithLines(data, lines)
	}
	if step.DocString != nil {
		expanded.DocString = &models.DocString{
			MediaType: replace.Replace(step.DocString.MediaType),
			Content:   replace.Replace(step.DocString.Content),
		}
	}
	return expanded
}

// placeholderReplacer substitutes <header> with the row value of that column.
func placeholderReplacer(headers, values []string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(headers))
	for i, header := range headers {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		pairs = append(pairs, "<"+header+">", value)
	}
	return strings.NewReplacer(pairs...)
}
