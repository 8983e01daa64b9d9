// Package render turns a report model into HTML pages: one page per feature
// plus an index page linking them.
package render

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/denizgursoy/gherkin-report/pkg/models"
	"github.com/denizgursoy/gherkin-report/pkg/reporter"
)

//go:embed templates/*.html
var templateFS embed.FS

const DefaultTitle = "Feature Report"

// FeaturePage is the data of one feature page.
type FeaturePage struct {
	Title     string
	RunID     string
	IndexLink string
	Feature   reporter.FeatureReport
}

// IndexPage is the data of the index page.
type IndexPage struct {
	Title    string
	RunID    string
	Index    reporter.IndexReport
	Failures []reporter.FeatureFailure
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"outcomeClass":     outcomeClass,
		"outcomeSymbol":    outcomeSymbol,
		"colorizeStepText": colorizeStepText,
		"summaryClass": func(errors int) string {
			if errors > 0 {
				return "has-failures"
			}
			return "all-passed"
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("could not parse HTML templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderFeature writes the page of one feature.
func (r *Renderer) RenderFeature(w io.Writer, page FeaturePage) error {
	if err := r.tmpl.ExecuteTemplate(w, "feature", page); err != nil {
		return fmt.Errorf("could not render feature %q: %w", page.Feature.Name, err)
	}
	return nil
}

// RenderIndex writes the index page.
func (r *Renderer) RenderIndex(w io.Writer, page IndexPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "index", page); err != nil {
		return fmt.Errorf("could not render index: %w", err)
	}
	return nil
}

// outcomeClass returns the CSS class name for a step outcome.
func outcomeClass(o models.StepOutcome) string {
	switch o {
	case models.Passed:
		return "passed"
	case models.Failed:
		return "failed"
	default:
		return "skipped"
	}
}

func outcomeSymbol(o models.StepOutcome) string {
	switch o {
	case models.Passed:
		return "\u2713" // ✓
	case models.Failed:
		return "\u2717" // ✗
	default:
		return "\u2013" // –
	}
}

// colorizeStepText returns safe HTML for a step's text with <placeholder>
// segments wrapped in parameter spans. Outline template steps are the only
// ones that still carry placeholders.
func colorizeStepText(step reporter.StepView) template.HTML {
	cls := outcomeClass(step.Outcome)
	text := step.Text

	var b strings.Builder
	prev := 0
	for {
		start := strings.Index(text[prev:], "<")
		if start < 0 {
			break
		}
		start += prev
		end := strings.Index(text[start:], ">")
		if end < 0 {
			break
		}
		end += start + 1

		if start > prev {
			fmt.Fprintf(&b, `<span class="step-text %s">%s</span>`, cls, html.EscapeString(text[prev:start]))
		}
		fmt.Fprintf(&b, `<span class="step-param">%s</span>`, html.EscapeString(text[start:end]))
		prev = end
	}
	if prev < len(text) || prev == 0 {
		fmt.Fprintf(&b, `<span class="step-text %s">%s</span>`, cls, html.EscapeString(text[prev:]))
	}
	return template.HTML(b.String())
}
