// Package ui prints command results to the terminal.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/denizgursoy/gherkin-report/pkg/reporter"
)

const (
	colorKeyword = "#CF8E6D"
	colorText    = "#BCBEC4"
	colorSkipped = "#6F737A"
	colorGreen   = "2"
	colorRed     = "1"
	colorYellow  = "3"
)

// Console writes styled lines to a writer. Colors are only emitted when
// enabled and supported by the writer.
type Console struct {
	w         io.Writer
	useColors bool
	mu        sync.Mutex

	keyword lipgloss.Style
	name    lipgloss.Style
	faint   lipgloss.Style
	passed  lipgloss.Style
	failed  lipgloss.Style
	skipped lipgloss.Style
}

func NewConsole(w io.Writer, useColors bool) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:         w,
		useColors: useColors,
		keyword:   r.NewStyle().Foreground(lipgloss.Color(colorKeyword)),
		name:      r.NewStyle().Foreground(lipgloss.Color(colorText)),
		faint:     r.NewStyle().Foreground(lipgloss.Color(colorSkipped)),
		passed:    r.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		failed:    r.NewStyle().Foreground(lipgloss.Color(colorRed)),
		skipped:   r.NewStyle().Foreground(lipgloss.Color(colorYellow)),
	}
}

func (c *Console) render(style lipgloss.Style, s string) string {
	if !c.useColors {
		return s
	}
	return style.Render(s)
}

func (c *Console) writeln(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, s)
}

// Created reports a file written by a command.
func (c *Console) Created(path string) {
	c.writeln(c.render(c.passed, "created") + "  " + path)
}

// Exists reports a file a command left untouched.
func (c *Console) Exists(path string) {
	c.writeln(c.render(c.faint, "exists") + "   " + path)
}

// Written reports where the report index was written.
func (c *Console) Written(indexPath string, features int) {
	c.writeln(fmt.Sprintf("%s %s (%d feature(s))", c.render(c.keyword, "Report:"), c.render(c.name, indexPath), features))
}

// Failure prints an error, one line per joined error.
func (c *Console) Failure(err error) {
	if err == nil {
		return
	}
	for _, e := range flatten(err) {
		for _, line := range strings.Split(e.Error(), "\n") {
			c.writeln(c.render(c.failed, "  "+line))
		}
	}
}

func flatten(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	flat := make([]error, 0)
	for _, e := range joined.Unwrap() {
		flat = append(flat, flatten(e)...)
	}
	return flat
}

// Summary prints the run-wide counters.
func (c *Console) Summary(counters reporter.Counters) {
	scenarioLine := fmt.Sprintf("%d scenario(s)", counters.Scenarios)
	if counters.Rules > 0 {
		scenarioLine += fmt.Sprintf(", %d rule(s)", counters.Rules)
	}
	c.writeln("")
	c.writeln(scenarioLine)

	stepLine := fmt.Sprintf("%d step(s)", counters.Steps)
	if counters.Steps > 0 {
		parts := []string{}
		if passed := counters.Steps - counters.Errors - counters.Skipped; passed > 0 {
			parts = append(parts, c.render(c.passed, fmt.Sprintf("%d passed", passed)))
		}
		if counters.Errors > 0 {
			parts = append(parts, c.render(c.failed, fmt.Sprintf("%d failed", counters.Errors)))
		}
		if counters.Skipped > 0 {
			parts = append(parts, c.render(c.skipped, fmt.Sprintf("%d skipped", counters.Skipped)))
		}
		if len(parts) > 0 {
			stepLine += " (" + strings.Join(parts, ", ") + ")"
		}
	}
	c.writeln(stepLine)
}

// StatsTable prints one row per reported feature and a total footer.
func (c *Console) StatsTable(model reporter.ReportModel) {
	t := table.NewWriter()
	t.SetTitle("FEATURES")
	t.AppendHeader(table.Row{"FEATURE", "FILE", "SCENARIOS", "RULES", "STEPS", "FAILED", "SKIPPED"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "FEATURE", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "SCENARIOS", Align: text.AlignRight},
		{Name: "RULES", Align: text.AlignRight},
		{Name: "STEPS", Align: text.AlignRight},
		{Name: "FAILED", Align: text.AlignRight},
		{Name: "SKIPPED", Align: text.AlignRight},
	})

	for _, entry := range model.Index.Entries {
		s := entry.Stats
		t.AppendRow(table.Row{entry.Name, entry.Link, s.Scenarios, s.Rules, s.Steps, s.Errors, s.Skipped})
	}
	totals := model.Index.Totals
	t.AppendFooter(table.Row{"TOTAL", "", totals.Scenarios, totals.Rules, totals.Steps, totals.Errors, totals.Skipped})

	switch {
	case !c.useColors:
		t.SetStyle(table.StyleLight)
	case totals.Errors > 0 || len(model.Failures) > 0:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}

	c.writeln(t.Render())

	for _, failure := range model.Failures {
		c.writeln(c.render(c.failed, "left out: ") + failure.Path)
		var recErr *reporter.ReconciliationError
		if errors.As(failure.Err, &recErr) {
			c.writeln(c.render(c.faint, fmt.Sprintf("  %s %q line %d", recErr.Kind, recErr.Outline, recErr.Line)))
			continue
		}
		c.Failure(failure.Err)
	}
}
