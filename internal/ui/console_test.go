package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/denizgursoy/gherkin-report/pkg/reporter"
)

func TestConsole(t *testing.T) {
	t.Run("should print summary without colors", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, false)

		c.Summary(reporter.Counters{Scenarios: 4, Rules: 1, Steps: 14, Errors: 1, Skipped: 2})

		require.Equal(t, "\n4 scenario(s), 1 rule(s)\n14 step(s) (11 passed, 1 failed, 2 skipped)\n", buf.String())
	})

	t.Run("should leave out empty parts", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, false)

		c.Summary(reporter.Counters{})

		require.Equal(t, "\n0 scenario(s)\n0 step(s)\n", buf.String())
	})

	t.Run("should print file lines", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, false)

		c.Created("steps_test.go")
		c.Exists(".gherkin-report.yaml")
		c.Written("reports/index.html", 2)

		require.Equal(t, "created  steps_test.go\nexists   .gherkin-report.yaml\nReport: reports/index.html (2 feature(s))\n", buf.String())
	})

	t.Run("should print every joined error", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, false)

		c.Failure(errors.Join(errors.New("first"), errors.Join(errors.New("second"), errors.New("third"))))
		c.Failure(nil)

		require.Equal(t, "  first\n  second\n  third\n", buf.String())
	})

	t.Run("should print a row per feature", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, false)

		c.StatsTable(reporter.ReportModel{
			Index: reporter.IndexReport{
				Entries: []reporter.IndexEntry{
					{Name: "Apple", Link: "Apple.html", Stats: reporter.FeatureStats{Scenarios: 2, Steps: 5}},
					{Name: "Mango", Link: "Mango.html", Stats: reporter.FeatureStats{Scenarios: 1, Steps: 3, Errors: 1}},
				},
				Totals: reporter.FeatureStats{Scenarios: 3, Steps: 8, Errors: 1},
			},
			Failures: []reporter.FeatureFailure{
				{Name: "Zebra", Path: "zebra.feature", Err: &reporter.ReconciliationError{Outline: "grazing", Kind: reporter.MissingRow, Line: 13}},
				{Name: "Lemon", Path: "lemon.feature", Err: errors.New("broken template")},
			},
		})

		out := buf.String()
		require.Contains(t, out, "FEATURES")
		require.Contains(t, out, "Apple.html")
		require.Contains(t, out, "Mango")
		require.Contains(t, out, "TOTAL")
		require.Contains(t, out, "left out: zebra.feature")
		require.Contains(t, out, `"grazing" line 13`)
		require.Contains(t, out, "  broken template")
	})
}
