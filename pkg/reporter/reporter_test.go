package reporter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/denizgursoy/gherkin-report/pkg/gherkin_parser"
	"github.com/denizgursoy/gherkin-report/pkg/models"
)

// replay hands a live feature to the reporter the way a runner does, failing
// the steps whose text is listed.
func replay(t *testing.T, r *Reporter, feature *models.Feature, failing ...string) {
	t.Helper()
	failed := make(map[string]bool)
	for _, text := range failing {
		failed[text] = true
	}

	runScenario := func(background *models.Background, scenario *models.Scenario) {
		require.NoError(t, r.Handle(ScenarioStarted{Scenario: scenario}))
		steps := make([]*models.Step, 0)
		if background != nil {
			steps = append(steps, background.Steps...)
		}
		steps = append(steps, scenario.Steps...)

		broken := false
		for _, s := range steps {
			event := ScenarioStep{Step: s, Status: StepPassed}
			switch {
			case broken:
				event.Status = StepSkipped
			case failed[s.Text]:
				event.Status = StepFailed
				event.Err = errors.New("step failed")
				broken = true
			}
			require.NoError(t, r.Handle(event))
		}
	}

	require.NoError(t, r.Handle(FeatureStarted{Feature: feature}))
	for _, scenario := range feature.Scenarios {
		runScenario(feature.Background, scenario)
	}
	for _, rule := range feature.Rules {
		require.NoError(t, r.Handle(RuleEntered{Rule: rule}))
		for _, scenario := range rule.Scenarios {
			runScenario(feature.Background, scenario)
		}
	}
}

func TestReporter(t *testing.T) {
	t.Run("should write report on stream finished", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sink := NewMockSink(ctrl)
		var written ReportModel
		sink.EXPECT().Write(gomock.Any()).DoAndReturn(func(model ReportModel) error {
			written = model
			return nil
		})

		feature, err := gherkin_parser.ReadLive("testdata/checkout.feature")
		require.NoError(t, err)

		r := New(WithSink(sink))
		replay(t, r, feature, "a cart with 2 items")
		require.NoError(t, r.Handle(StreamFinished{}))

		require.Len(t, written.Features, 1)
		report := written.Features[0]
		require.Equal(t, "Checkout", report.Name)
		require.Equal(t, "Checkout.html", report.Filename)
		require.Equal(t, FeatureStats{Scenarios: 4, Rules: 1, Steps: 10, Errors: 1, Skipped: 1}, report.Stats)

		require.Len(t, report.Scenarios, 2)
		outline := report.Scenarios[1].Outline
		require.NotNil(t, outline)
		rows := outline.Examples[0].Rows
		require.Len(t, rows, 2)
		require.Equal(t, models.Passed, rows[0].State)
		require.Equal(t, models.Failed, rows[1].State)
		require.Equal(t, models.NotRun, rows[1].Steps[1].Outcome)

		ruleOutline := report.Rules[0].Scenarios[0].Outline
		require.NotNil(t, ruleOutline)
		require.Equal(t, []string{"XMAS"}, ruleOutline.Examples[0].Rows[0].Cells)
		require.Equal(t, models.Passed, ruleOutline.Examples[0].Rows[0].State)
	})

	t.Run("should count every event once", func(t *testing.T) {
		feature, err := gherkin_parser.ReadLive("testdata/checkout.feature")
		require.NoError(t, err)

		r := New()
		replay(t, r, feature, "a cart with 2 items")

		require.Equal(t, Counters{Scenarios: 4, Rules: 1, Steps: 14, Errors: 1, Skipped: 2}, r.Counters())
	})

	t.Run("should keep one feature for repeated content", func(t *testing.T) {
		r := New()

		require.NoError(t, r.Handle(FeatureStarted{Feature: namedFeature("Apple")}))
		require.NoError(t, r.Handle(FeatureStarted{Feature: namedFeature("Apple")}))

		model, err := r.Report()
		require.NoError(t, err)
		require.Equal(t, 1, r.Features())
		require.Len(t, model.Index.Entries, 1)
	})

	t.Run("should reject events after stream finished", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Handle(StreamFinished{}))

		err := r.Handle(FeatureStarted{Feature: namedFeature("Apple")})

		require.ErrorIs(t, err, ErrStreamFinished)
	})

	t.Run("should still write successful features when one fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sink := NewMockSink(ctrl)
		loader := NewMockTemplateLoader(ctrl)
		loader.EXPECT().Load("outline.feature").Return(outlineTemplate(), nil)
		sink.EXPECT().Write(gomock.Any()).DoAndReturn(func(model ReportModel) error {
			require.Len(t, model.Features, 1)
			require.Len(t, model.Failures, 1)
			return nil
		})

		r := New(WithSink(sink), WithTemplateLoader(loader))
		require.NoError(t, r.Handle(FeatureStarted{Feature: outlineLive(expansion("1", 12))}))
		require.NoError(t, r.Handle(FeatureStarted{Feature: namedFeature("Apple")}))

		err := r.Handle(StreamFinished{})

		var recErr *ReconciliationError
		require.ErrorAs(t, err, &recErr)
	})

	t.Run("should leave out a feature whose examples have a description", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sink := NewMockSink(ctrl)
		var written ReportModel
		sink.EXPECT().Write(gomock.Any()).DoAndReturn(func(model ReportModel) error {
			written = model
			return nil
		})

		feature, err := gherkin_parser.ReadLive("testdata/described_examples.feature")
		require.NoError(t, err)

		r := New(WithSink(sink))
		replay(t, r, feature)
		err = r.Handle(StreamFinished{})

		var recErr *ReconciliationError
		require.ErrorAs(t, err, &recErr)
		require.Equal(t, MissingRow, recErr.Kind)
		require.Equal(t, "amounts", recErr.Examples)
		require.Equal(t, 0, recErr.Row)
		require.Equal(t, 11, recErr.Line)

		require.Empty(t, written.Features)
		require.Len(t, written.Failures, 1)
		require.Equal(t, "Described examples", written.Failures[0].Name)
		require.Equal(t, "testdata/described_examples.feature", written.Failures[0].Path)
	})

	t.Run("should discard logs without a logger", func(t *testing.T) {
		r := New()
		require.IsType(t, &NoopLogger{}, r.logger)
		require.IsType(t, &NoopLogger{}, r.store.logger)
	})

	t.Run("should return sink error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sink := NewMockSink(ctrl)
		sink.EXPECT().Write(gomock.Any()).Return(errors.New("disk full"))

		r := New(WithSink(sink))
		require.NoError(t, r.Handle(FeatureStarted{Feature: namedFeature("Apple")}))

		err := r.Handle(StreamFinished{})

		require.ErrorContains(t, err, "disk full")
	})

	t.Run("should reject empty payloads", func(t *testing.T) {
		r := New()

		require.Error(t, r.Handle(FeatureStarted{}))
		require.Error(t, r.Handle(ScenarioStep{}))
	})
}
