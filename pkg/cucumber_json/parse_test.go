package cucumber_json

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("should decode results file", func(t *testing.T) {
		features, err := ReadFile("testdata/results.json")
		require.NoError(t, err)

		require.Len(t, features, 1)
		feature := features[0]
		require.Equal(t, "testdata/checkout.feature", feature.URI)
		require.Equal(t, "Checkout", feature.Name)
		require.Len(t, feature.Elements, 4)

		failing := feature.Elements[2]
		require.Equal(t, 20, failing.Line)
		require.Equal(t, StatusFailed, failing.Steps[2].Result.Status)
		require.Equal(t, "payment declined", failing.Steps[2].Result.ErrorMessage)
		require.Equal(t, StatusSkipped, failing.Steps[3].Result.Status)
	})

	t.Run("should list every schema violation", func(t *testing.T) {
		_, err := ReadFile("testdata/invalid.json")
		require.Error(t, err)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		require.GreaterOrEqual(t, len(ve.Causes), 2)
		require.Contains(t, err.Error(), "testdata/invalid.json")
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`[{"uri":`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "could not decode results")
	})

	t.Run("should reject a non array document", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`{"uri":"a.feature","name":"A"}`))

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
	})

	t.Run("should accept unknown fields", func(t *testing.T) {
		features, err := Parse(strings.NewReader(`[{"uri":"a.feature","name":"A","comments":[]}]`))
		require.NoError(t, err)
		require.Len(t, features, 1)
	})

	t.Run("should return error for missing file", func(t *testing.T) {
		_, err := ReadFile("testdata/missing.json")
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestGenerateJSONSchema(t *testing.T) {
	data, err := GenerateJSONSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	require.Equal(t, "array", schema["type"])
	require.Equal(t, "Cucumber JSON results", schema["title"])
	require.Contains(t, string(data), "error_message")
}
