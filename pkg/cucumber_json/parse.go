package cucumber_json

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "cucumber-results.json"

// GenerateJSONSchema produces the JSON Schema of a results file from the Go
// types.
func GenerateJSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{AllowAdditionalProperties: true, Anonymous: true}

	s := r.Reflect(&[]Feature{})
	s.Title = "Cucumber JSON results"
	s.Description = "Results file written by godog's cucumber formatter"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

var compiledSchema = sync.OnceValues(func() (*sjsonschema.Schema, error) {
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return nil, err
	}
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
})

// ValidationError lists every schema violation of a results file.
type ValidationError struct {
	Causes []string
}

func (e *ValidationError) Error() string {
	return "invalid cucumber results: " + strings.Join(e.Causes, "; ")
}

// Parse validates and decodes a results file.
func Parse(reader io.Reader) ([]Feature, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("could not read results: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not decode results: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var features []Feature
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, fmt.Errorf("could not decode results: %w", err)
	}
	return features, nil
}

// ReadFile validates and decodes the results file at path.
func ReadFile(path string) ([]Feature, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", path, err)
	}
	defer file.Close()

	features, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return features, nil
}

func validate(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	err = sch.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*sjsonschema.ValidationError)
	if !ok {
		return err
	}
	causes := make([]string, 0)
	for _, cause := range flattenValidationErrors(ve) {
		causes = append(causes, fmt.Sprintf("/%s: %v", strings.Join(cause.InstanceLocation, "/"), cause.ErrorKind))
	}
	return &ValidationError{Causes: causes}
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}
