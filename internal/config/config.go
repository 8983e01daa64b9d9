// Package config loads gherkin-report settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config file is given.
const DefaultFile = ".gherkin-report.yaml"

// Config holds the report settings.
// Settings are merged from the config file and the command line (last wins).
type Config struct {
	// OutputDir is the directory report pages are written to.
	OutputDir string `yaml:"output_dir,omitempty" json:"output_dir,omitempty" jsonschema:"description=Directory the report pages are written to"`

	// Title is shown on every page.
	Title string `yaml:"title,omitempty" json:"title,omitempty" jsonschema:"description=Title shown on every report page"`

	// Tags filters replayed scenarios with a tag expression.
	Tags string `yaml:"tags,omitempty" json:"tags,omitempty" jsonschema:"description=Tag expression selecting the scenarios to report"`

	// FeaturesRoot is the directory feature URIs are resolved against.
	FeaturesRoot string `yaml:"features_root,omitempty" json:"features_root,omitempty" jsonschema:"description=Directory feature file paths are resolved against"`

	// Paths are the feature locations the generated harness runs.
	Paths []string `yaml:"paths,omitempty" json:"paths,omitempty" jsonschema:"description=Feature files or directories run by the generated test harness"`

	NoColor bool `yaml:"no_color,omitempty" json:"no_color,omitempty" jsonschema:"description=Disable colored console output"`
	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty" jsonschema:"description=Log debug messages"`
}

// Load reads the config file at path. An empty path reads DefaultFile, which
// may be absent.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultFile
	}

	file, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a config document, rejecting unknown keys.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MergeConfigs combines multiple configs into one.
// Later configs override earlier ones (last wins).
func MergeConfigs(configs ...*Config) *Config {
	result := &Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if cfg.OutputDir != "" {
			result.OutputDir = cfg.OutputDir
		}
		if cfg.Title != "" {
			result.Title = cfg.Title
		}
		if cfg.Tags != "" {
			result.Tags = cfg.Tags
		}
		if cfg.FeaturesRoot != "" {
			result.FeaturesRoot = cfg.FeaturesRoot
		}
		if len(cfg.Paths) > 0 {
			result.Paths = cfg.Paths
		}
		if cfg.NoColor {
			result.NoColor = true
		}
		if cfg.Verbose {
			result.Verbose = true
		}
	}

	return result
}

// Write encodes the config as YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	return enc.Close()
}

// GenerateJSONSchema produces a JSON Schema document for the config file.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)

	s := r.Reflect(&Config{})
	s.ID = "https://github.com/denizgursoy/gherkin-report/schemas/config.json"
	s.Title = "gherkin-report config"
	s.Description = "Schema for " + DefaultFile

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
