package gherkin_parser

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/gherkin-report/pkg/models"
)

const (
	FeatureExtension = ".feature"
)

func SearchFeatureFilesIn(directories []string) ([]string, error) {
	featureFiles := make([]string, 0)

	for _, directory := range directories {
		err := filepath.Walk(directory, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				if strings.HasSuffix(info.Name(), FeatureExtension) {
					featureFiles = append(featureFiles, path)
				}
			}
			return nil
		})

		if err != nil {
			return nil, fmt.Errorf("could not search feature files in %s: %w", directory, err)
		}
	}
	return featureFiles, nil
}

func ParseGherkinFile(reader io.Reader) (*messages.GherkinDocument, error) {
	id := (&messages.Incrementing{}).NewId
	document, err := gherkin.ParseGherkinDocument(reader, id)
	if err != nil {
		return nil, err
	}
	return document, nil
}

// ParseTemplate parses feature text into the template tree: outlines keep
// their Examples tables un-expanded.
func ParseTemplate(path string, reader io.Reader) (*models.Feature, error) {
	document, err := ParseGherkinFile(reader)
	if err != nil {
		return nil, fmt.Errorf("gherkin parse error in file %s: %w", path, err)
	}
	return TemplateFromDocument(path, document)
}

// ParseLive parses feature text into the live tree: every example row of an
// outline becomes its own Scenario.
func ParseLive(path string, reader io.Reader) (*models.Feature, error) {
	document, err := ParseGherkinFile(reader)
	if err != nil {
		return nil, fmt.Errorf("gherkin parse error in file %s: %w", path, err)
	}
	return LiveFromDocument(path, document)
}

// ReadLive reads and parses the feature file at path into the live tree.
func ReadLive(path string) (*models.Feature, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", path, err)
	}
	return ParseLive(path, bytes.NewReader(content))
}
