package gherkin_parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/denizgursoy/gherkin-report/pkg/models"
)

// FileLoader re-parses template trees from the file system.
type FileLoader struct {
	// Root is joined with relative feature paths. Empty means the working
	// directory.
	Root string
}

// Load reads the feature file at path and parses its template tree.
func (l FileLoader) Load(path string) (*models.Feature, error) {
	fullPath := path
	if l.Root != "" && !filepath.IsAbs(path) {
		fullPath = filepath.Join(l.Root, path)
	}
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", fullPath, err)
	}
	return ParseTemplate(path, bytes.NewReader(content))
}

// MemoryLoader parses template trees from feature sources registered in
// memory, for runners that hand over file content along with the document.
type MemoryLoader struct {
	mu      sync.RWMutex
	sources map[string][]byte
}

func NewMemoryLoader() *MemoryLoader {
	return &MemoryLoader{
		sources: make(map[string][]byte),
	}
}

// Put registers the source text of the feature at path.
func (l *MemoryLoader) Put(path string, content []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cp := make([]byte, len(content))
	copy(cp, content)
	l.sources[path] = cp
}

// Load parses the template tree of a previously registered source.
func (l *MemoryLoader) Load(path string) (*models.Feature, error) {
	l.mu.RLock()
	content, ok := l.sources[path]
	l.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no source registered for %s: %w", path, os.ErrNotExist)
	}
	return ParseTemplate(path, bytes.NewReader(content))
}
