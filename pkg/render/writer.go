package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/denizgursoy/gherkin-report/pkg/reporter"
)

const indexFilename = "index.html"

// Writer renders a report model to files. It implements reporter.Sink.
type Writer struct {
	renderer  *Renderer
	outputDir string
	title     string
	runID     string
	files     []string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithOutputDir nests every written file under dir.
func WithOutputDir(dir string) WriterOption {
	return func(w *Writer) {
		w.outputDir = dir
	}
}

// WithTitle sets the title shown on every page.
func WithTitle(title string) WriterOption {
	return func(w *Writer) {
		w.title = title
	}
}

// WithRunID stamps pages with a fixed run id instead of a generated one.
func WithRunID(id string) WriterOption {
	return func(w *Writer) {
		w.runID = id
	}
}

func NewWriter(opts ...WriterOption) (*Writer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	w := &Writer{
		renderer: renderer,
		title:    DefaultTitle,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.runID == "" {
		w.runID = uuid.NewString()
	}
	return w, nil
}

var _ reporter.Sink = (*Writer)(nil)

// Write renders one page per feature and the index page.
func (w *Writer) Write(model reporter.ReportModel) error {
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
			return fmt.Errorf("could not create report directory %q: %w", w.outputDir, err)
		}
	}

	for _, feature := range model.Features {
		var buf bytes.Buffer
		page := FeaturePage{
			Title:     w.title,
			RunID:     w.runID,
			IndexLink: indexFilename,
			Feature:   feature,
		}
		if err := w.renderer.RenderFeature(&buf, page); err != nil {
			return err
		}
		if err := w.writeFile(feature.Filename, buf.Bytes()); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	page := IndexPage{
		Title:    w.title,
		RunID:    w.runID,
		Index:    model.Index,
		Failures: model.Failures,
	}
	if err := w.renderer.RenderIndex(&buf, page); err != nil {
		return err
	}
	return w.writeFile(indexFilename, buf.Bytes())
}

func (w *Writer) writeFile(name string, content []byte) error {
	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("could not write report file %q: %w", path, err)
	}
	w.files = append(w.files, path)
	return nil
}

// Files returns the paths written so far.
func (w *Writer) Files() []string {
	return w.files
}

// IndexPath returns the path of the index page.
func (w *Writer) IndexPath() string {
	return filepath.Join(w.outputDir, indexFilename)
}

// RunID returns the id stamped on the pages.
func (w *Writer) RunID() string {
	return w.runID
}
