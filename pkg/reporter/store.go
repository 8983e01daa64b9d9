package reporter

import (
	"github.com/denizgursoy/gherkin-report/pkg/identity"
	"github.com/denizgursoy/gherkin-report/pkg/models"
)

// document pairs a live feature with its template tree.
type document struct {
	key      identity.Key
	live     *models.Feature
	template *models.Feature
	// err is set when the template could not be loaded.
	err error
}

// DocumentStore keeps every distinct feature seen in insertion order.
type DocumentStore struct {
	loader    TemplateLoader
	logger    Logger
	documents []*document
	index     map[identity.Key]int
}

func NewDocumentStore(loader TemplateLoader, logger Logger) *DocumentStore {
	if logger == nil {
		logger = &NoopLogger{}
	}
	return &DocumentStore{
		loader: loader,
		logger: logger,
		index:  make(map[identity.Key]int),
	}
}

// Add stores the feature unless a feature with the same content is already
// present. The template tree is loaded once, on first sight, and only for
// features with outlines. Reports whether the feature was new.
func (s *DocumentStore) Add(feature *models.Feature) bool {
	key := identity.FeatureKey(feature)
	if _, ok := s.index[key]; ok {
		s.logger.Debug("feature already stored", "feature", feature.Name, "path", feature.Path)
		return false
	}

	doc := &document{key: key, live: feature}
	if feature.HasOutlines() {
		s.loadTemplate(doc)
	}

	s.index[key] = len(s.documents)
	s.documents = append(s.documents, doc)
	s.logger.Debug("feature stored", "feature", feature.Name, "path", feature.Path, "key", key.String())
	return true
}

func (s *DocumentStore) loadTemplate(doc *document) {
	path := doc.live.Path
	if s.loader == nil {
		doc.err = &StructuralError{Path: path, Err: errNoLoader}
		return
	}
	template, err := s.loader.Load(path)
	if err != nil {
		s.logger.Warn("could not load template", "path", path, "error", err)
		doc.err = &StructuralError{Path: path, Err: err}
		return
	}
	doc.template = template
}

// Len returns the number of distinct features.
func (s *DocumentStore) Len() int {
	return len(s.documents)
}

// Features returns the distinct live features in insertion order.
func (s *DocumentStore) Features() []*models.Feature {
	features := make([]*models.Feature, len(s.documents))
	for i, doc := range s.documents {
		features[i] = doc.live
	}
	return features
}
