//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=reporter
package reporter

import "github.com/denizgursoy/gherkin-report/pkg/models"

type (
	// Sink consumes the finished report model.
	Sink interface {
		Write(model ReportModel) error
	}

	// TemplateLoader re-parses the template tree of the feature at path.
	TemplateLoader interface {
		Load(path string) (*models.Feature, error)
	}
)
