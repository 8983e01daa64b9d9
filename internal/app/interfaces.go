//go:generate mockgen -source=interfaces.go -destination=interface_mock.go -package=app
package app

import "github.com/denizgursoy/gherkin-report/pkg/reporter"

type (
	// ReportSink writes the report model and tells where the index page went.
	ReportSink interface {
		reporter.Sink
		IndexPath() string
	}
)
