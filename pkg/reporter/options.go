package reporter

// Option configures a Reporter.
type Option func(*Reporter)

// WithSink sets the consumer of the finished report model.
func WithSink(sink Sink) Option {
	return func(r *Reporter) {
		r.sink = sink
	}
}

// WithTemplateLoader sets how template trees are re-parsed.
func WithTemplateLoader(loader TemplateLoader) Option {
	return func(r *Reporter) {
		r.loader = loader
	}
}

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(r *Reporter) {
		r.logger = logger
	}
}
