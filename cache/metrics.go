package cache

// Metrics receives cache lifecycle events.
type Metrics interface {
	// Hit is called when Get is answered from memory.
	Hit()

	// Miss is called when Get falls back to a point query.
	Miss()

	// NotFound is called when a point query reports the parameter absent.
	NotFound()

	// Loaded is called after a successful bulk load with the page and
	// parameter counts.
	Loaded(pages, parameters int)
}

// NoopMetrics discards every event.
type NoopMetrics struct{}

func (NoopMetrics) Hit()            {}
func (NoopMetrics) Miss()           {}
func (NoopMetrics) NotFound()       {}
func (NoopMetrics) Loaded(int, int) {}
