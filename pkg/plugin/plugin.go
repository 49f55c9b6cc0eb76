// Package plugin describes LV2 plugins to a host: descriptors, the
// instance lifecycle, host features and the process-wide descriptor table.
package plugin

import "errors"

var (
	// ErrMissingFeature means a required host feature was not supplied.
	ErrMissingFeature = errors.New("plugin: missing required feature")
	// ErrInstantiate wraps every instantiation failure.
	ErrInstantiate = errors.New("plugin: instantiation failed")
)

// Info contains plugin metadata
type Info struct {
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // LV2 class (e.g., "InstrumentPlugin")

	// Required lists the feature URIs instantiation cannot do without.
	Required []string
}

// Plugin is implemented by plugin authors. P is the ports struct.
//
// Run is called on the audio thread and must not allocate, block or log.
type Plugin[P any] interface {
	// Activate is called before the first Run and after every Deactivate
	// that is followed by more processing.
	Activate()

	// Run processes one block of sampleCount frames.
	Run(ports *P, sampleCount int)

	// Deactivate is called when processing stops.
	Deactivate()
}

// Cleaner is implemented by plugins that release resources on teardown.
type Cleaner interface {
	Cleanup()
}

// Factory creates a plugin instance. It runs at setup and may allocate.
// A returned error means instantiation failed.
type Factory[P any] func(sampleRate float64, bundlePath string, features Features) (Plugin[P], error)
