package plugin

import (
	"fmt"

	"github.com/justyntemme/lv2go/pkg/log"
	"github.com/justyntemme/lv2go/pkg/urid"
)

// Feature is a host capability offered at instantiation.
type Feature struct {
	URI  string
	Data any
}

// Features is the list of host features given to a factory.
type Features []Feature

// Lookup returns the data of the first feature with the given URI.
func (fs Features) Lookup(uri string) (any, bool) {
	for _, f := range fs {
		if f.URI == uri {
			return f.Data, true
		}
	}
	return nil, false
}

// Has reports whether the feature is present.
func (fs Features) Has(uri string) bool {
	_, ok := fs.Lookup(uri)
	return ok
}

// Require checks that every listed feature is present.
func (fs Features) Require(uris ...string) error {
	for _, uri := range uris {
		if !fs.Has(uri) {
			return fmt.Errorf("%w: %s", ErrMissingFeature, uri)
		}
	}
	return nil
}

// Mapper returns the urid#map feature.
func (fs Features) Mapper() (urid.Mapper, error) {
	data, ok := fs.Lookup(urid.MapURI)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingFeature, urid.MapURI)
	}
	m, ok := data.(urid.Mapper)
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: %s has data of type %T", ErrMissingFeature, urid.MapURI, data)
	}
	return m, nil
}

// Unmapper returns the optional urid#unmap feature.
func (fs Features) Unmapper() (urid.Unmapper, bool) {
	data, ok := fs.Lookup(urid.UnmapURI)
	if !ok {
		return nil, false
	}
	u, ok := data.(urid.Unmapper)
	return u, ok
}

// Logger builds a logger on the optional log#log feature. Without it the
// logger prints to stderr.
func (fs Features) Logger(m urid.Mapper) (*log.Logger, error) {
	var p log.Printer
	if data, ok := fs.Lookup(log.LogURI); ok {
		p, _ = data.(log.Printer)
	}
	return log.New(p, m)
}

// HostFeatures returns the features a host offers when it owns m and
// prints through p. p may be nil.
func HostFeatures(m *urid.Map, p log.Printer) Features {
	fs := Features{
		{URI: urid.MapURI, Data: urid.Mapper(m)},
		{URI: urid.UnmapURI, Data: urid.Unmapper(m)},
	}
	if p != nil {
		fs = append(fs, Feature{URI: log.LogURI, Data: p})
	}
	return fs
}
