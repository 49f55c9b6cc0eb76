// Package urid maps URIs to small integer identifiers.
//
// Plugins resolve every URI they care about once, at instantiation, and
// compare plain integers on the audio thread afterwards.
package urid

import (
	"errors"
	"fmt"
	"sync"
)

// URI is the extension URI.
const URI = "http://lv2plug.in/ns/ext/urid"

// Feature URIs
const (
	MapURI   = "http://lv2plug.in/ns/ext/urid#map"
	UnmapURI = "http://lv2plug.in/ns/ext/urid#unmap"
)

// URID is a mapped URI. Zero means "not mapped".
type URID uint32

// ErrUnmapped is returned when a host mapper resolves a URI to zero.
var ErrUnmapped = errors.New("urid: uri not mapped")

// Mapper resolves a URI to its identifier.
type Mapper interface {
	Map(uri string) URID
}

// Unmapper resolves an identifier back to its URI.
type Unmapper interface {
	Unmap(id URID) (string, bool)
}

// MapperFunc adapts a function to the Mapper interface.
type MapperFunc func(uri string) URID

// Map implements Mapper.
func (f MapperFunc) Map(uri string) URID {
	return f(uri)
}

// MapAll resolves uris in order and fails on the first one the mapper
// does not know.
func MapAll(m Mapper, uris ...string) ([]URID, error) {
	ids := make([]URID, len(uris))
	for i, uri := range uris {
		id := m.Map(uri)
		if id == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnmapped, uri)
		}
		ids[i] = id
	}
	return ids, nil
}

// Map is a host-side registry. Identifiers are dense, start at 1 and are
// stable for the lifetime of the Map. It is safe for concurrent use.
type Map struct {
	mu   sync.RWMutex
	ids  map[string]URID
	uris []string
}

// NewMap creates an empty registry.
func NewMap() *Map {
	return &Map{
		ids:  make(map[string]URID),
		uris: []string{""},
	}
}

// Map returns the identifier for uri, assigning the next free one if the
// URI has not been seen. The empty string never maps.
func (m *Map) Map(uri string) URID {
	if uri == "" {
		return 0
	}

	m.mu.RLock()
	id, ok := m.ids[uri]
	m.mu.RUnlock()
	if ok {
		return id
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.ids[uri]; ok {
		return id
	}
	id = URID(len(m.uris))
	m.ids[uri] = id
	m.uris = append(m.uris, uri)
	return id
}

// Unmap implements Unmapper.
func (m *Map) Unmap(id URID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id == 0 || int(id) >= len(m.uris) {
		return "", false
	}
	return m.uris[id], true
}

// Len returns the number of mapped URIs.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.uris) - 1
}
