package plugin

import (
	"fmt"
	"sync"
)

var (
	registryMu sync.Mutex
	registry   []*Descriptor
	frozen     bool
)

// Register adds a descriptor to the process-wide table. Call it from init:
// the table is frozen by the first Lookup and later registrations panic.
func Register(d *Descriptor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if frozen {
		panic(fmt.Sprintf("plugin: Register(%s) after the descriptor table was read", d.URI))
	}
	for _, existing := range registry {
		if existing.URI == d.URI {
			panic(fmt.Sprintf("plugin: duplicate descriptor %s", d.URI))
		}
	}
	registry = append(registry, d)
}

// Lookup returns the descriptor at index, or nil past the end.
func Lookup(index uint32) *Descriptor {
	registryMu.Lock()
	defer registryMu.Unlock()

	frozen = true
	if index >= uint32(len(registry)) {
		return nil
	}
	return registry[index]
}

// Find returns the descriptor with the given URI, or nil.
func Find(uri string) *Descriptor {
	for i := uint32(0); ; i++ {
		d := Lookup(i)
		if d == nil || d.URI == uri {
			return d
		}
	}
}

// Count returns the number of registered descriptors.
func Count() int {
	registryMu.Lock()
	defer registryMu.Unlock()
	return len(registry)
}
