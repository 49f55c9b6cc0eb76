package plugin

import (
	"fmt"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/log"
	"github.com/justyntemme/lv2go/pkg/port"
)

// Instance is a running plugin as seen by a host. Every method is a no-op
// after Cleanup.
type Instance interface {
	ConnectPort(index uint32, data unsafe.Pointer)
	Activate()
	Run(sampleCount uint32)
	Deactivate()
	Cleanup()
	Ports() []port.Descriptor
}

// Descriptor identifies a plugin type and creates instances of it.
type Descriptor struct {
	URI  string
	Info Info

	ports       []port.Descriptor
	instantiate func(sampleRate float64, bundlePath string, features Features) (Instance, error)
}

// NewDescriptor creates a descriptor for a plugin with ports struct P. It
// panics if P is not a valid port declaration.
func NewDescriptor[P any](uri string, info Info, factory Factory[P]) *Descriptor {
	schema := port.MustTable[P]()

	return &Descriptor{
		URI:   uri,
		Info:  info,
		ports: schema.Descriptors(),
		instantiate: func(sampleRate float64, bundlePath string, features Features) (Instance, error) {
			table, err := port.NewTable[P]()
			if err != nil {
				return nil, err
			}
			p, err := factory(sampleRate, bundlePath, features)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, fmt.Errorf("factory returned no plugin")
			}

			inst := &instance[P]{uri: uri, table: table, plugin: p}
			// Logging is best effort; a host without urid#map already
			// failed in the factory of any plugin that needs it.
			if m, err := features.Mapper(); err == nil {
				inst.logger, _ = features.Logger(m)
			}
			return inst, nil
		},
	}
}

// Ports returns the declared ports.
func (d *Descriptor) Ports() []port.Descriptor {
	out := make([]port.Descriptor, len(d.ports))
	copy(out, d.ports)
	return out
}

// Instantiate creates an instance. Any failure is reported wrapped in
// ErrInstantiate and leaves nothing behind.
func (d *Descriptor) Instantiate(sampleRate float64, bundlePath string, features Features) (inst Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, fmt.Errorf("%w: %s: panic: %v", ErrInstantiate, d.URI, r)
		}
	}()

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid sample rate %v", ErrInstantiate, d.URI, sampleRate)
	}
	inst, err = d.instantiate(sampleRate, bundlePath, features)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInstantiate, d.URI, err)
	}
	return inst, nil
}

type instance[P any] struct {
	uri    string
	table  *port.Table[P]
	plugin Plugin[P]
	logger *log.Logger
	active bool
	closed bool
}

func (i *instance[P]) ConnectPort(index uint32, data unsafe.Pointer) {
	if i.closed {
		return
	}
	i.table.Connect(index, data)
}

func (i *instance[P]) Activate() {
	if i.closed || i.active {
		return
	}
	defer recoverPanic(i.logger, "activate")
	i.active = true
	i.plugin.Activate()
}

func (i *instance[P]) Run(sampleCount uint32) {
	if i.closed {
		return
	}
	defer recoverPanic(i.logger, "run")
	i.plugin.Run(i.table.Bind(int(sampleCount)), int(sampleCount))
}

func (i *instance[P]) Deactivate() {
	if i.closed || !i.active {
		return
	}
	defer recoverPanic(i.logger, "deactivate")
	i.active = false
	i.plugin.Deactivate()
}

func (i *instance[P]) Cleanup() {
	if i.closed {
		return
	}
	i.Deactivate()
	i.closed = true

	defer recoverPanic(i.logger, "cleanup")
	if c, ok := i.plugin.(Cleaner); ok {
		c.Cleanup()
	}
}

func (i *instance[P]) Ports() []port.Descriptor {
	return i.table.Descriptors()
}

// recoverPanic keeps a plugin panic from unwinding into the host.
func recoverPanic(logger *log.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("panic in %s: %v", operation, r)
	}
}
