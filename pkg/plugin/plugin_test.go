package plugin

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/log"
	"github.com/justyntemme/lv2go/pkg/port"
	"github.com/justyntemme/lv2go/pkg/urid"
)

type gainPorts struct {
	Gain port.InputControl `lv2:"0,gain"`
	In   port.InputAudio   `lv2:"1,in"`
	Out  port.OutputAudio  `lv2:"2,out"`
}

type gain struct {
	calls    []string
	panicRun bool
}

func (g *gain) Activate()   { g.calls = append(g.calls, "activate") }
func (g *gain) Deactivate() { g.calls = append(g.calls, "deactivate") }
func (g *gain) Cleanup()    { g.calls = append(g.calls, "cleanup") }

func (g *gain) Run(p *gainPorts, n int) {
	if g.panicRun {
		panic("boom")
	}
	in, out := p.In.Samples(), p.Out.Samples()
	for i := 0; i < n; i++ {
		out[i] = in[i] * p.Gain.Value()
	}
}

const gainURI = "urn:lv2go:test:gain"

func newGainDescriptor(g *gain) *Descriptor {
	return NewDescriptor(gainURI, Info{Name: "Gain"},
		func(sampleRate float64, bundlePath string, features Features) (Plugin[gainPorts], error) {
			if _, err := features.Mapper(); err != nil {
				return nil, err
			}
			return g, nil
		})
}

func TestInstanceLifecycle(t *testing.T) {
	g := &gain{}
	d := newGainDescriptor(g)
	m := urid.NewMap()

	inst, err := d.Instantiate(48000, "/bundles/gain.lv2", HostFeatures(m, nil))
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}

	level := float32(0.5)
	in := []float32{1, 2, 3, 4}
	out := make([]float32, 4)
	inst.ConnectPort(0, unsafe.Pointer(&level))
	inst.ConnectPort(1, unsafe.Pointer(&in[0]))
	inst.ConnectPort(2, unsafe.Pointer(&out[0]))
	inst.ConnectPort(7, unsafe.Pointer(&level)) // ignored

	inst.Activate()
	inst.Activate()
	inst.Run(4)
	inst.Deactivate()

	want := []float32{0.5, 1, 1.5, 2}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	inst.Cleanup()
	inst.Cleanup()
	inst.Run(4)
	inst.Activate()

	calls := strings.Join(g.calls, ",")
	if calls != "activate,deactivate,cleanup" {
		t.Errorf("Unexpected call sequence %q", calls)
	}
}

func TestCleanupDeactivates(t *testing.T) {
	g := &gain{}
	inst, err := newGainDescriptor(g).Instantiate(44100, "", HostFeatures(urid.NewMap(), nil))
	if err != nil {
		t.Fatal(err)
	}
	inst.Activate()
	inst.Cleanup()
	if strings.Join(g.calls, ",") != "activate,deactivate,cleanup" {
		t.Errorf("Unexpected call sequence %v", g.calls)
	}
}

func TestInstantiateFailures(t *testing.T) {
	d := newGainDescriptor(&gain{})

	t.Run("MissingFeature", func(t *testing.T) {
		_, err := d.Instantiate(48000, "", nil)
		if !errors.Is(err, ErrInstantiate) || !errors.Is(err, ErrMissingFeature) {
			t.Errorf("Expected ErrInstantiate wrapping ErrMissingFeature, got %v", err)
		}
	})

	t.Run("WrongFeatureData", func(t *testing.T) {
		_, err := d.Instantiate(48000, "", Features{{URI: urid.MapURI, Data: 42}})
		if !errors.Is(err, ErrMissingFeature) {
			t.Errorf("Expected ErrMissingFeature, got %v", err)
		}
	})

	t.Run("BadSampleRate", func(t *testing.T) {
		if _, err := d.Instantiate(0, "", HostFeatures(urid.NewMap(), nil)); !errors.Is(err, ErrInstantiate) {
			t.Errorf("Expected ErrInstantiate, got %v", err)
		}
	})

	t.Run("FactoryPanics", func(t *testing.T) {
		bad := NewDescriptor("urn:lv2go:test:bad", Info{},
			func(float64, string, Features) (Plugin[gainPorts], error) {
				panic("factory")
			})
		if _, err := bad.Instantiate(48000, "", nil); !errors.Is(err, ErrInstantiate) {
			t.Errorf("Expected ErrInstantiate, got %v", err)
		}
	})
}

func TestRunRecoversPanic(t *testing.T) {
	m := urid.NewMap()
	classes, _ := log.MapClasses(m)
	var buf bytes.Buffer
	printer := log.NewWriterPrinter(&buf, "", log.FlagLevel, classes)

	g := &gain{panicRun: true}
	inst, err := newGainDescriptor(g).Instantiate(48000, "", HostFeatures(m, printer))
	if err != nil {
		t.Fatal(err)
	}
	inst.Activate()
	inst.Run(16)

	if !strings.Contains(buf.String(), "[ERROR] panic in run: boom") {
		t.Errorf("Expected the panic to be logged, got %q", buf.String())
	}
}

func TestDescriptorPorts(t *testing.T) {
	d := newGainDescriptor(&gain{})
	ports := d.Ports()
	if len(ports) != 3 {
		t.Fatalf("Expected 3 ports, got %d", len(ports))
	}
	if ports[2].Symbol != "out" || ports[2].Direction != port.Output || ports[2].Kind != port.Audio {
		t.Errorf("Unexpected port %+v", ports[2])
	}
}

func TestFeatures(t *testing.T) {
	m := urid.NewMap()
	fs := HostFeatures(m, nil)

	if err := fs.Require(urid.MapURI, urid.UnmapURI); err != nil {
		t.Errorf("Require failed: %v", err)
	}
	if err := fs.Require(log.LogURI); !errors.Is(err, ErrMissingFeature) {
		t.Errorf("Expected ErrMissingFeature, got %v", err)
	}

	u, ok := fs.Unmapper()
	if !ok {
		t.Fatal("Expected unmap feature")
	}
	id := m.Map("urn:x")
	if s, ok := u.Unmap(id); !ok || s != "urn:x" {
		t.Errorf("Unmap(%d) = %q, %v", id, s, ok)
	}

	logger, err := fs.Logger(m)
	if err != nil || logger == nil {
		t.Errorf("Logger without log feature should fall back, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	resetRegistry := func() {
		registryMu.Lock()
		registry, frozen = nil, false
		registryMu.Unlock()
	}
	resetRegistry()
	defer resetRegistry()

	a := newGainDescriptor(&gain{})
	b := NewDescriptor("urn:lv2go:test:other", Info{}, func(float64, string, Features) (Plugin[gainPorts], error) {
		return &gain{}, nil
	})
	Register(a)
	Register(b)

	t.Run("Duplicate", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic on duplicate URI")
			}
		}()
		Register(newGainDescriptor(&gain{}))
	})

	if Count() != 2 {
		t.Errorf("Expected 2 descriptors, got %d", Count())
	}
	if Lookup(0) != a || Lookup(1) != b || Lookup(2) != nil {
		t.Error("Lookup returned unexpected descriptors")
	}
	if Find("urn:lv2go:test:other") != b || Find("urn:missing") != nil {
		t.Error("Find returned unexpected descriptors")
	}

	t.Run("FrozenAfterLookup", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic on late registration")
			}
		}()
		Register(NewDescriptor("urn:lv2go:test:late", Info{}, func(float64, string, Features) (Plugin[gainPorts], error) {
			return &gain{}, nil
		}))
	})
}
