package synth

import (
	"github.com/justyntemme/lv2go/pkg/plugin"
	"github.com/justyntemme/lv2go/pkg/urid"
)

// URI identifies the synth plugin.
const URI = "https://github.com/justyntemme/lv2go/plugins/eg-synth"

// ConfigURI is an optional host feature whose data is a Config. Without it
// the synth uses DefaultConfig.
const ConfigURI = URI + "#config"

// Info describes the synth.
var Info = plugin.Info{
	Name:     "Example Sine Synth",
	Version:  "1.0.0",
	Vendor:   "lv2go",
	Category: "InstrumentPlugin",
	Required: []string{urid.MapURI},
}

// Descriptor returns the plugin descriptor for the synth.
func Descriptor() *plugin.Descriptor {
	return plugin.NewDescriptor(URI, Info,
		func(sampleRate float64, bundlePath string, features plugin.Features) (plugin.Plugin[Ports], error) {
			cfg := DefaultConfig()
			if data, ok := features.Lookup(ConfigURI); ok {
				if c, ok := data.(Config); ok {
					cfg = c
				}
			}
			s, err := New(sampleRate, cfg, features)
			if err != nil {
				return nil, err
			}
			return s, nil
		})
}
