// Command lv2render plays a score through an LV2 plugin offline and writes
// the result as a WAV file.
//
//	lv2render -config song.toml -o song.wav
//	lv2render -midi song.mid -o song.wav
//	lv2render -ports
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/justyntemme/lv2go/pkg/dsp"
	"github.com/justyntemme/lv2go/pkg/dsp/gain"
	"github.com/justyntemme/lv2go/pkg/log"
	"github.com/justyntemme/lv2go/pkg/midi"
	"github.com/justyntemme/lv2go/pkg/plugin"
	"github.com/justyntemme/lv2go/pkg/synth"
	"github.com/justyntemme/lv2go/pkg/urid"
)

func init() {
	plugin.Register(synth.Descriptor())
}

func main() {
	configPath := flag.String("config", "", "TOML render settings and inline score")
	midiPath := flag.String("midi", "", "Standard MIDI File to play instead of the inline score")
	outPath := flag.String("o", "out.wav", "Output WAV file")
	listPorts := flag.Bool("ports", false, "Print the plugin's ports and exit")
	verbose := flag.Bool("v", false, "Print plugin trace messages")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lv2render [options]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a score through an LV2 plugin to a WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := log.LevelNote
	if *verbose {
		level = log.LevelTrace
	}

	if err := run(level, *configPath, *midiPath, *outPath, *listPorts); err != nil {
		fmt.Fprintf(os.Stderr, "lv2render: %v\n", err)
		os.Exit(1)
	}
}

// newPrinter returns the host log facility. It is the only filter on plugin
// log entries, so level decides whether trace messages reach w.
func newPrinter(w io.Writer, m urid.Mapper, level log.Level) (*log.WriterPrinter, error) {
	classes, err := log.MapClasses(m)
	if err != nil {
		return nil, err
	}
	printer := log.NewWriterPrinter(w, "lv2render", log.FlagLevel|log.FlagPrefix, classes)
	printer.SetLevel(level)
	return printer, nil
}

func run(level log.Level, configPath, midiPath, outPath string, listPorts bool) error {
	cfg, warnings, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	desc, err := FindDescriptor(cfg.Plugin)
	if err != nil {
		return err
	}
	if listPorts {
		return printPorts(desc)
	}

	m := urid.NewMap()
	printer, err := newPrinter(os.Stderr, m, level)
	if err != nil {
		return err
	}

	host, err := NewHost(desc, cfg, m, printer)
	if err != nil {
		return err
	}
	logger := host.Logger()
	for _, w := range warnings {
		logger.Warning("%s", w)
	}

	var score *midi.EventQueue
	if midiPath != "" {
		f, err := os.Open(midiPath)
		if err != nil {
			return err
		}
		score, err = ReadMIDI(f, cfg.SampleRate)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", midiPath, err)
		}
		if len(cfg.Notes) > 0 {
			logger.Warning("-midi given, ignoring %d inline notes", len(cfg.Notes))
		}
	} else {
		score = NotesToQueue(cfg.Notes, cfg.SampleRate)
	}
	if score.IsEmpty() {
		logger.Warning("score is empty, rendering %v s of silence", cfg.Tail)
	}

	samples, err := host.Render(score)
	if err != nil {
		return err
	}
	Master(samples, cfg)
	logger.Note("peak %.1f dBFS, rms %.1f dBFS",
		gain.LinearToDb(float64(dsp.Peak(samples))), gain.LinearToDb(float64(dsp.RMS(samples))))

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := WriteWAV(out, samples, int(cfg.SampleRate)); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	logger.Note("wrote %s (%d frames)", outPath, len(samples))
	return nil
}

func printPorts(desc *plugin.Descriptor) error {
	fmt.Printf("%s (%s %s by %s)\n\n", desc.URI, desc.Info.Name, desc.Info.Version, desc.Info.Vendor)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tSYMBOL\tDIRECTION\tKIND")
	for _, p := range desc.Ports() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.Index, p.Symbol, p.Direction, p.Kind)
	}
	return w.Flush()
}
