package plugin

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/justyntemme/lv2go/pkg/port"
)

const prefixes = `@prefix atom: <http://lv2plug.in/ns/ext/atom#> .
@prefix doap: <http://usefulinc.com/ns/doap#> .
@prefix lv2:  <http://lv2plug.in/ns/lv2core#> .
@prefix midi: <http://lv2plug.in/ns/ext/midi#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
`

var manifestTemplate = template.Must(template.New("manifest").Parse(prefixes + `{{range .Plugins}}
<{{.URI}}>
	a lv2:Plugin ;
	lv2:binary <{{$.Binary}}> ;
	rdfs:seeAlso <{{.Data}}> .
{{end}}`))

var pluginTemplate = template.Must(template.New("plugin").Funcs(template.FuncMap{
	"classes": portClasses,
	"name":    portName,
	"quote":   quote,
}).Parse(prefixes + `
<{{.URI}}>
	a lv2:Plugin{{with .Info.Category}}, lv2:{{.}}{{end}} ;
	doap:name {{quote .Info.Name}} ;
{{- range .Info.Required}}
	lv2:requiredFeature <{{.}}> ;
{{- end}}
	lv2:optionalFeature lv2:hardRTCapable
{{- with .Ports}} ;
	lv2:port {{range $i, $p := .}}{{if $i}} , {{end}}[
		a {{classes $p}} ;
{{- if eq $p.Kind.String "atom"}}
		atom:bufferType atom:Sequence ;
		atom:supports midi:MidiEvent ;
{{- end}}
		lv2:index {{$p.Index}} ;
		lv2:symbol {{quote $p.Symbol}} ;
		lv2:name {{quote (name $p)}}
	]{{end}}
{{- end}} .
`))

// ManifestEntry names a plugin and the data file that describes it.
type ManifestEntry struct {
	URI  string
	Data string
}

// WriteManifest writes a bundle's manifest.ttl listing every plugin found
// in binary.
func WriteManifest(w io.Writer, binary string, plugins ...ManifestEntry) error {
	err := manifestTemplate.Execute(w, struct {
		Binary  string
		Plugins []ManifestEntry
	}{binary, plugins})
	if err != nil {
		return fmt.Errorf("plugin: writing manifest: %w", err)
	}
	return nil
}

// WriteTurtle writes the plugin data file describing d and its ports.
func (d *Descriptor) WriteTurtle(w io.Writer) error {
	err := pluginTemplate.Execute(w, struct {
		URI   string
		Info  Info
		Ports []port.Descriptor
	}{d.URI, d.Info, d.ports})
	if err != nil {
		return fmt.Errorf("plugin: writing %s: %w", d.URI, err)
	}
	return nil
}

func portClasses(p port.Descriptor) string {
	dir := "lv2:InputPort"
	if p.Direction == port.Output {
		dir = "lv2:OutputPort"
	}
	switch p.Kind {
	case port.Audio:
		return dir + ", lv2:AudioPort"
	case port.Atom:
		return dir + ", atom:AtomPort"
	}
	return dir + ", lv2:ControlPort"
}

// portName is the symbol with its first letter upper-cased.
func portName(p port.Descriptor) string {
	if p.Symbol == "" {
		return ""
	}
	return strings.ToUpper(p.Symbol[:1]) + p.Symbol[1:]
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
