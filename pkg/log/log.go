// Package log implements the LV2 log feature: a host-provided printf
// facility that plugins use to report errors and diagnostics.
//
// Plugins hold a *Logger built from the host's Printer. Hosts that have no
// facility of their own can use a WriterPrinter.
package log

import (
	"fmt"
	"os"
	"sync"

	"github.com/justyntemme/lv2go/pkg/urid"
)

const (
	// URI is the log feature URI.
	URI = "http://lv2plug.in/ns/ext/log"
	// LogURI identifies the feature whose data is a Printer.
	LogURI     = "http://lv2plug.in/ns/ext/log#log"
	EntryURI   = "http://lv2plug.in/ns/ext/log#Entry"
	ErrorURI   = "http://lv2plug.in/ns/ext/log#Error"
	NoteURI    = "http://lv2plug.in/ns/ext/log#Note"
	TraceURI   = "http://lv2plug.in/ns/ext/log#Trace"
	WarningURI = "http://lv2plug.in/ns/ext/log#Warning"
)

// Level is the severity of a log entry.
type Level int

const (
	// LevelTrace is for detailed debugging output.
	LevelTrace Level = iota
	// LevelNote is for informational messages.
	LevelNote
	// LevelWarning is for recoverable problems.
	LevelWarning
	// LevelError is for failures.
	LevelError
	// LevelOff disables all logging.
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelNote:
		return "NOTE"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// URI returns the entry class URI for l.
func (l Level) URI() string {
	switch l {
	case LevelTrace:
		return TraceURI
	case LevelNote:
		return NoteURI
	case LevelWarning:
		return WarningURI
	case LevelError:
		return ErrorURI
	}
	return EntryURI
}

// Printer is the host logging facility. class is the URID of one of the
// entry class URIs.
type Printer interface {
	Printf(class urid.URID, format string, args ...any) int
}

// Classes holds the entry class URIDs.
type Classes struct {
	Entry, Error, Note, Trace, Warning urid.URID
}

// MapClasses resolves the entry class URIs through m.
func MapClasses(m urid.Mapper) (Classes, error) {
	ids, err := urid.MapAll(m, EntryURI, ErrorURI, NoteURI, TraceURI, WarningURI)
	if err != nil {
		return Classes{}, err
	}
	return Classes{
		Entry:   ids[0],
		Error:   ids[1],
		Note:    ids[2],
		Trace:   ids[3],
		Warning: ids[4],
	}, nil
}

// ID returns the class URID for l.
func (c Classes) ID(l Level) urid.URID {
	switch l {
	case LevelTrace:
		return c.Trace
	case LevelNote:
		return c.Note
	case LevelWarning:
		return c.Warning
	case LevelError:
		return c.Error
	}
	return c.Entry
}

// Level returns the level for a class URID. Unknown classes are notes.
func (c Classes) Level(id urid.URID) Level {
	switch id {
	case c.Trace:
		return LevelTrace
	case c.Warning:
		return LevelWarning
	case c.Error:
		return LevelError
	}
	return LevelNote
}

// Logger is the plugin side of the log feature.
type Logger struct {
	mu      sync.Mutex
	printer Printer
	classes Classes
	level   Level
}

// New creates a logger printing through p. A nil p prints to stderr.
// Every level is passed to p by default; the host's Printer decides what
// is shown.
func New(p Printer, m urid.Mapper) (*Logger, error) {
	classes, err := MapClasses(m)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	if p == nil {
		p = NewWriterPrinter(os.Stderr, "", DefaultFlags, classes)
	}
	return &Logger{printer: p, classes: classes, level: LevelTrace}, nil
}

// SetLevel sets the minimum level printed.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the minimum level printed.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	threshold, p := l.level, l.printer
	l.mu.Unlock()

	if level < threshold {
		return
	}
	p.Printf(l.classes.ID(level), format, args...)
}

// Trace logs a trace message.
func (l *Logger) Trace(format string, args ...any) {
	l.log(LevelTrace, format, args...)
}

// Note logs an informational message.
func (l *Logger) Note(format string, args ...any) {
	l.log(LevelNote, format, args...)
}

// Warning logs a warning.
func (l *Logger) Warning(format string, args ...any) {
	l.log(LevelWarning, format, args...)
}

// Error logs an error.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}
