package log

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/justyntemme/lv2go/pkg/urid"
)

// Flags for WriterPrinter output formatting.
const (
	FlagTime      = 1 << iota // Include timestamp
	FlagShortFile             // Include short file name and line number
	FlagLongFile              // Include full file path and line number
	FlagLevel                 // Include log level
	FlagPrefix                // Include prefix
)

// DefaultFlags are the default formatting flags.
const DefaultFlags = FlagTime | FlagShortFile | FlagLevel | FlagPrefix

// pkgDir is used to skip this package's frames when reporting the caller.
var pkgDir = func() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}()

// WriterPrinter is a host-side Printer that formats entries onto an
// io.Writer.
type WriterPrinter struct {
	mu      sync.Mutex
	output  io.Writer
	prefix  string
	flags   int
	level   Level
	classes Classes
}

// NewWriterPrinter creates a printer writing to w. classes must come from
// the same map the plugin uses.
func NewWriterPrinter(w io.Writer, prefix string, flags int, classes Classes) *WriterPrinter {
	return &WriterPrinter{
		output:  w,
		prefix:  prefix,
		flags:   flags,
		level:   LevelTrace,
		classes: classes,
	}
}

// SetOutput sets the output destination.
func (p *WriterPrinter) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = w
}

// SetLevel sets the minimum level written.
func (p *WriterPrinter) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// SetPrefix sets the prefix.
func (p *WriterPrinter) SetPrefix(prefix string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prefix = prefix
}

// SetFlags sets the output formatting flags.
func (p *WriterPrinter) SetFlags(flags int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flags = flags
}

// Printf writes one entry and returns the number of bytes written.
func (p *WriterPrinter) Printf(class urid.URID, format string, args ...any) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	level := p.classes.Level(class)
	if level < p.level || p.output == nil {
		return 0
	}

	var sb strings.Builder

	if p.flags&FlagTime != 0 {
		sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000 "))
	}

	if p.flags&FlagLevel != 0 {
		fmt.Fprintf(&sb, "[%s] ", level)
	}

	if p.flags&FlagPrefix != 0 && p.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", p.prefix)
	}

	if p.flags&(FlagShortFile|FlagLongFile) != 0 {
		if file, line, ok := caller(); ok {
			if p.flags&FlagShortFile != 0 {
				file = filepath.Base(file)
			}
			fmt.Fprintf(&sb, "%s:%d: ", file, line)
		}
	}

	msg := fmt.Sprintf(format, args...)
	sb.WriteString(msg)

	if !strings.HasSuffix(msg, "\n") {
		sb.WriteString("\n")
	}

	n, _ := io.WriteString(p.output, sb.String())
	return n
}

// caller returns the first frame outside this package.
func caller() (string, int, bool) {
	var pcs [16]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if filepath.Dir(f.File) != pkgDir || strings.HasSuffix(f.File, "_test.go") {
			return f.File, f.Line, f.File != ""
		}
		if !more {
			return "", 0, false
		}
	}
}
