// Package porting collects the platform primitives the engine depends on:
// fatal abort, a clock, goroutine identity, and colorized printing. Each is
// a package variable so a port (or a test) can swap in its own
// implementation without touching the engine.
package porting

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color selects the rendering of a formatted print.
type Color int

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
)

// Abort reports an unrecoverable configuration or protocol error and
// terminates the process with a non-zero status. It must not return.
var Abort = defaultAbort

// Clock is the time source used for durations and default shuffle seeds.
var Clock = time.Now

// GoroutineID identifies the calling goroutine. The engine records the
// identity of the goroutine driving a run and rejects assertions arriving
// from any other.
var GoroutineID = goroutineID

// Fprintf is the colorized formatted-print primitive. The default renders
// color only when the destination is a terminal, so log files stay free of
// escape sequences.
var Fprintf = colorFprintf

func defaultAbort(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal: "+format+"\n", args...)
	os.Exit(2)
}

func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	// First line reads "goroutine N [state]:".
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

var palette = map[Color]*color.Color{
	ColorRed:    color.New(color.FgRed),
	ColorGreen:  color.New(color.FgGreen),
	ColorYellow: color.New(color.FgYellow),
}

func colorFprintf(w io.Writer, c Color, format string, args ...any) {
	if cc := palette[c]; cc != nil && isTerminal(w) {
		_, _ = cc.Fprintf(w, format, args...)
		return
	}
	_, _ = fmt.Fprintf(w, format, args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
