// Package microunit is a self-contained unit-test execution engine in the
// style of the classic embedded C frameworks: cases are registered into a
// fixed-capacity ordered catalog during process init, then a single RunTests
// call executes them with fixture setup/teardown, optional filtering,
// shuffling and repetition, and a bracketed console report.
//
// The package-level functions operate on one default engine instance, which
// is what a test binary normally wants. The framework/engine package exposes
// the same machinery for embedding multiple engines.
package microunit

import (
	"io"

	"github.com/microunit/microunit/framework/catalog"
	"github.com/microunit/microunit/framework/engine"
	"github.com/microunit/microunit/framework/porting"
	"github.com/microunit/microunit/framework/typereg"
)

// Capacities of the default engine. Registration beyond these limits is a
// fatal error at init time.
const (
	MaxCases = 1024
	MaxTypes = 256
)

var defaultEngine = engine.New(MaxCases, MaxTypes)

// Hooks re-exports the engine hook set for RunTests callers.
type Hooks = engine.Hooks

// RegisterCase links a prepared case record into the default engine's
// catalog. Most callers use the AddTest family instead; this is the low
// level surface for generated or table-built registrations. Duplicate keys
// and capacity overflow are fatal.
func RegisterCase(rec *catalog.Record) {
	if err := defaultEngine.Catalog().Insert(rec); err != nil {
		porting.Abort("microunit: %v", err)
	}
}

// RegisterType links a custom-type entry into the default engine's
// registry. Registration is first-wins; capacity overflow is fatal.
func RegisterType(info *typereg.Info) {
	if err := defaultEngine.Types().Register(info); err != nil {
		porting.Abort("microunit: %v", err)
	}
}

// RunTests parses run options from args (args[0] is the program name),
// executes the catalog, and returns the process exit status. out receives
// the console report; nil means stdout unless --test_logfile redirects it.
func RunTests(args []string, out io.Writer, hooks Hooks) int {
	opts, cleanup, ok := parseRunOptions(args, &out)
	if !ok {
		return 2
	}
	defer cleanup()
	return defaultEngine.Run(opts, out, hooks)
}

// CurrentFixture returns the fixture whose batch is executing, or "".
func CurrentFixture() string { return defaultEngine.CurrentFixture() }

// CurrentTest returns the name of the executing case, or "".
func CurrentTest() string { return defaultEngine.CurrentTest() }

// SkipCurrentTest, valid only inside a fixture setup function, skips every
// case of the current fixture batch.
func SkipCurrentTest() { defaultEngine.SkipCurrentTest() }
