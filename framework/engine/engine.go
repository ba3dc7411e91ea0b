// Package engine schedules and executes the registered test cases: it
// computes the run order, drives the setup/body/teardown state machine per
// fixture batch, isolates assertion failures, and renders the console
// report.
package engine

import (
	"io"
	"os"

	"github.com/microunit/microunit/framework/catalog"
	"github.com/microunit/microunit/framework/porting"
	"github.com/microunit/microunit/framework/typereg"
)

// Engine ties the catalog, the type registry, and the comparison dispatcher
// to a run loop. One engine drives at most one run at a time; a nested Run
// is a fatal usage error.
type Engine struct {
	catalog *catalog.Catalog
	types   *typereg.Registry
	disp    *typereg.Dispatcher

	cur *runContext
}

// New returns an engine with fixed catalog and type-registry capacities.
func New(caseCapacity, typeCapacity int) *Engine {
	types := typereg.NewRegistry(typeCapacity)
	return &Engine{
		catalog: catalog.New(caseCapacity),
		types:   types,
		disp:    &typereg.Dispatcher{Registry: types},
	}
}

// Catalog exposes the case store for registration.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Types exposes the custom-type registry for registration.
func (e *Engine) Types() *typereg.Registry { return e.types }

// Run executes the catalog under opts, writing the report to out (stdout
// when nil), and returns the process exit status: 0 when no case failed
// across all repeat iterations, 1 otherwise.
func (e *Engine) Run(opts Options, out io.Writer, hooks Hooks) int {
	if e.cur != nil {
		porting.Abort("engine: Run is not reentrant")
		return 2
	}
	if out == nil {
		out = os.Stdout
	}
	if opts.Repeat < 1 {
		opts.Repeat = 1
	}
	if opts.ListOnly {
		e.printList(out, opts)
		return 0
	}

	rc := &runContext{
		eng:      e,
		opts:     opts,
		out:      out,
		hooks:    hooks,
		driver:   porting.GoroutineID(),
		sentinel: &failureSignal{},
	}
	seed := opts.Seed
	if seed == 0 {
		seed = porting.Clock().UnixNano()
	}
	rc.srand(uint64(seed))

	e.cur = rc
	defer func() { e.cur = nil }()

	if hooks.BeforeAllTest != nil {
		hooks.BeforeAllTest(opts.Args)
	}
	totalFailed := 0
	for i := 0; i < opts.Repeat; i++ {
		if opts.Repeat > 1 {
			porting.Fprintf(out, porting.ColorYellow, labelBanner)
			porting.Fprintf(out, porting.ColorDefault, "start loop: %d/%d\n", i+1, opts.Repeat)
		}
		totalFailed += rc.runOnce()
		if opts.Repeat > 1 {
			porting.Fprintf(out, porting.ColorYellow, labelBanner)
			porting.Fprintf(out, porting.ColorDefault, "end loop (%d/%d)\n", i+1, opts.Repeat)
			if i < opts.Repeat-1 {
				porting.Fprintf(out, porting.ColorDefault, "\n")
			}
		}
	}
	if hooks.AfterAllTest != nil {
		hooks.AfterAllTest()
	}

	if totalFailed > 0 {
		return 1
	}
	return 0
}

// CurrentFixture returns the fixture of the batch being executed, or ""
// outside a batch.
func (e *Engine) CurrentFixture() string {
	if e.cur == nil {
		return ""
	}
	return e.cur.batchFixture
}

// CurrentTest returns the name of the case whose body is executing, or ""
// outside a body.
func (e *Engine) CurrentTest() string {
	if e.cur == nil || e.cur.current == nil {
		return ""
	}
	return e.cur.current.Name
}

// SkipCurrentTest, called from a fixture setup function, marks every case
// of the current batch skipped; their bodies never run. Calling it from any
// other stage is a fatal usage error.
func (e *Engine) SkipCurrentTest() {
	rc := e.cur
	if rc == nil || rc.phase != phaseSetup {
		porting.Abort("engine: SkipCurrentTest is only valid during fixture setup")
		return
	}
	rc.checkDriver()
	rc.skipBatch = true
}
