package engine

import (
	"errors"
	"io"
	"runtime"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/microunit/microunit/framework/catalog"
	"github.com/microunit/microunit/framework/porting"
)

const (
	phaseIdle = iota
	phaseSetup
	phaseBody
	phaseTeardown
)

// failureSignal is the panic sentinel of one run. An assertion failure
// panics with the run's own sentinel; the stage checkpoint recovers exactly
// that value and lets every other panic escape.
type failureSignal struct{}

var errStageFailed = errors.New("engine: stage failed")

// runContext is the state of one Run invocation.
type runContext struct {
	eng   *Engine
	opts  Options
	out   io.Writer
	hooks Hooks

	driver   uint64
	sentinel *failureSignal
	seed     uint64

	phase        int
	batchFixture string
	current      *catalog.Record
	skipBatch    bool

	matched     int
	passed      int
	failed      int
	skipped     int
	disabled    int
	failedNames []string
}

func (rc *runContext) srand(s uint64) { rc.seed = s - 1 }

func (rc *runContext) rand() uint64 {
	rc.seed = rc.seed*6364136223846793005 + 1
	return rc.seed >> 33
}

// runOnce executes one full pass over the catalog and returns the number of
// failed cases.
func (rc *runContext) runOnce() int {
	records := rc.eng.catalog.Records()
	total := len(records)

	rc.matched, rc.passed, rc.failed, rc.skipped, rc.disabled = 0, 0, 0, 0, 0
	rc.failedNames = rc.failedNames[:0]

	// Cases not matching the filter are invisible to the run: they are
	// neither executed nor counted. Disabled accounting applies only to
	// matched cases.
	run := make([]*catalog.Record, 0, len(records))
	for _, rec := range records {
		rec.Mask = 0
		if !matchFilter(rc.opts.Filter, rec.FullName()) {
			continue
		}
		rc.matched++
		if isDisabled(rec) && !rc.opts.AlsoRunDisabled {
			rc.disabled++
			continue
		}
		run = append(run, rec)
	}

	if rc.opts.Shuffle {
		for _, rec := range run {
			rec.RandKey = rc.rand()
		}
		slices.SortStableFunc(run, func(a, b *catalog.Record) int {
			switch {
			case a.RandKey < b.RandKey:
				return -1
			case a.RandKey > b.RandKey:
				return 1
			}
			return 0
		})
	}

	rc.printBanner(total)
	start := porting.Clock()
	for i := 0; i < len(run); {
		j := i + 1
		for j < len(run) && run[j].Fixture == run[i].Fixture {
			j++
		}
		rc.runBatch(run[i:j])
		i = j
	}
	rc.report(total, porting.Clock().Sub(start))
	return rc.failed
}

// runBatch drives one maximal contiguous group of same-fixture cases:
// setup once, each selected body, teardown once. Teardown runs even when
// setup failed.
func (rc *runContext) runBatch(batch []*catalog.Record) {
	fixture := batch[0].Fixture
	rc.batchFixture = fixture
	rc.skipBatch = false

	ok := rc.runSetup(fixture, batch[0].Setup)
	for _, rec := range batch {
		if ok && !rc.skipBatch {
			rc.runCase(rec)
		} else {
			rec.Mask |= catalog.MaskSkipped
			rc.skipped++
			rc.printSkip(rec.FullName())
		}
	}
	rc.runTeardown(fixture, batch[0].Teardown)

	rc.batchFixture = ""
}

func (rc *runContext) runSetup(fixture string, setup func() error) bool {
	rc.phase = phaseSetup
	defer func() { rc.phase = phaseIdle }()

	if rc.hooks.BeforeSetup != nil {
		rc.hooks.BeforeSetup(fixture)
	}
	var err error
	if setup != nil {
		err = rc.protect(setup)
	}
	if rc.hooks.AfterSetup != nil {
		rc.hooks.AfterSetup(fixture, err)
	}
	return err == nil
}

func (rc *runContext) runCase(rec *catalog.Record) {
	rc.current = rec
	rc.phase = phaseBody
	full := rec.FullName()

	rc.printRun(full)
	if rc.hooks.BeforeTest != nil {
		rc.hooks.BeforeTest(rec.Fixture, rec.Name)
	}

	var data any
	index := 0
	if rec.Param != nil {
		data, index = rec.Param.Data, rec.Param.Index
	}
	start := porting.Clock()
	_ = rc.protect(func() error {
		rec.Body(data, index)
		return nil
	})
	elapsed := porting.Clock().Sub(start)

	rec.Mask |= catalog.MaskExecuted
	failed := rec.Mask&catalog.MaskFailed != 0
	if rc.hooks.AfterTest != nil {
		rc.hooks.AfterTest(rec.Fixture, rec.Name, failed)
	}
	if failed {
		rc.failed++
		rc.failedNames = append(rc.failedNames, full)
		rc.printFail(full, elapsed)
	} else {
		rc.passed++
		rc.printOK(full, elapsed)
	}

	rc.phase = phaseIdle
	rc.current = nil
}

// runTeardown is deliberately not protected: an assertion failure during
// teardown reaches failAssertion in the teardown phase, which aborts the
// process, and a returned error is equally fatal. A fixture that cannot
// tear down leaves state no later batch can trust.
func (rc *runContext) runTeardown(fixture string, teardown func() error) {
	rc.phase = phaseTeardown
	if rc.hooks.BeforeTeardown != nil {
		rc.hooks.BeforeTeardown(fixture)
	}
	var err error
	if teardown != nil {
		err = teardown()
	}
	if rc.hooks.AfterTeardown != nil {
		rc.hooks.AfterTeardown(fixture, err)
	}
	if err != nil {
		porting.Abort("engine: teardown of fixture %q failed: %v", fixture, err)
	}
	rc.phase = phaseIdle
}

// protect runs fn under the failure boundary. A panic with this run's
// sentinel becomes errStageFailed; any other panic propagates and
// terminates the run.
func (rc *runContext) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if r == rc.sentinel {
				err = errStageFailed
				return
			}
			panic(r)
		}
	}()
	return fn()
}

// failAssertion records a failed assertion and unwinds the current stage.
// In the teardown phase there is nothing to unwind to and the run aborts.
func (rc *runContext) failAssertion() {
	rc.checkDriver()
	if rc.phase == phaseTeardown {
		porting.Abort("engine: assertion failed during teardown of fixture %q", rc.batchFixture)
		return
	}
	if rc.current != nil {
		rc.current.Mask |= catalog.MaskFailed
	}
	if rc.opts.BreakOnFailure {
		runtime.Breakpoint()
	}
	panic(rc.sentinel)
}

func (rc *runContext) checkDriver() {
	if id := porting.GoroutineID(); id != rc.driver {
		porting.Abort("engine: assertion from goroutine %d, run is driven by goroutine %d", id, rc.driver)
	}
}

func isDisabled(rec *catalog.Record) bool {
	return strings.HasPrefix(rec.Name, "DISABLED_") ||
		strings.HasPrefix(rec.Fixture, "DISABLED_")
}
