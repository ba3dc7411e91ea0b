package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/microunit/microunit/framework/catalog"
	"github.com/microunit/microunit/framework/porting"
)

// Bracketed status labels, all the same width so case names line up.
const (
	labelBanner   = "[==========] "
	labelRun      = "[ RUN      ] "
	labelOK       = "[       OK ] "
	labelFailed   = "[  FAILED  ] "
	labelSkip     = "[   SKIP   ] "
	labelDisabled = "[ DISABLED ] "
	labelBypassed = "[ BYPASSED ] "
	labelPassed   = "[  PASSED  ] "
)

func (rc *runContext) printTime() bool { return !rc.opts.NoPrintTime }

func (rc *runContext) printBanner(total int) {
	porting.Fprintf(rc.out, porting.ColorDefault, labelBanner)
	porting.Fprintf(rc.out, porting.ColorDefault, "total %d %s registered.\n", total, plural(total, "test"))
}

func (rc *runContext) printRun(name string) {
	porting.Fprintf(rc.out, porting.ColorGreen, labelRun)
	porting.Fprintf(rc.out, porting.ColorDefault, "%s\n", name)
}

func (rc *runContext) printOK(name string, elapsed time.Duration) {
	porting.Fprintf(rc.out, porting.ColorGreen, labelOK)
	rc.printCaseResult(name, elapsed)
}

func (rc *runContext) printFail(name string, elapsed time.Duration) {
	porting.Fprintf(rc.out, porting.ColorRed, labelFailed)
	rc.printCaseResult(name, elapsed)
}

func (rc *runContext) printCaseResult(name string, elapsed time.Duration) {
	if rc.printTime() {
		porting.Fprintf(rc.out, porting.ColorDefault, "%s (%d ms)\n", name, elapsed.Milliseconds())
	} else {
		porting.Fprintf(rc.out, porting.ColorDefault, "%s\n", name)
	}
}

func (rc *runContext) printSkip(name string) {
	porting.Fprintf(rc.out, porting.ColorYellow, labelSkip)
	porting.Fprintf(rc.out, porting.ColorDefault, "%s\n", name)
}

// report renders the run summary. The "X/N ran" numerator counts every
// filter-matched case, including disabled and setup-skipped ones; the
// denominator is the whole catalog.
func (rc *runContext) report(total int, elapsed time.Duration) {
	porting.Fprintf(rc.out, porting.ColorDefault, labelBanner)
	if rc.printTime() {
		porting.Fprintf(rc.out, porting.ColorDefault, "%d/%d test %s ran. (%d ms total)\n",
			rc.matched, total, plural(rc.matched, "case"), elapsed.Milliseconds())
	} else {
		porting.Fprintf(rc.out, porting.ColorDefault, "%d/%d test %s ran.\n",
			rc.matched, total, plural(rc.matched, "case"))
	}

	if rc.disabled > 0 {
		porting.Fprintf(rc.out, porting.ColorGreen, labelDisabled)
		porting.Fprintf(rc.out, porting.ColorDefault, "%d %s.\n", rc.disabled, plural(rc.disabled, "test"))
	}
	if rc.skipped > 0 {
		porting.Fprintf(rc.out, porting.ColorYellow, labelBypassed)
		porting.Fprintf(rc.out, porting.ColorDefault, "%d %s.\n", rc.skipped, plural(rc.skipped, "test"))
	}
	if rc.passed > 0 {
		porting.Fprintf(rc.out, porting.ColorGreen, labelPassed)
		porting.Fprintf(rc.out, porting.ColorDefault, "%d %s.\n", rc.passed, plural(rc.passed, "test"))
	}
	if rc.failed > 0 {
		porting.Fprintf(rc.out, porting.ColorRed, labelFailed)
		porting.Fprintf(rc.out, porting.ColorDefault, "%d %s, listed below:\n", rc.failed, plural(rc.failed, "test"))
		for _, name := range rc.failedNames {
			porting.Fprintf(rc.out, porting.ColorRed, labelFailed)
			porting.Fprintf(rc.out, porting.ColorDefault, "%s\n", name)
		}
	}
}

// printList renders the catalog without running it: one line per fixture,
// case names indented beneath, parameterized entries annotated with their
// value list.
func (e *Engine) printList(out io.Writer, opts Options) {
	lastFixture := ""
	first := true
	e.catalog.Do(func(rec *catalog.Record) bool {
		if !matchFilter(opts.Filter, rec.FullName()) {
			return true
		}
		if isDisabled(rec) && !opts.AlsoRunDisabled {
			return true
		}
		if first || rec.Fixture != lastFixture {
			fmt.Fprintf(out, "%s.\n", rec.Fixture)
			lastFixture = rec.Fixture
			first = false
		}
		if rec.Param != nil {
			fmt.Fprintf(out, "  %s/%d  # <%s> %s\n",
				rec.Name, rec.Param.Index, rec.Param.TypeName, rec.Param.DataText)
		} else {
			fmt.Fprintf(out, "  %s\n", rec.Name)
		}
		return true
	})
}

func plural(n int, word string) string {
	if n > 1 {
		return word + "s"
	}
	return word
}
