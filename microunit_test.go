package microunit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// All tests here share the package-level default engine, so each one
// registers cases under its own fixture name and runs with a filter
// selecting only those.

func runFixture(fixture string, extraArgs ...string) (int, string) {
	args := append([]string{
		"microunit.test",
		"--test_filter=" + fixture + ".*",
		"--test_print_time=0",
	}, extraArgs...)
	var buf bytes.Buffer
	status := RunTests(args, &buf, Hooks{})
	return status, buf.String()
}

func TestAddTestRunsAndPasses(t *testing.T) {
	ran := false
	AddTest("rootpass", "simple", func() {
		ran = true
		AssertEqual(2+2, 4)
	})

	status, out := runFixture("rootpass")
	assert.Equal(t, 0, status)
	assert.True(t, ran)
	assert.Contains(t, out, "[       OK ] rootpass.simple\n")
	assert.Contains(t, out, "[  PASSED  ] 1 test.\n")
}

func TestAssertFailureDiagnostic(t *testing.T) {
	AddTest("rootfail", "mismatch", func() {
		AssertEqual(1, 2, "context %d", 7)
	})

	status, out := runFixture("rootfail")
	assert.Equal(t, 1, status)
	assert.Contains(t, out, "microunit_test.go:")
	assert.Contains(t, out, "  expected: `1` == `2`\n")
	assert.Contains(t, out, "    actual: 1 vs 2\n")
	assert.Contains(t, out, "  context 7\n")
	assert.Contains(t, out, "[  FAILED  ] rootfail.mismatch\n")
}

func TestCheckUsesExplicitExpressions(t *testing.T) {
	total, expected := 10, 12
	AddTest("rootcheck", "named_exprs", func() {
		Check(OpEQ, "total", "expected", total, expected)
	})

	status, out := runFixture("rootcheck")
	assert.Equal(t, 1, status)
	assert.Contains(t, out, "  expected: `total` == `expected`\n")
	assert.Contains(t, out, "    actual: 10 vs 12\n")
}

func TestOrderingAssertions(t *testing.T) {
	AddTest("rootord", "all_hold", func() {
		AssertNotEqual("a", "b")
		AssertLess(1, 2)
		AssertLessOrEqual(2, 2)
		AssertGreater(3.5, 1.5)
		AssertGreaterOrEqual(uint16(7), uint16(7))
	})

	status, _ := runFixture("rootord")
	assert.Equal(t, 0, status)
}

func TestAddFixtureTestLifecycle(t *testing.T) {
	var events []string
	fx := Fixture{
		Name:     "rootfx",
		Setup:    func() error { events = append(events, "setup"); return nil },
		Teardown: func() error { events = append(events, "teardown"); return nil },
	}
	AddFixtureTest(fx, "first", func() { events = append(events, "first") })
	AddFixtureTest(fx, "second", func() { events = append(events, "second") })

	status, _ := runFixture("rootfx")
	assert.Equal(t, 0, status)
	assert.Equal(t, []string{"setup", "first", "second", "teardown"}, events)
}

func TestAddParamTestExpansion(t *testing.T) {
	var seen []int
	AddParamTest(Fixture{Name: "rootparam"}, "square", func(values []int, index int) {
		v := values[index]
		seen = append(seen, v)
		AssertGreaterOrEqual(v*v, 0)
	}, 2, 4, 6)

	status, out := runFixture("rootparam")
	assert.Equal(t, 0, status)
	assert.Equal(t, []int{2, 4, 6}, seen)
	assert.Contains(t, out, "[ RUN      ] rootparam.square/2\n")
}

func TestListMode(t *testing.T) {
	AddParamTest(Fixture{Name: "rootlist"}, "values", func([]string, int) {}, "x", "y")

	status, out := runFixture("rootlist", "--test_list_tests")
	assert.Equal(t, 0, status)
	assert.Equal(t,
		"rootlist.\n"+
			"  values/0  # <string> x, y\n"+
			"  values/1  # <string> x, y\n",
		out)
}

type temperature int

func TestAddTypeComparison(t *testing.T) {
	AddType[temperature](
		func(a, b temperature) int { return int(a) - int(b) },
		func(w io.Writer, v temperature) (int, error) { return fmt.Fprintf(w, "%dC", int(v)) },
	)
	AddTest("roottype", "custom_compare", func() {
		AssertEqual(temperature(20), temperature(20))
		AssertLess(temperature(10), temperature(30))
	})
	AddTest("roottype", "custom_dump", func() {
		AssertEqual(temperature(20), temperature(21))
	})

	status, out := runFixture("roottype")
	assert.Equal(t, 1, status)
	assert.Contains(t, out, "[       OK ] roottype.custom_compare\n")
	assert.Contains(t, out, "    actual: 20C vs 21C\n")
}

func TestSkipCurrentTestFromSetup(t *testing.T) {
	bodyRan := false
	fx := Fixture{
		Name:  "rootskip",
		Setup: func() error { SkipCurrentTest(); return nil },
	}
	AddFixtureTest(fx, "never_runs", func() { bodyRan = true })

	status, out := runFixture("rootskip")
	assert.Equal(t, 0, status)
	assert.False(t, bodyRan)
	assert.Contains(t, out, "[   SKIP   ] rootskip.never_runs\n")
}

func TestCurrentFixtureAndTestQueries(t *testing.T) {
	var fixture, test string
	AddFixtureTest(Fixture{Name: "rootquery"}, "probe", func() {
		fixture = CurrentFixture()
		test = CurrentTest()
	})

	status, _ := runFixture("rootquery")
	assert.Equal(t, 0, status)
	assert.Equal(t, "rootquery", fixture)
	assert.Equal(t, "probe", test)
}

func TestRunTestsRejectsBadFlags(t *testing.T) {
	var buf bytes.Buffer
	status := RunTests([]string{"microunit.test", "--no_such_flag"}, &buf, Hooks{})
	assert.Equal(t, 2, status)
}

func TestRunTestsLogFile(t *testing.T) {
	AddTest("rootlog", "writes", func() {})

	path := filepath.Join(t.TempDir(), "report.log")
	var buf bytes.Buffer
	status := RunTests([]string{
		"microunit.test",
		"--test_filter=rootlog.*",
		"--test_print_time=0",
		"--test_logfile=" + path,
	}, &buf, Hooks{})
	require.Equal(t, 0, status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[       OK ] rootlog.writes\n")
	assert.Empty(t, buf.String(), "report goes to the log file, not the writer")
}
