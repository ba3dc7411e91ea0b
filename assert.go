package microunit

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/microunit/microunit/framework/engine"
)

// Op re-exports the engine's comparison operators for Check.
type Op = engine.Op

const (
	OpEQ = engine.OpEQ
	OpNE = engine.OpNE
	OpLT = engine.OpLT
	OpLE = engine.OpLE
	OpGT = engine.OpGT
	OpGE = engine.OpGE
)

// AssertEqual fails the current case unless a equals b under the type's
// comparison (tolerant comparison for floats). Operands must share one
// dynamic type. The optional message, a string or a format string with
// arguments, is appended to the failure diagnostic.
func AssertEqual(a, b any, msgAndArgs ...any) bool {
	return check(OpEQ, a, b, msgAndArgs)
}

// AssertNotEqual fails the current case when a equals b. A NaN operand
// satisfies the assertion: NaN is unequal to everything.
func AssertNotEqual(a, b any, msgAndArgs ...any) bool {
	return check(OpNE, a, b, msgAndArgs)
}

// AssertLess fails the current case unless a sorts before b.
func AssertLess(a, b any, msgAndArgs ...any) bool {
	return check(OpLT, a, b, msgAndArgs)
}

// AssertLessOrEqual fails the current case unless a sorts before or equal
// to b.
func AssertLessOrEqual(a, b any, msgAndArgs ...any) bool {
	return check(OpLE, a, b, msgAndArgs)
}

// AssertGreater fails the current case unless a sorts after b.
func AssertGreater(a, b any, msgAndArgs ...any) bool {
	return check(OpGT, a, b, msgAndArgs)
}

// AssertGreaterOrEqual fails the current case unless a sorts after or equal
// to b.
func AssertGreaterOrEqual(a, b any, msgAndArgs ...any) bool {
	return check(OpGE, a, b, msgAndArgs)
}

// Check is the explicit-text form of the assertions: exprA and exprB appear
// verbatim in the failure diagnostic in place of the rendered values.
func Check(op Op, exprA, exprB string, a, b any, msgAndArgs ...any) bool {
	file, line := location(1)
	return defaultEngine.Assert(op, exprA, exprB, a, b, formatMessage(msgAndArgs), file, line)
}

func check(op Op, a, b any, msgAndArgs []any) bool {
	file, line := location(2)
	exprA := fmt.Sprintf("%v", a)
	exprB := fmt.Sprintf("%v", b)
	return defaultEngine.Assert(op, exprA, exprB, a, b, formatMessage(msgAndArgs), file, line)
}

func location(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "?", 0
	}
	return filepath.Base(file), line
}

func formatMessage(msgAndArgs []any) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprint(msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs...)
}
