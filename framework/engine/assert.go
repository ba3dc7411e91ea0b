package engine

import (
	"reflect"

	"github.com/microunit/microunit/framework/floatcmp"
	"github.com/microunit/microunit/framework/porting"
)

// Op is a comparison operator as it appears in failure diagnostics.
type Op string

const (
	OpEQ Op = "=="
	OpNE Op = "!="
	OpLT Op = "<"
	OpLE Op = "<="
	OpGT Op = ">"
	OpGE Op = ">="
)

// Assert evaluates `a op b` and returns true when the relation holds. On
// failure it writes the diagnostic, marks the current case failed, and
// unwinds the stage; the false return is only ever seen when the porting
// abort has been replaced by one that returns.
//
// Operands must have the same dynamic type, and that type must be a
// built-in primitive or registered in the type registry; anything else is a
// fatal usage error. file and line locate the assertion in the caller's
// source.
func (e *Engine) Assert(op Op, exprA, exprB string, a, b any, msg, file string, line int) bool {
	rc := e.cur
	if rc == nil {
		porting.Abort("engine: assertion outside a run")
		return false
	}
	rc.checkDriver()

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || tb == nil || ta != tb {
		porting.Abort("engine: assertion operands have mismatched types %T and %T", a, b)
		return false
	}
	typeName := ta.String()

	ord, err := e.disp.Compare(typeName, a, b)
	if err != nil {
		porting.Abort("engine: %v", err)
		return false
	}
	if opHolds(op, ord) {
		return true
	}

	e.disp.WriteFailure(rc.out, file, line, typeName, string(op), exprA, exprB, a, b, msg)
	rc.failAssertion()
	return false
}

// opHolds applies the operator to a comparison outcome. Unordered (a NaN
// operand) satisfies only inequality: NaN is not equal to anything, and it
// is not less than or greater than anything either.
func opHolds(op Op, ord floatcmp.Ordering) bool {
	if ord == floatcmp.Unordered {
		return op == OpNE
	}
	switch op {
	case OpEQ:
		return ord == floatcmp.Equal
	case OpNE:
		return ord != floatcmp.Equal
	case OpLT:
		return ord == floatcmp.Less
	case OpLE:
		return ord != floatcmp.Greater
	case OpGT:
		return ord == floatcmp.Greater
	case OpGE:
		return ord != floatcmp.Less
	}
	return false
}
