package typereg

import (
	"fmt"
	"io"

	"golang.org/x/exp/constraints"

	"github.com/microunit/microunit/framework/floatcmp"
)

// Dispatcher resolves type names to comparison and dump functions. The
// primitive built-ins are hard-wired here rather than stored in the
// registry, which keeps them usable regardless of registration order.
type Dispatcher struct {
	Registry *Registry
}

// Compare orders two values of the named type. Floating-point types route
// through the pluggable floatcmp algorithm, so the result may be Unordered;
// every other type yields one of the three ordered outcomes. An unregistered
// non-builtin type is a configuration error reported via ErrUnknownType.
func (d *Dispatcher) Compare(typeName string, a, b any) (floatcmp.Ordering, error) {
	switch typeName {
	case "float32":
		return floatcmp.Compare(floatcmp.Float32, float64(a.(float32)), float64(b.(float32))), nil
	case "float64":
		return floatcmp.Compare(floatcmp.Float64, a.(float64), b.(float64)), nil
	}
	if cmp, ok := builtinCompare[typeName]; ok {
		return clampOrdering(cmp(a, b)), nil
	}
	info, ok := d.Registry.Resolve(typeName)
	if !ok {
		return floatcmp.Unordered, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	return clampOrdering(info.Compare(a, b)), nil
}

// Dump renders a value of the named type. Built-ins and registered dumpers
// take precedence; a type registered with only a comparator falls back to a
// reflection-based rendering.
func (d *Dispatcher) Dump(w io.Writer, typeName string, v any) {
	if dump, ok := builtinDump[typeName]; ok {
		_, _ = dump(w, v)
		return
	}
	if info, ok := d.Registry.Resolve(typeName); ok && info.Dump != nil {
		_, _ = info.Dump(w, v)
		return
	}
	_, _ = fmt.Fprintf(w, "%+v", v)
}

// WriteFailure renders the assertion-failure diagnostic: location, the two
// operand expressions with the operator between them, the dumped operand
// values, and the user-supplied message verbatim.
func (d *Dispatcher) WriteFailure(
	w io.Writer,
	file string, line int,
	typeName, op, exprA, exprB string,
	a, b any,
	msg string,
) {
	fmt.Fprintf(w, "%s:%d: failure\n", file, line)
	fmt.Fprintf(w, "  expected: `%s` %s `%s`\n", exprA, op, exprB)
	io.WriteString(w, "    actual: ")
	d.Dump(w, typeName, a)
	io.WriteString(w, " vs ")
	d.Dump(w, typeName, b)
	io.WriteString(w, "\n")
	if msg != "" {
		fmt.Fprintf(w, "  %s\n", msg)
	}
}

func clampOrdering(c int) floatcmp.Ordering {
	switch {
	case c < 0:
		return floatcmp.Less
	case c > 0:
		return floatcmp.Greater
	default:
		return floatcmp.Equal
	}
}

func orderedCompare[T constraints.Ordered](a, b any) int {
	va, vb := a.(T), b.(T)
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	default:
		return 0
	}
}

func boolCompare(a, b any) int {
	va, vb := a.(bool), b.(bool)
	switch {
	case va == vb:
		return 0
	case vb:
		return -1
	default:
		return 1
	}
}

func plainDump(w io.Writer, v any) (int, error)  { return fmt.Fprintf(w, "%v", v) }
func quotedDump(w io.Writer, v any) (int, error) { return fmt.Fprintf(w, "%q", v) }

// Built-in primitives. Floats are absent from the compare table because the
// dispatcher routes them through floatcmp before consulting it.
var builtinCompare = map[string]CompareFunc{
	"bool":    boolCompare,
	"int":     orderedCompare[int],
	"int8":    orderedCompare[int8],
	"int16":   orderedCompare[int16],
	"int32":   orderedCompare[int32],
	"int64":   orderedCompare[int64],
	"uint":    orderedCompare[uint],
	"uint8":   orderedCompare[uint8],
	"uint16":  orderedCompare[uint16],
	"uint32":  orderedCompare[uint32],
	"uint64":  orderedCompare[uint64],
	"uintptr": orderedCompare[uintptr],
	"string":  orderedCompare[string],
}

var builtinDump = map[string]DumpFunc{
	"bool":    plainDump,
	"int":     plainDump,
	"int8":    plainDump,
	"int16":   plainDump,
	"int32":   plainDump,
	"int64":   plainDump,
	"uint":    plainDump,
	"uint8":   plainDump,
	"uint16":  plainDump,
	"uint32":  plainDump,
	"uint64":  plainDump,
	"uintptr": plainDump,
	"float32": plainDump,
	"float64": plainDump,
	"string":  quotedDump,
}
