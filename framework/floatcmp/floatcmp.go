// Package floatcmp implements tolerant floating-point comparison based on
// ULP distance with an absolute-epsilon guard near zero. The algorithm
// assumes IEEE 754 representations; platforms with a different layout can
// swap in their own CompareFunc.
package floatcmp

import "math"

// Kind selects the representation width the comparison operates on.
type Kind int

const (
	Float32 Kind = iota
	Float64
)

// Ordering is the outcome of a comparison. Unordered is distinct from the
// three ordered outcomes: any comparison involving NaN is Unordered, never
// Equal and never Less/Greater.
type Ordering int8

const (
	Less      Ordering = -1
	Equal     Ordering = 0
	Greater   Ordering = 1
	Unordered Ordering = 2
)

// maxULPs is the largest bit-pattern distance still considered equal.
const maxULPs = 4

// Absolute tolerances for values close to zero, where ULP distance blows up
// across the origin.
const (
	epsilon32 = 4 * 1.1920928955078125e-07
	epsilon64 = 4 * 2.2204460492503131e-16
)

// CompareFunc is the pluggable comparison algorithm.
type CompareFunc func(kind Kind, a, b float64) Ordering

// Compare is the active algorithm. It defaults to the IEEE 754 ULP/epsilon
// comparison and may be replaced before a run on platforms whose float
// representation differs.
var Compare CompareFunc = CompareIEEE

// CompareIEEE compares a and b under ULP/epsilon tolerance. Positive and
// negative zero are Equal; NaN yields Unordered against everything,
// including itself.
func CompareIEEE(kind Kind, a, b float64) Ordering {
	if math.IsNaN(a) || math.IsNaN(b) {
		return Unordered
	}
	if almostEqual(kind, a, b) {
		return Equal
	}
	if a < b {
		return Less
	}
	return Greater
}

func almostEqual(kind Kind, a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	if kind == Float32 {
		if diff <= epsilon32 {
			return true
		}
		return ulpDistance32(float32(a), float32(b)) <= maxULPs
	}
	if diff <= epsilon64 {
		return true
	}
	return ulpDistance64(a, b) <= maxULPs
}

func ulpDistance64(a, b float64) uint64 {
	ba := biased64(math.Float64bits(a))
	bb := biased64(math.Float64bits(b))
	if ba >= bb {
		return ba - bb
	}
	return bb - ba
}

func ulpDistance32(a, b float32) uint32 {
	ba := biased32(math.Float32bits(a))
	bb := biased32(math.Float32bits(b))
	if ba >= bb {
		return ba - bb
	}
	return bb - ba
}

// biased64 maps a sign-and-magnitude bit pattern onto a monotone unsigned
// scale so that the distance between two patterns is their ULP distance.
func biased64(sam uint64) uint64 {
	const signMask = uint64(1) << 63
	if sam&signMask != 0 {
		return ^sam + 1
	}
	return signMask | sam
}

func biased32(sam uint32) uint32 {
	const signMask = uint32(1) << 31
	if sam&signMask != 0 {
		return ^sam + 1
	}
	return signMask | sam
}
