package assert

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"math"
	"reflect"
)

// Tolerance is the largest absolute difference between two floating point values that are still considered equal.
const Tolerance = 0.0001

// Equal reports whether a and b are equal.
// If both values have a floating point kind, then they're equal if they're both positive infinity, or they're within [Tolerance] of each other.
// Everything else is compared with ==.
//
// Note that comparing interface values holding dynamic types that aren't comparable will panic, just like == does.
func Equal[V comparable](a, b V) bool {
	af, aok := floatValue(a)
	bf, bok := floatValue(b)
	if aok && bok {
		return floatEqual(af, bf)
	}
	return a == b
}

func floatValue(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func floatEqual(a, b float64) bool {
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	return math.Abs(a-b) <= Tolerance
}

var deepOpts = []cmp.Option{
	cmpopts.EquateApprox(0, Tolerance),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// DeepEqual reports whether a and b are structurally equal, including values that can't be compared with ==.
// Floating point values anywhere in the structure are compared with [Tolerance], and unexported struct fields are included.
//
// Unlike [Equal], exactly equal values are always equal, so two negative infinities match too.
func DeepEqual(a, b any) bool {
	return cmp.Equal(a, b, deepOpts...)
}
