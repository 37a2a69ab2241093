package webprint

import (
	"math"
	"reflect"
	"strconv"
)

// value is a scalar reduced to its kind and URI representation.
// The zero value means absent.
type value struct {
	kind Kind
	text string
	num  float64 // numeric value of KindInt and KindNumber
}

func (v value) absent() bool { return v.kind == 0 }

func (v value) finite() bool { return !math.IsNaN(v.num) && !math.IsInf(v.num, 0) }

// valueOf converts x to a value.
// Strings are kept as is, integers and floats are rendered in decimal notation,
// booleans become "1" or "0", nil and nil pointers are absent.
// Types with an underlying scalar kind, like [Halftone], are accepted too.
// It returns false for any other shape.
func valueOf(x any) (value, bool) {
	rv := reflect.ValueOf(x)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return value{}, true
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return value{}, true
	case reflect.String:
		return value{kind: KindString, text: rv.String()}, true
	case reflect.Bool:
		if rv.Bool() {
			return value{kind: KindBool, text: "1"}, true
		}
		return value{kind: KindBool, text: "0"}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		return value{kind: KindInt, text: strconv.FormatInt(n, 10), num: float64(n)}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		return value{kind: KindInt, text: strconv.FormatUint(n, 10), num: float64(n)}, true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return value{kind: KindNumber, text: formatFloat(f, rv.Type().Bits()), num: f}, true
	default:
		return value{}, false
	}
}

func mustValueOf(x any) value {
	v, ok := valueOf(x)
	if !ok {
		panic(&UnsupportedValueTypeError{Type: reflect.TypeOf(x).String()})
	}
	return v
}

// formatFloat renders f in the shortest decimal notation without exponent.
func formatFloat(f float64, bitSize int) string {
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
