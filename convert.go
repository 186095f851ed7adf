package gridsheet

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// convertTo converts v to type t. Pointer targets are treated as nullable
// values of their element type. A nil value converts only to string ("")
// and to pointer or interface types.
func convertTo(v any, t reflect.Type) (any, error) {
	if t == nil || t.Kind() == reflect.Interface {
		return v, nil
	}
	if t.Kind() == reflect.Pointer {
		if v == nil {
			return reflect.Zero(t).Interface(), nil
		}
		inner, err := convertTo(v, t.Elem())
		if err != nil {
			return nil, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(reflect.ValueOf(inner))
		return p.Interface(), nil
	}

	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.Value{}
			break
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		if t.Kind() == reflect.String {
			return reflect.Zero(t).Interface(), nil
		}
		return nil, fmt.Errorf("%w: nil to %s", ErrNotConvertible, t)
	}
	if rv.Type() == t {
		return rv.Interface(), nil
	}

	out := reflect.New(t).Elem()
	ok := true
	switch t.Kind() {
	case reflect.String:
		out.SetString(toString(rv))
	case reflect.Bool:
		var b bool
		if b, ok = toBool(rv); ok {
			out.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if n, ok = toInt64(rv); ok && !out.OverflowInt(n) {
			out.SetInt(n)
		} else {
			ok = false
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var n int64
		if n, ok = toInt64(rv); ok && n >= 0 && !out.OverflowUint(uint64(n)) {
			out.SetUint(uint64(n))
		} else {
			ok = false
		}
	case reflect.Float32, reflect.Float64:
		var f float64
		if f, ok = toFloat64Value(rv); ok && !out.OverflowFloat(f) {
			out.SetFloat(f)
		} else {
			ok = false
		}
	default:
		if rv.Type().ConvertibleTo(t) {
			return rv.Convert(t).Interface(), nil
		}
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s to %s", ErrNotConvertible, rv.Type(), t)
	}
	return out.Interface(), nil
}

func toString(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(rv.Interface())
}

func toBool(rv reflect.Value) (bool, bool) {
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.String:
		b, err := strconv.ParseBool(strings.TrimSpace(rv.String()))
		return b, err == nil
	}
	if f, ok := toFloat64Value(rv); ok {
		return f != 0, true
	}
	return false, false
}

func toInt64(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case reflect.Float32, reflect.Float64:
		return floatToInt64(rv.Float())
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// toFloat64Value converts numeric, boolean and numeric-string values to float64.
func toFloat64Value(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		return f, err == nil
	}
	return 0, false
}

// toFloat64 attempts to convert a value to float64.
func toFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return toFloat64Value(reflect.ValueOf(v))
}

// zeroOf returns the zero value of v's dynamic type, or nil for nil.
func zeroOf(v any) any {
	if v == nil {
		return nil
	}
	return reflect.Zero(reflect.TypeOf(v)).Interface()
}
