package settings

import (
	"math"
	"reflect"
	"strconv"
)

// Value returns the container's entry under key converted to T, or def when
// the key is absent or the stored value cannot represent a T.
func Value[T any, K Key](c *Container[K], key K, def T) T {
	raw, found := c.data.Get(key)
	if !found {
		return def
	}
	if v, ok := As[T](raw); ok {
		return v
	}
	return def
}

// As converts a stored value to T: the exact type first, then numeric
// conversions and the string and boolean bridges stores blur scalars
// through. Fractions truncate toward zero; conversions that overflow T
// report false.
func As[T any](raw any) (T, bool) {
	var zero T
	if raw == nil {
		return zero, false
	}
	if v, ok := raw.(T); ok {
		return v, true
	}
	t := reflect.TypeOf(zero)
	if t == nil {
		// T is an interface the value does not implement.
		return zero, false
	}
	out := reflect.New(t).Elem()
	rv := reflect.ValueOf(raw)

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := toInt64(rv)
		if !ok || out.OverflowInt(n) {
			return zero, false
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := toUint64(rv)
		if !ok || out.OverflowUint(n) {
			return zero, false
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, ok := toFloat64(rv)
		if !ok || out.OverflowFloat(f) {
			return zero, false
		}
		out.SetFloat(f)
	case reflect.Bool:
		b, ok := toBool(rv)
		if !ok {
			return zero, false
		}
		out.SetBool(b)
	case reflect.String:
		s, ok := toString(rv)
		if !ok {
			return zero, false
		}
		out.SetString(s)
	case reflect.Slice:
		if t.Elem().Kind() != reflect.Uint8 {
			return zero, false
		}
		s, ok := toString(rv)
		if !ok {
			return zero, false
		}
		out.SetBytes([]byte(s))
	default:
		return zero, false
	}
	return out.Interface().(T), true
}

// bytesOf unwraps byte-slice values so they convert like their string form.
func bytesOf(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		return string(v.Bytes()), true
	}
	return "", false
}

func toInt64(v reflect.Value) (int64, bool) {
	if s, ok := bytesOf(v); ok {
		v = reflect.ValueOf(s)
	}
	switch {
	case v.CanInt():
		return v.Int(), true
	case v.CanUint():
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case v.CanFloat():
		return int64(v.Float()), true
	case v.Kind() == reflect.Bool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	case v.Kind() == reflect.String:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func toUint64(v reflect.Value) (uint64, bool) {
	if s, ok := bytesOf(v); ok {
		v = reflect.ValueOf(s)
	}
	switch {
	case v.CanInt():
		n := v.Int()
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case v.CanUint():
		return v.Uint(), true
	case v.CanFloat():
		f := v.Float()
		if f < 0 {
			return 0, false
		}
		return uint64(f), true
	case v.Kind() == reflect.Bool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	case v.Kind() == reflect.String:
		n, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func toFloat64(v reflect.Value) (float64, bool) {
	if s, ok := bytesOf(v); ok {
		v = reflect.ValueOf(s)
	}
	switch {
	case v.CanFloat():
		return v.Float(), true
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	case v.Kind() == reflect.Bool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	case v.Kind() == reflect.String:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toBool(v reflect.Value) (bool, bool) {
	if s, ok := bytesOf(v); ok {
		v = reflect.ValueOf(s)
	}
	switch {
	case v.Kind() == reflect.Bool:
		return v.Bool(), true
	case v.CanInt():
		return v.Int() != 0, true
	case v.CanUint():
		return v.Uint() != 0, true
	case v.CanFloat():
		return v.Float() != 0, true
	case v.Kind() == reflect.String:
		b, err := strconv.ParseBool(v.String())
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

func toString(v reflect.Value) (string, bool) {
	if s, ok := bytesOf(v); ok {
		return s, true
	}
	switch {
	case v.Kind() == reflect.String:
		return v.String(), true
	case v.CanInt():
		return strconv.FormatInt(v.Int(), 10), true
	case v.CanUint():
		return strconv.FormatUint(v.Uint(), 10), true
	case v.CanFloat():
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), true
	case v.Kind() == reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	}
	return "", false
}
