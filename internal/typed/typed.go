// Package typed converts extracted fragments into Go values.
package typed

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Value is the closed set of kinds a live literal can hold.
type Value interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~string
}

// Parse converts frag into a T. It reports false when frag does not fit the
// grammar or range of T; the caller keeps its previous value in that case.
func Parse[T Value](frag string) (T, bool) {
	var out T
	rv := reflect.ValueOf(&out).Elem()

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(firstLine(frag))
	case reflect.Bool:
		b, ok := ParseBool(frag)
		if !ok {
			return out, false
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(frag), 0, rv.Type().Bits())
		if err != nil {
			return out, false
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(frag), 0, rv.Type().Bits())
		if err != nil {
			return out, false
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(frag), rv.Type().Bits())
		if err != nil {
			return out, false
		}
		rv.SetFloat(f)
	default:
		return out, false
	}
	return out, true
}

// Format renders v the way Parse reads it back.
func Format[T Value](v T) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
	default:
		return fmt.Sprint(v)
	}
}

// Kind names the kind of T for log records and error messages.
func Kind[T Value]() string {
	var zero T
	return reflect.TypeOf(zero).Kind().String()
}

// ParseBool accepts true/false, t/f, 1/0, yes/no, y/n and on/off in any case.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes", "y", "on":
		return true, true
	case "false", "f", "0", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
