package regarray

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

///////////////////////////////////////////////////////////////////////////////
// Helpers
///////////////////////////////////////////////////////////////////////////////

// indirect follows pointers and interfaces down to a concrete value.
// It reports false for nil and invalid values.
func indirect(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

// stringOf returns the textual form of v when v is text-like.
//
// Currently supports:
//   - string and named string kinds (including json.Number)
//   - []byte
//   - encoding.TextMarshaler
//   - fmt.Stringer
func stringOf(v any) (string, bool) {
	rv, ok := indirect(v)
	if !ok {
		return "", false
	}

	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case encoding.TextMarshaler:
		text, err := s.MarshalText()
		if err != nil {
			return "", false
		}
		return string(text), true
	case fmt.Stringer:
		return s.String(), true
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true
		}
	}
	return "", false
}

// numberOf returns the finite numeric value of v.
//
// Go integer and float kinds are read directly; anything text-like is
// parsed as a float after trimming surrounding whitespace.
func numberOf(v any) (float64, bool) {
	rv, ok := indirect(v)
	if !ok {
		return 0, false
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, isFinite(f)
	case reflect.Bool:
		return 0, false
	}

	s, ok := stringOf(v)
	if !ok {
		return 0, false
	}
	return parseNumber(s)
}

// parseNumber parses the whole of s as a finite float. Unsigned 0x, 0o
// and 0b integer literals are numbers too.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return prefixedInteger(s)
	}
	return f, isFinite(f)
}

func prefixedInteger(s string) (float64, bool) {
	if len(s) < 3 || s[0] != '0' || !strings.ContainsRune("xXoObB", rune(s[1])) {
		return 0, false
	}
	if strings.ContainsRune(s, '_') {
		return 0, false
	}
	u, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false
	}
	return float64(u), true
}

// integerPrefix reads an optionally signed run of decimal digits at the
// start of s, ignoring leading whitespace. "42.5" reads as 42, "1e3" as 1.
func integerPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// isIntegerKind reports whether rv holds a Go integer kind.
func isIntegerKind(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}
