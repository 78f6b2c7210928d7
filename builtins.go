package regarray

import (
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// isNumeric accepts finite numbers and text that parses as one.
func isNumeric(v any) bool {
	_, ok := numberOf(v)
	return ok
}

// isInteger accepts numeric values equal to their integer reading.
// Text is compared against its leading integer prefix, so "4.0" is an
// integer but "4.2" and "1e3" are not.
func isInteger(v any) bool {
	rv, ok := indirect(v)
	if !ok {
		return false
	}
	if isIntegerKind(rv) {
		return true
	}

	f, ok := numberOf(v)
	if !ok {
		return false
	}
	if rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
		return f == math.Trunc(f)
	}

	s, ok := stringOf(v)
	if !ok {
		return false
	}
	prefix, ok := integerPrefix(s)
	return ok && prefix == f
}

// isDatetime accepts time values, integer timestamps, and text in one of
// the known layouts.
func isDatetime(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	}

	if isInteger(v) {
		return true
	}

	s, ok := stringOf(v)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

///////////////////////////////////////////////////////////////////////////////
// Optional validators
///////////////////////////////////////////////////////////////////////////////

// The validators below are not registered by default. Pass them in
// Validators to make them available to a grammar, e.g.
//
//	regarray.Compile("uuid string*", regarray.Validators{
//		"uuid":   regarray.UUID,
//		"string": regarray.String,
//	})

// UUID accepts uuid.UUID values, 16-byte arrays, and text that parses
// as a UUID.
func UUID(v any) (bool, error) {
	rv, ok := indirect(v)
	if !ok {
		return false, nil
	}
	if rv.Type() == UUIDType {
		return true, nil
	}
	if rv.Kind() == reflect.Array && rv.Len() == 16 && rv.Type().Elem().Kind() == reflect.Uint8 {
		return true, nil
	}

	s, ok := stringOf(v)
	if !ok {
		return false, nil
	}
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil, nil
}

// String accepts string kinds.
func String(v any) (bool, error) {
	rv, ok := indirect(v)
	return ok && rv.Kind() == reflect.String, nil
}

// Boolean accepts bool kinds.
func Boolean(v any) (bool, error) {
	rv, ok := indirect(v)
	return ok && rv.Kind() == reflect.Bool, nil
}

// Null accepts nil, including typed nil pointers.
func Null(v any) (bool, error) {
	_, ok := indirect(v)
	return !ok, nil
}

// Any accepts every element.
func Any(any) (bool, error) {
	return true, nil
}
