package regarray

import (
	"maps"
	"regexp"
	"slices"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$]\w*$`)

///////////////////////////////////////////////////////////////////////////////
// Validator Impl.
///////////////////////////////////////////////////////////////////////////////

// Validator decides whether a single sequence element is acceptable.
//
// Validators must be pure: the matcher may call a validator for the same
// element any number of times (including zero) and in any order. A non-nil
// error aborts the match in progress and is returned to the caller as is.
type Validator func(v any) (bool, error)

// Validators maps grammar names to validators. It is used to supply
// custom validators, or to override built-ins of the same name.
type Validators map[string]Validator

// Predicate adapts an error-free boolean function to a Validator.
func Predicate(fn func(v any) bool) Validator {
	if fn == nil {
		return nil
	}
	return func(v any) (bool, error) {
		return fn(v), nil
	}
}

// Builtins returns a fresh copy of the built-in validator table. Changing
// the returned map never affects other expressions.
func Builtins() Validators {
	return Validators{
		NumericValidatorName:  Predicate(isNumeric),
		IntegerValidatorName:  Predicate(isInteger),
		DatetimeValidatorName: Predicate(isDatetime),
	}
}

// Names returns the validator names in sorted order.
func (vs Validators) Names() []string {
	return slices.Sorted(maps.Keys(vs))
}

// effectiveValidators merges the built-ins with the caller's overrides.
// Same-named overrides replace built-ins.
func effectiveValidators(custom Validators) (Validators, error) {
	merged := Builtins()
	for _, name := range custom.Names() {
		fn := custom[name]
		if name == "" {
			return nil, newExpressionError(ErrInvalidArgument, "", -1, name, "validator name cannot be empty")
		}
		if !identifierPattern.MatchString(name) {
			return nil, newExpressionError(ErrInvalidArgument, "", -1, name,
				"validator name %q is not a valid identifier", name)
		}
		if fn == nil {
			return nil, newExpressionError(ErrInvalidArgument, "", -1, name,
				"invalid validator function: %s", name)
		}
		merged[name] = fn
	}
	return merged, nil
}

// Lookup resolves a validator by name.
func (vs Validators) Lookup(name string) (Validator, bool) {
	fn, ok := vs[name]
	return fn, ok && fn != nil
}
