package regarray

import (
	"fmt"
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// SequenceParser Interface
///////////////////////////////////////////////////////////////////////////////

// SequenceParser turns caller data of one source type into the element
// sequence an Expression matches against.
//
// Parsers are selected by the exact reflect.Type of the data, so a parser
// for string and a parser for a named string type do not collide.
//
// # The following are implemented by default:
//   - JSONByteSliceSequenceParser: a JSON array held in a []byte.
//   - JSONStringSequenceParser: a JSON array held in a string.
//   - GJSONResultSequenceParser: an array gjson.Result.
type SequenceParser interface {
	// Parse converts data into a sequence. It is only called with data
	// of SourceType.
	Parse(data any) ([]any, error)
	// SourceType returns the reflect.Type of the data this parser works with
	SourceType() reflect.Type
	// Name returns an identifier for this parser, used in log records
	Name() string
}

///////////////////////////////////////////////////////////////////////////////
// Parser registry
///////////////////////////////////////////////////////////////////////////////

// sequenceParsers maps a source type to its parser. It is built once per
// Expression and never modified afterwards.
type sequenceParsers map[reflect.Type]SequenceParser

func defaultSequenceParsers() []SequenceParser {
	return []SequenceParser{
		NewJSONByteSliceSequenceParser(),
		NewJSONStringSequenceParser(),
		NewGJSONResultSequenceParser(),
	}
}

// newSequenceParsers registers the defaults, then custom. A custom parser
// replaces a default registered for the same source type.
func newSequenceParsers(custom []SequenceParser) (sequenceParsers, error) {
	registry := make(sequenceParsers)
	for _, parser := range defaultSequenceParsers() {
		registry[parser.SourceType()] = parser
	}

	for _, parser := range custom {
		if parser == nil {
			return nil, newExpressionError(ErrInvalidArgument, "", -1, "", "sequence parser cannot be nil")
		}
		registry[parser.SourceType()] = parser
	}
	return registry, nil
}

// sequence resolves data to a sequence.
//
// The order is: []any as is, a parser registered for the exact type, then
// any other slice or array through reflection.
func (sp sequenceParsers) sequence(data any) ([]any, error) {
	if seq, ok := data.([]any); ok {
		return seq, nil
	}
	if data == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrNotSequence)
	}

	if parser, ok := sp[reflect.TypeOf(data)]; ok {
		seq, err := parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", parser.Name(), err)
		}
		return seq, nil
	}

	return reflectSequence(data)
}

// reflectSequence copies the elements of any slice or array into a []any.
func reflectSequence(data any) ([]any, error) {
	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Array {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		seq := make([]any, rv.Len())
		for i := range seq {
			seq[i] = rv.Index(i).Interface()
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotSequence, data)
	}
}

// toAnySlice widens a typed slice.
func toAnySlice[T any](seq []T) []any {
	out := make([]any, len(seq))
	for i, v := range seq {
		out[i] = v
	}
	return out
}
