package regarray

import (
	"fmt"
	"reflect"

	"github.com/tidwall/gjson"
)

// typeErasedParse adapts a typed parse function to SequenceParser.Parse.
func typeErasedParse[S any](parse func(source S) ([]any, error)) func(data any) ([]any, error) {
	return func(data any) ([]any, error) {
		typed, ok := data.(S)
		if !ok {
			return nil, fmt.Errorf("expected source type %T, got %T", *new(S), data)
		}
		return parse(typed)
	}
}

// jsonArray converts an array result to a sequence. Elements are plain Go
// values: float64, string, bool, nil, map[string]any or []any.
func jsonArray(result gjson.Result) ([]any, error) {
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: JSON value of type %s is not an array", ErrNotSequence, result.Type)
	}

	elements := result.Array()
	seq := make([]any, len(elements))
	for i, el := range elements {
		seq[i] = el.Value()
	}
	return seq, nil
}

type JSONByteSliceSequenceParser struct{}

func NewJSONByteSliceSequenceParser() *JSONByteSliceSequenceParser {
	return &JSONByteSliceSequenceParser{}
}

func (jsp *JSONByteSliceSequenceParser) SourceType() reflect.Type {
	return JSONByteSliceType
}

func (jsp *JSONByteSliceSequenceParser) Name() string {
	return JSONByteSliceParserName
}

func (jsp *JSONByteSliceSequenceParser) Parse(data any) ([]any, error) {
	return typeErasedParse(jsp.parse)(data)
}

func (jsp *JSONByteSliceSequenceParser) parse(source []byte) ([]any, error) {
	if !gjson.ValidBytes(source) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrNotSequence)
	}
	return jsonArray(gjson.ParseBytes(source))
}

type JSONStringSequenceParser struct{}

func NewJSONStringSequenceParser() *JSONStringSequenceParser {
	return &JSONStringSequenceParser{}
}

func (jsp *JSONStringSequenceParser) SourceType() reflect.Type {
	return StringType
}

func (jsp *JSONStringSequenceParser) Name() string {
	return JSONStringParserName
}

func (jsp *JSONStringSequenceParser) Parse(data any) ([]any, error) {
	return typeErasedParse(jsp.parse)(data)
}

func (jsp *JSONStringSequenceParser) parse(source string) ([]any, error) {
	if !gjson.Valid(source) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrNotSequence)
	}
	return jsonArray(gjson.Parse(source))
}

// GJSONResultSequenceParser matches against an already parsed gjson
// result, e.g. one path of a larger document:
//
//	expr.MatchSource(gjson.GetBytes(body, "rows.0"))
type GJSONResultSequenceParser struct{}

func NewGJSONResultSequenceParser() *GJSONResultSequenceParser {
	return &GJSONResultSequenceParser{}
}

func (gp *GJSONResultSequenceParser) SourceType() reflect.Type {
	return GJSONResultType
}

func (gp *GJSONResultSequenceParser) Name() string {
	return GJSONResultParserName
}

func (gp *GJSONResultSequenceParser) Parse(data any) ([]any, error) {
	return typeErasedParse(jsonArray)(data)
}
