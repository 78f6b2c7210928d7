package regarray

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Names of the built-in validators.
const (
	NumericValidatorName  = "numeric"
	IntegerValidatorName  = "integer"
	DatetimeValidatorName = "datetime"
)

// Unbounded is the Quantity.Max value meaning "no upper limit".
const Unbounded = -1

// Group punctuation.
const (
	GroupOpen  = '('
	GroupClose = ')'
)

// Sequence parser name constants for built in parsers.
const (
	JSONByteSliceParserName = "json-[]byte-parser"
	JSONStringParserName    = "json-string-parser"
	GJSONResultParserName   = "gjson-result-parser"
)

// lexErrorContextRuneCount is how much of the unmatched input a lexical
// error quotes.
const lexErrorContextRuneCount = 5

// reflect.TypeOf constants for type checks
var (
	JSONByteSliceType = reflect.TypeOf([]byte{})
	StringType        = reflect.TypeOf("")
	GJSONResultType   = reflect.TypeOf(gjson.Result{})
	UUIDType          = reflect.TypeOf(uuid.UUID{})
)

// datetimeLayouts are tried in order by the datetime validator.
var datetimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.DateTime,
	time.DateOnly,
	"2006-01-02T15:04:05",
}
