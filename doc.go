// Package regarray provides regular expressions over sequences of
// arbitrary values.
//
// Where an ordinary regular expression matches characters, a regarray
// expression matches elements: each atom is the name of a validator, a
// predicate over one element, and atoms can be grouped and repeated with
// the usual quantifiers.
//
//	expr, err := regarray.Compile("(numeric integer)+ datetime?", nil)
//	if err != nil {
//		return err
//	}
//	ok, err := expr.Match([]any{1.5, 2, "3.25", "4"})
//
// The grammar is:
//   - `name`: one element accepted by validator `name`
//   - `( ... )`: a group, quantified as one unit
//   - `?`, `+`, `*`: 0-1, 1 or more, 0 or more repeats of the preceding atom
//   - `{m}`, `{m,n}`: exactly m, or m to n repeats
//   - `# text`: a comment running to the end of the line
//   - whitespace separates tokens and is otherwise ignored
//
// Matching is always anchored: the expression must consume the whole
// sequence. Quantifiers are greedy and backtrack as needed.
//
// The built-in validators are:
//   - `numeric`: finite numbers, and text that parses as one
//   - `integer`: numeric values without a fractional part ("4.0" counts)
//   - `datetime`: time.Time values, integer timestamps, and date text
//
// Custom validators are passed to Compile by name, and may replace the
// built-ins for that expression. Names are resolved when the expression
// is compiled, so a misspelled validator is a compile error, not a
// failed match:
//
//	expr, err := regarray.Compile("uuid numeric{2}", regarray.Validators{
//		"uuid": regarray.UUID,
//	})
//
// A compiled Expression is immutable and may be shared by any number of
// goroutines. Matching has no timeout: grammars that nest unbounded
// quantifiers, like `(numeric*)*`, can take exponential time on inputs
// that fail late, so callers matching untrusted grammars should bound the
// call themselves. Pending alternatives are kept on the heap rather than
// the call stack, so memory, not stack depth, grows with the input
// length and the number of group repeats.
//
// Compile errors wrap one of the Err* kinds in this package and are of
// type *ExpressionError, which carries the offending offset and text:
//
//	_, err := regarray.Compile("numeric{3,2}", nil)
//	errors.Is(err, regarray.ErrRange) // true
package regarray
