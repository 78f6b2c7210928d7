package regarray

import (
	"fmt"
	"log/slog"
)

// Options configures expression compilation.
type Options struct {
	// Validators are merged over the built-ins. A custom validator with a
	// built-in name replaces the built-in for this expression only.
	Validators Validators
	// Parsers convert additional data types for MatchSource. They take
	// precedence over default parsers of the same source type.
	Parsers []SequenceParser
	// Logger receives debug records about compilation. Nil discards.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Expression is a compiled grammar. It is immutable and safe for
// concurrent use by multiple goroutines.
type Expression struct {
	source  string
	nodes   []Node
	prog    program
	parsers sequenceParsers
}

// Compile parses source into an Expression, resolving validator names
// against the built-ins merged with validators.
func Compile(source string, validators Validators) (*Expression, error) {
	return CompileWithOptions(source, Options{Validators: validators})
}

// MustCompile is like Compile but panics if the expression cannot be
// compiled. It simplifies initialization of package-level expressions.
func MustCompile(source string, validators Validators) *Expression {
	expr, err := Compile(source, validators)
	if err != nil {
		panic(fmt.Sprintf("regarray: Compile(%q): %v", source, err))
	}
	return expr
}

// CompileWithOptions is Compile with full configuration.
//
// Compilation runs tokenizer, quantifier folding, parsing and program
// generation in order and fails on the first error; no Expression is
// returned on failure.
func CompileWithOptions(source string, opts Options) (*Expression, error) {
	log := opts.logger()

	validators, err := effectiveValidators(opts.Validators)
	if err != nil {
		return nil, err
	}

	parsers, err := newSequenceParsers(opts.Parsers)
	if err != nil {
		return nil, err
	}

	lx := &lexer{source: source, validators: validators}
	tokens, err := lx.tokenize()
	if err != nil {
		log.Debug("expression rejected", slog.String("source", source), slog.Any("error", err))
		return nil, err
	}

	tokens, err = foldQuantifiers(source, tokens)
	if err != nil {
		log.Debug("expression rejected", slog.String("source", source), slog.Any("error", err))
		return nil, err
	}

	nodes, err := parseTokens(source, tokens)
	if err != nil {
		log.Debug("expression rejected", slog.String("source", source), slog.Any("error", err))
		return nil, err
	}

	prog, err := compileProgram(nodes)
	if err != nil {
		log.Debug("expression rejected", slog.String("source", source), slog.Any("error", err))
		return nil, err
	}

	log.Debug("expression compiled",
		slog.String("source", source),
		slog.Int("tokens", len(tokens)),
		slog.Int("nodes", len(nodes)),
		slog.Int("instructions", len(prog)),
		slog.String("ast", FormatAST(nodes)),
	)

	return &Expression{
		source:  source,
		nodes:   nodes,
		prog:    prog,
		parsers: parsers,
	}, nil
}

// Source returns the text the expression was compiled from.
func (e *Expression) Source() string {
	return e.source
}

// String returns the source text of the expression.
func (e *Expression) String() string {
	return e.source
}

// AST returns a copy of the parsed grammar.
func (e *Expression) AST() []Node {
	return cloneNodes(e.nodes)
}

// Match reports whether the grammar accepts the whole of seq.
//
// The only error returned is one raised by a validator, unchanged; the
// search stops at that point.
func (e *Expression) Match(seq []any) (bool, error) {
	return e.prog.match(seq)
}

// MatchSource converts data to a sequence and matches it. data may be a
// slice or array of any element type, a JSON array in a []byte or string,
// a gjson.Result array, or any type handled by Options.Parsers.
func (e *Expression) MatchSource(data any) (bool, error) {
	seq, err := e.parsers.sequence(data)
	if err != nil {
		return false, err
	}
	return e.Match(seq)
}

// MatchSlice matches a typed slice without converting it by hand.
func MatchSlice[T any](e *Expression, seq []T) (bool, error) {
	return e.Match(toAnySlice(seq))
}
