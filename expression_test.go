package regarray

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Run("SourceAndString", func(t *testing.T) {
		src := "(numeric integer)+ # pairs\n"
		expr, err := Compile(src, nil)
		require.NoError(t, err)
		assert.Equal(t, src, expr.Source())
		assert.Equal(t, src, expr.String())
	})

	t.Run("AST", func(t *testing.T) {
		expr, err := Compile("a (b c?)+", letters)
		require.NoError(t, err)
		assert.Equal(t, "a (b c?)+", FormatAST(expr.AST()))
	})

	t.Run("ASTIsACopy", func(t *testing.T) {
		expr, err := Compile("a (b c?)+", letters)
		require.NoError(t, err)

		ast := expr.AST()
		ast[0].Quantity = Quantity{0, Unbounded}
		group := ast[1].Atom.(Group)
		group.Nodes[0] = Node{Atom: Leaf{Name: "c", Validator: literal("c")}, Quantity: One}

		assert.Equal(t, "a (b c?)+", FormatAST(expr.AST()))
		ok, err := expr.Match(seq("abcb"))
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

// Construction failures of every kind, through the public entry point.
func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		validators Validators
		kind       error
		contains   string
	}{
		{"leading_quantifier", "+abc", letters, ErrQuantifierPlacement, "+"},
		{"inverted_range", "{3,2}", letters, ErrRange, "{3,2}"},
		{"inverted_range_on_atom", "a{3,2}", letters, ErrRange, "{3,2}"},
		{"unknown_validator", "frobnicate", nil, ErrUnknownValidator, "frobnicate"},
		{"unclosed_group", "(a", letters, ErrUnbalancedGroup, "("},
		{"stray_close", "a)", letters, ErrUnbalancedGroup, ")"},
		{"lexical", "a & b", letters, ErrLex, "&"},
		{"nil_validator", "a", Validators{"a": nil}, ErrInvalidArgument, "a"},
		{"bad_validator_name", "a", Validators{"a-b": Any}, ErrInvalidArgument, "a-b"},
		{"quantified_group_open", "(*a)", letters, ErrQuantifierPlacement, "*"},
		{"juxtaposed", "a+?", letters, ErrQuantifierPlacement, "?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Compile(tt.source, tt.validators)
			require.Error(t, err)
			assert.Nil(t, expr)
			assert.True(t, errors.Is(err, tt.kind), "expected %v, got %v", tt.kind, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCompileErrorPrecedence(t *testing.T) {
	// Lexing runs to completion before quantifiers are checked, and
	// quantifiers are checked before groups.
	_, err := Compile("+frobnicate", nil)
	assert.True(t, errors.Is(err, ErrUnknownValidator))

	_, err = Compile("(+a", letters)
	assert.True(t, errors.Is(err, ErrQuantifierPlacement))
}

func TestMustCompile(t *testing.T) {
	assert.NotPanics(t, func() {
		MustCompile("numeric*", nil)
	})
	assert.PanicsWithValue(t,
		`regarray: Compile("frobnicate"): unknown validator: frobnicate at character 0`,
		func() { MustCompile("frobnicate", nil) },
	)
}

func TestCompileOverridesBuiltin(t *testing.T) {
	input := []any{"n", "n"}
	numbers := []any{1, 2}

	builtin := MustCompile("numeric+", nil)
	ok, err := builtin.Match(input)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = builtin.Match(numbers)
	require.NoError(t, err)
	assert.True(t, ok)

	custom := MustCompile("numeric+", Validators{NumericValidatorName: literal("n")})
	ok, err = custom.Match(input)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = custom.Match(numbers)
	require.NoError(t, err)
	assert.False(t, ok)

	// The override is local to the expression that received it.
	ok, err = MustCompile("numeric+", nil).Match(numbers)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompileValidatorsAreCopied(t *testing.T) {
	validators := Validators{"a": literal("a")}
	expr := MustCompile("a", validators)

	validators["a"] = literal("z")
	delete(validators, "a")

	ok, err := expr.Match(seq("a"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompileWithOptionsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := CompileWithOptions("(numeric integer)+", Options{Logger: logger})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "expression compiled")
	assert.Contains(t, buf.String(), "nodes=1")

	buf.Reset()
	_, err = CompileWithOptions("(numeric", Options{Logger: logger})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "expression rejected")
}

func TestCompileWithOptionsNilParser(t *testing.T) {
	_, err := CompileWithOptions("a", Options{
		Validators: letters,
		Parsers:    []SequenceParser{nil},
	})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestExpressionErrorFormat(t *testing.T) {
	_, err := Compile("a b{5,1}", letters)
	require.Error(t, err)

	var exprErr *ExpressionError
	require.True(t, errors.As(err, &exprErr))
	assert.Equal(t, ErrRange, exprErr.Kind)
	assert.Equal(t, 3, exprErr.Offset)
	assert.Equal(t, "{5,1}", exprErr.Symbol)
	assert.Equal(t, "a b{5,1}", exprErr.Source)
	assert.Equal(t, "invalid quantifier range: {5,1} at character 3", exprErr.Error())
	assert.True(t, strings.HasPrefix(err.Error(), ErrRange.Error()))
}

func TestMatchSlice(t *testing.T) {
	expr := MustCompile("integer{2,5} numeric?", nil)

	ok, err := MatchSlice(expr, []int{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = MatchSlice(expr, []string{"1", "2", "2.5"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = MatchSlice(expr, []float64{1.5})
	require.NoError(t, err)
	assert.False(t, ok)
}
