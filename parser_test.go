package regarray

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source string) ([]Node, error) {
	t.Helper()
	folded, err := fold(t, source)
	require.NoError(t, err)
	return parseTokens(source, folded)
}

func TestParseTokens(t *testing.T) {
	t.Run("Leaves", func(t *testing.T) {
		nodes, err := parse(t, "a b+ c?")
		require.NoError(t, err)
		require.Len(t, nodes, 3)

		for i, want := range []struct {
			name string
			q    Quantity
		}{{"a", One}, {"b", Quantity{1, Unbounded}}, {"c", Quantity{0, 1}}} {
			leaf, ok := nodes[i].Atom.(Leaf)
			require.True(t, ok, "node %d should be a leaf", i)
			assert.Equal(t, want.name, leaf.Name)
			assert.NotNil(t, leaf.Validator)
			assert.Equal(t, want.q, nodes[i].Quantity)
		}
	})

	t.Run("GroupTakesCloseQuantity", func(t *testing.T) {
		nodes, err := parse(t, "(a b)+")
		require.NoError(t, err)
		require.Len(t, nodes, 1)

		group, ok := nodes[0].Atom.(Group)
		require.True(t, ok)
		assert.Equal(t, Quantity{1, Unbounded}, nodes[0].Quantity)
		require.Len(t, group.Nodes, 2)
		assert.Equal(t, One, group.Nodes[0].Quantity)
		assert.Equal(t, One, group.Nodes[1].Quantity)
	})

	t.Run("Nested", func(t *testing.T) {
		nodes, err := parse(t, "a ((b){2} c)* a")
		require.NoError(t, err)
		require.Len(t, nodes, 3)

		outer, ok := nodes[1].Atom.(Group)
		require.True(t, ok)
		assert.Equal(t, Quantity{0, Unbounded}, nodes[1].Quantity)
		require.Len(t, outer.Nodes, 2)

		inner, ok := outer.Nodes[0].Atom.(Group)
		require.True(t, ok)
		assert.Equal(t, Quantity{2, 2}, outer.Nodes[0].Quantity)
		require.Len(t, inner.Nodes, 1)
		assert.Equal(t, "b", inner.Nodes[0].Atom.(Leaf).Name)

		assert.Equal(t, "c", outer.Nodes[1].Atom.(Leaf).Name)
		assert.Equal(t, "a", nodes[2].Atom.(Leaf).Name)
	})

	t.Run("SiblingGroups", func(t *testing.T) {
		nodes, err := parse(t, "(a)(b)?")
		require.NoError(t, err)
		require.Len(t, nodes, 2)
		assert.Equal(t, One, nodes[0].Quantity)
		assert.Equal(t, Quantity{0, 1}, nodes[1].Quantity)
	})

	t.Run("EmptyGroup", func(t *testing.T) {
		nodes, err := parse(t, "()*")
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		group, ok := nodes[0].Atom.(Group)
		require.True(t, ok)
		assert.Empty(t, group.Nodes)
	})

	t.Run("Empty", func(t *testing.T) {
		nodes, err := parse(t, "")
		require.NoError(t, err)
		assert.Empty(t, nodes)
	})
}

func TestParseTokensUnbalanced(t *testing.T) {
	tests := []struct {
		name   string
		source string
		offset int
	}{
		{"unclosed", "(a", 0},
		{"stray_close", "a)", 1},
		{"unclosed_outer", "((a)", 0},
		{"extra_close", "(a))", 3},
		{"close_before_open", ")(", 0},
		{"unclosed_inner", "(a (b)", 0},
		{"nested_stray_close", "(a) b) c", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := parse(t, tt.source)
			require.Error(t, err)
			assert.Nil(t, nodes)
			assert.True(t, errors.Is(err, ErrUnbalancedGroup), "got %v", err)

			var exprErr *ExpressionError
			require.True(t, errors.As(err, &exprErr))
			assert.Equal(t, tt.offset, exprErr.Offset)
		})
	}
}

func TestParseTokensInternalError(t *testing.T) {
	// An unfolded stream still holds quantifier tokens.
	tokens, err := Tokenize("a+", letters)
	require.NoError(t, err)

	nodes, err := parseTokens("a+", tokens)
	require.Error(t, err)
	assert.Nil(t, nodes)
	assert.True(t, errors.Is(err, ErrParserInternal))
}

func TestMatchingClose(t *testing.T) {
	tokens, err := Tokenize("((a)(b)) (c", letters)
	require.NoError(t, err)

	assert.Equal(t, 7, matchingClose(tokens, 0))
	assert.Equal(t, 3, matchingClose(tokens, 1))
	assert.Equal(t, 6, matchingClose(tokens, 4))
	assert.Equal(t, -1, matchingClose(tokens, 8))
}

func TestFormatAST(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"", ""},
		{"a", "a"},
		{"  a   b ", "a b"},
		{"(numeric integer)+", "(numeric integer)+"},
		{"a{1} b{0,1} c{1,3}", "a b? c{1,3}"},
		{"a{1,1} b{0,1} c{2,5}", "a b? c{2,5}"},
		{"(a # comment\n b)*", "(a b)*"},
		{"((a)? ()){3}", "((a)? ()){3}"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			nodes, err := parse(t, tt.source)
			require.NoError(t, err)
			got := FormatAST(nodes)
			assert.Equal(t, tt.want, got)

			// The rendering compiles back to the same grammar.
			again, err := parse(t, got)
			require.NoError(t, err)
			assert.Equal(t, got, FormatAST(again))
		})
	}
}

func TestQuantityString(t *testing.T) {
	assert.Equal(t, "", One.String())
	assert.Equal(t, "?", Quantity{0, 1}.String())
	assert.Equal(t, "+", Quantity{1, Unbounded}.String())
	assert.Equal(t, "*", Quantity{0, Unbounded}.String())
	assert.Equal(t, "{3}", Quantity{3, 3}.String())
	assert.Equal(t, "{0}", Quantity{0, 0}.String())
	assert.Equal(t, "{2,4}", Quantity{2, 4}.String())
	assert.Equal(t, "{2,}", Quantity{2, Unbounded}.String())
}
