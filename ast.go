package regarray

import (
	"strconv"
	"strings"
)

// Quantity is an inclusive repeat bound. Max is Unbounded for "no limit".
type Quantity struct {
	Min int
	Max int
}

// One is the quantity of an atom that carries no quantifier.
var One = Quantity{Min: 1, Max: 1}

// Bounded reports whether q has a finite upper limit.
func (q Quantity) Bounded() bool {
	return q.Max != Unbounded
}

// allows reports whether q permits another repeat after count repeats.
func (q Quantity) allows(count int) bool {
	return !q.Bounded() || count < q.Max
}

// String renders q in the shortest grammar syntax: "", "?", "+", "*",
// "{m}" or "{m,n}".
func (q Quantity) String() string {
	switch {
	case q == One:
		return ""
	case q.Min == 0 && q.Max == 1:
		return "?"
	case q.Min == 1 && !q.Bounded():
		return "+"
	case q.Min == 0 && !q.Bounded():
		return "*"
	case !q.Bounded():
		// Not expressible in the grammar; rendered for debugging only.
		return "{" + strconv.Itoa(q.Min) + ",}"
	case q.Min == q.Max:
		return "{" + strconv.Itoa(q.Min) + "}"
	default:
		return "{" + strconv.Itoa(q.Min) + "," + strconv.Itoa(q.Max) + "}"
	}
}

// Atom is the quantifiable unit of a Node: a Leaf or a Group.
type Atom interface {
	atom()
}

// Leaf matches one element with a named validator.
type Leaf struct {
	Name      string
	Validator Validator
}

// Group matches its child nodes in order, as one unit.
type Group struct {
	Nodes []Node
}

func (Leaf) atom()  {}
func (Group) atom() {}

// Node is a quantified atom.
type Node struct {
	Atom     Atom
	Quantity Quantity
}

// String renders n as grammar text.
func (n Node) String() string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

// FormatAST renders nodes as canonical grammar text. Compiling the
// result with the same validators yields an equal AST.
func FormatAST(nodes []Node) string {
	var sb strings.Builder
	writeNodes(&sb, nodes)
	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeNode(sb, n)
	}
}

func writeNode(sb *strings.Builder, n Node) {
	switch a := n.Atom.(type) {
	case Leaf:
		sb.WriteString(a.Name)
	case Group:
		sb.WriteByte(GroupOpen)
		writeNodes(sb, a.Nodes)
		sb.WriteByte(GroupClose)
	}
	sb.WriteString(n.Quantity.String())
}

// cloneNodes deep-copies an AST so callers cannot reach shared state.
func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if g, ok := n.Atom.(Group); ok {
			n.Atom = Group{Nodes: cloneNodes(g.Nodes)}
		}
		out[i] = n
	}
	return out
}
