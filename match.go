package regarray

import "fmt"

type opcode uint8

const (
	opLeaf   opcode = iota // greedy run of one validator
	opEnter                // open a repetition frame for a group
	opLoop                 // start another pass or leave the group
	opIter                 // end of a pass, back to opLoop
	opExit                 // drop the group's frame
	opAccept               // succeed if the whole sequence is consumed
)

// inst is one step of a compiled grammar. next is the pc of the group's
// opExit for opLoop, and of its opLoop for opIter.
type inst struct {
	op   opcode
	node *Node
	leaf Leaf
	next int
}

// program is the flat form of an AST that the matcher runs. Groups become
// loops, so matching depth does not grow with the input.
type program []inst

func compileProgram(nodes []Node) (program, error) {
	var prog program
	if err := prog.emit(nodes); err != nil {
		return nil, err
	}
	return append(prog, inst{op: opAccept}), nil
}

func (p *program) emit(nodes []Node) error {
	for i := range nodes {
		n := &nodes[i]
		switch a := n.Atom.(type) {
		case Leaf:
			*p = append(*p, inst{op: opLeaf, node: n, leaf: a})
		case Group:
			*p = append(*p, inst{op: opEnter, node: n})
			loop := len(*p)
			*p = append(*p, inst{op: opLoop, node: n})
			if err := p.emit(a.Nodes); err != nil {
				return err
			}
			*p = append(*p, inst{op: opIter, node: n, next: loop})
			(*p)[loop].next = len(*p)
			*p = append(*p, inst{op: opExit, node: n})
		default:
			return fmt.Errorf("%w: unexpected atom %T", ErrParserInternal, n.Atom)
		}
	}
	return nil
}

// groupFrame is the repetition state of one open group. Frames are not
// modified once created, so saved choices can share them.
type groupFrame struct {
	count  int // passes completed
	start  int // position the current pass began at
	parent *groupFrame
}

// choice is a saved alternative. A choice at an opLeaf retries that leaf
// with a run of count elements; any other resumes at pc as is.
type choice struct {
	pc    int
	pos   int
	count int
	frame *groupFrame
}

type memoKey struct {
	node *Node
	pos  int
}

// matcher holds the state of one match call. It is never shared.
type matcher struct {
	prog  program
	seq   []any
	memo  map[memoKey]bool
	stack []choice
}

// match reports whether prog accepts all of seq.
//
// Alternatives are explored greedy first: a leaf takes its longest run and
// gives elements back one at a time, a group tries another pass before
// leaving. Pending alternatives live on an explicit stack.
func (prog program) match(seq []any) (bool, error) {
	m := &matcher{prog: prog, seq: seq}

	pc, pos := 0, 0
	var frame *groupFrame

	for {
		in := &m.prog[pc]
		failed := false

		switch in.op {
		case opLeaf:
			q := in.node.Quantity
			run, err := m.span(in, pos)
			if err != nil {
				return false, err
			}
			if run < q.Min {
				failed = true
				break
			}
			if run > q.Min {
				m.push(choice{pc: pc, pos: pos, count: run - 1, frame: frame})
			}
			pos += run
			pc++

		case opEnter:
			frame = &groupFrame{start: pos, parent: frame}
			pc++

		case opLoop:
			q := in.node.Quantity
			switch {
			case q.allows(frame.count):
				if frame.count >= q.Min {
					m.push(choice{pc: in.next, pos: pos, frame: frame})
				}
				pc++
			case frame.count >= q.Min:
				pc = in.next
			default:
				failed = true
			}

		case opIter:
			q := in.node.Quantity
			switch {
			case pos != frame.start:
				frame = &groupFrame{count: frame.count + 1, start: pos, parent: frame.parent}
				pc = in.next
			case frame.count < q.Min:
				// An empty pass can be repeated, so it covers the rest of
				// the minimum at once.
				frame = &groupFrame{count: q.Min, start: pos, parent: frame.parent}
				pc = in.next
			default:
				failed = true
			}

		case opExit:
			frame = frame.parent
			pc++

		case opAccept:
			if pos == len(m.seq) {
				return true, nil
			}
			failed = true
		}

		if !failed {
			continue
		}
		if len(m.stack) == 0 {
			return false, nil
		}

		c := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		pc, pos, frame = c.pc, c.pos, c.frame

		if leaf := &m.prog[pc]; leaf.op == opLeaf {
			if c.count > leaf.node.Quantity.Min {
				m.push(choice{pc: pc, pos: pos, count: c.count - 1, frame: frame})
			}
			pos += c.count
			pc++
		}
	}
}

func (m *matcher) push(c choice) {
	m.stack = append(m.stack, c)
}

// span counts the accepted elements from pos, up to what the leaf's
// quantity allows.
func (m *matcher) span(in *inst, pos int) (int, error) {
	limit := len(m.seq) - pos
	if q := in.node.Quantity; q.Bounded() && q.Max < limit {
		limit = q.Max
	}

	run := 0
	for run < limit {
		ok, err := m.check(in.node, in.leaf, pos+run)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		run++
	}
	return run, nil
}

// check runs the leaf validator on seq[pos], once per node and position.
func (m *matcher) check(n *Node, leaf Leaf, pos int) (bool, error) {
	key := memoKey{node: n, pos: pos}
	if ok, seen := m.memo[key]; seen {
		return ok, nil
	}

	ok, err := leaf.Validator(m.seq[pos])
	if err != nil {
		return false, err
	}

	if m.memo == nil {
		m.memo = make(map[memoKey]bool)
	}
	m.memo[key] = ok
	return ok, nil
}
