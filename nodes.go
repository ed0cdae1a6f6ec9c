package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Each node is
// owned by exactly one parent.
type node struct {
	kind nodeKind

	// name is the source text of a number, the name of a constant, or the
	// name of a called function.
	name string
	// num is the value of a number.
	num float64
	// fn is the called function.
	fn *builtin

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // literal num
	nodeConst // constant name, pi or e
	nodeAns   // last answer
	nodeMem   // memory register

	nodeCall // call fn on left

	nodeNeg  // negate left
	nodeFact // factorial of left
	nodePct  // left divided by 100
	nodeAdd  // left plus right
	nodeSub  // left minus right
	nodeMul  // left times right
	nodeDiv  // left divided by right
	nodePow  // left to the power of right
)

var nodeKindNames = [...]string{
	nodeNone:  "None",
	nodeNum:   "Num",
	nodeConst: "Const",
	nodeAns:   "Ans",
	nodeMem:   "Mem",
	nodeCall:  "Call",
	nodeNeg:   "Neg",
	nodeFact:  "Fact",
	nodePct:   "Pct",
	nodeAdd:   "Add",
	nodeSub:   "Sub",
	nodeMul:   "Mul",
	nodeDiv:   "Div",
	nodePow:   "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes n fully bracketed, alternating round and square brackets by
// depth so that grouping is visible at a glance.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, !square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, !square)
		}
		b.WriteByte('$')
	case nodeNum, nodeConst:
		b.WriteString(n.name)
	case nodeAns:
		b.WriteString("Ans")
	case nodeMem:
		b.WriteString("MR")
	case nodeCall:
		b.WriteString(n.name)
		n.left.fmt(b, !square)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeFact:
		n.left.fmt(b, !square)
		b.WriteByte('!')
	case nodePct:
		n.left.fmt(b, !square)
		b.WriteByte('%')
	case nodeAdd:
		n.binary(b, square, " + ")
	case nodeSub:
		n.binary(b, square, " - ")
	case nodeMul:
		n.binary(b, square, " × ")
	case nodeDiv:
		n.binary(b, square, " ÷ ")
	case nodePow:
		n.binary(b, square, " ^ ")
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) binary(b *strings.Builder, square bool, op string) {
	n.left.fmt(b, !square)
	b.WriteString(op)
	n.right.fmt(b, !square)
}
