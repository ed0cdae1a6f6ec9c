package calc

import (
	"fmt"
	"strings"
)

// AngleMode selects the unit of angles for trigonometric functions.
type AngleMode int8

const (
	// Degrees is the default angle mode.
	Degrees AngleMode = iota
	Radians
)

func (m AngleMode) String() string {
	if m == Radians {
		return "RAD"
	}
	return "DEG"
}

// Toggle returns the other angle mode.
func (m AngleMode) Toggle() AngleMode {
	if m == Radians {
		return Degrees
	}
	return Radians
}

// ParseAngleMode parses an angle mode name: deg, degrees, rad, or radians, in
// any case.
func ParseAngleMode(s string) (AngleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees":
		return Degrees, nil
	case "rad", "radian", "radians":
		return Radians, nil
	default:
		return Degrees, fmt.Errorf("unknown angle mode %q", s)
	}
}

// Env holds everything an expression can depend on besides its own text.
type Env struct {
	// Angle is the angle mode for trigonometric functions.
	Angle AngleMode
	// Ans is the formatted last answer. Empty is the same as "0".
	Ans string
	// Memory is the memory register, or nil if nothing has been stored.
	Memory *Value
}

// Eval evaluates the expression.
func (e *Expr) Eval(env Env) (Value, error) {
	return e.n.eval(&env)
}

// EvalString is a shortcut to tokenize, parse, and evaluate an expression.
func EvalString(src string, env Env) (Value, error) {
	e, err := ParseString(src)
	if err != nil {
		return Value{}, err
	}
	return e.Eval(env)
}

// eval computes the node's value.
func (n *node) eval(env *Env) (Value, error) {
	var (
		v   Value
		err error
	)
	switch n.kind {
	case nodeNum:
		v = Real(n.num)
	case nodeConst:
		v = Real(constants[n.name])
	case nodeAns:
		if env.Ans == "" {
			return Real(0), nil
		}
		v, err = ParseValue(env.Ans)
		if err != nil {
			return Value{}, fmt.Errorf("invalid last answer: %w", err)
		}
	case nodeMem:
		if env.Memory == nil {
			return Value{}, ErrEmptyMemory
		}
		v = *env.Memory
	case nodeCall:
		x, err := n.left.eval(env)
		if err != nil {
			return Value{}, err
		}
		v, err = n.fn.call(x, env.Angle)
		if err != nil {
			return Value{}, err
		}
	case nodeNeg:
		x, err := n.left.eval(env)
		if err != nil {
			return Value{}, err
		}
		v = neg(x)
	case nodeFact:
		x, err := n.left.eval(env)
		if err != nil {
			return Value{}, err
		}
		v, err = factorial(x)
		if err != nil {
			return Value{}, err
		}
	case nodePct:
		x, err := n.left.eval(env)
		if err != nil {
			return Value{}, err
		}
		v = x.scale(0.01)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(env)
		if err != nil {
			return Value{}, err
		}
		r, err := n.right.eval(env)
		if err != nil {
			return Value{}, err
		}
		switch n.kind {
		case nodeAdd:
			v = add(l, r)
		case nodeSub:
			v = sub(l, r)
		case nodeMul:
			v = mul(l, r)
		case nodeDiv:
			v, err = div(l, r)
		case nodePow:
			v, err = pow(l, r)
		}
		if err != nil {
			return Value{}, err
		}
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
	switch {
	case v.isInf():
		return Value{}, &OverflowError{Op: n.op()}
	case v.isNaN():
		return Value{}, &DomainError{Op: n.op(), Input: v}
	}
	return v, nil
}

// op names the operation a node performs, for error messages.
func (n *node) op() string {
	switch n.kind {
	case nodeNum, nodeConst, nodeCall:
		return n.name
	case nodeAns:
		return "Ans"
	case nodeMem:
		return "MR"
	case nodeNeg:
		return "negation"
	case nodeFact:
		return "!"
	case nodePct:
		return "%"
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "×"
	case nodeDiv:
		return "÷"
	case nodePow:
		return "^"
	default:
		return n.kind.String()
	}
}
