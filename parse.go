package calc

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Expr = Sum
// Sum = Product { ('+' | '-') Product }
// Product = Unary { ('*' | '/' | '×' | '÷') Unary }
// Unary = ('-' | '+') Unary | Power
// Power = Postfix [ '^' { '-' | '+' } Power ]
// Postfix = Atom { '!' | '%' }
// Atom = num | 'pi' | 'π' | 'e' | 'Ans' | 'MR' | func '(' Expr ')' | '(' Expr ')'
//
// There is no implicit multiplication: "2pi" and "2(3)" are errors.

// Expr is a parsed expression that can be evaluated in an Env.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

type parser struct {
	toks []Token
	// k is the index of the next token.
	k int
}

// Parse parses a token sequence into an expression. The error, if any, is a
// *SyntaxError.
func Parse(toks []Token) (*Expr, error) {
	p := parser{toks: toks}
	if len(toks) == 0 {
		return nil, p.error(ReasonEmpty, 0)
	}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	tok, k := p.next()
	switch tok.Kind {
	case tokenEOF:
	case TokenRParen:
		return nil, p.error(ReasonUnbalanced, k)
	default:
		panic("calc: expression ended on " + tok.String())
	}
	return &Expr{n: n}, nil
}

// ParseString tokenizes and parses src.
func ParseString(src string) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// next scans the next token and returns it with its index. Past the end of the
// sequence, the result is an EOF token positioned just after the last token.
func (p *parser) next() (Token, int) {
	tok, k := p.peek()
	if k < len(p.toks) {
		p.k++
	}
	return tok, k
}

// peek returns the next token and its index without consuming it.
func (p *parser) peek() (Token, int) {
	if p.k < len(p.toks) {
		return p.toks[p.k], p.k
	}
	return Token{Kind: tokenEOF, Col: p.endcol()}, len(p.toks)
}

func (p *parser) endcol() int {
	if len(p.toks) == 0 {
		return 1
	}
	last := p.toks[len(p.toks)-1]
	return last.Col + utf8.RuneCountInString(last.Text)
}

// prev returns the token before index k, if there is one.
func (p *parser) prev(k int) (Token, bool) {
	if k <= 0 || k > len(p.toks) {
		return Token{}, false
	}
	return p.toks[k-1], true
}

// parseterm parses operands joined by operators binding more tightly than
// until. It stops before the first token that ends the term.
func (p *parser) parseterm(until operator) (*node, error) {
	n, err := p.parselhs(until)
	if err != nil {
		return nil, err
	}
	for {
		tok, k := p.peek()
		switch tok.Kind {
		case TokenOp:
			// Postfix operators bind tighter than anything else, so they
			// always apply to the operand just parsed.
			if op := postop(tok.Text); op != nodeNone {
				p.next()
				n = &node{kind: op, left: n}
				continue
			}
			prec := binop(tok.Text)
			if prec.op == nodeNone {
				panic("calc: no binary operator for " + tok.String())
			}
			if !prec.moreBinding(until) {
				return n, nil
			}
			p.next()
			rhs, err := p.parseterm(prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case TokenRParen, tokenEOF:
			return n, nil
		case TokenNum, TokenIdent, TokenAns, TokenLParen:
			return nil, p.error(ReasonMissingOperator, k)
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first operand of a term, including any unary operators
// applied to it.
func (p *parser) parselhs(until operator) (*node, error) {
	tok, k := p.next()
	switch tok.Kind {
	case TokenNum:
		d, err := decimal.NewFromString(tok.Text)
		if err != nil {
			return nil, p.error(ReasonBadNumber, k)
		}
		f, _ := d.Float64()
		return &node{kind: nodeNum, name: tok.Text, num: f}, nil
	case TokenAns:
		return &node{kind: nodeAns}, nil
	case TokenIdent:
		return p.parseident(tok, k)
	case TokenOp:
		prec := unop(tok.Text)
		if prec.op == nodeNone {
			if prev, ok := p.prev(k); ok && prev.Kind == TokenOp && postop(prev.Text) == nodeNone {
				return nil, p.error(ReasonConsecutiveOperators, k)
			}
			return nil, p.error(ReasonMissingOperand, k)
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		if tok.Text == "+" {
			return rhs, nil
		}
		return &node{kind: prec.op, left: rhs}, nil
	case TokenLParen:
		return p.parsegroup(k)
	case TokenRParen:
		return nil, p.error(ReasonMissingOperand, k)
	case tokenEOF:
		if prev, ok := p.prev(k); ok && prev.Kind == TokenOp {
			return nil, p.error(ReasonTrailingOperator, k-1)
		}
		return nil, p.error(ReasonMissingOperand, k)
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parseident parses a constant, register reference, or function call.
func (p *parser) parseident(tok Token, k int) (*node, error) {
	switch tok.Text {
	case "pi", "π":
		return &node{kind: nodeConst, name: "pi"}, nil
	case "e":
		return &node{kind: nodeConst, name: "e"}, nil
	case "MR":
		return &node{kind: nodeMem}, nil
	case "fact":
		arg, err := p.parsecall(k)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeFact, left: arg}, nil
	}
	fn := builtins[tok.Text]
	if fn == nil {
		return nil, p.error(ReasonUnknownIdent, k)
	}
	arg, err := p.parsecall(k)
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeCall, name: fn.name, fn: fn, left: arg}, nil
}

// parsecall parses the parenthesized argument of the function named by the
// token at index k.
func (p *parser) parsecall(k int) (*node, error) {
	open, j := p.next()
	if open.Kind != TokenLParen {
		return nil, p.error(ReasonCallParen, k)
	}
	if tok, _ := p.peek(); tok.Kind == TokenRParen {
		return nil, p.error(ReasonEmptyArgument, k)
	}
	return p.parsegroup(j)
}

// parsegroup parses the rest of a parenthesized expression whose open
// parenthesis is at index k.
func (p *parser) parsegroup(k int) (*node, error) {
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	if end, _ := p.next(); end.Kind != TokenRParen {
		return nil, p.error(ReasonUnbalanced, k)
	}
	return n, nil
}

func (p *parser) error(reason SyntaxReason, k int) error {
	err := &SyntaxError{Reason: reason, Index: k}
	switch {
	case k < len(p.toks):
		err.Col = p.toks[k].Col
		err.Token = p.toks[k].Text
	default:
		err.Col = p.endcol()
	}
	return err
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*", "×":
		return operator{5, false, nodeMul}
	case "/", "÷":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a prefix operator for a token string. Unary plus has the same
// precedence as negation and parses to its operand.
func unop(text string) operator {
	switch text {
	case "+", "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// postop gets the node kind of a postfix operator, or nodeNone.
func postop(text string) nodeKind {
	switch text {
	case "!":
		return nodeFact
	case "%":
		return nodePct
	default:
		return nodeNone
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
