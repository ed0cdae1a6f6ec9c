package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the token's kind.
	Kind TokenKind
	// Text is the token's source text.
	Text string
	// Col is the 1-based rune position of the token in its source.
	Col int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// TokenKind identifies the kind of a Token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is a decimal number, optionally with an exponent.
	TokenNum
	// TokenIdent is a function or constant name.
	TokenIdent
	// TokenAns is the last-answer reference.
	TokenAns
	// TokenOp is an operator.
	TokenOp
	// TokenLParen is an open parenthesis.
	TokenLParen
	// TokenRParen is a close parenthesis.
	TokenRParen
	// tokenEOF is produced by the parser at the end of the token sequence.
	tokenEOF
)

var tokenKindNames = [...]string{
	tokenNone:   "None",
	TokenNum:    "Num",
	TokenIdent:  "Ident",
	TokenAns:    "Ans",
	TokenOp:     "Op",
	TokenLParen: "LParen",
	TokenRParen: "RParen",
	tokenEOF:    "EOF",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/×÷^%!"

// names is the fixed set of identifiers the tokenizer recognizes. Matching is
// longest-first, so e.g. "exp" is never split into "e" and "xp".
var names = []string{
	"log10", "acos", "asin", "atan", "cbrt", "sqrt", "fact",
	"Ans", "abs", "cos", "exp", "log", "sin", "tan",
	"ln", "pi", "MR",
	"e", "π",
}

type lexer struct {
	src  []rune
	pos  int
	toks []Token
}

// Tokenize splits src into tokens. Whitespace separates tokens but is
// otherwise ignored. The error, if any, is a *LexError.
func Tokenize(src string) ([]Token, error) {
	l := lexer{src: []rune(src)}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == tokenEOF {
			return l.toks, nil
		}
		l.toks = append(l.toks, tok)
	}
}

// peek returns the rune k places ahead of the current position, or -1 past the
// end of the input.
func (l *lexer) peek(k int) rune {
	if l.pos+k >= len(l.src) {
		return -1
	}
	return l.src[l.pos+k]
}

func (l *lexer) next() (Token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	tok := Token{Col: l.pos + 1}
	if l.pos >= len(l.src) {
		tok.Kind = tokenEOF
		return tok, nil
	}
	r := l.src[l.pos]
	switch {
	case '0' <= r && r <= '9', r == '.':
		text, err := l.scanNum()
		if err != nil {
			return tok, err
		}
		tok.Kind = TokenNum
		tok.Text = text
		return tok, nil
	case unicode.IsLetter(r):
		tok.Text = l.scanIdent()
		tok.Kind = TokenIdent
		if tok.Text == "Ans" {
			tok.Kind = TokenAns
		}
		return tok, nil
	case r == '(':
		l.pos++
		tok.Kind = TokenLParen
		tok.Text = "("
		return tok, nil
	case r == ')':
		l.pos++
		tok.Kind = TokenRParen
		tok.Text = ")"
		return tok, nil
	case strings.ContainsRune(Operators, r):
		l.pos++
		tok.Kind = TokenOp
		tok.Text = string(r)
		return tok, nil
	default:
		return tok, &LexError{Col: l.pos + 1, Char: r}
	}
}

// scanNum scans digits with at most one decimal point, followed by an optional
// exponent. An 'e' only begins an exponent when digits follow it, so that
// "2e" remains a number followed by the constant e.
func (l *lexer) scanNum() (string, error) {
	start := l.pos
	var dig, dot bool
scan:
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case '0' <= r && r <= '9':
			dig = true
		case r == '.':
			if dot {
				return "", &LexError{Col: l.pos + 1, Char: r}
			}
			dot = true
		default:
			break scan
		}
		l.pos++
	}
	if !dig {
		return "", &LexError{Col: start + 1, Char: l.src[start]}
	}
	if r := l.peek(0); r == 'e' || r == 'E' {
		k := 1
		if s := l.peek(1); s == '+' || s == '-' {
			k++
		}
		if d := l.peek(k); '0' <= d && d <= '9' {
			l.pos += k
			for l.pos < len(l.src) && '0' <= l.src[l.pos] && l.src[l.pos] <= '9' {
				l.pos++
			}
		}
	}
	return string(l.src[start:l.pos]), nil
}

// scanIdent scans the longest known name at the current position. If no name
// matches, it scans the whole run of letters and digits so that the parser can
// report the unknown identifier.
func (l *lexer) scanIdent() string {
	best := 0
	for _, name := range names {
		n := []rune(name)
		if len(n) <= best || l.pos+len(n) > len(l.src) {
			continue
		}
		if string(l.src[l.pos:l.pos+len(n)]) == name {
			best = len(n)
		}
	}
	if best == 0 {
		for best < len(l.src)-l.pos {
			r := l.src[l.pos+best]
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			best++
		}
	}
	s := string(l.src[l.pos : l.pos+best])
	l.pos += best
	return s
}

// LexError indicates a character that cannot begin or continue a token. It
// implements InputError.
type LexError struct {
	// Col is the 1-based rune position of the offending character.
	Col int
	// Char is the offending character.
	Char rune
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *LexError) Pos() int {
	return err.Col
}
