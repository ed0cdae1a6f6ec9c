package calc

import "strconv"

// SyntaxReason describes why a token sequence is malformed.
type SyntaxReason string

const (
	ReasonEmpty                SyntaxReason = "no expression"
	ReasonUnbalanced           SyntaxReason = "unbalanced parentheses"
	ReasonMissingOperand       SyntaxReason = "missing operand"
	ReasonMissingOperator      SyntaxReason = "missing operator"
	ReasonConsecutiveOperators SyntaxReason = "consecutive binary operators"
	ReasonTrailingOperator     SyntaxReason = "trailing operator"
	ReasonEmptyArgument        SyntaxReason = "empty function argument"
	ReasonCallParen            SyntaxReason = "function call without parentheses"
	ReasonUnknownIdent         SyntaxReason = "unknown identifier"
	ReasonBadNumber            SyntaxReason = "malformed number"
)

// SyntaxError is an error indicating a malformed token sequence. It implements
// InputError.
type SyntaxError struct {
	// Reason describes the problem.
	Reason SyntaxReason
	// Index is the index of the token at which the problem was found. It is
	// the number of tokens if the problem is at the end of the input.
	Index int
	// Col is the rune position of that token in the source.
	Col int
	// Token is the text of that token, or empty at the end of the input.
	Token string
}

func (err *SyntaxError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, string(err.Reason)+" at end")
	}
	return errpos(err.Col, string(err.Reason)+" at "+strconv.Quote(err.Token))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*LexError)(nil)
)
