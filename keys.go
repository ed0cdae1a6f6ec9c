package calc

import (
	"fmt"
	"strings"
)

// buttonText is the text each calculator button appends to the buffer.
var buttonText = map[string]string{
	"sin":  "sin(",
	"cos":  "cos(",
	"tan":  "tan(",
	"asin": "asin(",
	"acos": "acos(",
	"atan": "atan(",
	"log":  "log(",
	"ln":   "ln(",
	"e^x":  "exp(",
	"x²":   "^2",
	"x³":   "^3",
	"xʸ":   "^",
	"√x":   "sqrt(",
	"∛x":   "cbrt(",
	"10ˣ":  "10^",
	"π":    "pi",
	"e":    "e",
	"abs":  "abs(",
	"(":    "(",
	")":    ")",
	"%":    "%",
	"1/x":  "1/",
	"n!":   "!",
	"+":    "+",
	"-":    "-",
	"×":    "*",
	"÷":    "/",
	".":    ".",
	"Ans":  "Ans",
}

// Press performs the action of the calculator button with the given label.
// Digits, operators, functions, and constants append to the buffer; the
// remaining buttons are DEG/RAD, MC, MR, M+, C, ⌫, ±, and =.
func (s *Session) Press(label string) error {
	if text, ok := buttonText[label]; ok {
		s.Append(text)
		return nil
	}
	if len(label) == 1 && '0' <= label[0] && label[0] <= '9' {
		s.Append(label)
		return nil
	}
	switch label {
	case "DEG/RAD":
		s.ToggleAngleMode()
	case "MC":
		s.MemoryClear()
	case "MR":
		_, err := s.MemoryRecall()
		return err
	case "M+":
		return s.MemoryAdd()
	case "C":
		s.Clear()
	case "⌫":
		s.Backspace()
	case "±":
		s.ToggleSign()
	case "=":
		_, err := s.Evaluate()
		return err
	default:
		return fmt.Errorf("unknown button %q", label)
	}
	return nil
}

// Key performs the action of a keyboard key. It reports whether the key has
// an action.
func (s *Session) Key(r rune) (bool, error) {
	switch {
	case strings.ContainsRune("0123456789.+-*/", r):
		s.Append(string(r))
	case r == '=', r == '\r', r == '\n':
		_, err := s.Evaluate()
		return true, err
	case r == '\b', r == 0x7f:
		s.Backspace()
	default:
		return false, nil
	}
	return true, nil
}
