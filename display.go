package calc

import (
	"strings"
	"unicode/utf8"
)

// displayNames maps token text to the spelling shown on a calculator display.
var displayNames = map[string]string{
	"*":     "×",
	"/":     "÷",
	"pi":    "π",
	"sqrt":  "√",
	"cbrt":  "∛",
	"exp":   "e^",
	"log10": "log",
}

// DisplayText renders an expression buffer for display: operators and names
// use their display spellings, and Ans and MR show the values they refer to.
// Text between tokens is kept as typed. If the buffer does not tokenize, it is
// shown unchanged.
func DisplayText(buf string, env Env) string {
	toks, err := Tokenize(buf)
	if err != nil {
		return buf
	}
	var b strings.Builder
	src := []rune(buf)
	k := 0
	for _, tok := range toks {
		start := tok.Col - 1
		b.WriteString(string(src[k:start]))
		k = start + utf8.RuneCountInString(tok.Text)
		switch {
		case tok.Kind == TokenAns:
			if env.Ans == "" {
				b.WriteString("0")
			} else {
				b.WriteString(env.Ans)
			}
		case tok.Kind == TokenIdent && tok.Text == "MR" && env.Memory != nil:
			b.WriteString(Format(*env.Memory))
		case displayNames[tok.Text] != "":
			b.WriteString(displayNames[tok.Text])
		default:
			b.WriteString(tok.Text)
		}
	}
	b.WriteString(string(src[k:]))
	return b.String()
}
