package calc

import (
	"math"
	"strconv"
	"strings"
)

// Significant digits in formatted results.
const digits = 10

// Format renders a value for display. Reals with magnitude above 1e10 or
// below 1e-10 use scientific notation with ten fractional digits; other reals
// use up to ten significant digits with trailing zeros trimmed. Complex values
// render as "a+bi" or "a-bi", omitting a part that is exactly zero.
func Format(v Value) string {
	if !v.cplx || v.im == 0 {
		return formatReal(v.re)
	}
	if v.re == 0 {
		return formatReal(v.im) + "i"
	}
	var b strings.Builder
	b.WriteString(formatReal(v.re))
	if v.im < 0 {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
	}
	b.WriteString(formatReal(math.Abs(v.im)))
	b.WriteByte('i')
	return b.String()
}

func formatReal(x float64) string {
	if x == 0 {
		// Also drops the sign of negative zero.
		return "0"
	}
	if a := math.Abs(x); a > 1e10 || a < 1e-10 {
		return strconv.FormatFloat(x, 'e', digits, 64)
	}
	return strconv.FormatFloat(x, 'g', digits, 64)
}

// ParseValue parses a formatted value, as produced by Format, back into a
// Value.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return Real(x), nil
	}
	z, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return Value{}, err
	}
	return complexv(z), nil
}
