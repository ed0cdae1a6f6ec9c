package calc

import (
	"math"
	"math/cmplx"
)

// Value is the result of evaluating an expression: either a real number or a
// complex number. Values are real until an operation leaves the real domain.
type Value struct {
	re, im float64
	cplx   bool
}

// Real returns a real value.
func Real(x float64) Value {
	return Value{re: x}
}

// Complex returns a complex value. The result is complex even if im is zero.
func Complex(re, im float64) Value {
	return Value{re: re, im: im, cplx: true}
}

func complexv(z complex128) Value {
	return Complex(real(z), imag(z))
}

// IsComplex reports whether v is complex.
func (v Value) IsComplex() bool {
	return v.cplx
}

// Real returns the real part of v.
func (v Value) Real() float64 {
	return v.re
}

// Imag returns the imaginary part of v. It is zero for real values.
func (v Value) Imag() float64 {
	return v.im
}

// Complex128 returns v as a complex128.
func (v Value) Complex128() complex128 {
	return complex(v.re, v.im)
}

// String formats v for display.
func (v Value) String() string {
	return Format(v)
}

func (v Value) isZero() bool {
	return v.re == 0 && v.im == 0
}

func (v Value) isInf() bool {
	return math.IsInf(v.re, 0) || math.IsInf(v.im, 0)
}

func (v Value) isNaN() bool {
	return math.IsNaN(v.re) || math.IsNaN(v.im)
}

// scale multiplies v by a real factor, keeping its kind. A zero imaginary
// part stays +0.
func (v Value) scale(k float64) Value {
	v.re *= k
	if v.cplx && v.im != 0 {
		v.im *= k
	}
	return v
}

func neg(v Value) Value {
	return v.scale(-1)
}

func add(a, b Value) Value {
	if a.cplx || b.cplx {
		return complexv(a.Complex128() + b.Complex128())
	}
	return Real(a.re + b.re)
}

func sub(a, b Value) Value {
	if a.cplx || b.cplx {
		return complexv(a.Complex128() - b.Complex128())
	}
	return Real(a.re - b.re)
}

func mul(a, b Value) Value {
	if a.cplx || b.cplx {
		return complexv(a.Complex128() * b.Complex128())
	}
	return Real(a.re * b.re)
}

func div(a, b Value) (Value, error) {
	if b.isZero() {
		return Value{}, &DomainError{Op: "/", Input: b}
	}
	if a.cplx || b.cplx {
		return complexv(a.Complex128() / b.Complex128()), nil
	}
	return Real(a.re / b.re), nil
}

// pow raises a to the power b. A negative real base with a non-integer real
// exponent leaves the real domain, so the result widens to the principal
// complex power.
func pow(a, b Value) (Value, error) {
	if a.isZero() {
		switch {
		case b.re > 0:
			return a, nil
		case b.isZero():
			return Real(1), nil
		default:
			return Value{}, &DomainError{Op: "^", Input: b}
		}
	}
	if a.cplx || b.cplx {
		return complexv(cmplx.Pow(a.Complex128(), b.Complex128())), nil
	}
	x, y := a.re, b.re
	switch {
	case x > 0:
		return Real(powReal(x, y)), nil
	case y == math.Trunc(y):
		r := powReal(-x, y)
		if math.Mod(y, 2) != 0 {
			r = -r
		}
		return Real(r), nil
	default:
		return complexv(cmplx.Pow(complex(x, 0), complex(y, 0))), nil
	}
}
