package calc

import (
	"errors"
	"math"
	"math/big"
	"math/cmplx"

	"github.com/zephyrtronium/bigfloat"
)

// kernelPrec is the precision in bits of the extended-range kernels. Results
// are rounded to float64 afterward, so anything comfortably above 53 works.
const kernelPrec = 128

// domain classifies a real argument of a builtin function.
type domain int8

const (
	// inReal means the result is real.
	inReal domain = iota
	// inComplex means the argument leaves the real domain, so the function
	// is evaluated on the complex plane instead.
	inComplex
	// undefined means the function has no value at the argument.
	undefined
)

// trig marks the functions affected by the angle mode.
type trig int8

const (
	trigNone trig = iota
	// trigDirect functions take an angle.
	trigDirect
	// trigInverse functions return an angle.
	trigInverse
)

// builtin is a function of one argument.
type builtin struct {
	name string
	trig trig
	// real computes the function on a real argument. If the argument's
	// domain is not inReal, the result is ignored.
	real func(x float64) (float64, domain)
	// cplx computes the function on a complex argument.
	cplx func(z complex128) complex128
	// toReal indicates that the function maps complex arguments to reals.
	toReal bool
}

var builtins = map[string]*builtin{
	"sin": {name: "sin", trig: trigDirect, real: total(math.Sin), cplx: cmplx.Sin},
	"cos": {name: "cos", trig: trigDirect, real: total(math.Cos), cplx: cmplx.Cos},
	"tan": {name: "tan", trig: trigDirect, real: total(math.Tan), cplx: cmplx.Tan},
	"asin": {name: "asin", trig: trigInverse, real: unit(math.Asin), cplx: cmplx.Asin},
	"acos": {name: "acos", trig: trigInverse, real: unit(math.Acos), cplx: cmplx.Acos},
	"atan": {name: "atan", trig: trigInverse, real: total(math.Atan), cplx: cmplx.Atan},
	"log":  {name: "log", real: positive(math.Log10), cplx: cmplx.Log10},
	"ln":   {name: "ln", real: positive(math.Log), cplx: cmplx.Log},
	"exp":  {name: "exp", real: total(expReal), cplx: cmplx.Exp},
	"sqrt": {name: "sqrt", real: nonnegative(math.Sqrt), cplx: cmplx.Sqrt},
	// The cube root of a negative real is the real negative root rather
	// than the principal complex root.
	"cbrt": {name: "cbrt", real: total(math.Cbrt), cplx: func(z complex128) complex128 {
		return cmplx.Pow(z, 1.0/3)
	}},
	"abs": {name: "abs", real: total(math.Abs), cplx: func(z complex128) complex128 {
		return complex(cmplx.Abs(z), 0)
	}, toReal: true},
}

func init() {
	// log10 is another spelling of log.
	builtins["log10"] = builtins["log"]
}

func total(f func(float64) float64) func(float64) (float64, domain) {
	return func(x float64) (float64, domain) {
		return f(x), inReal
	}
}

func unit(f func(float64) float64) func(float64) (float64, domain) {
	return func(x float64) (float64, domain) {
		if x < -1 || x > 1 {
			return 0, inComplex
		}
		return f(x), inReal
	}
}

func positive(f func(float64) float64) func(float64) (float64, domain) {
	return func(x float64) (float64, domain) {
		switch {
		case x > 0:
			return f(x), inReal
		case x < 0:
			return 0, inComplex
		default:
			return 0, undefined
		}
	}
}

func nonnegative(f func(float64) float64) func(float64) (float64, domain) {
	return func(x float64) (float64, domain) {
		if x < 0 {
			return 0, inComplex
		}
		return f(x), inReal
	}
}

// call applies the function to x, converting angles according to mode.
func (f *builtin) call(x Value, mode AngleMode) (Value, error) {
	if f.trig == trigDirect && mode == Degrees {
		x = x.scale(math.Pi / 180)
	}
	r, err := f.apply(x)
	if err != nil {
		return Value{}, err
	}
	if f.trig == trigInverse && mode == Degrees {
		r = r.scale(180 / math.Pi)
	}
	return r, nil
}

// apply is the single widening rule: a real argument in the function's real
// domain gives a real result, a real argument outside it is promoted to
// complex, and complex arguments stay complex.
func (f *builtin) apply(x Value) (Value, error) {
	if !x.cplx {
		r, d := f.real(x.re)
		switch d {
		case inReal:
			return Real(r), nil
		case undefined:
			return Value{}, &DomainError{Op: f.name, Input: x}
		}
	}
	var z complex128
	if x.cplx {
		z = f.cplx(x.Complex128())
	} else {
		z = f.cplx(complex(x.re, 0))
	}
	if f.toReal {
		return Real(real(z)), nil
	}
	return complexv(z), nil
}

// factorial computes x! for non-negative integers x.
func factorial(x Value) (Value, error) {
	n := x.re
	if x.im != 0 || n < 0 || n != math.Trunc(n) {
		return Value{}, &DomainError{Op: "!", Input: x}
	}
	if n > 170 {
		return Value{}, &OverflowError{Op: "!"}
	}
	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
	}
	return Real(r), nil
}

func bigf(x float64) *big.Float {
	return new(big.Float).SetPrec(kernelPrec).SetFloat64(x)
}

// expReal computes e^x. Results too large for float64 are infinite, which
// evaluation reports as overflow.
func expReal(x float64) float64 {
	switch {
	case x > 1000:
		return math.Inf(1)
	case x < -1000:
		return 0
	}
	f, _ := bigfloat.Exp(new(big.Float).SetPrec(kernelPrec), bigf(x)).Float64()
	return f
}

// powReal computes x^y for x > 0.
func powReal(x, y float64) float64 {
	switch {
	case y == 0, x == 1:
		return 1
	case y == 1:
		return x
	}
	switch l := y * math.Log2(x); {
	case l > 1100:
		return math.Inf(1)
	case l < -1100:
		return 0
	}
	// Pow may return a different Float than its receiver when the result
	// is outside float64 range.
	f, _ := bigfloat.Pow(new(big.Float).SetPrec(kernelPrec), bigf(x), bigf(y)).Float64()
	return f
}

// constants are the named constants, rounded from extended precision.
var constants = map[string]float64{
	"pi": func() float64 {
		f, _ := bigfloat.Pi(new(big.Float).SetPrec(kernelPrec)).Float64()
		return f
	}(),
	"e": expReal(1),
}

// DomainError is an error returned when an operation is applied to an input
// for which it has no value, such as division by zero.
type DomainError struct {
	// Op identifies the operation or function.
	Op string
	// Input is the out-of-domain argument.
	Input Value
}

func (err *DomainError) Error() string {
	return Format(err.Input) + " outside domain of " + err.Op
}

// OverflowError is an error returned when the magnitude of a result exceeds
// the representable range.
type OverflowError struct {
	// Op identifies the operation or function whose result overflowed.
	Op string
}

func (err *OverflowError) Error() string {
	return "result of " + err.Op + " out of range"
}

// ErrEmptyMemory is returned when the memory register is read before anything
// has been stored in it.
var ErrEmptyMemory = errors.New("memory is empty")
