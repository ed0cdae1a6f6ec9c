// Package calc implements a scientific calculator.
//
// Expressions are written the way they are typed on a calculator: numbers,
// the operators + - × ÷ (or * and /) and ^, the postfix operators ! and %, the
// functions sin cos tan asin acos atan log ln exp sqrt cbrt abs, which always
// take a parenthesized argument, the constants pi and e, Ans for the last
// answer, and MR for the memory register. "-2^2" is "-(2^2)", "2^3^2" is
// "2^(3^2)", and "50%" is 0.5. There is no implicit multiplication.
//
// Values are real until an operation leaves the real domain: sqrt(-4) is 2i,
// and ln(-1) is πi. The cube root of a negative number is the real negative
// root. Trigonometric functions use degrees unless the angle mode is radians.
//
// A Session holds the buffer being typed, the last answer, the angle mode, and
// the memory register, and runs the tokenizer, parser, evaluator, and
// formatter when the buffer is evaluated.
package calc
