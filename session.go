package calc

import (
	"strconv"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Display receives the text of the two lines of a calculator display: the
// current input or result, and the last evaluated expression.
type Display interface {
	RenderCurrent(text string)
	RenderTotal(text string)
}

// ModeDisplay is a Display that also shows the angle mode.
type ModeDisplay interface {
	Display
	RenderMode(mode AngleMode)
}

// History records successful evaluations in order.
type History interface {
	Append(expr, result string) error
}

// Memory is the memory register.
type Memory interface {
	// Load returns the stored value and whether anything has been stored.
	Load() (Value, bool)
	// Store replaces the stored value.
	Store(v Value)
}

type memslot struct {
	v  Value
	ok bool
}

func (m *memslot) Load() (Value, bool) {
	return m.v, m.ok
}

func (m *memslot) Store(v Value) {
	m.v, m.ok = v, true
}

// Session is the state of one calculator: the expression being typed, the
// last answer, the angle mode, and the memory register. Each method is one
// user action. A Session is not safe for concurrent use.
type Session struct {
	buf   string
	total string
	ans   string
	angle AngleMode

	mem     Memory
	display Display
	history History
	log     zerolog.Logger
}

// NewSession creates a session with an empty buffer, a last answer of "0",
// and degree mode, then applies options.
func NewSession(opts ...SessionOption) *Session {
	s := Session{
		ans: "0",
		mem: new(memslot),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case displayopt:
			s.display = opt.d
		case historyopt:
			s.history = opt.h
		case memoryopt:
			s.mem = opt.m
		case loggeropt:
			s.log = opt.l
		case angleopt:
			s.angle = opt.m
		case ansopt:
			s.ans = string(opt)
		default:
			panic("calc: unknown option type")
		}
	}
	return &s
}

// Buffer returns the expression being typed.
func (s *Session) Buffer() string {
	return s.buf
}

// Total returns the last evaluated expression in display spelling, or the
// empty string after Clear.
func (s *Session) Total() string {
	return s.total
}

// LastAnswer returns the most recent result.
func (s *Session) LastAnswer() string {
	return s.ans
}

// AngleMode returns the current angle mode.
func (s *Session) AngleMode() AngleMode {
	return s.angle
}

// Env returns the environment in which the buffer evaluates.
func (s *Session) Env() Env {
	env := Env{Angle: s.angle, Ans: s.ans}
	if v, ok := s.mem.Load(); ok {
		env.Memory = &v
	}
	return env
}

// Append adds text to the end of the buffer.
func (s *Session) Append(text string) {
	s.buf += text
	s.render()
}

// Backspace removes the last character of the buffer.
func (s *Session) Backspace() {
	if s.buf == "" {
		return
	}
	_, n := utf8.DecodeLastRuneInString(s.buf)
	s.buf = s.buf[:len(s.buf)-n]
	s.render()
}

// Clear empties the buffer and the total line.
func (s *Session) Clear() {
	s.buf = ""
	s.total = ""
	s.render()
}

// ToggleSign removes a leading minus sign from the buffer or adds one.
func (s *Session) ToggleSign() {
	if s.buf != "" && s.buf[0] == '-' {
		s.buf = s.buf[1:]
	} else {
		s.buf = "-" + s.buf
	}
	s.render()
}

// ToggleAngleMode switches between degrees and radians.
func (s *Session) ToggleAngleMode() {
	s.SetAngleMode(s.angle.Toggle())
}

// SetAngleMode sets the angle mode.
func (s *Session) SetAngleMode(mode AngleMode) {
	s.angle = mode
	if d, ok := s.display.(ModeDisplay); ok {
		d.RenderMode(mode)
	}
	s.render()
}

// Evaluate computes the buffer. On success, the result becomes the last answer,
// the buffer is cleared, and the expression and result are appended to the
// history. On failure, the session is unchanged, the display shows "Error",
// and the error is an *EvalError. Evaluating an empty buffer does nothing.
func (s *Session) Evaluate() (string, error) {
	if s.buf == "" {
		return "", nil
	}
	expr := s.buf
	v, err := s.compute(expr)
	if err != nil {
		s.log.Debug().Err(err).Str("expr", expr).Msg("evaluation failed")
		if s.display != nil {
			s.display.RenderCurrent("Error")
		}
		return "", err
	}
	r := Format(v)
	s.total = DisplayText(expr, s.Env())
	s.ans = r
	s.buf = ""
	s.log.Debug().Str("expr", expr).Str("result", r).Stringer("mode", s.angle).Msg("evaluated")
	if s.history != nil {
		if err := s.history.Append(expr, r); err != nil {
			s.log.Warn().Err(err).Str("expr", expr).Msg("history append failed")
		}
	}
	if s.display != nil {
		s.display.RenderTotal(s.total)
		s.display.RenderCurrent(r)
	}
	return r, nil
}

// compute runs the buffer through the tokenizer, parser, and evaluator.
func (s *Session) compute(expr string) (Value, error) {
	toks, err := Tokenize(expr)
	if err != nil {
		return Value{}, &EvalError{Expr: expr, Stage: StageLex, Err: err}
	}
	e, err := Parse(toks)
	if err != nil {
		return Value{}, &EvalError{Expr: expr, Stage: StageParse, Err: err}
	}
	v, err := e.Eval(s.Env())
	if err != nil {
		return Value{}, &EvalError{Expr: expr, Stage: StageEval, Err: err}
	}
	return v, nil
}

// MemoryClear stores zero in the memory register.
func (s *Session) MemoryClear() {
	s.mem.Store(Real(0))
	s.log.Debug().Msg("memory cleared")
}

// MemoryRecall appends a reference to the memory register to the buffer and
// returns the register's formatted value. The error is ErrEmptyMemory if
// nothing has been stored.
func (s *Session) MemoryRecall() (string, error) {
	v, ok := s.mem.Load()
	if !ok {
		return "", ErrEmptyMemory
	}
	s.Append("MR")
	return Format(v), nil
}

// MemoryAdd evaluates the buffer and adds the result to the memory register,
// or stores it if the register is empty. The buffer is unchanged. Adding an
// empty buffer does nothing.
func (s *Session) MemoryAdd() error {
	if s.buf == "" {
		return nil
	}
	v, err := s.compute(s.buf)
	if err != nil {
		return err
	}
	if old, ok := s.mem.Load(); ok {
		v = accumulate(old, v)
		if v.isInf() {
			return &EvalError{Expr: s.buf, Stage: StageEval, Err: &OverflowError{Op: "M+"}}
		}
	}
	s.mem.Store(v)
	s.log.Debug().Str("memory", Format(v)).Msg("memory add")
	return nil
}

// accumulate adds v to the memory value old. Reals are summed as decimals so
// that repeated additions of short decimal inputs do not drift.
func accumulate(old, v Value) Value {
	if old.cplx || v.cplx {
		return add(old, v)
	}
	sum, _ := decimal.NewFromFloat(old.re).Add(decimal.NewFromFloat(v.re)).Float64()
	return Real(sum)
}

func (s *Session) render() {
	if s.display == nil {
		return
	}
	if s.buf == "" {
		s.display.RenderCurrent("0")
	} else {
		s.display.RenderCurrent(DisplayText(s.buf, s.Env()))
	}
	s.display.RenderTotal(s.total)
}

// Stage identifies the part of evaluation that failed.
type Stage int8

const (
	StageLex Stage = iota
	StageParse
	StageEval
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "tokenize"
	case StageParse:
		return "parse"
	case StageEval:
		return "evaluate"
	default:
		return "Stage(" + strconv.Itoa(int(s)) + ")"
	}
}

// EvalError is the error a Session returns when the buffer cannot be
// evaluated. It unwraps to the error of the failing stage.
type EvalError struct {
	// Expr is the expression text.
	Expr string
	// Stage is the failing stage.
	Stage Stage
	// Err is the stage's error.
	Err error
}

func (err *EvalError) Error() string {
	return "cannot " + err.Stage.String() + " " + strconv.Quote(err.Expr) + ": " + err.Err.Error()
}

func (err *EvalError) Unwrap() error {
	return err.Err
}
