package calc_test

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
)

type display struct {
	current, total string
	mode           calc.AngleMode
	modes          int
}

func (d *display) RenderCurrent(text string) { d.current = text }
func (d *display) RenderTotal(text string)   { d.total = text }
func (d *display) RenderMode(m calc.AngleMode) {
	d.mode = m
	d.modes++
}

type record struct {
	expr, result string
}

type history struct {
	entries []record
	err     error
}

func (h *history) Append(expr, result string) error {
	h.entries = append(h.entries, record{expr, result})
	return h.err
}

func TestSessionEvaluate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		total string
	}{
		{"prec", "2+3*4", "14", "2+3×4"},
		{"pow", "2^3^2", "512", "2^3^2"},
		{"sqrt", "sqrt(-4)", "2i", "√(-4)"},
		{"sin", "sin(90)", "1", "sin(90)"},
		{"fact", "5!", "120", "5!"},
		{"pi", "2*pi", "6.283185307", "2×π"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var d display
			var h history
			s := calc.NewSession(calc.WithDisplay(&d), calc.WithHistory(&h))
			s.Append(c.in)
			r, err := s.Evaluate()
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.in, err)
			}
			if r != c.want {
				t.Errorf("evaluating %q: want %q, got %q", c.in, c.want, r)
			}
			if s.LastAnswer() != c.want {
				t.Errorf("last answer is %q, want %q", s.LastAnswer(), c.want)
			}
			if s.Buffer() != "" {
				t.Errorf("buffer not cleared: %q", s.Buffer())
			}
			if s.Total() != c.total || d.total != c.total {
				t.Errorf("wrong total: want %q, got %q with display %q", c.total, s.Total(), d.total)
			}
			if d.current != c.want {
				t.Errorf("display shows %q, want %q", d.current, c.want)
			}
			want := []record{{c.in, c.want}}
			if len(h.entries) != 1 || h.entries[0] != want[0] {
				t.Errorf("wrong history: want %q, got %q", want, h.entries)
			}
		})
	}
}

func TestSessionEvaluateError(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		stage calc.Stage
		as    any
	}{
		{"div-zero", "1/0", calc.StageEval, new(*calc.DomainError)},
		{"fact-neg", "(-1)!", calc.StageEval, new(*calc.DomainError)},
		{"overflow", "10^400", calc.StageEval, new(*calc.OverflowError)},
		{"unbalanced", "(2+3", calc.StageParse, new(*calc.SyntaxError)},
		{"trailing", "2*", calc.StageParse, new(*calc.SyntaxError)},
		{"lex", "2$3", calc.StageLex, new(*calc.LexError)},
	}
	sre := regexp.MustCompile(`^cannot (tokenize|parse|evaluate) "`)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var d display
			var h history
			s := calc.NewSession(calc.WithDisplay(&d), calc.WithHistory(&h), calc.WithLastAnswer("7"))
			s.Append(c.in)
			r, err := s.Evaluate()
			if err == nil {
				t.Fatalf("evaluating %q gave %q, not an error", c.in, r)
			}
			var eerr *calc.EvalError
			if !errors.As(err, &eerr) {
				t.Fatalf("%#v is not *calc.EvalError", err)
			}
			if eerr.Stage != c.stage || eerr.Expr != c.in {
				t.Errorf("wrong error details: %#v", eerr)
			}
			if !errors.As(err, c.as) {
				t.Errorf("%v doesn't wrap %T", err, c.as)
			}
			msg := err.Error()
			if !sre.MatchString(msg) {
				t.Errorf("%q doesn't name the failing stage", msg)
			}
			if !strings.Contains(msg, c.in) {
				t.Errorf("%q doesn't mention the expression", msg)
			}
			if s.Buffer() != c.in {
				t.Errorf("buffer changed to %q", s.Buffer())
			}
			if s.LastAnswer() != "7" {
				t.Errorf("last answer changed to %q", s.LastAnswer())
			}
			if len(h.entries) != 0 {
				t.Errorf("failed evaluation recorded in history: %q", h.entries)
			}
			if d.current != "Error" {
				t.Errorf("display shows %q, not Error", d.current)
			}
		})
	}
}

func TestSessionEmptyEvaluate(t *testing.T) {
	var h history
	s := calc.NewSession(calc.WithHistory(&h))
	r, err := s.Evaluate()
	if r != "" || err != nil {
		t.Errorf("empty evaluation gave %q, %v", r, err)
	}
	if len(h.entries) != 0 || s.LastAnswer() != "0" {
		t.Errorf("empty evaluation changed state: history %q, answer %q", h.entries, s.LastAnswer())
	}
}

func TestSessionAns(t *testing.T) {
	s := calc.NewSession()
	if s.LastAnswer() != "0" {
		t.Errorf("initial answer is %q", s.LastAnswer())
	}
	steps := []struct {
		in, want, total string
	}{
		{"2+3", "5", "2+3"},
		{"Ans*2", "10", "5×2"},
		{"sqrt(-Ans-6)", "4i", "√(-10-6)"},
		{"Ans", "4i", "4i"},
		{"Ans*Ans", "-16", "4i×4i"},
	}
	for _, step := range steps {
		s.Append(step.in)
		r, err := s.Evaluate()
		if err != nil {
			t.Fatalf("evaluating %q: %v", step.in, err)
		}
		if r != step.want {
			t.Errorf("evaluating %q: want %q, got %q", step.in, step.want, r)
		}
		if s.Total() != step.total {
			t.Errorf("evaluating %q: want total %q, got %q", step.in, step.total, s.Total())
		}
	}
}

func TestSessionMemory(t *testing.T) {
	s := calc.NewSession()
	if _, err := s.MemoryRecall(); !errors.Is(err, calc.ErrEmptyMemory) {
		t.Errorf("recall before store gave %v", err)
	}
	if err := s.MemoryAdd(); err != nil {
		t.Errorf("adding empty buffer: %v", err)
	}
	if _, err := s.MemoryRecall(); !errors.Is(err, calc.ErrEmptyMemory) {
		t.Errorf("empty add stored a value: %v", err)
	}
	if s.Buffer() != "" {
		t.Errorf("failed recall changed buffer to %q", s.Buffer())
	}

	s.Append("10")
	if err := s.MemoryAdd(); err != nil {
		t.Fatalf("adding 10: %v", err)
	}
	if s.Buffer() != "10" {
		t.Errorf("memory add changed buffer to %q", s.Buffer())
	}
	s.Clear()
	r, err := s.MemoryRecall()
	if err != nil || r != "10" {
		t.Fatalf("recall after adding 10 gave %q, %v", r, err)
	}
	if s.Buffer() != "MR" {
		t.Errorf("recall left buffer %q", s.Buffer())
	}
	s.Append("+5")
	if err := s.MemoryAdd(); err != nil {
		t.Fatalf("adding MR+5: %v", err)
	}
	if r, err := s.Evaluate(); err != nil || r != "30" {
		t.Errorf("evaluating %q after add gave %q, %v", "MR+5", r, err)
	}
	if r, _ := s.MemoryRecall(); r != "25" {
		t.Errorf("memory is %q, want 25", r)
	}

	s.Clear()
	s.Append("1/0")
	if err := s.MemoryAdd(); !errors.As(err, new(*calc.DomainError)) {
		t.Errorf("adding 1/0 gave %v", err)
	}
	s.Clear()
	if r, _ := s.MemoryRecall(); r != "25" {
		t.Errorf("failed add changed memory to %q", r)
	}

	s.MemoryClear()
	if r, err := s.MemoryRecall(); err != nil || r != "0" {
		t.Errorf("recall after clear gave %q, %v", r, err)
	}
}

func TestSessionMemoryDecimal(t *testing.T) {
	s := calc.NewSession()
	for _, in := range []string{"0.1", "0.2", "0.3"} {
		s.Clear()
		s.Append(in)
		if err := s.MemoryAdd(); err != nil {
			t.Fatalf("adding %s: %v", in, err)
		}
	}
	// Float addition would leave 0.6000000000000001.
	s.Clear()
	s.Append("MR*10-6")
	if r, err := s.Evaluate(); err != nil || r != "0" {
		t.Errorf("memory drifted: MR*10-6 = %q, %v", r, err)
	}
}

func TestSessionMemoryShared(t *testing.T) {
	var m mem
	a := calc.NewSession(calc.WithMemory(&m))
	b := calc.NewSession(calc.WithMemory(&m))
	a.Append("4")
	if err := a.MemoryAdd(); err != nil {
		t.Fatal(err)
	}
	if r, err := b.MemoryRecall(); err != nil || r != "4" {
		t.Errorf("shared memory recall gave %q, %v", r, err)
	}
}

type mem struct {
	v  calc.Value
	ok bool
}

func (m *mem) Load() (calc.Value, bool) { return m.v, m.ok }
func (m *mem) Store(v calc.Value)       { m.v, m.ok = v, true }

func TestSessionEditing(t *testing.T) {
	var d display
	s := calc.NewSession(calc.WithDisplay(&d))
	s.Backspace()
	if s.Buffer() != "" {
		t.Errorf("backspace on empty buffer gave %q", s.Buffer())
	}
	s.Append("2π")
	s.Backspace()
	if s.Buffer() != "2" {
		t.Errorf("backspace removed wrong text: %q", s.Buffer())
	}
	s.Append("*pi")
	if d.current != "2×π" {
		t.Errorf("display shows %q", d.current)
	}
	s.ToggleSign()
	if s.Buffer() != "-2*pi" {
		t.Errorf("toggle sign gave %q", s.Buffer())
	}
	s.ToggleSign()
	if s.Buffer() != "2*pi" {
		t.Errorf("second toggle sign gave %q", s.Buffer())
	}
	if _, err := s.Evaluate(); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if s.Buffer() != "" || s.Total() != "" {
		t.Errorf("clear left %q and %q", s.Buffer(), s.Total())
	}
	if d.current != "0" || d.total != "" {
		t.Errorf("cleared display shows %q and %q", d.current, d.total)
	}
	if s.LastAnswer() != "6.283185307" {
		t.Errorf("clear changed last answer to %q", s.LastAnswer())
	}
}

func TestSessionAngleMode(t *testing.T) {
	var d display
	s := calc.NewSession(calc.WithDisplay(&d))
	if s.AngleMode() != calc.Degrees {
		t.Errorf("default mode is %v", s.AngleMode())
	}
	s.Append("sin(90)")
	s.ToggleAngleMode()
	if s.AngleMode() != calc.Radians || d.mode != calc.Radians || d.modes != 1 {
		t.Errorf("toggle gave %v, display %v after %d renders", s.AngleMode(), d.mode, d.modes)
	}
	if r, err := s.Evaluate(); err != nil || r != "0.8939966636" {
		t.Errorf("sin(90) in radians gave %q, %v", r, err)
	}
	s.SetAngleMode(calc.Degrees)
	s.Append("asin(1)")
	if r, err := s.Evaluate(); err != nil || r != "90" {
		t.Errorf("asin(1) in degrees gave %q, %v", r, err)
	}

	r := calc.NewSession(calc.WithAngleMode(calc.Radians), calc.WithLastAnswer("7"))
	r.Append("Ans*cos(0)")
	if got, err := r.Evaluate(); err != nil || got != "7" {
		t.Errorf("resumed session gave %q, %v", got, err)
	}
}

func TestSessionHistoryError(t *testing.T) {
	var buf bytes.Buffer
	h := history{err: errors.New("disk full")}
	s := calc.NewSession(calc.WithHistory(&h), calc.WithLogger(zerolog.New(&buf)))
	s.Append("1+1")
	if r, err := s.Evaluate(); err != nil || r != "2" {
		t.Errorf("history failure broke evaluation: %q, %v", r, err)
	}
	out := buf.String()
	if !strings.Contains(out, `"expr":"1+1"`) || !strings.Contains(out, "disk full") {
		t.Errorf("log doesn't describe the failure:\n%s", out)
	}
}
