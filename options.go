package calc

import "github.com/rs/zerolog"

// SessionOption is an option used when creating a session.
type SessionOption interface {
	sessionOption()
}

type (
	displayopt struct{ d Display }
	historyopt struct{ h History }
	memoryopt  struct{ m Memory }
	loggeropt  struct{ l zerolog.Logger }
	angleopt   struct{ m AngleMode }
	ansopt     string
)

func (displayopt) sessionOption() {}
func (historyopt) sessionOption() {}
func (memoryopt) sessionOption()  {}
func (loggeropt) sessionOption()  {}
func (angleopt) sessionOption()   {}
func (ansopt) sessionOption()     {}

// WithDisplay sets the display that renders the session after each action.
func WithDisplay(d Display) SessionOption {
	return displayopt{d}
}

// WithHistory sets the history that records each successful evaluation.
func WithHistory(h History) SessionOption {
	return historyopt{h}
}

// WithMemory sets the memory register. By default, each session has its own
// register which starts empty.
func WithMemory(m Memory) SessionOption {
	return memoryopt{m}
}

// WithLogger sets the logger. By default, sessions do not log.
func WithLogger(l zerolog.Logger) SessionOption {
	return loggeropt{l}
}

// WithAngleMode sets the initial angle mode.
func WithAngleMode(m AngleMode) SessionOption {
	return angleopt{m}
}

// WithLastAnswer sets the initial last answer, e.g. to resume a previous
// session. It should be a string produced by Format.
func WithLastAnswer(ans string) SessionOption {
	return ansopt(ans)
}
