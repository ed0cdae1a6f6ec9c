// Package history records calculator evaluations.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/zephyrtronium/calc"
)

// Entry is one successful evaluation.
type Entry struct {
	// ID is the entry's row ID in a Store. It is zero in a Log.
	ID int64
	// Session identifies the session that produced the entry.
	Session uuid.UUID
	// Expr is the evaluated expression text.
	Expr string
	// Result is the formatted result.
	Result string
	// Time is when the entry was recorded.
	Time time.Time
}

func (e Entry) String() string {
	return e.Expr + " = " + e.Result
}

// Log is an in-process history. The zero value is an empty log ready to use.
type Log struct {
	entries []Entry
}

var _ calc.History = (*Log)(nil)

// Append adds an entry to the end of the log. It never fails.
func (l *Log) Append(expr, result string) error {
	l.entries = append(l.entries, Entry{Expr: expr, Result: result, Time: time.Now()})
	return nil
}

// Entries returns a copy of the entries in the order they were appended.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Clear removes all entries.
func (l *Log) Clear() {
	l.entries = nil
}
