package engine

import "fmt"

// --- Turn log ---------------------------------------------------------
// turnLog accumulates the human-readable lines produced by one phase.
type turnLog struct {
	lines []string
}

func newTurnLog() *turnLog {
	return &turnLog{lines: make([]string, 0, 8)}
}

func (l *turnLog) add(msg string) { l.lines = append(l.lines, msg) }

func (l *turnLog) addf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// result returns the accumulated lines; never nil so callers can append freely.
func (l *turnLog) result() []string {
	if l.lines == nil {
		return []string{}
	}
	return l.lines
}
