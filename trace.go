package automaton

import (
	"fmt"
	"strings"
)

// Trace is an ordered, append-only log of human-readable algorithm steps:
// partition snapshots, per-symbol transition decisions, pruning choices. Its
// content documents a run for report generation and never affects the
// algorithmic outcome. Every transformation call owns a fresh Trace, so
// nothing leaks between unrelated invocations.
type Trace struct {
	steps []string
}

func NewTrace() *Trace {
	return &Trace{}
}

func (t *Trace) Add(step string) {
	t.steps = append(t.steps, step)
}

func (t *Trace) Addf(format string, args ...any) {
	t.steps = append(t.steps, fmt.Sprintf(format, args...))
}

// Steps returns a copy of the recorded steps in append order.
func (t *Trace) Steps() []string {
	out := make([]string, len(t.steps))
	copy(out, t.steps)
	return out
}

func (t *Trace) Len() int {
	return len(t.steps)
}

func (t *Trace) String() string {
	return strings.Join(t.steps, "\n")
}
