package report

import (
	"fmt"
	"strings"

	"github.com/mzurita/automaton"
)

// DOT renders the automaton in Graphviz DOT form: doublecircle nodes for
// finals, a synthetic start point arrowing into the initial state, ε on
// unlabeled edges. Node and edge order is sorted, so output is stable.
func DOT(a *automaton.Automaton) string {
	var b strings.Builder
	b.WriteString("digraph automaton {\n")
	b.WriteString("  rankdir=LR;\n")
	if a.Description() != "" {
		fmt.Fprintf(&b, "  label=%q;\n", a.Description())
	}
	b.WriteString("  __start [shape=point];\n")
	fmt.Fprintf(&b, "  __start -> %q;\n", a.Initial())

	for _, state := range a.States() {
		shape := "circle"
		if a.IsFinal(state) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "  %q [shape=%s];\n", state, shape)
	}
	for _, t := range a.Transitions() {
		label := t.Symbol
		if label == automaton.Epsilon {
			label = "ε"
		}
		for _, to := range t.To {
			fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", t.From, to, label)
		}
	}
	b.WriteString("}\n")
	return b.String()
}
