// Package report renders automata and transformation traces for humans:
// transition tables, conversion and minimization reports, Graphviz DOT
// export. Rendering consumes finished automata and traces; it never
// influences the algorithms.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mzurita/automaton"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

const separatorWidth = 69

// TransitionTable renders the transition relation as a bordered table: one
// row per state, one column per symbol (plus an ε column when the automaton
// has unlabeled moves), and an F column flagging finals. Undefined
// transitions show as "-".
func TransitionTable(a *automaton.Automaton) string {
	symbols := a.Alphabet()
	if hasEpsilonMoves(a) {
		symbols = append([]string{automaton.Epsilon}, symbols...)
	}

	headers := []string{"δ"}
	for _, symbol := range symbols {
		if symbol == automaton.Epsilon {
			symbol = "ε"
		}
		headers = append(headers, symbol)
	}
	headers = append(headers, "F")

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)

	for _, state := range a.States() {
		row := []string{state}
		for _, symbol := range symbols {
			row = append(row, destinationCell(a, state, symbol))
		}
		flag := "0"
		if a.IsFinal(state) {
			flag = "1"
		}
		tbl.Row(append(row, flag)...)
	}
	return tbl.Render()
}

func destinationCell(a *automaton.Automaton, state, symbol string) string {
	dests, ok := a.Destinations(state, symbol)
	if !ok {
		return "-"
	}
	names := dests.Sorted()
	if len(names) == 1 {
		return names[0]
	}
	return "{" + strings.Join(names, ",") + "}"
}

func hasEpsilonMoves(a *automaton.Automaton) bool {
	for _, state := range a.States() {
		if _, ok := a.Destinations(state, automaton.Epsilon); ok {
			return true
		}
	}
	return false
}

// Conversion renders the nondeterminism-elimination report: a summary, both
// transition tables and the recorded construction steps.
func Conversion(nfa, dfa *automaton.Automaton, trace *automaton.Trace) string {
	var b strings.Builder
	writeTitle(&b, "NONDETERMINISM ELIMINATION REPORT")
	b.WriteString("SUMMARY:\n")
	fmt.Fprintf(&b, "  source states: %d\n", nfa.NumStates())
	fmt.Fprintf(&b, "  result states: %d\n", dfa.NumStates())
	b.WriteString("\nSOURCE AUTOMATON:\n")
	b.WriteString(TransitionTable(nfa))
	b.WriteString("\n\nRESULT AUTOMATON:\n")
	b.WriteString(TransitionTable(dfa))
	b.WriteString("\n\nPROCESS:\n")
	writeTrace(&b, trace)
	return b.String()
}

// Minimization renders the minimization report with both transition tables
// and the refinement steps, equivalent-state groups included.
func Minimization(original, minimized *automaton.Automaton, trace *automaton.Trace) string {
	var b strings.Builder
	writeTitle(&b, "MINIMIZATION REPORT")
	b.WriteString("ORIGINAL AUTOMATON:\n")
	b.WriteString(TransitionTable(original))
	b.WriteString("\n\nMINIMIZED AUTOMATON:\n")
	b.WriteString(TransitionTable(minimized))
	b.WriteString("\n\nPROCESS:\n")
	writeTrace(&b, trace)
	return b.String()
}

// EquivalenceVerdict renders the outcome of the product-automaton check.
func EquivalenceVerdict(equal bool) string {
	if equal {
		return "languages are equivalent"
	}
	return "languages differ: a distinguishing string exists"
}

func writeTitle(b *strings.Builder, title string) {
	rule := strings.Repeat("=", separatorWidth)
	b.WriteString(rule + "\n" + title + "\n" + rule + "\n\n")
}

func writeTrace(b *strings.Builder, trace *automaton.Trace) {
	for _, step := range trace.Steps() {
		b.WriteString("  " + step + "\n")
	}
}
