// Package automaton transforms finite-state automata: it removes
// nondeterminism via the subset construction, reduces deterministic automata
// to their minimal equivalent form through partition refinement, and certifies
// transformations with a product-automaton equivalence check.
//
// States are opaque names. An Automaton is immutable once constructed; every
// transformation returns a freshly built value together with a Trace of the
// decisions taken.
package automaton

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Epsilon is the reserved empty symbol marking an unlabeled transition. It is
// never a member of an automaton's alphabet.
const Epsilon = ""

// Transition is one row of the transition relation in its external form: a
// source state, a symbol (Epsilon for unlabeled moves) and one or more
// destination states. Deterministic automata require exactly one destination.
type Transition struct {
	From   string
	Symbol string
	To     []string
}

// Automaton represents a deterministic or nondeterministic finite automaton
// over named states. Destinations are always stored as state sets; the
// deterministic variant enforces singleton sets at construction time, so a
// validated DFA never needs the check again.
type Automaton struct {
	states        map[string]struct{}
	alphabet      map[string]struct{}
	initial       string
	finals        *StateSet
	trans         map[string]map[string]*StateSet
	description   string
	deterministic bool
}

// NewDFA constructs and validates a deterministic automaton. Epsilon symbols
// and multi-destination transitions are rejected as malformed.
func NewDFA(states, alphabet []string, initial string, finals []string, transitions []Transition, description string) (*Automaton, error) {
	return newAutomaton(states, alphabet, initial, finals, transitions, description, true)
}

// NewNFA constructs and validates a nondeterministic automaton. Epsilon
// transitions are keyed by the empty symbol; a declared epsilon marker in the
// alphabet is dropped rather than stored.
func NewNFA(states, alphabet []string, initial string, finals []string, transitions []Transition, description string) (*Automaton, error) {
	return newAutomaton(states, alphabet, initial, finals, transitions, description, false)
}

func newAutomaton(states, alphabet []string, initial string, finals []string, transitions []Transition, description string, deterministic bool) (*Automaton, error) {
	a := &Automaton{
		states:        make(map[string]struct{}, len(states)),
		alphabet:      make(map[string]struct{}, len(alphabet)),
		initial:       initial,
		finals:        NewStateSet(),
		trans:         make(map[string]map[string]*StateSet),
		description:   description,
		deterministic: deterministic,
	}

	for _, state := range states {
		if state == "" {
			return nil, fmt.Errorf("%w: empty state name", ErrMalformedAutomaton)
		}
		a.states[state] = struct{}{}
	}
	if len(a.states) == 0 {
		return nil, fmt.Errorf("%w: no states", ErrMalformedAutomaton)
	}

	for _, symbol := range alphabet {
		if symbol == Epsilon {
			if deterministic {
				return nil, fmt.Errorf("%w: epsilon in the alphabet of a deterministic automaton", ErrMalformedAutomaton)
			}
			continue
		}
		a.alphabet[symbol] = struct{}{}
	}
	if len(a.alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrMalformedAutomaton)
	}

	if _, ok := a.states[initial]; !ok {
		return nil, fmt.Errorf("%w: initial state %q outside the state set", ErrMalformedAutomaton, initial)
	}
	for _, state := range finals {
		if _, ok := a.states[state]; !ok {
			return nil, fmt.Errorf("%w: final state %q outside the state set", ErrMalformedAutomaton, state)
		}
		a.finals.Add(state)
	}

	for _, t := range transitions {
		if _, ok := a.states[t.From]; !ok {
			return nil, fmt.Errorf("%w: transition source %q outside the state set", ErrMalformedAutomaton, t.From)
		}
		if t.Symbol == Epsilon {
			if deterministic {
				return nil, fmt.Errorf("%w: epsilon transition from %q on a deterministic automaton", ErrMalformedAutomaton, t.From)
			}
		} else if _, ok := a.alphabet[t.Symbol]; !ok {
			return nil, fmt.Errorf("%w: transition symbol %q outside the alphabet", ErrMalformedAutomaton, t.Symbol)
		}
		if len(t.To) == 0 {
			return nil, fmt.Errorf("%w: transition from %q on %q has no destination", ErrMalformedAutomaton, t.From, t.Symbol)
		}

		row, ok := a.trans[t.From]
		if !ok {
			row = make(map[string]*StateSet)
			a.trans[t.From] = row
		}
		dests, ok := row[t.Symbol]
		if !ok {
			dests = NewStateSet()
			row[t.Symbol] = dests
		}
		for _, dest := range t.To {
			if _, ok := a.states[dest]; !ok {
				return nil, fmt.Errorf("%w: transition destination %q outside the state set", ErrMalformedAutomaton, dest)
			}
			dests.Add(dest)
		}
		if deterministic && dests.Size() > 1 {
			return nil, fmt.Errorf("%w: state %q has %d destinations on %q", ErrMalformedAutomaton, t.From, dests.Size(), t.Symbol)
		}
	}

	return a, nil
}

// IsDeterministic reports whether the automaton is the deterministic variant.
func (a *Automaton) IsDeterministic() bool {
	return a.deterministic
}

func (a *Automaton) Description() string {
	return a.description
}

// States returns every state name in ascending order.
func (a *Automaton) States() []string {
	out := make([]string, 0, len(a.states))
	for state := range a.states {
		out = append(out, state)
	}
	sort.Strings(out)
	return out
}

// Alphabet returns the input symbols in ascending order. Epsilon is never
// included.
func (a *Automaton) Alphabet() []string {
	out := make([]string, 0, len(a.alphabet))
	for symbol := range a.alphabet {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

func (a *Automaton) Initial() string {
	return a.initial
}

func (a *Automaton) Finals() []string {
	return a.finals.Sorted()
}

// IsFinal reports whether state is an accept state.
func (a *Automaton) IsFinal(state string) bool {
	return a.finals.Contains(state)
}

func (a *Automaton) NumStates() int {
	return len(a.states)
}

// NumTransitions counts the defined (state, symbol) pairs.
func (a *Automaton) NumTransitions() int {
	n := 0
	for _, row := range a.trans {
		n += len(row)
	}
	return n
}

// Destinations returns a copy of the destination set for (state, symbol), or
// ok=false when the pair is undefined. Epsilon retrieves unlabeled moves.
func (a *Automaton) Destinations(state, symbol string) (*StateSet, bool) {
	dests, ok := a.trans[state][symbol]
	if !ok {
		return nil, false
	}
	return dests.Clone(), true
}

// Step performs a single deterministic move, returning ok=false when no
// transition is defined for the pair.
func (a *Automaton) Step(state, symbol string) (string, bool) {
	dests, ok := a.trans[state][symbol]
	if !ok || dests.Size() != 1 {
		return "", false
	}
	return dests.Sorted()[0], true
}

// Transitions returns the full relation in external form, sorted by source
// state then symbol. Epsilon rows sort first within a state.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, a.NumTransitions())
	for _, from := range a.States() {
		row := a.trans[from]
		symbols := make([]string, 0, len(row))
		for symbol := range row {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			out = append(out, Transition{From: from, Symbol: symbol, To: row[symbol].Sorted()})
		}
	}
	return out
}

// Accepts reports whether the automaton accepts input, reading one symbol per
// rune. It fails closed: a symbol outside the alphabet or an undefined
// transition rejects, it never errors.
//
// The nondeterministic walk tracks the set of active states and applies the
// epsilon closure at the start and after every consumed symbol, so an NFA and
// its determinized counterpart always agree.
func (a *Automaton) Accepts(input string) bool {
	if a.deterministic {
		return a.acceptsDFA(input)
	}
	return a.acceptsNFA(input)
}

func (a *Automaton) acceptsDFA(input string) bool {
	current := a.initial
	for _, r := range input {
		symbol := string(r)
		if _, ok := a.alphabet[symbol]; !ok {
			return false
		}
		next, ok := a.Step(current, symbol)
		if !ok {
			return false
		}
		current = next
	}
	return a.IsFinal(current)
}

func (a *Automaton) acceptsNFA(input string) bool {
	active := a.EpsilonClosure(NewStateSet(a.initial))
	for _, r := range input {
		symbol := string(r)
		if _, ok := a.alphabet[symbol]; !ok {
			return false
		}
		next := NewStateSet()
		for state := range active.members {
			if dests, ok := a.trans[state][symbol]; ok {
				next.AddAll(dests)
			}
		}
		if next.IsEmpty() {
			return false
		}
		active = a.EpsilonClosure(next)
	}
	return active.Intersects(a.finals)
}

// ReachableStates returns every state reachable from the initial state by any
// path, epsilon moves included.
func (a *Automaton) ReachableStates() *StateSet {
	index := a.States()
	pos := make(map[string]uint, len(index))
	for i, state := range index {
		pos[state] = uint(i)
	}

	seen := bitset.New(uint(len(index)))
	seen.Set(pos[a.initial])
	reachable := NewStateSet(a.initial)
	worklist := []string{a.initial}

	for len(worklist) > 0 {
		state := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, dests := range a.trans[state] {
			for dest := range dests.members {
				if !seen.Test(pos[dest]) {
					seen.Set(pos[dest])
					reachable.Add(dest)
					worklist = append(worklist, dest)
				}
			}
		}
	}
	return reachable
}
