package automaton

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ConvertToDFA eliminates nondeterminism from nfa via the tabular subset
// construction. The result accepts the same language over the same alphabet
// (minus the epsilon marker). Subsets that cannot reach any final state are
// discarded eagerly instead of growing an explicit rejecting trap state, so
// the output may leave transitions undefined.
//
// Macro-state naming is canonical and discovery order is breadth-first, so
// repeated runs on the same input produce identical output.
func ConvertToDFA(nfa *Automaton) (*Automaton, *Trace, error) {
	if nfa == nil || nfa.IsDeterministic() {
		return nil, nil, fmt.Errorf("%w: subset construction requires a nondeterministic automaton", ErrInvalidInput)
	}
	c := &subsetConverter{
		nfa:   nfa,
		trace: NewTrace(),
		names: newNameTable(),
	}
	dfa, err := c.convert()
	if err != nil {
		return nil, nil, err
	}
	return dfa, c.trace, nil
}

// subsetConverter holds the per-run tables of one conversion: the pruned
// per-symbol transition table of the source automaton, the useful-state mask
// and the macro-state name arena.
type subsetConverter struct {
	nfa    *Automaton
	trace  *Trace
	names  *nameTable
	useful *StateSet
	table  map[string]map[string]*StateSet
}

type macroState struct {
	name string
	set  *StateSet
}

func (c *subsetConverter) convert() (*Automaton, error) {
	c.useful = c.usefulStates()
	c.reportDropped()
	c.buildTable()

	seed := c.nfa.EpsilonClosure(NewStateSet(c.nfa.initial))
	initialName := c.names.nameFor(seed)
	c.trace.Addf("initial state %s = %s", initialName, seed)

	var discovered []macroState
	processed := make(map[string]bool)
	// macro-state name -> symbol -> destination name
	transitions := make(map[string]map[string]string)

	queue := []*StateSet{seed}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if processed[current.Key()] {
			continue
		}
		if !current.Intersects(c.useful) {
			c.trace.Addf("skipping %s: no final state reachable", current)
			continue
		}
		processed[current.Key()] = true
		name := c.names.nameFor(current)
		discovered = append(discovered, macroState{name: name, set: current})
		c.trace.Addf("processing %s = %s", name, current)

		row := make(map[string]string)
		for _, symbol := range c.nfa.Alphabet() {
			dest := NewStateSet()
			for member := range current.members {
				if pruned, ok := c.table[member][symbol]; ok {
					dest.AddAll(pruned)
				}
			}
			if dest.IsEmpty() {
				// Implicit rejection; no trap state is materialized.
				c.trace.Addf("  δ(%s, %s) undefined", name, symbol)
				continue
			}
			destName := c.names.nameFor(dest)
			row[symbol] = destName
			c.trace.Addf("  δ(%s, %s) = %s", name, symbol, destName)
			if !processed[dest.Key()] {
				queue = append(queue, dest)
			}
		}
		transitions[name] = row
	}

	finals := NewStateSet()
	for _, m := range discovered {
		if m.set.Intersects(c.nfa.finals) {
			finals.Add(m.name)
		}
	}

	removed := c.removeSinks(discovered, transitions, finals)

	var states []string
	var finalNames []string
	var transList []Transition
	for _, m := range discovered {
		if removed[m.name] {
			continue
		}
		states = append(states, m.name)
		if finals.Contains(m.name) {
			finalNames = append(finalNames, m.name)
		}
		for _, symbol := range c.nfa.Alphabet() {
			destName, ok := transitions[m.name][symbol]
			if !ok || removed[destName] {
				continue
			}
			transList = append(transList, Transition{From: m.name, Symbol: symbol, To: []string{destName}})
		}
	}
	if len(states) == 0 {
		// The seed closure cannot reach any final state: the language is
		// empty, but the output must still be a structurally valid automaton.
		states = []string{initialName}
		c.trace.Addf("no useful state reachable from %s; emitting a single rejecting state", initialName)
	}

	dfa, err := NewDFA(states, c.nfa.Alphabet(), initialName, finalNames, transList, c.describe())
	if err != nil {
		return nil, err
	}
	c.trace.Addf("result: %d states, %d transitions", dfa.NumStates(), dfa.NumTransitions())
	return dfa, nil
}

// usefulStates returns the states from which some final state is reachable,
// found by one backward-reachability pass from the finals over every
// transition, epsilon included.
func (c *subsetConverter) usefulStates() *StateSet {
	index := c.nfa.States()
	pos := make(map[string]uint, len(index))
	for i, state := range index {
		pos[state] = uint(i)
	}

	reverse := make(map[string][]string)
	for from, row := range c.nfa.trans {
		for _, dests := range row {
			for dest := range dests.members {
				reverse[dest] = append(reverse[dest], from)
			}
		}
	}

	seen := bitset.New(uint(len(index)))
	useful := NewStateSet()
	worklist := c.nfa.finals.Sorted()
	for _, state := range worklist {
		seen.Set(pos[state])
		useful.Add(state)
	}
	for len(worklist) > 0 {
		state := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, pred := range reverse[state] {
			if !seen.Test(pos[pred]) {
				seen.Set(pos[pred])
				useful.Add(pred)
				worklist = append(worklist, pred)
			}
		}
	}
	return useful
}

func (c *subsetConverter) reportDropped() {
	dropped := NewStateSet()
	for state := range c.nfa.states {
		if !c.useful.Contains(state) {
			dropped.Add(state)
		}
	}
	if !dropped.IsEmpty() {
		c.trace.Addf("useless states dropped from the source automaton: %s", dropped)
	}
}

// buildTable computes the pruned per-symbol transition table: for every useful
// source state the epsilon closure of its symbol successors, intersected with
// the useful set. Useless states get no row at all.
func (c *subsetConverter) buildTable() {
	c.table = make(map[string]map[string]*StateSet, c.useful.Size())
	for _, state := range c.useful.Sorted() {
		row := make(map[string]*StateSet)
		for _, symbol := range c.nfa.Alphabet() {
			dests, ok := c.nfa.trans[state][symbol]
			if !ok {
				continue
			}
			pruned := c.nfa.EpsilonClosure(dests).Intersect(c.useful)
			if !pruned.IsEmpty() {
				row[symbol] = pruned
			}
		}
		c.table[state] = row
	}
}

// removeSinks deletes non-final macro-states whose outgoing transitions are
// all self-loops or undefined. Transitions into a deleted state become
// undefined rather than rerouted.
func (c *subsetConverter) removeSinks(discovered []macroState, transitions map[string]map[string]string, finals *StateSet) map[string]bool {
	removed := make(map[string]bool)
	for _, m := range discovered {
		if finals.Contains(m.name) {
			continue
		}
		sink := true
		for _, destName := range transitions[m.name] {
			if destName != m.name {
				sink = false
				break
			}
		}
		if sink {
			removed[m.name] = true
			c.trace.Addf("removing sink state %s", m.name)
		}
	}
	return removed
}

func (c *subsetConverter) describe() string {
	if c.nfa.description == "" {
		return "determinized"
	}
	return "determinized: " + c.nfa.description
}
