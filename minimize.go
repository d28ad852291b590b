package automaton

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MinimizeDFA reduces dfa to the unique minimal deterministic automaton
// accepting the same language (Myhill-Nerode minimality). Unreachable states
// are discarded first, then the states are refined into blocks of mutually
// indistinguishable states; each block survives as its smallest member name.
func MinimizeDFA(dfa *Automaton) (*Automaton, *Trace, error) {
	if dfa == nil || !dfa.IsDeterministic() {
		return nil, nil, fmt.Errorf("%w: minimization requires a deterministic automaton", ErrInvalidInput)
	}
	m := &minimizer{dfa: dfa, trace: NewTrace()}
	out, err := m.minimize()
	if err != nil {
		return nil, nil, err
	}
	return out, m.trace, nil
}

type minimizer struct {
	dfa   *Automaton
	trace *Trace
}

// partition is an ordered list of disjoint, non-empty state blocks. Every
// block is kept sorted, so the first member is the block's canonical
// representative and snapshots render deterministically.
type partition [][]string

func (p partition) blockIndex() map[string]int {
	idx := make(map[string]int)
	for i, block := range p {
		for _, state := range block {
			idx[state] = i
		}
	}
	return idx
}

// equalBlocks compares two partitions as unordered collections of blocks.
// Equal block counts alone cannot detect a fixpoint: a refinement round may
// permute membership without changing any block's size.
func (p partition) equalBlocks(other partition) bool {
	if len(p) != len(other) {
		return false
	}
	keys := make(map[string]struct{}, len(p))
	for _, block := range p {
		keys[strings.Join(block, keySeparator)] = struct{}{}
	}
	for _, block := range other {
		if _, ok := keys[strings.Join(block, keySeparator)]; !ok {
			return false
		}
	}
	return true
}

func (p partition) String() string {
	blocks := make([]string, len(p))
	for i, block := range p {
		blocks[i] = "{" + strings.Join(block, ",") + "}"
	}
	return "[" + strings.Join(blocks, " ") + "]"
}

func (m *minimizer) minimize() (*Automaton, error) {
	reachable := m.dfa.ReachableStates()
	if dropped := m.dfa.NumStates() - reachable.Size(); dropped > 0 {
		m.trace.Addf("unreachable states removed: %d", dropped)
	}
	finals := m.dfa.finals.Intersect(reachable)

	current := initialPartition(reachable, finals)
	m.trace.Addf("initial partition: %s", current)

	symbols := m.dfa.Alphabet()
	iteration := 0
	for {
		iteration++
		next := m.refine(current, reachable, symbols)
		m.trace.Addf("iteration %d: %s", iteration, next)
		if len(next) == len(current) && next.equalBlocks(current) {
			break
		}
		current = next
	}
	m.trace.Addf("minimization completed in %d iterations", iteration)

	return m.build(current, reachable, finals)
}

// initialPartition splits the reachable states into non-finals then finals,
// omitting an empty block.
func initialPartition(reachable, finals *StateSet) partition {
	nonFinals := NewStateSet()
	for _, state := range reachable.Sorted() {
		if !finals.Contains(state) {
			nonFinals.Add(state)
		}
	}
	var p partition
	if !nonFinals.IsEmpty() {
		p = append(p, nonFinals.Sorted())
	}
	if !finals.IsEmpty() {
		p = append(p, finals.Sorted())
	}
	return p
}

// refine splits every block of current by transition signature. Signatures
// are computed against current's block indices, never against the partition
// being built.
func (m *minimizer) refine(current partition, reachable *StateSet, symbols []string) partition {
	blockOf := current.blockIndex()
	var next partition
	for _, block := range current {
		if len(block) <= 1 {
			next = append(next, block)
			continue
		}
		signatureIdx := make(map[string]int)
		var subBlocks [][]string
		for _, state := range block {
			sig := m.signature(state, blockOf, reachable, symbols)
			idx, ok := signatureIdx[sig]
			if !ok {
				idx = len(subBlocks)
				signatureIdx[sig] = idx
				subBlocks = append(subBlocks, nil)
			}
			subBlocks[idx] = append(subBlocks[idx], state)
		}
		next = append(next, subBlocks...)
	}
	return next
}

// signature encodes, per alphabet symbol in canonical order, the index of the
// block the destination falls into; -1 stands for an undefined transition or
// one leaving the reachable set.
func (m *minimizer) signature(state string, blockOf map[string]int, reachable *StateSet, symbols []string) string {
	parts := make([]string, len(symbols))
	for i, symbol := range symbols {
		idx := -1
		if dest, ok := m.dfa.Step(state, symbol); ok && reachable.Contains(dest) {
			idx = blockOf[dest]
		}
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// build maps every state to its block representative and assembles the
// minimized automaton. A transition survives only if both endpoints did.
func (m *minimizer) build(final partition, reachable, finals *StateSet) (*Automaton, error) {
	repOf := make(map[string]string)
	states := make([]string, 0, len(final))
	for _, block := range final {
		rep := block[0]
		states = append(states, rep)
		for _, state := range block {
			repOf[state] = rep
		}
		if len(block) > 1 {
			m.trace.Addf("equivalent states {%s} -> %s", strings.Join(block, ","), rep)
		}
	}
	sort.Strings(states)

	finalReps := NewStateSet()
	for _, state := range finals.Sorted() {
		finalReps.Add(repOf[state])
	}

	// Dedupe merged transitions through the representative mapping.
	merged := make(map[string]map[string]string)
	for _, t := range m.dfa.Transitions() {
		from, ok := repOf[t.From]
		if !ok {
			continue
		}
		to, ok := repOf[t.To[0]]
		if !ok {
			continue
		}
		row, ok := merged[from]
		if !ok {
			row = make(map[string]string)
			merged[from] = row
		}
		row[t.Symbol] = to
	}
	var transitions []Transition
	for _, from := range states {
		row := merged[from]
		symbols := make([]string, 0, len(row))
		for symbol := range row {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			transitions = append(transitions, Transition{From: from, Symbol: symbol, To: []string{row[symbol]}})
		}
	}

	return NewDFA(states, m.dfa.Alphabet(), repOf[m.dfa.initial], finalReps.Sorted(), transitions, m.dfa.description)
}
