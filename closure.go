package automaton

// EpsilonClosure returns the set of states reachable from states via zero or
// more epsilon transitions. It expands a worklist to a fixpoint, skipping
// already-closed states so the cost stays linear in the transitions examined.
// On a deterministic automaton, which has no epsilon moves, the closure is the
// input set itself.
func (a *Automaton) EpsilonClosure(states *StateSet) *StateSet {
	closure := states.Clone()
	worklist := states.Sorted()

	for len(worklist) > 0 {
		state := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		dests, ok := a.trans[state][Epsilon]
		if !ok {
			continue
		}
		for dest := range dests.members {
			if !closure.Contains(dest) {
				closure.Add(dest)
				worklist = append(worklist, dest)
			}
		}
	}
	return closure
}
