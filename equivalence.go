package automaton

import "fmt"

// AreEquivalent reports whether two deterministic automata accept exactly the
// same language, by synchronized breadth-first traversal of the product of
// their reachable configurations. Automata over different alphabets are
// trivially distinguishable and yield false without traversal. The check
// decides the boolean question only; it never materializes a distinguishing
// string, and it terminates because the product state space is finite.
func AreEquivalent(a, b *Automaton) (bool, error) {
	if a == nil || b == nil || !a.IsDeterministic() || !b.IsDeterministic() {
		return false, fmt.Errorf("%w: equivalence check requires two deterministic automata", ErrInvalidInput)
	}
	if !sameAlphabet(a, b) {
		return false, nil
	}

	type statePair struct {
		left, right string
	}
	visited := make(map[statePair]struct{})
	queue := []statePair{{a.initial, b.initial}}
	symbols := a.Alphabet()

	for len(queue) > 0 {
		pair := queue[0]
		queue = queue[1:]
		if _, ok := visited[pair]; ok {
			continue
		}
		visited[pair] = struct{}{}

		if a.IsFinal(pair.left) != b.IsFinal(pair.right) {
			// A distinguishing string reaches this configuration.
			return false, nil
		}
		for _, symbol := range symbols {
			left, okA := a.Step(pair.left, symbol)
			right, okB := b.Step(pair.right, symbol)
			if !okA || !okB {
				continue
			}
			successor := statePair{left, right}
			if _, ok := visited[successor]; !ok {
				queue = append(queue, successor)
			}
		}
	}
	return true, nil
}

func sameAlphabet(a, b *Automaton) bool {
	if len(a.alphabet) != len(b.alphabet) {
		return false
	}
	for symbol := range a.alphabet {
		if _, ok := b.alphabet[symbol]; !ok {
			return false
		}
	}
	return true
}
