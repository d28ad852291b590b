package automaton

import "errors"

var (
	// ErrInvalidInput reports an automaton of the wrong variant passed to a
	// variant-specific operation, e.g. a DFA handed to the subset constructor.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedAutomaton reports a structural invariant violation detected
	// at construction time: a dangling transition endpoint, an initial state
	// outside the state set, a symbol outside the alphabet.
	ErrMalformedAutomaton = errors.New("malformed automaton")
)
