package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stringsUpTo enumerates every string over alphabet of length <= maxLen,
// shortest first.
func stringsUpTo(alphabet []string, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for i := 0; i < maxLen; i++ {
		var next []string
		for _, prefix := range frontier {
			for _, symbol := range alphabet {
				next = append(next, prefix+symbol)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

// aPlusB is the scenario NFA accepting exactly a+b.
func aPlusB(t *testing.T) *Automaton {
	t.Helper()
	return buildNFA(t, []string{"q0", "q1", "q2"}, []string{"a", "b"}, "q0", []string{"q2"},
		[]Transition{
			{From: "q0", Symbol: "a", To: []string{"q0", "q1"}},
			{From: "q1", Symbol: "b", To: []string{"q2"}},
		})
}

func TestConvertToDFA(t *testing.T) {
	t.Run("rejects deterministic input", func(t *testing.T) {
		_, _, err := ConvertToDFA(endsInB(t))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("accepts exactly a+b", func(t *testing.T) {
		dfa, trace, err := ConvertToDFA(aPlusB(t))
		require.NoError(t, err)
		require.True(t, dfa.IsDeterministic())
		assert.Greater(t, trace.Len(), 0)

		assert.True(t, dfa.Accepts("ab"))
		assert.True(t, dfa.Accepts("aab"))
		assert.True(t, dfa.Accepts("aaab"))
		assert.False(t, dfa.Accepts("ba"))
		assert.False(t, dfa.Accepts(""))
		assert.False(t, dfa.Accepts("abb"))
	})

	t.Run("language preserved over bounded strings", func(t *testing.T) {
		nfa := aPlusB(t)
		dfa, _, err := ConvertToDFA(nfa)
		require.NoError(t, err)
		for _, s := range stringsUpTo([]string{"a", "b"}, 5) {
			assert.Equal(t, nfa.Accepts(s), dfa.Accepts(s), "input %q", s)
		}
	})

	t.Run("epsilon transitions folded in", func(t *testing.T) {
		nfa := buildNFA(t, []string{"s0", "s1", "s2"}, []string{"a"}, "s0", []string{"s2"},
			[]Transition{
				{From: "s0", Symbol: Epsilon, To: []string{"s1"}},
				{From: "s1", Symbol: "a", To: []string{"s2"}},
			})
		dfa, _, err := ConvertToDFA(nfa)
		require.NoError(t, err)
		assert.Equal(t, "{s0,s1}", dfa.Initial())
		for _, s := range stringsUpTo([]string{"a"}, 4) {
			assert.Equal(t, nfa.Accepts(s), dfa.Accepts(s), "input %q", s)
		}
	})

	t.Run("alphabet excludes epsilon marker", func(t *testing.T) {
		nfa := buildNFA(t, []string{"s0", "s1"}, []string{"a", Epsilon}, "s0", []string{"s1"},
			[]Transition{{From: "s0", Symbol: "a", To: []string{"s0", "s1"}}})
		dfa, _, err := ConvertToDFA(nfa)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, dfa.Alphabet())
	})

	t.Run("useless seed yields a single rejecting state", func(t *testing.T) {
		nfa := buildNFA(t, []string{"q0", "q1"}, []string{"a"}, "q0", nil,
			[]Transition{{From: "q0", Symbol: "a", To: []string{"q0", "q1"}}})
		dfa, _, err := ConvertToDFA(nfa)
		require.NoError(t, err)
		assert.Equal(t, 1, dfa.NumStates())
		assert.Equal(t, 0, dfa.NumTransitions())
		assert.Empty(t, dfa.Finals())
		assert.False(t, dfa.Accepts(""))
		assert.False(t, dfa.Accepts("a"))
	})

	t.Run("trap subsets stay implicit", func(t *testing.T) {
		// q1 is a dead end: subsets through it must not materialize a sink.
		nfa := buildNFA(t, []string{"q0", "q1", "q2"}, []string{"a", "b"}, "q0", []string{"q2"},
			[]Transition{
				{From: "q0", Symbol: "a", To: []string{"q1", "q2"}},
				{From: "q1", Symbol: "a", To: []string{"q1"}},
			})
		dfa, _, err := ConvertToDFA(nfa)
		require.NoError(t, err)
		for _, state := range dfa.States() {
			assert.NotContains(t, state, "q1")
		}
		assert.True(t, dfa.Accepts("a"))
		assert.False(t, dfa.Accepts("aa"))
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		first, firstTrace, err := ConvertToDFA(aPlusB(t))
		require.NoError(t, err)
		second, secondTrace, err := ConvertToDFA(aPlusB(t))
		require.NoError(t, err)

		assert.Equal(t, first.States(), second.States())
		assert.Equal(t, first.Initial(), second.Initial())
		assert.Equal(t, first.Finals(), second.Finals())
		assert.Equal(t, first.Transitions(), second.Transitions())
		assert.Equal(t, firstTrace.Steps(), secondTrace.Steps())
	})

	t.Run("macro-state names are canonical", func(t *testing.T) {
		dfa, _, err := ConvertToDFA(aPlusB(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"q0", "q2", "{q0,q1}"}, dfa.States())
		assert.Equal(t, "q0", dfa.Initial())
		assert.Equal(t, []string{"q2"}, dfa.Finals())
	})

	t.Run("converted automaton agrees with minimized pipeline", func(t *testing.T) {
		dfa, _, err := ConvertToDFA(aPlusB(t))
		require.NoError(t, err)
		minimized, _, err := MinimizeDFA(dfa)
		require.NoError(t, err)
		equal, err := AreEquivalent(dfa, minimized)
		require.NoError(t, err)
		assert.True(t, equal)
	})
}
