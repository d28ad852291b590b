package fileio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzurita/automaton"
)

const dfaJSON = `{
  "states": ["s0", "s1"],
  "alphabet": ["a", "b"],
  "initial": "s0",
  "finals": ["s1"],
  "transitions": [
    {"from": "s0", "symbol": "a", "to": "s0"},
    {"from": "s0", "symbol": "b", "to": "s1"},
    {"from": "s1", "symbol": "a", "to": "s0"},
    {"from": "s1", "symbol": "b", "to": "s1"}
  ],
  "description": "ends in b"
}`

const nfaJSON = `{
  "states": ["q0", "q1", "q2"],
  "alphabet": ["a", "b"],
  "initial": "q0",
  "finals": ["q2"],
  "transitions": [
    {"from": "q0", "symbol": "a", "to": ["q0", "q1"]},
    {"from": "q1", "symbol": "b", "to": "q2"}
  ]
}`

func TestLoadJSON(t *testing.T) {
	t.Run("single destinations make a DFA", func(t *testing.T) {
		a, err := LoadJSON(strings.NewReader(dfaJSON))
		require.NoError(t, err)
		assert.True(t, a.IsDeterministic())
		assert.Equal(t, "ends in b", a.Description())
		assert.True(t, a.Accepts("ab"))
		assert.False(t, a.Accepts("ba"))
	})

	t.Run("destination lists make an NFA", func(t *testing.T) {
		a, err := LoadJSON(strings.NewReader(nfaJSON))
		require.NoError(t, err)
		assert.False(t, a.IsDeterministic())
		assert.True(t, a.Accepts("aab"))
	})

	t.Run("epsilon transition makes an NFA", func(t *testing.T) {
		doc := `{
		  "states": ["x", "y"],
		  "alphabet": ["a"],
		  "initial": "x",
		  "finals": ["y"],
		  "transitions": [{"from": "x", "symbol": "", "to": "y"}]
		}`
		a, err := LoadJSON(strings.NewReader(doc))
		require.NoError(t, err)
		assert.False(t, a.IsDeterministic())
		assert.True(t, a.Accepts(""))
	})

	t.Run("duplicate rows make an NFA", func(t *testing.T) {
		doc := `{
		  "states": ["x", "y"],
		  "alphabet": ["a"],
		  "initial": "x",
		  "finals": ["y"],
		  "transitions": [
		    {"from": "x", "symbol": "a", "to": "x"},
		    {"from": "x", "symbol": "a", "to": "y"}
		  ]
		}`
		a, err := LoadJSON(strings.NewReader(doc))
		require.NoError(t, err)
		assert.False(t, a.IsDeterministic())
	})

	t.Run("missing required field", func(t *testing.T) {
		doc := `{"states": ["x"], "alphabet": ["a"], "transitions": []}`
		_, err := LoadJSON(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("broken syntax", func(t *testing.T) {
		_, err := LoadJSON(strings.NewReader("{not json"))
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("semantic violations surface the core error", func(t *testing.T) {
		doc := `{
		  "states": ["x"],
		  "alphabet": ["a"],
		  "initial": "missing",
		  "finals": [],
		  "transitions": []
		}`
		_, err := LoadJSON(strings.NewReader(doc))
		assert.ErrorIs(t, err, automaton.ErrMalformedAutomaton)
	})
}

func TestJSONRoundTrip(t *testing.T) {
	original, err := LoadJSON(strings.NewReader(nfaJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SaveJSON(original, &buf))
	reloaded, err := LoadJSON(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.States(), reloaded.States())
	assert.Equal(t, original.Transitions(), reloaded.Transitions())
	assert.Equal(t, original.Finals(), reloaded.Finals())

	t.Run("save is deterministic", func(t *testing.T) {
		var first, second bytes.Buffer
		require.NoError(t, SaveJSON(original, &first))
		require.NoError(t, SaveJSON(original, &second))
		assert.Equal(t, first.String(), second.String())
	})
}

func TestYAML(t *testing.T) {
	doc := `
states: [q0, q1]
alphabet: [a]
initial: q0
finals: [q1]
transitions:
  - {from: q0, symbol: a, to: [q0, q1]}
`
	t.Run("load", func(t *testing.T) {
		a, err := LoadYAML(strings.NewReader(doc))
		require.NoError(t, err)
		assert.False(t, a.IsDeterministic())
		assert.True(t, a.Accepts("a"))
	})

	t.Run("round trip", func(t *testing.T) {
		original, err := LoadYAML(strings.NewReader(doc))
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, SaveYAML(original, &buf))
		reloaded, err := LoadYAML(&buf)
		require.NoError(t, err)
		assert.Equal(t, original.Transitions(), reloaded.Transitions())
	})

	t.Run("scalar destination", func(t *testing.T) {
		scalar := `
states: [q0, q1]
alphabet: [a]
initial: q0
finals: [q1]
transitions:
  - {from: q0, symbol: a, to: q1}
`
		a, err := LoadYAML(strings.NewReader(scalar))
		require.NoError(t, err)
		assert.True(t, a.IsDeterministic())
	})
}

func TestText(t *testing.T) {
	doc := `
STATES: q0,q1,q2
ALPHABET: a,b
INITIAL: q0
FINALS: q2
DESCRIPTION: a then b
TRANSITIONS:
q0,a,q0,q1
q1,b,q2
`
	t.Run("load", func(t *testing.T) {
		a, err := LoadText(strings.NewReader(doc))
		require.NoError(t, err)
		assert.False(t, a.IsDeterministic())
		assert.Equal(t, "a then b", a.Description())
		assert.True(t, a.Accepts("ab"))
	})

	t.Run("epsilon via empty symbol field", func(t *testing.T) {
		eps := `
STATES: x,y
ALPHABET: a
INITIAL: x
FINALS: y
TRANSITIONS:
x,,y
`
		a, err := LoadText(strings.NewReader(eps))
		require.NoError(t, err)
		assert.False(t, a.IsDeterministic())
		assert.True(t, a.Accepts(""))
	})

	t.Run("malformed transition line", func(t *testing.T) {
		bad := `
STATES: x
ALPHABET: a
INITIAL: x
FINALS: x
TRANSITIONS:
x a x
`
		_, err := LoadText(strings.NewReader(bad))
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("round trip", func(t *testing.T) {
		original, err := LoadText(strings.NewReader(doc))
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, SaveText(original, &buf))
		reloaded, err := LoadText(&buf)
		require.NoError(t, err)
		assert.Equal(t, original.Transitions(), reloaded.Transitions())
		assert.Equal(t, original.Description(), reloaded.Description())
	})
}

func TestLoadSavePaths(t *testing.T) {
	dir := t.TempDir()

	t.Run("dispatch by extension", func(t *testing.T) {
		a, err := LoadJSON(strings.NewReader(dfaJSON))
		require.NoError(t, err)
		for _, name := range []string{"a.json", "a.yaml", "a.txt"} {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(a, path))
			reloaded, err := Load(path)
			require.NoError(t, err, name)
			assert.Equal(t, a.Transitions(), reloaded.Transitions(), name)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "a.bin"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}
