// Package fileio loads and saves finite automata in JSON, YAML and a plain
// text table format. Loaders validate the document shape first, then hand the
// data to the core constructors, which enforce the semantic invariants; the
// core never sees a raw file.
package fileio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mzurita/automaton"
)

// ErrFormat reports a file that does not parse as an automaton document:
// broken syntax, missing required fields, an unsupported extension.
var ErrFormat = errors.New("invalid automaton file")

var validate = validator.New()

// document is the on-disk shape shared by the JSON and YAML codecs. Extra
// fields (counts, metadata) are ignored on load.
type document struct {
	States      []string        `json:"states" yaml:"states" validate:"required,min=1"`
	Alphabet    []string        `json:"alphabet" yaml:"alphabet" validate:"required,min=1"`
	Initial     string          `json:"initial" yaml:"initial" validate:"required"`
	Finals      []string        `json:"finals" yaml:"finals"`
	Transitions []transitionDoc `json:"transitions" yaml:"transitions" validate:"dive"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
}

type transitionDoc struct {
	From   string   `json:"from" yaml:"from" validate:"required"`
	Symbol string   `json:"symbol" yaml:"symbol"`
	To     destList `json:"to" yaml:"to" validate:"required,min=1"`
}

// Load reads an automaton from path, choosing the codec by extension:
// .json, .yaml/.yml or .txt.
func Load(path string) (*automaton.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".txt":
		return LoadText(f)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrFormat, filepath.Ext(path))
	}
}

// Save writes an automaton to path, choosing the codec by extension. Output
// is fully sorted, so saving the same automaton twice is byte-identical.
func Save(a *automaton.Automaton, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = SaveJSON(a, f)
	case ".yaml", ".yml":
		err = SaveYAML(a, f)
	case ".txt":
		err = SaveText(a, f)
	default:
		err = fmt.Errorf("%w: unsupported extension %q", ErrFormat, filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// fromDocument validates the document shape and builds the matching automaton
// variant. A document is nondeterministic when any transition has several
// destinations, any transition or alphabet entry uses the epsilon marker, or
// the same (from, symbol) pair appears twice.
func fromDocument(doc *document) (*automaton.Automaton, error) {
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	nondeterministic := false
	for _, symbol := range doc.Alphabet {
		if symbol == automaton.Epsilon {
			nondeterministic = true
		}
	}
	seen := make(map[string]struct{}, len(doc.Transitions))
	transitions := make([]automaton.Transition, 0, len(doc.Transitions))
	for _, t := range doc.Transitions {
		if t.Symbol == automaton.Epsilon || len(t.To) > 1 {
			nondeterministic = true
		}
		key := t.From + "\x1f" + t.Symbol
		if _, dup := seen[key]; dup {
			nondeterministic = true
		}
		seen[key] = struct{}{}
		transitions = append(transitions, automaton.Transition{From: t.From, Symbol: t.Symbol, To: t.To})
	}

	if nondeterministic {
		return automaton.NewNFA(doc.States, doc.Alphabet, doc.Initial, doc.Finals, transitions, doc.Description)
	}
	return automaton.NewDFA(doc.States, doc.Alphabet, doc.Initial, doc.Finals, transitions, doc.Description)
}

func toDocument(a *automaton.Automaton) *document {
	doc := &document{
		States:      a.States(),
		Alphabet:    a.Alphabet(),
		Initial:     a.Initial(),
		Finals:      a.Finals(),
		Description: a.Description(),
	}
	for _, t := range a.Transitions() {
		doc.Transitions = append(doc.Transitions, transitionDoc{From: t.From, Symbol: t.Symbol, To: t.To})
	}
	return doc
}
