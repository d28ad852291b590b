package fileio

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mzurita/automaton"
)

func (d *destList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*d = destList{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*d = destList(many)
		return nil
	default:
		return fmt.Errorf("destination must be a scalar or a sequence")
	}
}

func (d destList) MarshalYAML() (any, error) {
	if len(d) == 1 {
		return d[0], nil
	}
	return []string(d), nil
}

// LoadYAML reads one automaton document from r.
func LoadYAML(r io.Reader) (*automaton.Automaton, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return fromDocument(&doc)
}

// SaveYAML writes a as a YAML document.
func SaveYAML(a *automaton.Automaton, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(a)); err != nil {
		return err
	}
	return enc.Close()
}
