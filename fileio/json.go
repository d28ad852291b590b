package fileio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mzurita/automaton"
)

// destList accepts either a bare string or a list of strings as the
// destination of a transition, and writes singletons back as bare strings.
type destList []string

func (d *destList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*d = destList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("destination must be a string or a list of strings")
	}
	*d = destList(many)
	return nil
}

func (d destList) MarshalJSON() ([]byte, error) {
	if len(d) == 1 {
		return json.Marshal(d[0])
	}
	return json.Marshal([]string(d))
}

// LoadJSON reads one automaton document from r.
func LoadJSON(r io.Reader) (*automaton.Automaton, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return fromDocument(&doc)
}

// SaveJSON writes a as an indented JSON document.
func SaveJSON(a *automaton.Automaton, w io.Writer) error {
	data, err := json.MarshalIndent(toDocument(a), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
