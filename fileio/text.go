package fileio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mzurita/automaton"
)

// Text format:
//
//	STATES: q0,q1,q2
//	ALPHABET: a,b
//	INITIAL: q0
//	FINALS: q2
//	DESCRIPTION: optional free text
//	TRANSITIONS:
//	q0,a,q1
//	q0,b,q1,q2
//
// Transition lines read from,symbol,to[,to...]; an empty symbol field is an
// epsilon move. The format cannot carry names containing commas, such as the
// brace-enclosed macro-state names a conversion emits; use JSON or YAML for
// those.

// LoadText reads one automaton in the plain text format from r.
func LoadText(r io.Reader) (*automaton.Automaton, error) {
	var doc document
	inTransitions := false
	lineNo := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "TRANSITIONS:") {
			inTransitions = true
			continue
		}

		if inTransitions {
			parts := strings.Split(line, ",")
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: line %d: expected from,symbol,to", ErrFormat, lineNo)
			}
			from := strings.TrimSpace(parts[0])
			symbol := strings.TrimSpace(parts[1])
			var to destList
			for _, dest := range parts[2:] {
				if dest = strings.TrimSpace(dest); dest != "" {
					to = append(to, dest)
				}
			}
			doc.Transitions = append(doc.Transitions, transitionDoc{From: from, Symbol: symbol, To: to})
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected FIELD: value", ErrFormat, lineNo)
		}
		value = strings.TrimSpace(value)
		switch strings.ToUpper(strings.TrimSpace(field)) {
		case "STATES":
			doc.States = splitList(value)
		case "ALPHABET":
			doc.Alphabet = splitList(value)
		case "INITIAL":
			doc.Initial = value
		case "FINALS":
			doc.Finals = splitList(value)
		case "DESCRIPTION":
			doc.Description = value
		default:
			// Unknown fields are ignored, like unknown JSON keys.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return fromDocument(&doc)
}

// SaveText writes a in the plain text format.
func SaveText(a *automaton.Automaton, w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "STATES: %s\n", strings.Join(a.States(), ","))
	fmt.Fprintf(&b, "ALPHABET: %s\n", strings.Join(a.Alphabet(), ","))
	fmt.Fprintf(&b, "INITIAL: %s\n", a.Initial())
	fmt.Fprintf(&b, "FINALS: %s\n", strings.Join(a.Finals(), ","))
	if a.Description() != "" {
		fmt.Fprintf(&b, "DESCRIPTION: %s\n", a.Description())
	}
	b.WriteString("TRANSITIONS:\n")
	for _, t := range a.Transitions() {
		fmt.Fprintf(&b, "%s,%s,%s\n", t.From, t.Symbol, strings.Join(t.To, ","))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
