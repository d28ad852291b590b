package automaton

import "strings"

// nameTable assigns deterministic names to macro-states synthesized from sets
// of underlying states. A singleton keeps its sole member's name; larger sets
// get a brace-enclosed, sorted, comma-joined name. The table is consulted
// before inventing a new name so identical sets always resolve identically.
// A table is scoped to a single algorithm run and discarded afterwards.
type nameTable struct {
	names map[string]string
}

func newNameTable() *nameTable {
	return &nameTable{names: make(map[string]string)}
}

func (n *nameTable) nameFor(set *StateSet) string {
	key := set.Key()
	if name, ok := n.names[key]; ok {
		return name
	}
	members := set.Sorted()
	name := members[0]
	if len(members) > 1 {
		name = "{" + strings.Join(members, ",") + "}"
	}
	n.names[key] = name
	return name
}
