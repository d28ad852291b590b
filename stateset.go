package automaton

import (
	"sort"
	"strings"
)

// keySeparator joins member names into a canonical key. The unit separator
// cannot appear in a state name read from any supported input format.
const keySeparator = "\x1f"

// StateSet is a mutable set of state names with a canonical, order-independent
// key. Two sets with the same members always produce the same Key, which is
// what the subset construction uses to recognize an already-discovered
// macro-state.
type StateSet struct {
	members map[string]struct{}
}

func NewStateSet(states ...string) *StateSet {
	s := &StateSet{members: make(map[string]struct{}, len(states))}
	for _, state := range states {
		s.members[state] = struct{}{}
	}
	return s
}

func (s *StateSet) Add(state string) {
	s.members[state] = struct{}{}
}

// AddAll adds every member of other to s.
func (s *StateSet) AddAll(other *StateSet) {
	for state := range other.members {
		s.members[state] = struct{}{}
	}
}

func (s *StateSet) Contains(state string) bool {
	_, ok := s.members[state]
	return ok
}

func (s *StateSet) Size() int {
	return len(s.members)
}

func (s *StateSet) IsEmpty() bool {
	return len(s.members) == 0
}

// Sorted returns the members in ascending name order.
func (s *StateSet) Sorted() []string {
	out := make([]string, 0, len(s.members))
	for state := range s.members {
		out = append(out, state)
	}
	sort.Strings(out)
	return out
}

// Key returns the canonical representation of the set. Equal sets yield equal
// keys regardless of insertion order.
func (s *StateSet) Key() string {
	return strings.Join(s.Sorted(), keySeparator)
}

func (s *StateSet) Clone() *StateSet {
	c := &StateSet{members: make(map[string]struct{}, len(s.members))}
	for state := range s.members {
		c.members[state] = struct{}{}
	}
	return c
}

// Intersect returns a new set holding the members present in both s and other.
func (s *StateSet) Intersect(other *StateSet) *StateSet {
	out := NewStateSet()
	for state := range s.members {
		if other.Contains(state) {
			out.Add(state)
		}
	}
	return out
}

// Intersects reports whether s and other share at least one member.
func (s *StateSet) Intersects(other *StateSet) bool {
	small, large := s, other
	if large.Size() < small.Size() {
		small, large = large, small
	}
	for state := range small.members {
		if large.Contains(state) {
			return true
		}
	}
	return false
}

func (s *StateSet) Equals(other *StateSet) bool {
	if s.Size() != other.Size() {
		return false
	}
	for state := range s.members {
		if !other.Contains(state) {
			return false
		}
	}
	return true
}

func (s *StateSet) String() string {
	return "{" + strings.Join(s.Sorted(), ",") + "}"
}
