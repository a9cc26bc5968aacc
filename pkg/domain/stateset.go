package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// StateSet is an unordered set of state names.
type StateSet map[string]struct{}

// NewStateSet creates a set holding the given states.
func NewStateSet(states ...string) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

// Add inserts a state into the set.
func (s StateSet) Add(state string) {
	s[state] = struct{}{}
}

// Contains reports whether state is a member of the set.
func (s StateSet) Contains(state string) bool {
	_, ok := s[state]
	return ok
}

// Len returns the number of states in the set.
func (s StateSet) Len() int { return len(s) }

// Clone returns an independent copy of the set.
func (s StateSet) Clone() StateSet {
	c := make(StateSet, len(s))
	for st := range s {
		c[st] = struct{}{}
	}
	return c
}

// Equal reports whether both sets hold exactly the same states.
func (s StateSet) Equal(other StateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for st := range s {
		if !other.Contains(st) {
			return false
		}
	}
	return true
}

// Intersection returns the states present in both sets.
func (s StateSet) Intersection(other StateSet) StateSet {
	out := make(StateSet)
	for st := range s {
		if other.Contains(st) {
			out[st] = struct{}{}
		}
	}
	return out
}

// Intersects reports whether the sets share at least one state.
func (s StateSet) Intersects(other StateSet) bool {
	for st := range s {
		if other.Contains(st) {
			return true
		}
	}
	return false
}

// Sorted returns the members in lexical order.
func (s StateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	sort.Strings(out)
	return out
}

// String renders the set in set notation, e.g. {q0, q1}.
func (s StateSet) String() string {
	return "{" + strings.Join(s.Sorted(), ", ") + "}"
}

// MarshalJSON encodes the set as a sorted array.
func (s StateSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of state names.
func (s *StateSet) UnmarshalJSON(data []byte) error {
	var states []string
	if err := json.Unmarshal(data, &states); err != nil {
		return err
	}
	*s = NewStateSet(states...)
	return nil
}
