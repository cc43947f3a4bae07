package schema

import (
	"encoding/json"
	"sort"
)

// CommitSet is a set of opaque commit identifiers.
type CommitSet map[string]struct{}

// NewCommitSet creates a set holding the given ids.
func NewCommitSet(ids ...string) CommitSet {
	s := make(CommitSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an id.
func (s CommitSet) Add(id string) {
	s[id] = struct{}{}
}

// Union adds every id of other into s.
func (s CommitSet) Union(other CommitSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Contains reports whether id is in the set.
func (s CommitSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids.
func (s CommitSet) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s CommitSet) Clone() CommitSet {
	c := make(CommitSet, len(s))
	c.Union(s)
	return c
}

// Sorted returns the ids in lexicographic order.
func (s CommitSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MarshalJSON encodes the set as a sorted array.
func (s CommitSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of ids.
func (s *CommitSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	if ids == nil {
		*s = nil
		return nil
	}
	*s = NewCommitSet(ids...)
	return nil
}
