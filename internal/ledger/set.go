package ledger

import (
	"slices"
	"strings"
)

// PathSet is a set of file paths that reads out in sorted order.
type PathSet struct {
	items map[string]struct{}
}

// NewPathSet returns a set holding the non-blank paths given.
func NewPathSet(paths ...string) *PathSet {
	s := &PathSet{items: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.Insert(p)
	}
	return s
}

// Insert adds path and reports whether it was new. Blank paths are ignored.
func (s *PathSet) Insert(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}
	if s.items == nil {
		s.items = make(map[string]struct{})
	}
	if _, ok := s.items[path]; ok {
		return false
	}
	s.items[path] = struct{}{}
	return true
}

// Remove deletes path and reports whether it was present.
func (s *PathSet) Remove(path string) bool {
	path = strings.TrimSpace(path)
	if _, ok := s.items[path]; !ok {
		return false
	}
	delete(s.items, path)
	return true
}

// Contains reports whether path is in the set.
func (s *PathSet) Contains(path string) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[strings.TrimSpace(path)]
	return ok
}

// Union adds every path of other to s.
func (s *PathSet) Union(other *PathSet) {
	if other == nil {
		return
	}
	for p := range other.items {
		s.Insert(p)
	}
}

// Len returns the number of paths.
func (s *PathSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Sorted returns the paths in lexicographic order.
func (s *PathSet) Sorted() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.items))
	for p := range s.items {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy of s.
func (s *PathSet) Clone() *PathSet {
	clone := NewPathSet()
	clone.Union(s)
	return clone
}
