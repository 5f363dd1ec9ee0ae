package tui

import "sort"

// ExpandedSet tracks which lists are expanded, keyed by list name.
type ExpandedSet map[string]struct{}

// Toggle flips the expansion state of name and reports the new state.
func (s ExpandedSet) Toggle(name string) bool {
	if _, ok := s[name]; ok {
		delete(s, name)
		return false
	}
	s[name] = struct{}{}
	return true
}

// Has reports whether name is expanded.
func (s ExpandedSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Expand marks name expanded.
func (s ExpandedSet) Expand(name string) {
	s[name] = struct{}{}
}

// Names returns the expanded names in sorted order.
func (s ExpandedSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
