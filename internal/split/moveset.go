// Package split partitions a module's types by dependency depth and repairs
// every surviving reference so the residual module resolves relocated types
// against the destination module.
package split

import (
	"sort"

	"cleave/internal/depgraph"
)

// MoveSet is the set of type full names selected for relocation.
type MoveSet map[string]struct{}

// SelectMoveSet picks every type whose depth is at or below threshold.
// An empty result is a valid no-op selection, not an error.
func SelectMoveSet(depths depgraph.DepthTable, threshold int) MoveSet {
	set := make(MoveSet)
	for name, depth := range depths {
		if depth <= threshold {
			set[name] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the full name is selected for relocation.
func (s MoveSet) Contains(fullName string) bool {
	_, ok := s[fullName]
	return ok
}

// Names returns the selected full names in sorted order.
func (s MoveSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
