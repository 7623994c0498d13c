// Package depgraph builds the intra-module dependency graph over type
// symbols and computes a cycle-safe depth for every type.
package depgraph

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// TypeID indexes a type inside a Graph.
type TypeID uint32

// Index assigns dense IDs to type full names.
type Index struct {
	NameToID map[string]TypeID
	IDToName []string
}

// собрать уникальные имена, sort.Strings, раздать ID по порядку
func buildIndex(names map[string]struct{}) Index {
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	nameToID := make(map[string]TypeID, len(sorted))
	for i, name := range sorted {
		id, err := safecast.Conv[TypeID](i)
		if err != nil {
			panic(fmt.Errorf("type id overflow: %w", err))
		}
		nameToID[name] = id
	}

	return Index{
		NameToID: nameToID,
		IDToName: sorted,
	}
}
