// Package image defines the in-memory object model for a compiled module:
// type symbols, their members, and every shape of reference between them.
// The model is pure data; serialization lives in internal/modfile and all
// graph/migration logic in internal/depgraph and internal/split.
package image

// ModuleIdentity names a module and pins its version. It doubles as the
// scope value carried by simple type references.
type ModuleIdentity struct {
	Name    string
	Version string
}

// IsZero reports whether the identity is unset.
func (id ModuleIdentity) IsZero() bool {
	return id.Name == "" && id.Version == ""
}

func (id ModuleIdentity) String() string {
	if id.Version == "" {
		return id.Name
	}
	return id.Name + "@" + id.Version
}

// Module owns an ordered collection of top-level type symbols plus the
// module-global member-reference and custom-attribute tables. Nested types
// are owned by their declaring symbol and never appear in Types directly.
type Module struct {
	Identity ModuleIdentity
	Refs     []ModuleIdentity // referenced external modules
	Types    []*TypeSymbol    // top-level symbols only

	// Глобальные таблицы: сюда попадают и ссылки, которые не достижимы
	// через member-списки самих типов (дубликаты с общей сигнатурой).
	MemberRefs []*MemberRef
	AttrRows   []*AttrRecord
}

// AddRef appends a module reference unless an equal one is already present.
func (m *Module) AddRef(id ModuleIdentity) {
	for _, existing := range m.Refs {
		if existing == id {
			return
		}
	}
	m.Refs = append(m.Refs, id)
}

// TopLevel finds a top-level type symbol by full name.
func (m *Module) TopLevel(fullName string) (*TypeSymbol, bool) {
	for _, ts := range m.Types {
		if ts.FullName == fullName {
			return ts, true
		}
	}
	return nil, false
}

// WalkTypes visits every type symbol, nested ones included, in declaration
// order (declaring type before its nested types).
func (m *Module) WalkTypes(fn func(*TypeSymbol)) {
	for _, ts := range m.Types {
		ts.walk(fn)
	}
}

// LocalNames collects the full names of every type defined in the module,
// nested types under their own full name.
func (m *Module) LocalNames() map[string]struct{} {
	names := make(map[string]struct{})
	m.WalkTypes(func(ts *TypeSymbol) {
		names[ts.FullName] = struct{}{}
	})
	return names
}
