package depgraph

import (
	"slices"

	"cleave/internal/image"
)

// Graph maps every module-local type to the set of other module-local types
// it references. Self-edges are excluded; references to other modules are
// discarded during construction.
type Graph struct {
	Index Index
	Deps  [][]TypeID // Deps[id] = sorted, deduplicated dependency IDs
}

// Build scans every type symbol of mod, nested ones included, and records
// the module-local types each symbol references. Nested symbols get their
// own node under their own full name; a declaring type depends on its
// nested types.
func Build(mod *image.Module) *Graph {
	local := mod.LocalNames()
	idx := buildIndex(local)

	g := &Graph{
		Index: idx,
		Deps:  make([][]TypeID, len(idx.IDToName)),
	}

	mod.WalkTypes(func(ts *image.TypeSymbol) {
		c := collector{local: local, self: ts.FullName, out: make(map[string]struct{})}
		c.typeSymbol(ts)

		id := idx.NameToID[ts.FullName]
		deps := make([]TypeID, 0, len(c.out))
		for name := range c.out {
			deps = append(deps, idx.NameToID[name])
		}
		slices.Sort(deps)
		g.Deps[id] = deps
	})

	return g
}

// FromMap builds a graph from an explicit name → dependencies mapping.
// Only map keys become nodes; dependencies absent from the key set are
// ignored, as are self-edges.
func FromMap(deps map[string][]string) *Graph {
	names := make(map[string]struct{}, len(deps))
	for name := range deps {
		names[name] = struct{}{}
	}
	idx := buildIndex(names)

	g := &Graph{
		Index: idx,
		Deps:  make([][]TypeID, len(idx.IDToName)),
	}
	for name, depNames := range deps {
		id := idx.NameToID[name]
		seen := make(map[TypeID]struct{}, len(depNames))
		out := make([]TypeID, 0, len(depNames))
		for _, dep := range depNames {
			depID, ok := idx.NameToID[dep]
			if !ok || dep == name {
				continue
			}
			if _, dup := seen[depID]; dup {
				continue
			}
			seen[depID] = struct{}{}
			out = append(out, depID)
		}
		slices.Sort(out)
		g.Deps[id] = out
	}
	return g
}

// DepsOf returns the dependency names of a type, or nil if the type is not
// a graph node.
func (g *Graph) DepsOf(name string) []string {
	id, ok := g.Index.NameToID[name]
	if !ok {
		return nil
	}
	out := make([]string, len(g.Deps[id]))
	for i, dep := range g.Deps[id] {
		out[i] = g.Index.IDToName[int(dep)]
	}
	return out
}

// collector accumulates the referenced local type names for one symbol.
type collector struct {
	local map[string]struct{}
	self  string
	out   map[string]struct{}
}

func (c *collector) typeSymbol(ts *image.TypeSymbol) {
	c.ref(ts.Base)
	for _, iface := range ts.Interfaces {
		c.ref(iface)
	}
	for _, gp := range ts.GenericParams {
		for _, constraint := range gp.Constraints {
			c.ref(constraint)
		}
	}
	c.attrs(ts.Attrs)

	for i := range ts.Fields {
		c.ref(ts.Fields[i].Type)
		c.attrs(ts.Fields[i].Attrs)
	}
	for i := range ts.Properties {
		c.ref(ts.Properties[i].Type)
		c.attrs(ts.Properties[i].Attrs)
	}
	for i := range ts.Events {
		c.ref(ts.Events[i].Type)
		c.attrs(ts.Events[i].Attrs)
	}
	for i := range ts.Methods {
		c.method(&ts.Methods[i])
	}

	// Тип зависит от собственных вложенных типов.
	for _, nested := range ts.Nested {
		c.add(nested.FullName)
	}
}

func (c *collector) method(m *image.Method) {
	c.ref(m.Return)
	for _, param := range m.Params {
		c.ref(param)
	}
	for _, local := range m.Locals {
		c.ref(local)
	}
	for _, gp := range m.GenericParams {
		for _, constraint := range gp.Constraints {
			c.ref(constraint)
		}
	}
	c.attrs(m.Attrs)

	for i := range m.Body {
		instr := &m.Body[i]
		switch instr.Operand {
		case image.OperandType:
			c.ref(instr.TypeOperand)
		case image.OperandMember:
			c.member(instr.MemberOperand)
		}
	}
}

func (c *collector) member(m *image.MemberRef) {
	if m == nil {
		return
	}
	switch m.Kind {
	case image.MemberMethod:
		c.ref(m.DeclaringType)
		c.ref(m.Return)
		for _, param := range m.Params {
			c.ref(param)
		}
	case image.MemberField:
		c.ref(m.DeclaringType)
		c.ref(m.FieldType)
	case image.MemberGenericInst:
		c.member(m.Elem)
		for _, arg := range m.GenericArgs {
			c.ref(arg)
		}
	case image.MemberSpec:
		c.member(m.Elem)
	}
}

func (c *collector) attrs(attrs []*image.AttrRecord) {
	for _, attr := range attrs {
		c.ref(attr.Type)
	}
}

// ref unwraps a reference to its simple leaves and keeps the module-local
// ones. Cross-module leaves and self-references are dropped.
func (c *collector) ref(r *image.TypeRef) {
	r.Leaves(func(leaf *image.TypeRef) {
		c.add(leaf.Name)
	})
}

func (c *collector) add(name string) {
	if name == c.self {
		return
	}
	if _, ok := c.local[name]; !ok {
		return
	}
	c.out[name] = struct{}{}
}
