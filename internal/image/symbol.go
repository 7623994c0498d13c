package image

// TypeSymbol is a type definition. FullName is unique within the module and
// is the only key used by the dependency graph, the move set and the pruner.
// Nested symbols carry their own nesting-qualified full name
// ("Ns.Outer/Inner") and are exclusively owned by their declaring symbol.
type TypeSymbol struct {
	FullName      string
	Base          *TypeRef
	Interfaces    []*TypeRef
	Fields        []Field
	Methods       []Method
	Properties    []Property
	Events        []Event
	Nested        []*TypeSymbol
	GenericParams []GenericParam
	Attrs         []*AttrRecord
}

func (ts *TypeSymbol) walk(fn func(*TypeSymbol)) {
	fn(ts)
	for _, nested := range ts.Nested {
		nested.walk(fn)
	}
}

// Field is a field definition.
type Field struct {
	Name  string
	Type  *TypeRef
	Attrs []*AttrRecord
}

// Property is a property definition.
type Property struct {
	Name  string
	Type  *TypeRef
	Attrs []*AttrRecord
}

// Event is an event definition.
type Event struct {
	Name  string
	Type  *TypeRef
	Attrs []*AttrRecord
}

// GenericParam is a declared generic parameter with its constraints.
type GenericParam struct {
	Name        string
	Constraints []*TypeRef
}

// Method is a method definition. Locals and Body are empty for abstract
// methods.
type Method struct {
	Name          string
	Return        *TypeRef
	Params        []*TypeRef
	GenericParams []GenericParam
	Locals        []*TypeRef
	Body          []Instruction
	Attrs         []*AttrRecord
}
