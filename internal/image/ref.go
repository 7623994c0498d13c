package image

import (
	"fmt"
	"strings"
)

// RefKind enumerates all supported shapes of a type reference.
type RefKind uint8

const (
	RefInvalid RefKind = iota
	// RefSimple is a direct reference to a named type, resolved against Scope.
	RefSimple
	// RefArray wraps a single element type.
	RefArray
	// RefPointer wraps a single element type.
	RefPointer
	// RefByRef wraps a single element type.
	RefByRef
	// RefGenericInst is an instantiation: Elem plus an ordered Args list.
	RefGenericInst
	// RefGenericParam is a terminal placeholder; it is never redirected.
	RefGenericParam
)

func (k RefKind) String() string {
	switch k {
	case RefInvalid:
		return "invalid"
	case RefSimple:
		return "simple"
	case RefArray:
		return "array"
	case RefPointer:
		return "pointer"
	case RefByRef:
		return "byref"
	case RefGenericInst:
		return "generic-inst"
	case RefGenericParam:
		return "generic-param"
	default:
		return fmt.Sprintf("RefKind(%d)", k)
	}
}

// TypeRef is a compact descriptor for any reference to a type.
// Only the fields relevant to Kind are populated.
type TypeRef struct {
	Kind  RefKind
	Name  string         // RefSimple: full name; RefGenericParam: parameter name
	Scope ModuleIdentity // RefSimple: module the name resolves against
	Elem  *TypeRef       // wrappers and RefGenericInst
	Args  []*TypeRef     // RefGenericInst, ordered
	Index uint32         // RefGenericParam: position in the owner's parameter list
}

// Constructor helpers --------------------------------------------------------

// Simple builds a direct reference to name, scoped to the given module.
func Simple(name string, scope ModuleIdentity) *TypeRef {
	return &TypeRef{Kind: RefSimple, Name: name, Scope: scope}
}

// ArrayOf wraps elem in an array reference.
func ArrayOf(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefArray, Elem: elem}
}

// PointerTo wraps elem in a pointer reference.
func PointerTo(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefPointer, Elem: elem}
}

// ByRefOf wraps elem in a by-reference reference.
func ByRefOf(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefByRef, Elem: elem}
}

// GenericInstOf instantiates elem with the given argument references.
func GenericInstOf(elem *TypeRef, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: RefGenericInst, Elem: elem, Args: args}
}

// GenericParamAt references the generic parameter at index with the given name.
func GenericParamAt(name string, index uint32) *TypeRef {
	return &TypeRef{Kind: RefGenericParam, Name: name, Index: index}
}

// Traversal ------------------------------------------------------------------

// Leaves calls fn for every simple leaf reachable from r.
// Generic instantiations contribute their element and every argument.
func (r *TypeRef) Leaves(fn func(*TypeRef)) {
	if r == nil {
		return
	}
	switch r.Kind {
	case RefSimple:
		fn(r)
	case RefArray, RefPointer, RefByRef:
		r.Elem.Leaves(fn)
	case RefGenericInst:
		r.Elem.Leaves(fn)
		for _, arg := range r.Args {
			arg.Leaves(fn)
		}
	}
}

// Clone makes a deep copy; the result shares no nodes with r.
func (r *TypeRef) Clone() *TypeRef {
	if r == nil {
		return nil
	}
	out := &TypeRef{
		Kind:  r.Kind,
		Name:  r.Name,
		Scope: r.Scope,
		Elem:  r.Elem.Clone(),
		Index: r.Index,
	}
	if len(r.Args) > 0 {
		out.Args = make([]*TypeRef, len(r.Args))
		for i, arg := range r.Args {
			out.Args[i] = arg.Clone()
		}
	}
	return out
}

func (r *TypeRef) String() string {
	if r == nil {
		return "<nil>"
	}
	switch r.Kind {
	case RefSimple:
		return r.Name
	case RefArray:
		return r.Elem.String() + "[]"
	case RefPointer:
		return r.Elem.String() + "*"
	case RefByRef:
		return r.Elem.String() + "&"
	case RefGenericInst:
		parts := make([]string, len(r.Args))
		for i, arg := range r.Args {
			parts[i] = arg.String()
		}
		return r.Elem.String() + "<" + strings.Join(parts, ", ") + ">"
	case RefGenericParam:
		return "!" + r.Name
	default:
		return r.Kind.String()
	}
}
