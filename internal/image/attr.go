package image

import "fmt"

// AttrValueKind tags the payload of an attribute argument value.
type AttrValueKind uint8

const (
	AttrValNone AttrValueKind = iota
	AttrValBool
	AttrValInt
	AttrValString
	// AttrValType carries a type reference as the value (typeof-style
	// arguments); such values migrate independently of their declared type.
	AttrValType
)

func (k AttrValueKind) String() string {
	switch k {
	case AttrValNone:
		return "none"
	case AttrValBool:
		return "bool"
	case AttrValInt:
		return "int"
	case AttrValString:
		return "string"
	case AttrValType:
		return "type"
	default:
		return fmt.Sprintf("AttrValueKind(%d)", k)
	}
}

// AttrValue is the value of one attribute argument.
type AttrValue struct {
	Kind AttrValueKind
	Bool bool
	Int  int64
	Str  string
	Type *TypeRef // AttrValType only
}

// AttrArg is a positional constructor argument: its own declared type plus
// the value. The declared type may require migration independently of the
// value.
type AttrArg struct {
	Type  *TypeRef
	Value AttrValue
}

// NamedAttrArg is a property or field argument.
type NamedAttrArg struct {
	Name    string
	IsField bool
	Arg     AttrArg
}

// AttrRecord is one custom attribute: the attribute type, its constructor
// reference and both argument lists.
type AttrRecord struct {
	Type  *TypeRef
	Ctor  *MemberRef
	Fixed []AttrArg
	Named []NamedAttrArg
}
