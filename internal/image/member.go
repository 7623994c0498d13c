package image

import "fmt"

// MemberKind enumerates the supported kinds of member references.
type MemberKind uint8

const (
	MemberInvalid MemberKind = iota
	// MemberMethod references a method through its declaring type and signature.
	MemberMethod
	// MemberField references a field through its declaring type and field type.
	MemberField
	// MemberGenericInst is a generic method instantiation: Elem plus
	// GenericArgs. Its declaring type is derived from Elem, never owned.
	MemberGenericInst
	// MemberSpec is an opaque specialized method reference; the migrator
	// leaves it untouched.
	MemberSpec
)

func (k MemberKind) String() string {
	switch k {
	case MemberInvalid:
		return "invalid"
	case MemberMethod:
		return "method"
	case MemberField:
		return "field"
	case MemberGenericInst:
		return "generic-method-inst"
	case MemberSpec:
		return "method-spec"
	default:
		return fmt.Sprintf("MemberKind(%d)", k)
	}
}

// MemberRef references a field or method, possibly defined in another
// module. For MemberGenericInst only Elem and GenericArgs are populated;
// DeclaringType on the wrapper stays nil because the element method owns it.
type MemberRef struct {
	Kind          MemberKind
	Name          string
	DeclaringType *TypeRef

	Return *TypeRef   // methods
	Params []*TypeRef // methods

	FieldType *TypeRef // fields

	Elem        *MemberRef // MemberGenericInst, MemberSpec
	GenericArgs []*TypeRef // MemberGenericInst, ordered
}

// Declaring resolves the effective declaring type, following Elem for
// specialized references.
func (m *MemberRef) Declaring() *TypeRef {
	if m == nil {
		return nil
	}
	if m.Kind == MemberGenericInst || m.Kind == MemberSpec {
		return m.Elem.Declaring()
	}
	return m.DeclaringType
}

func (m *MemberRef) String() string {
	if m == nil {
		return "<nil>"
	}
	if decl := m.Declaring(); decl != nil {
		return decl.String() + "::" + m.refName()
	}
	return m.refName()
}

func (m *MemberRef) refName() string {
	if m.Kind == MemberGenericInst || m.Kind == MemberSpec {
		if m.Elem != nil {
			return m.Elem.refName()
		}
	}
	return m.Name
}
