package split

import (
	"fmt"

	"cleave/internal/image"
)

// MigrateReferences rewrites every reference site in the residual module so
// that references to relocated types resolve against dest. References to
// types that did not move are left structurally untouched. The residual
// module exclusively owns every reference it holds, so in-place scope
// updates are safe; any tree that has to be rebuilt is built from fresh
// nodes and shares nothing with the original.
func MigrateReferences(residual *image.Module, moved MoveSet, dest image.ModuleIdentity) {
	m := &migrator{moved: moved, dest: dest}

	residual.WalkTypes(m.typeSymbol)

	// Второй проход по глобальным таблицам: ссылки с общей сигнатурой,
	// не достижимые через member-списки типов.
	for _, ref := range residual.MemberRefs {
		m.member(ref)
	}
	for _, attr := range residual.AttrRows {
		m.attr(attr)
	}
}

type migrator struct {
	moved MoveSet
	dest  image.ModuleIdentity
}

// rootMoved reports whether the outermost denoted symbol relocated. For a
// generic instantiation only the element type counts; arguments do not.
func (m *migrator) rootMoved(r *image.TypeRef) bool {
	if r == nil {
		return false
	}
	switch r.Kind {
	case image.RefSimple:
		return m.moved.Contains(r.Name)
	case image.RefArray, image.RefPointer, image.RefByRef, image.RefGenericInst:
		return m.rootMoved(r.Elem)
	case image.RefGenericParam:
		return false
	default:
		panic(fmt.Sprintf("unclassifiable reference kind %v", r.Kind))
	}
}

// containsMoved reports whether any simple leaf of the tree relocated,
// generic arguments included.
func (m *migrator) containsMoved(r *image.TypeRef) bool {
	if r == nil {
		return false
	}
	switch r.Kind {
	case image.RefSimple:
		return m.moved.Contains(r.Name)
	case image.RefArray, image.RefPointer, image.RefByRef:
		return m.containsMoved(r.Elem)
	case image.RefGenericInst:
		if m.containsMoved(r.Elem) {
			return true
		}
		for _, arg := range r.Args {
			if m.containsMoved(arg) {
				return true
			}
		}
		return false
	case image.RefGenericParam:
		return false
	default:
		panic(fmt.Sprintf("unclassifiable reference kind %v", r.Kind))
	}
}

// retarget flips the scope of every moved leaf in place, recursing through
// wrappers and generic arguments. Only applied to references exclusively
// owned by the residual module.
func (m *migrator) retarget(r *image.TypeRef) {
	if r == nil {
		return
	}
	switch r.Kind {
	case image.RefSimple:
		if m.moved.Contains(r.Name) {
			r.Scope = m.dest
		}
	case image.RefArray, image.RefPointer, image.RefByRef:
		m.retarget(r.Elem)
	case image.RefGenericInst:
		m.retarget(r.Elem)
		for _, arg := range r.Args {
			m.retarget(arg)
		}
	case image.RefGenericParam:
		// Терминал, не перенаправляется.
	default:
		panic(fmt.Sprintf("unclassifiable reference kind %v", r.Kind))
	}
}

// importRef rebuilds the reference tree bottom-up from fresh nodes. Moved
// leaves come out scoped to the destination; every other leaf keeps its
// scope. Generic arguments are always recursed into, whether or not they
// moved, so siblings pass through unchanged inside the fresh tree.
func (m *migrator) importRef(r *image.TypeRef) *image.TypeRef {
	if r == nil {
		return nil
	}
	switch r.Kind {
	case image.RefSimple:
		out := image.Simple(r.Name, r.Scope)
		if m.moved.Contains(r.Name) {
			out.Scope = m.dest
		}
		return out
	case image.RefArray, image.RefPointer, image.RefByRef:
		return &image.TypeRef{Kind: r.Kind, Elem: m.importRef(r.Elem)}
	case image.RefGenericInst:
		args := make([]*image.TypeRef, len(r.Args))
		for i, arg := range r.Args {
			args[i] = m.importRef(arg)
		}
		return image.GenericInstOf(m.importRef(r.Elem), args...)
	case image.RefGenericParam:
		// Терминальный узел: копируется, но никогда не перенаправляется.
		return r.Clone()
	default:
		panic(fmt.Sprintf("unclassifiable reference kind %v", r.Kind))
	}
}

// site rewrites one straightforward reference site (base type, interface,
// field/property/event type, signature types, locals, constraints). Simple
// references are retargeted in place; composite shapes mixing moved and
// unmoved leaves are rebuilt via importRef.
func (m *migrator) site(r *image.TypeRef) *image.TypeRef {
	if r == nil {
		return nil
	}
	if r.Kind == image.RefSimple {
		if m.rootMoved(r) {
			m.retarget(r)
		}
		return r
	}
	if !m.containsMoved(r) {
		return r
	}
	return m.importRef(r)
}

func (m *migrator) typeSymbol(ts *image.TypeSymbol) {
	ts.Base = m.site(ts.Base)
	for i, iface := range ts.Interfaces {
		ts.Interfaces[i] = m.site(iface)
	}
	for i := range ts.GenericParams {
		m.constraints(&ts.GenericParams[i])
	}
	m.attrs(ts.Attrs)

	for i := range ts.Fields {
		ts.Fields[i].Type = m.site(ts.Fields[i].Type)
		m.attrs(ts.Fields[i].Attrs)
	}
	for i := range ts.Properties {
		ts.Properties[i].Type = m.site(ts.Properties[i].Type)
		m.attrs(ts.Properties[i].Attrs)
	}
	for i := range ts.Events {
		ts.Events[i].Type = m.site(ts.Events[i].Type)
		m.attrs(ts.Events[i].Attrs)
	}
	for i := range ts.Methods {
		m.method(&ts.Methods[i])
	}
}

func (m *migrator) method(meth *image.Method) {
	meth.Return = m.site(meth.Return)
	for i, param := range meth.Params {
		meth.Params[i] = m.site(param)
	}
	for i, local := range meth.Locals {
		meth.Locals[i] = m.site(local)
	}
	for i := range meth.GenericParams {
		m.constraints(&meth.GenericParams[i])
	}
	m.attrs(meth.Attrs)

	for i := range meth.Body {
		instr := &meth.Body[i]
		switch instr.Operand {
		case image.OperandType:
			instr.TypeOperand = m.site(instr.TypeOperand)
		case image.OperandMember:
			m.member(instr.MemberOperand)
		}
	}
}

func (m *migrator) constraints(gp *image.GenericParam) {
	for i, constraint := range gp.Constraints {
		gp.Constraints[i] = m.site(constraint)
	}
}

// member rewrites a member-reference operand. The declaring type of a
// generic method instantiation is derived from its element method and is
// never reassigned; only the instantiation's generic arguments are
// imported. Other specialized method references are left untouched.
func (m *migrator) member(ref *image.MemberRef) {
	if ref == nil {
		return
	}
	switch ref.Kind {
	case image.MemberMethod:
		if m.containsMoved(ref.DeclaringType) {
			ref.DeclaringType = m.importRef(ref.DeclaringType)
		}
	case image.MemberField:
		if m.containsMoved(ref.DeclaringType) {
			ref.DeclaringType = m.importRef(ref.DeclaringType)
		}
		if m.containsMoved(ref.FieldType) {
			ref.FieldType = m.importRef(ref.FieldType)
		}
	case image.MemberGenericInst:
		for i, arg := range ref.GenericArgs {
			if m.containsMoved(arg) {
				ref.GenericArgs[i] = m.importRef(arg)
			}
		}
	case image.MemberSpec:
		// Не трогаем: такие ссылки целиком выводятся из элемента.
	}
}

// attr rewrites one custom-attribute record: the attribute type, the
// constructor's declaring type, and the declared type and value of every
// positional and named argument, each checked independently.
func (m *migrator) attr(attr *image.AttrRecord) {
	if attr == nil {
		return
	}
	attr.Type = m.site(attr.Type)
	if attr.Ctor != nil && m.containsMoved(attr.Ctor.DeclaringType) {
		attr.Ctor.DeclaringType = m.importRef(attr.Ctor.DeclaringType)
	}
	for i := range attr.Fixed {
		m.attrArg(&attr.Fixed[i])
	}
	for i := range attr.Named {
		m.attrArg(&attr.Named[i].Arg)
	}
}

func (m *migrator) attrArg(arg *image.AttrArg) {
	if m.containsMoved(arg.Type) {
		arg.Type = m.importRef(arg.Type)
	}
	if arg.Value.Kind == image.AttrValType && m.containsMoved(arg.Value.Type) {
		arg.Value.Type = m.importRef(arg.Value.Type)
	}
}

func (m *migrator) attrs(attrs []*image.AttrRecord) {
	for _, attr := range attrs {
		m.attr(attr)
	}
}
