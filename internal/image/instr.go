package image

import "fmt"

// OpCode is a method-body instruction opcode. The splitter only inspects
// operands, so the set stays deliberately coarse.
type OpCode uint8

const (
	OpNop OpCode = iota
	OpLoadConst
	OpLoadLocal
	OpStoreLocal
	OpLoadField
	OpStoreField
	OpCall
	OpCallVirt
	OpNewObj
	OpNewArr
	OpCast
	OpBox
	OpUnbox
	OpLoadToken
	OpReturn
)

func (op OpCode) String() string {
	switch op {
	case OpNop:
		return "nop"
	case OpLoadConst:
		return "ldc"
	case OpLoadLocal:
		return "ldloc"
	case OpStoreLocal:
		return "stloc"
	case OpLoadField:
		return "ldfld"
	case OpStoreField:
		return "stfld"
	case OpCall:
		return "call"
	case OpCallVirt:
		return "callvirt"
	case OpNewObj:
		return "newobj"
	case OpNewArr:
		return "newarr"
	case OpCast:
		return "cast"
	case OpBox:
		return "box"
	case OpUnbox:
		return "unbox"
	case OpLoadToken:
		return "ldtoken"
	case OpReturn:
		return "ret"
	default:
		return fmt.Sprintf("OpCode(%d)", op)
	}
}

// OperandKind tags which operand field of an Instruction is meaningful.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandType
	OperandMember
	OperandInt
	OperandString
)

// Instruction is one method-body instruction. Exactly one operand field is
// populated, selected by OperandKind.
type Instruction struct {
	Op      OpCode
	Operand OperandKind

	TypeOperand   *TypeRef
	MemberOperand *MemberRef
	IntOperand    int64
	StrOperand    string
}

// TypeInstr builds an instruction with a type operand.
func TypeInstr(op OpCode, ref *TypeRef) Instruction {
	return Instruction{Op: op, Operand: OperandType, TypeOperand: ref}
}

// MemberInstr builds an instruction with a member operand.
func MemberInstr(op OpCode, ref *MemberRef) Instruction {
	return Instruction{Op: op, Operand: OperandMember, MemberOperand: ref}
}
