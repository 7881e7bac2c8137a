package codewriter

import (
	"hackforge.io/n2t/pkg/asm"
	"hackforge.io/n2t/pkg/vm"
)

// ----------------------------------------------------------------------------
// Arithmetic and comparison

// arithmetic emits the snippet for a unary or binary ArithmeticOp.
func (w *Writer) arithmetic(op vm.ArithOpType) []asm.Statement {
	switch op {
	case vm.Add:
		return binary("D+M")
	case vm.Sub:
		return binary("M-D")
	case vm.And:
		return binary("D&M")
	case vm.Or:
		return binary("D|M")
	case vm.Neg:
		return unary("-M")
	case vm.Not:
		return unary("!M")
	case vm.Eq:
		return w.comparison("JEQ")
	case vm.Gt:
		return w.comparison("JGT")
	case vm.Lt:
		return w.comparison("JLT")
	default:
		return nil
	}
}

// unary rewrites the stack top in place, it never moves the stack pointer.
func unary(comp string) []asm.Statement {
	return []asm.Statement{
		a("SP"), c("A", "M-1", ""),
		c("M", comp, ""),
	}
}

// binary pops the second operand into D, then folds it into the first operand in
// place (the first operand's slot becomes the result, so the stack pointer only ever
// needs to retreat once for a two operand operation).
func binary(comp string) []asm.Statement {
	return []asm.Statement{
		a("SP"), c("AM", "M-1", ""),
		c("D", "M", ""),
		c("A", "A-1", ""),
		c("M", comp, ""),
	}
}

// comparison reduces to a subtraction followed by a conditional branch: the result slot
// is optimistically set to true (-1, all bits set) and flipped to false (0) unless the
// jump condition on (first - second) holds.
func (w *Writer) comparison(jump string) []asm.Statement {
	trueLabel := w.labels.Unique(jump)

	return []asm.Statement{
		a("SP"), c("AM", "M-1", ""),
		c("D", "M", ""),
		c("A", "A-1", ""),
		c("D", "M-D", ""),
		c("M", "-1", ""),
		a(trueLabel), c("", "D", jump),
		a("SP"), c("A", "M-1", ""),
		c("M", "0", ""),
		asm.LabelDecl{Name: trueLabel},
	}
}
