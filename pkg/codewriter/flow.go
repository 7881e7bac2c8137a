package codewriter

import (
	"hackforge.io/n2t/pkg/asm"
	"hackforge.io/n2t/pkg/vm"
)

// ----------------------------------------------------------------------------
// Flow control

func (w *Writer) label(op vm.LabelDeclaration) []asm.Statement {
	return []asm.Statement{asm.LabelDecl{Name: w.labels.Declared(op.Name)}}
}

func (w *Writer) goTo(op vm.GotoOp) []asm.Statement {
	target := w.labels.Declared(op.Label)

	if op.Jump == vm.Goto {
		return []asm.Statement{a(target), c("", "0", "JMP")}
	}

	// if-goto: pop the stack top, jump when it's non-zero. A VM boolean is either all
	// zero bits (false) or all one bits (true, -1), so a plain "not equal to zero" test
	// is exactly the semantics the VM spec asks for.
	stmts := popToD()
	return append(stmts, a(target), c("", "D", "JNE"))
}
