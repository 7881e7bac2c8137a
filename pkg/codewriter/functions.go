package codewriter

import (
	"fmt"

	"hackforge.io/n2t/pkg/asm"
	"hackforge.io/n2t/pkg/vm"
)

// ----------------------------------------------------------------------------
// Function call convention

// function emits a function declaration: the label call sites resolve against,
// followed by zero-initializing 'ArgsNum' local variables onto the stack. The field is
// named ArgsNum on vm.FuncDecl but, per the VM spec, it's the function's local variable
// count, not its argument count (the caller's arguments are already sitting below it on
// the stack by the time this function runs, argument count is ARG's problem, not LCL's).
func (w *Writer) function(op vm.FuncDecl) []asm.Statement {
	stmts := []asm.Statement{asm.LabelDecl{Name: op.Name}}

	for i := uint8(0); i < op.ArgsNum; i++ {
		stmts = append(stmts, a("0"), c("D", "A", ""))
		stmts = append(stmts, pushD()...)
	}

	return stmts
}

// call emits the standard call sequence: push a return address and the caller's 4
// saved segment pointers, reposition ARG and LCL for the callee's frame, then jump.
func (w *Writer) call(op vm.FuncCallOp) []asm.Statement {
	returnLabel := w.labels.Unique(fmt.Sprintf("%s$ret", op.Name))

	var stmts []asm.Statement
	stmts = append(stmts, a(returnLabel), c("D", "A", ""))
	stmts = append(stmts, pushD()...)

	for _, seg := range []string{"LCL", "ARG", "THIS", "THAT"} {
		stmts = append(stmts, a(seg), c("D", "M", ""))
		stmts = append(stmts, pushD()...)
	}

	// ARG = SP - 5 - ArgsNum, repositions ARG at the first of the callee's own arguments
	// (the 5 accounts for the return address plus the 4 saved segment pointers just pushed).
	stmts = append(stmts,
		a("SP"), c("D", "M", ""),
		a(fmt.Sprint(5+int(op.ArgsNum))), c("D", "D-A", ""),
		a("ARG"), c("M", "D", ""),
	)
	// LCL = SP, the callee's own locals (if any) start wherever the stack currently sits.
	stmts = append(stmts,
		a("SP"), c("D", "M", ""),
		a("LCL"), c("M", "D", ""),
	)

	stmts = append(stmts, a(op.Name), c("", "0", "JMP"))
	stmts = append(stmts, asm.LabelDecl{Name: returnLabel})

	return stmts
}

// ret emits the standard return sequence. It stashes both the callee's frame pointer
// (LCL) and the return address in scratch registers up front: restoring the caller's LCL
// below overwrites the frame pointer, and for a function called with no arguments the
// return address sits in the very cell *ARG = pop() overwrites with the return value.
func (w *Writer) ret() []asm.Statement {
	frame := w.regs.Acquire()
	defer frame.Release()
	retAddr := w.regs.Acquire()
	defer retAddr.Release()

	stmts := []asm.Statement{
		// frame = LCL
		a("LCL"), c("D", "M", ""),
		a(frame.Symbol()), c("M", "D", ""),
		// retAddr = *(frame - 5), D still holds LCL's value from the assignment above
		a("5"), c("A", "D-A", ""),
		c("D", "M", ""),
		a(retAddr.Symbol()), c("M", "D", ""),
		// *ARG = pop(), this overwrites the caller's first argument with the return value
		a("SP"), c("AM", "M-1", ""),
		c("D", "M", ""),
		a("ARG"), c("A", "M", ""),
		c("M", "D", ""),
		// SP = ARG + 1, the return value just written is the callee's sole remaining output
		a("ARG"), c("D", "M+1", ""),
		a("SP"), c("M", "D", ""),
	}

	// Restore the caller's saved segment pointers, walking frame down from THAT to LCL.
	for _, seg := range []string{"THAT", "THIS", "ARG", "LCL"} {
		stmts = append(stmts,
			a(frame.Symbol()), c("AM", "M-1", ""),
			c("D", "M", ""),
			a(seg), c("M", "D", ""),
		)
	}

	// Jump back to the caller at the return address stashed before the frame was torn down.
	stmts = append(stmts, a(retAddr.Symbol()), c("A", "M", ""), c("", "0", "JMP"))

	return stmts
}
