package codewriter

import (
	"fmt"

	"github.com/pkg/errors"

	"hackforge.io/n2t/pkg/asm"
	"hackforge.io/n2t/pkg/vm"
)

// ----------------------------------------------------------------------------
// Code Writer

// Writer lowers a single VM Module (one .vm translation unit) into its Assembler
// statement sequence. It owns the RegisterManager and LabelManager for exactly the
// Module it's writing, since statics and function-scoped labels never cross a file
// boundary; the Translator Driver (component I) is what creates one Writer per file and
// concatenates their output into the final program.
type Writer struct {
	namespace string // The file's base name without extension, used for 'static' segment symbols
	regs      RegisterManager
	labels    *LabelManager
}

// NewWriter returns a Writer that resolves this Module's 'static' segment locations
// under the upper-cased namespace (e.g. namespace "Main" for a file named "Main.vm" gives
// the symbols "MAIN.0", "MAIN.1", ...).
func NewWriter(namespace string) *Writer {
	return &Writer{namespace: namespace, labels: NewLabelManager()}
}

// Write lowers every Operation in module to its Assembler statement sequence. Each
// operation's generated code is preceded by a passthrough comment describing the VM
// operation it came from, so the emitted .asm file stays legible against the original
// .vm source.
func (w *Writer) Write(module vm.Module) ([]asm.Statement, error) {
	var out []asm.Statement

	for _, op := range module {
		stmts, err := w.writeOne(op)
		if err != nil {
			return nil, errors.Wrapf(err, "writing %s", describe(op))
		}

		out = append(out, asm.CommentStatement{Text: describe(op)})
		out = append(out, stmts...)
	}

	return out, nil
}

func (w *Writer) writeOne(op vm.Operation) ([]asm.Statement, error) {
	switch o := op.(type) {
	case vm.MemoryOp:
		if (o.Segment == vm.Temp && o.Offset > 7) || (o.Segment == vm.Pointer && o.Offset > 1) {
			return nil, errors.Errorf("%s index %d is out of bounds", o.Segment, o.Offset)
		}
		if o.Operation == vm.Push {
			return w.push(o.Segment, o.Offset), nil
		}
		return w.pop(o.Segment, o.Offset), nil
	case vm.ArithmeticOp:
		return w.arithmetic(o.Operation), nil
	case vm.LabelDeclaration:
		return w.label(o), nil
	case vm.GotoOp:
		return w.goTo(o), nil
	case vm.FuncDecl:
		w.labels.Enter(o.Name)
		return w.function(o), nil
	case vm.FuncCallOp:
		return w.call(o), nil
	case vm.ReturnOp:
		return w.ret(), nil
	default:
		return nil, errors.Errorf("unrecognized vm operation '%T'", op)
	}
}

// describe renders op back to its canonical VM source syntax, for the passthrough
// comment Write emits ahead of the snippet it produced.
func describe(op vm.Operation) string {
	switch o := op.(type) {
	case vm.MemoryOp:
		return fmt.Sprintf("%s %s %d", o.Operation, o.Segment, o.Offset)
	case vm.ArithmeticOp:
		return string(o.Operation)
	case vm.LabelDeclaration:
		return fmt.Sprintf("label %s", o.Name)
	case vm.GotoOp:
		return fmt.Sprintf("%s %s", o.Jump, o.Label)
	case vm.FuncDecl:
		return fmt.Sprintf("function %s %d", o.Name, o.ArgsNum)
	case vm.FuncCallOp:
		return fmt.Sprintf("call %s %d", o.Name, o.ArgsNum)
	case vm.ReturnOp:
		return "return"
	default:
		return fmt.Sprintf("%v", op)
	}
}

// Bootstrap emits the sequence every translated program starts with: initialize the
// stack pointer to its base address, then call Sys.init the same way any other function
// call is written (it never returns, so no caller frame needs to precede it).
func Bootstrap() []asm.Statement {
	w := NewWriter("")
	stmts := []asm.Statement{
		a("256"), c("D", "A", ""),
		a("SP"), c("M", "D", ""),
	}
	return append(stmts, w.call(vm.FuncCallOp{Name: "Sys.init", ArgsNum: 0})...)
}
