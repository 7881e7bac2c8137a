package codewriter

import (
	"fmt"
	"strings"

	"hackforge.io/n2t/pkg/asm"
	"hackforge.io/n2t/pkg/vm"
)

// ----------------------------------------------------------------------------
// Memory segments

// segmentBase maps the four pointer-based segments to the built-in Hack alias holding
// their base address. 'constant', 'temp', 'pointer' and 'static' each resolve to a
// memory location directly rather than through one of these bases.
var segmentBase = map[vm.SegmentType]string{
	vm.Local:    "LCL",
	vm.Argument: "ARG",
	vm.This:     "THIS",
	vm.That:     "THAT",
}

// push emits the snippet that loads the value addressed by (segment, idx) into D and
// appends it to the stack.
func (w *Writer) push(segment vm.SegmentType, idx uint16) []asm.Statement {
	var stmts []asm.Statement

	switch segment {
	case vm.Constant:
		stmts = append(stmts, a(fmt.Sprint(idx)), c("D", "A", ""))
	case vm.Temp:
		stmts = append(stmts, a(fmt.Sprint(5+idx)), c("D", "M", ""))
	case vm.Pointer:
		stmts = append(stmts, a(pointerTarget(idx)), c("D", "M", ""))
	case vm.Static:
		stmts = append(stmts, a(w.staticSymbol(idx)), c("D", "M", ""))
	default:
		stmts = append(stmts, w.loadSegmentAddress(segment, idx)...)
		stmts = append(stmts, c("D", "M", ""))
	}

	return append(stmts, pushD()...)
}

// pop emits the snippet that pops the stack top and stores it at (segment, idx).
func (w *Writer) pop(segment vm.SegmentType, idx uint16) []asm.Statement {
	switch segment {
	case vm.Temp:
		return append(popToD(), a(fmt.Sprint(5+idx)), c("M", "D", ""))
	case vm.Pointer:
		return append(popToD(), a(pointerTarget(idx)), c("M", "D", ""))
	case vm.Static:
		return append(popToD(), a(w.staticSymbol(idx)), c("M", "D", ""))
	}

	// Offset 0 and 1 address the segment's base (or base+1) directly; computing the
	// target address doesn't need a scratch register to survive the pop in between.
	if idx == 0 || idx == 1 {
		comp := "M"
		if idx == 1 {
			comp = "M+1"
		}
		stmts := popToD()
		return append(stmts,
			a(segmentBase[segment]), c("A", comp, ""),
			c("M", "D", ""),
		)
	}

	handle := w.regs.Acquire()
	defer handle.Release()

	stmts := []asm.Statement{
		a(fmt.Sprint(idx)), c("D", "A", ""),
		a(segmentBase[segment]), c("D", "D+M", ""),
		a(handle.Symbol()), c("M", "D", ""),
	}
	stmts = append(stmts, popToD()...)
	return append(stmts,
		a(handle.Symbol()), c("A", "M", ""),
		c("M", "D", ""),
	)
}

func (w *Writer) loadSegmentAddress(segment vm.SegmentType, idx uint16) []asm.Statement {
	if idx == 0 {
		return []asm.Statement{a(segmentBase[segment]), c("A", "M", "")}
	}
	return []asm.Statement{
		a(fmt.Sprint(idx)), c("D", "A", ""),
		a(segmentBase[segment]), c("A", "D+M", ""),
	}
}

func pointerTarget(idx uint16) string {
	if idx == 0 {
		return "THIS"
	}
	return "THAT"
}

func (w *Writer) staticSymbol(idx uint16) string {
	return fmt.Sprintf("%s.%d", strings.ToUpper(w.namespace), idx)
}
