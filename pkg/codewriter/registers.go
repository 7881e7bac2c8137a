package codewriter

import "hackforge.io/n2t/pkg/asm"

// ----------------------------------------------------------------------------
// Snippet primitives

// This section contains the smallest building blocks every higher level snippet
// (segments.go, stack.go, flow.go, functions.go) composes: emitting a bare A or C
// instruction, and the push/pop sequences shared by virtually every other snippet.

func a(location string) asm.Statement { return asm.AInstruction{Location: location} }

func c(dest, comp, jump string) asm.Statement {
	return asm.CInstruction{Dest: dest, Comp: comp, Jump: jump}
}

// pushD emits the sequence shared by every 'push' operation once the value to push has
// already been loaded into the D register: write D at the current stack top, then
// advance the stack pointer.
func pushD() []asm.Statement {
	return []asm.Statement{
		a("SP"), c("A", "M", ""),
		c("M", "D", ""),
		a("SP"), c("M", "M+1", ""),
	}
}

// popToD emits the sequence shared by every 'pop' operation: retreat the stack pointer
// and load the popped value into D, leaving the caller to decide where it's stored.
func popToD() []asm.Statement {
	return []asm.Statement{
		a("SP"), c("AM", "M-1", ""),
		c("D", "M", ""),
	}
}
