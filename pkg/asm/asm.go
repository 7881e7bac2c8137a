package asm

// Statement is the Assembler's line-level IR: a label declaration, an A or C instruction,
// or a passthrough comment. The unexported marker method seals the set, mirroring the
// sealing pattern used by the Tokenizer's Token and the Hack package's Instruction.
type Statement interface{ isStatement() }

func (LabelDecl) isStatement()        {}
func (AInstruction) isStatement()     {}
func (CInstruction) isStatement()     {}
func (CommentStatement) isStatement() {}

// LabelDecl names a ROM location a later AInstruction can reference in place of a raw
// address. The Assembler Driver's first pass resolves every declaration to its line
// number before the second pass lowers any AInstruction that references it.
type LabelDecl struct {
	Name string
}

// AInstruction sets the address register to Location, whose exact kind (raw number,
// built-in alias, or user label/variable) isn't decided until the Driver classifies it
// via hack.NewAInstruction.
type AInstruction struct {
	Location string
}

// CInstruction computes over the ALU, optionally storing the result (Dest) and
// optionally branching on it (Jump).
type CInstruction struct {
	Comp string
	Dest string
	Jump string
}

// CommentStatement is a passthrough line with no codegen effect of its own; the VM Code
// Writer emits one per source line so the generated .asm reads back against the .vm it
// came from.
type CommentStatement struct {
	Text string
}
