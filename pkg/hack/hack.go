package hack

import "strconv"

// Instruction is the binary-codegen IR for one emitted line: either an AInstruction or
// a CInstruction. It carries no behavior of its own, callers type-switch on it; the
// unexported marker method just keeps anything outside this package from satisfying the
// interface by accident, the same sealing trick the Assembler's own Token type uses.
type Instruction interface{ isInstruction() }

func (AInstruction) isInstruction() {}
func (CInstruction) isInstruction() {}

// Program is the full, ordered instruction stream one .hack binary encodes.
type Program []Instruction

// MaxAddressableMemory is the first address an A instruction cannot reach: only 15 of
// its 16 bits address memory, the top bit is the A/C opcode discriminator.
const MaxAddressableMemory uint16 = 1 << 15

// LocationType tags what kind of name an AInstruction's LocName holds, so the codegen
// phase knows whether to parse it as a literal, look it up in BuiltInTable, or resolve
// it through a SymbolTable.
type LocationType uint8

const (
	Raw     LocationType = iota // A literal RAM/ROM address, e.g. "@2345"
	Label                       // A user-declared "(LABEL)" or an as-yet-unseen variable, e.g. "@LOOP"
	BuiltIn                     // One of the predefined Hack aliases, e.g. "@SCREEN"
)

// AInstruction sets the CPU's address register to the memory location LocName names,
// however LocType says that name should be interpreted.
type AInstruction struct {
	LocType LocationType
	LocName string
}

// NewAInstruction classifies raw the same way the Assembler Tokenizer's grammar already
// validated it could be classified: a string of digits is always a literal address,
// anything the Hack spec predefines by name is BuiltIn, and everything else is a Label
// (which covers both user declarations and undeclared variables — the SymbolTable is
// what tells those two apart later, during codegen).
func NewAInstruction(raw string) AInstruction {
	if _, err := strconv.ParseUint(raw, 10, 16); err == nil {
		return AInstruction{LocType: Raw, LocName: raw}
	}
	if _, found := BuiltInTable[raw]; found {
		return AInstruction{LocType: BuiltIn, LocName: raw}
	}
	return AInstruction{LocType: Label, LocName: raw}
}

// CInstruction computes over the ALU, optionally storing the result (Dest) and
// optionally branching on it (Jump). Either or both of Dest/Jump may be empty; Comp
// never is.
type CInstruction struct {
	Comp string
	Dest string
	Jump string
}
