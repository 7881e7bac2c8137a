package hack

import "github.com/pkg/errors"

// ----------------------------------------------------------------------------
// Symbol Table

// The SymbolTable resolves every named location an A instruction can reference: the
// predefined aliases fixed by the Hack spec (SP, LCL, SCREEN, R0, ...), user-defined
// labels declared with "(LABEL)" and user-defined variables introduced the first time
// they're referenced in an A instruction.
//
// Labels must all be known before any variable gets allocated an address (the Driver,
// component C, guarantees this by running a first pass over the program that only
// registers labels before a second pass resolves/allocates everything else), which is
// why 'SymbolTable' itself stays a dumb bag of maps plus a cursor rather than doing any
// multi-pass orchestration on its own.
type SymbolTable struct {
	aliases map[string]uint16 // Predefined + user-allocated variable addresses
	labels  map[string]uint16 // User-defined "(LABEL)" declarations, ROM line numbers
	nextVar uint16            // Next free RAM address for a newly seen variable
}

// SymbolTableError is returned for malformed or duplicate symbol table operations.
type SymbolTableError struct{ Reason string }

func (e SymbolTableError) Error() string { return e.Reason }

const firstVariableAddress uint16 = 0x0010 // Variables are allocated starting at RAM[16]

// NewSymbolTable returns a SymbolTable pre-populated with every predefined Hack alias
// (the virtual-machine segment pointers, the 16 named general purpose registers and the
// two memory-mapped I/O locations).
func NewSymbolTable() SymbolTable {
	aliases := make(map[string]uint16, len(BuiltInTable))
	for name, addr := range BuiltInTable {
		aliases[name] = addr
	}
	return SymbolTable{aliases: aliases, labels: map[string]uint16{}, nextVar: firstVariableAddress}
}

// AddLabel registers a label declaration at the given ROM line number. Declaring the
// same label twice is a caller error (labels are unique within a program).
func (st *SymbolTable) AddLabel(name string, lineNo uint16) error {
	if _, found := st.labels[name]; found {
		return errors.Wrapf(SymbolTableError{Reason: "label already declared"}, "label %q", name)
	}
	st.labels[name] = lineNo
	return nil
}

// AddAlias forces an explicit alias -> address binding, replacing any existing one;
// unlike AddLabel it never reports a redeclaration. NewSymbolTable seeds the predefined
// names and Resolve allocates variables without going through it.
func (st *SymbolTable) AddAlias(name string, addr uint16) { st.aliases[name] = addr }

// GetLineNo returns the ROM line number a label was declared at.
func (st *SymbolTable) GetLineNo(name string) (uint16, bool) {
	line, found := st.labels[name]
	return line, found
}

// Resolve returns the RAM/ROM address a symbolic name refers to, following the
// resolution order mandated by the spec: variables (aliases) are checked first, then
// labels, and only once neither matches is a fresh variable address allocated and
// remembered for subsequent references to the same name.
func (st *SymbolTable) Resolve(name string) uint16 {
	if addr, found := st.aliases[name]; found {
		return addr
	}
	if line, found := st.labels[name]; found {
		return line
	}
	addr := st.nextVar
	st.aliases[name] = addr
	st.nextVar++
	return addr
}

// EncodeComp translates a 'comp' mnemonic to its 7 bit opcode.
func (SymbolTable) EncodeComp(comp string) (uint16, error) {
	opcode, found := CompTable[comp]
	if !found {
		return 0, errors.Wrapf(SymbolTableError{Reason: "unknown comp mnemonic"}, "comp %q", comp)
	}
	return opcode, nil
}

// EncodeJump translates a 'jump' mnemonic to its 3 bit opcode.
func (SymbolTable) EncodeJump(jump string) (uint16, error) {
	opcode, found := JumpTable[jump]
	if !found {
		return 0, errors.Wrapf(SymbolTableError{Reason: "unknown jump mnemonic"}, "jump %q", jump)
	}
	return opcode, nil
}

// EncodeDest folds a 'dest' mnemonic over its three destination registers (A, D, M)
// one character at a time instead of doing a whole-string table lookup: this makes the
// encoding permutation-invariant by construction, "MD" and "DM" both fold to the same
// 3 bit mask, rather than requiring every permutation to be enumerated up front.
func (SymbolTable) EncodeDest(dest string) (uint16, error) {
	var mask uint16
	for _, r := range dest {
		switch r {
		case 'A':
			mask |= 0b100
		case 'D':
			mask |= 0b010
		case 'M':
			mask |= 0b001
		default:
			return 0, errors.Wrapf(SymbolTableError{Reason: "invalid dest character"}, "dest %q", dest)
		}
	}
	return mask, nil
}
