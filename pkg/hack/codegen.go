package hack

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ----------------------------------------------------------------------------
// Translation tables

// This section contains the translation tables cornerstone of the codegen phase.
//
// This table provides a simple yet effective way to resolve the everything built-in and
// in the Hack specification. Notably we have a the following tables defined:
//	- 'BuiltInTable': Specifies how to translate BuiltIn labels in A instructions to their address
//  - 'CompTable': Specifies how to translate the 'Comp' opcode in C instructions
//  - 'DestTable': Specifies how to translate the 'Dest' opcode in C instructions (the assembly
//    text generator validates 'Dest' against it; 'SymbolTable.EncodeDest' folds characters
//    instead of looking up this table directly)
//  - 'JumpTable': Specifies how to translate the 'Jump' opcode in C instructions

var (
	BuiltInTable = map[string]uint16{
		// Virtual Machine specific aliases (see project 7)
		"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
		// Named general purpose registers
		"R0": 0, "R1": 1, "R2": 2, "R3": 3, "R4": 4, "R5": 5,
		"R6": 6, "R7": 7, "R8": 8, "R9": 9, "R10": 10, "R11": 11,
		"R12": 12, "R13": 13, "R14": 14, "R15": 15,
		// Memory mapped I/O locations
		"SCREEN": 16384, "KBD": 24576,
	}

	CompTable = map[string]uint16{
		// - Constants and identities
		"0": 0b0101010, "1": 0b0111111, "-1": 0b0111010,
		"D": 0b0001100, "A": 0b0110000, "M": 0b1110000,
		// - Binary and numerical negations
		"!D": 0b0001101, "!A": 0b0110001, "!M": 0b1110001,
		"-D": 0b0001111, "-A": 0b0110011, "-M": 0b1110011,
		// - Increment and decrement operations
		"D+1": 0b0011111, "A+1": 0b0110111, "M+1": 0b1110111,
		"D-1": 0b0001110, "A-1": 0b0110010, "M-1": 0b1110010,
		// - Register with register operations
		"D+A": 0b0000010, "D+M": 0b1000010,
		"D-A": 0b0010011, "D-M": 0b1010011,
		"A-D": 0b0000111, "M-D": 0b1000111,
		// - Bitwise register with register operations
		"D&A": 0b0000000, "D&M": 0b1000000,
		"D|A": 0b0010101, "D|M": 0b1010101,
	}

	DestTable = map[string]uint16{
		"": 0b000, "M": 0b001, "D": 0b010, "A": 0b100,
		"MD": 0b011, "AM": 0b101, "AD": 0b110, "AMD": 0b111,
	}

	JumpTable = map[string]uint16{
		"": 0b000, "JGT": 0b001, "JEQ": 0b010, "JGE": 0b011,
		"JLT": 0b100, "JNE": 0b101, "JLE": 0b110, "JMP": 0b111,
	}
)

// ----------------------------------------------------------------------------
// Code Generator

// Takes a set of 'hack.Instruction' and spits out their binary counterparts.
//
// In order to resolve user defined labels and variables in A instructions, the Code
// Generator is handed a SymbolTable that has already been through the Driver's first
// pass (so every label is known before a single variable gets allocated).
type CodeGenerator struct {
	program Program     // The set of instructions to convert in Hack binary format
	table   SymbolTable // Resolves aliases/labels/variables to their RAM or ROM address
}

// Initializes and returns to the caller a brand new 'CodeGenerator' struct.
func NewCodeGenerator(p Program, st SymbolTable) CodeGenerator {
	return CodeGenerator{program: p, table: st}
}

// Translates each instruction in the 'Program' to the Hack binary format.
func (cg *CodeGenerator) Generate() ([]string, error) {
	binary := make([]string, 0, len(cg.program))

	for _, instruction := range cg.program {
		var generated string
		var err error

		switch tInstruction := instruction.(type) {
		case AInstruction:
			generated, err = cg.GenerateAInst(tInstruction)
		case CInstruction:
			generated, err = cg.GenerateCInst(tInstruction)
		default:
			err = errors.Errorf("unrecognized instruction type '%T'", instruction)
		}

		if err != nil {
			return nil, err
		}
		binary = append(binary, generated)
	}

	return binary, nil
}

// Specialized function to convert an A Instruction to the Hack format.
//
// Raw addresses are parsed directly, built-ins are looked up in BuiltInTable and labels
// go through the SymbolTable's resolution order (variable first, label second, allocate
// if neither matches).
func (cg *CodeGenerator) GenerateAInst(inst AInstruction) (string, error) {
	var address uint16

	switch inst.LocType {
	case Raw:
		num, err := strconv.ParseInt(inst.LocName, 10, 16)
		if err != nil {
			return "", errors.Wrapf(err, "invalid raw address %q", inst.LocName)
		}
		address = uint16(num)
	case BuiltIn:
		found := false
		if address, found = BuiltInTable[inst.LocName]; !found {
			return "", errors.Errorf("unable to resolve built-in location '%s'", inst.LocName)
		}
	case Label:
		address = cg.table.Resolve(inst.LocName)
	default:
		return "", errors.Errorf("unrecognized location type for '%s'", inst.LocName)
	}

	// An A instruction always has the first bit set to zero (the opcode bit) this also mean
	// that, since each instructions 16 bit there are only 15 bit to address the Hack computer
	// memory this in turn means that the an address over 2^15 is invalid and out of bound.
	if address >= MaxAddressableMemory {
		return "", errors.Errorf("location '%s' resolved to an address not allowed", inst.LocName)
	}
	return fmt.Sprintf("%016b", address), nil
}

// Specialized function to convert a C Instruction to the Hack format.
func (cg *CodeGenerator) GenerateCInst(inst CInstruction) (string, error) {
	command := uint16(0b111 << 13) // Puts the initial '111' opcode at the start

	comp, err := cg.table.EncodeComp(inst.Comp)
	if err != nil {
		return "", errors.Wrap(err, "unable to translate C instruction")
	}
	dest, err := cg.table.EncodeDest(inst.Dest)
	if err != nil {
		return "", errors.Wrap(err, "unable to translate C instruction")
	}
	jump, err := cg.table.EncodeJump(inst.Jump)
	if err != nil {
		return "", errors.Wrap(err, "unable to translate C instruction")
	}

	command |= comp << 6
	command |= dest << 3
	command |= jump

	return fmt.Sprintf("%016b", command), nil
}
