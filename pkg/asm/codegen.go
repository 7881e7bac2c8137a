package asm

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"hackforge.io/n2t/pkg/hack"
)

// ----------------------------------------------------------------------------
// Code Generator

// CodeGenerator renders a Statement stream to Hack assembly text, one line per
// Statement, in order.
type CodeGenerator struct {
	program []Statement
}

func NewCodeGenerator(p []Statement) CodeGenerator {
	return CodeGenerator{program: p}
}

// Generate renders every Statement in the program, in order, one line of assembly text
// per Statement.
func (cg *CodeGenerator) Generate() ([]string, error) {
	lines := make([]string, 0, len(cg.program))

	for _, statement := range cg.program {
		var line string
		var err error

		switch stmt := statement.(type) {
		case AInstruction:
			line, err = cg.GenerateAInst(stmt)
		case CInstruction:
			line, err = cg.GenerateCInst(stmt)
		case LabelDecl:
			line, err = cg.GenerateLabelDecl(stmt)
		case CommentStatement:
			line, err = cg.GenerateComment(stmt)
		default:
			err = errors.Errorf("unrecognized statement type %T", statement)
		}

		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// GenerateAInst renders an A Instruction as "@<location>". A numeric Location must fit the
// 15 bits an A instruction can address; any other Location is rendered verbatim, its
// built-in/label classification only matters to the binary Code Generator.
func (CodeGenerator) GenerateAInst(stmt AInstruction) (string, error) {
	if stmt.Location == "" {
		return "", errors.New("unable to produce an A instruction with an empty location")
	}
	if n, err := strconv.ParseUint(stmt.Location, 10, 64); err == nil && n >= uint64(hack.MaxAddressableMemory) {
		return "", errors.Errorf("address %s is out of the addressable range", stmt.Location)
	}

	return fmt.Sprintf("@%s", stmt.Location), nil
}

// GenerateCInst renders a C Instruction as "dest=comp" or "comp;jump". Dest and Jump are
// validated against the same tables the Hack Code Generator encodes them with, so a
// malformed mnemonic is caught here rather than surfacing only once the statement reaches
// the binary codegen pass (Comp is only checked for presence here). Exactly one of
// Dest/Jump must be set: this renderer rejects a C instruction with both or with neither,
// although the Assembler's own tokenizer accepts both forms.
func (cg *CodeGenerator) GenerateCInst(stmt CInstruction) (string, error) {
	if stmt.Comp == "" {
		return "", errors.New("C instruction is missing its 'comp' directive")
	}
	if stmt.Dest != "" {
		if _, found := hack.DestTable[stmt.Dest]; !found {
			return "", errors.Errorf("unrecognized 'dest' directive %q", stmt.Dest)
		}
	}
	if stmt.Jump != "" {
		if _, found := hack.JumpTable[stmt.Jump]; !found {
			return "", errors.Errorf("unrecognized 'jump' directive %q", stmt.Jump)
		}
	}

	switch {
	case stmt.Dest != "" && stmt.Jump == "":
		return fmt.Sprintf("%s=%s", stmt.Dest, stmt.Comp), nil
	case stmt.Jump != "" && stmt.Dest == "":
		return fmt.Sprintf("%s;%s", stmt.Comp, stmt.Jump), nil
	default:
		return "", errors.New("C instruction must set exactly one of 'dest' or 'jump'")
	}
}

// GenerateLabelDecl renders a label declaration as "(name)"; a name colliding with a
// built-in alias could never be referenced (an A instruction naming it always resolves to
// the built-in address), so that's rejected here.
func (cg *CodeGenerator) GenerateLabelDecl(stmt LabelDecl) (string, error) {
	if stmt.Name == "" {
		return "", errors.New("unable to produce a label declaration with an empty name")
	}
	if _, found := hack.BuiltInTable[stmt.Name]; found {
		return "", errors.Errorf("label %q collides with a built-in alias", stmt.Name)
	}

	return fmt.Sprintf("(%s)", stmt.Name), nil
}

// GenerateComment renders a passthrough comment line, echoed verbatim.
func (cg *CodeGenerator) GenerateComment(stmt CommentStatement) (string, error) {
	return fmt.Sprintf("// %s", stmt.Text), nil
}
