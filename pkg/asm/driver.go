package asm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"hackforge.io/n2t/pkg/hack"
)

// ----------------------------------------------------------------------------
// Driver

// DriverError wraps a TokenError or a duplicate label error with the source line number
// it occurred on, so a caller can report "line 42: ..." instead of just the bare cause.
// Errors from the binary codegen pass are wrapped without a line number.
type DriverError struct {
	Line  int
	Cause error
}

func (e DriverError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Cause) }
func (e DriverError) Unwrap() error { return e.Cause }

// Assemble runs the two-pass translation described by the Hack Assembler spec over src,
// writing one 16 character binary line per instruction to dst.
//
// The first pass only tokenizes and registers label declarations (so a forward reference
// to a label further down the program resolves correctly); the second pass re-tokenizes,
// resolves every A instruction's location against the symbol table built in the first
// pass and lowers each instruction to its binary encoding.
func Assemble(src io.Reader, dst io.Writer) error {
	lines, err := readLines(src)
	if err != nil {
		return errors.Wrap(err, "reading source")
	}

	tokenizer := NewTokenizer()
	table := hack.NewSymbolTable()

	romLine := uint16(0)
	for i, line := range lines {
		tok, err := tokenizer.Tokenize(line)
		if err != nil {
			return DriverError{Line: i + 1, Cause: err}
		}
		if tok == nil {
			continue
		}
		if label, ok := tok.(LabelToken); ok {
			if err := table.AddLabel(label.Name, romLine); err != nil {
				return DriverError{Line: i + 1, Cause: err}
			}
			continue
		}
		romLine++
	}

	program := make(hack.Program, 0, romLine)
	for i, line := range lines {
		tok, err := tokenizer.Tokenize(line)
		if err != nil {
			return DriverError{Line: i + 1, Cause: err}
		}

		switch t := tok.(type) {
		case nil, LabelToken:
			continue
		case AInstToken:
			program = append(program, hack.NewAInstruction(t.Location))
		case CInstToken:
			program = append(program, hack.CInstruction{Dest: t.Dest, Comp: t.Comp, Jump: t.Jump})
		}
	}

	codegen := hack.NewCodeGenerator(program, table)
	encoded, err := codegen.Generate()
	if err != nil {
		return errors.Wrap(err, "generating Hack binary")
	}

	writer := bufio.NewWriter(dst)
	for _, line := range encoded {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return errors.Wrap(err, "writing Hack binary")
		}
	}
	return writer.Flush()
}

func readLines(src io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
