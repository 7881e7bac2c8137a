package vm

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	pc "github.com/prataprc/goparsec"
)

// ----------------------------------------------------------------------------
// Grammar

// ast is the single traversable tree every parse run builds into; goparsec threads all
// state for a parse through this one object, so it's shared across every combinator
// below rather than recreated per Parser.
var ast = pc.NewAST("virtual_machine", 0)

// keyword builds an OrdChoice over a fixed set of literal keywords; each match's AST node
// carries the keyword exactly as written as its value. Every fixed vocabulary in the VM
// grammar (segment names, arithmetic mnemonics, jump kinds, memory verbs) is built this
// way instead of spelling out one pc.Atom call per keyword.
func keyword(name string, words ...string) pc.Parser {
	choices := make([]pc.Parser, len(words))
	for i, w := range words {
		choices[i] = pc.Atom(w, w)
	}
	return ast.OrdChoice(name, nil, choices...)
}

var (
	pIdent = pc.Token(`[A-Za-z_.$:][0-9a-zA-Z_.$:]*`, "IDENT")

	pMemOpType   = keyword("mem_op_type", "push", "pop")
	pSegment     = keyword("mem_segment", "argument", "local", "static", "constant", "this", "that", "temp", "pointer")
	pArithOpType = keyword("operations", "eq", "gt", "lt", "add", "sub", "neg", "not", "and", "or")
	pJumpType    = keyword("jump_type", "goto", "if-goto")

	pMemoryOp     = ast.And("memory_op", nil, pMemOpType, pSegment, pc.Int())
	pArithmeticOp = ast.And("arithmetic_op", nil, pArithOpType)
	pLabelDecl    = ast.And("label_decl", nil, pc.Atom("label", "LABEL"), pIdent)
	pGotoOp       = ast.And("goto_op", nil, pJumpType, pIdent)
	pFuncDecl     = ast.And("func_decl", nil, pc.Atom("function", "FUNC"), pIdent, pc.Int())
	pFunCallOp    = ast.And("func_call", nil, pc.Atom("call", "CALL"), pIdent, pc.Int())
	pReturnOp     = ast.And("return_op", nil, pc.Atom("return", "RETURN"))

	pComment = ast.And("comment", nil, pc.Atom("//", "//"), pc.Token(`(?m).*$`, "COMMENT"))

	pOperation = ast.OrdChoice("operation", nil,
		pMemoryOp, pArithmeticOp, pLabelDecl, pGotoOp,
		pFuncDecl, pFunCallOp, pReturnOp,
	)
	pModule = ast.ManyUntil("module", nil, ast.OrdChoice("node", nil, pComment, pOperation), pc.End())
)

// ----------------------------------------------------------------------------
// Parser

// Parser turns VM source text into a Module: a parser-combinator pass builds a raw
// goparsec AST, then a second pass walks that tree and folds each recognized subtree
// into one of the Operation variants declared in vm.go.
type Parser struct{ reader io.Reader }

func NewParser(r io.Reader) Parser { return Parser{reader: r} }

// Parse runs both passes over the Parser's source and returns the resulting Module.
func (p *Parser) Parse() (Module, error) {
	content, err := io.ReadAll(p.reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading VM source")
	}

	root, ok := p.scan(content)
	if !ok {
		return nil, errors.New("failed to parse VM source into an AST")
	}

	return fold(root)
}

// scan runs the grammar over source and returns the parsed AST's root node. The env vars
// below are debug switches only, there's no CLI surface to bind them to a flag
// through, so they stay plain os.Getenv reads the same way the teacher's original
// scanner exposed them.
func (p *Parser) scan(source []byte) (pc.Queryable, bool) {
	if os.Getenv("PARSEC_DEBUG") != "" {
		ast.SetDebug()
	}

	root, _ := ast.Parsewith(pModule, pc.NewScanner(source))

	if os.Getenv("EXPORT_AST") != "" {
		if file, err := os.Create(fmt.Sprintf("%s/debug.ast.dot", os.Getenv("DEBUG_FOLDER"))); err == nil {
			defer file.Close()
			file.Write([]byte(ast.Dotstring(`"VM AST"`)))
		}
	}
	if os.Getenv("PRINT_AST") != "" {
		ast.Prettyprint()
	}

	return root, true
}

// ----------------------------------------------------------------------------
// AST -> Module

// foldFunc extracts one Operation from an already-shape-checked AST subtree.
type foldFunc func(pc.Queryable) (Operation, error)

// foldTable dispatches each recognized child node of the "module" root to the function
// that knows how to read its Operation out of it; "comment" has no entry and is skipped
// explicitly in fold, since it produces no Operation at all.
var foldTable = map[string]foldFunc{
	"memory_op":     foldMemoryOp,
	"arithmetic_op": foldArithmeticOp,
	"label_decl":    foldLabelDecl,
	"goto_op":       foldGotoOp,
	"func_decl":     foldFuncDecl,
	"func_call":     foldFuncCall,
	"return_op":     foldReturnOp,
}

// fold walks the direct children of root (expected to be the "module" node) and folds
// each into the Module it assembles.
func fold(root pc.Queryable) (Module, error) {
	if root.GetName() != "module" {
		return nil, errors.Errorf("expected root node %q, found %q", "module", root.GetName())
	}

	module := make(Module, 0, len(root.GetChildren()))
	for _, child := range root.GetChildren() {
		if child.GetName() == "comment" {
			continue
		}

		handle, known := foldTable[child.GetName()]
		if !known {
			return nil, errors.Errorf("unrecognized AST node %q", child.GetName())
		}

		op, err := handle(child)
		if err != nil {
			return nil, err
		}
		module = append(module, op)
	}

	return module, nil
}

// shape fails unless node is named want and has exactly n children, the invariant every
// foldFunc below relies on before indexing into GetChildren().
func shape(node pc.Queryable, want string, n int) error {
	if node.GetName() != want {
		return errors.Errorf("expected node %q, got %q", want, node.GetName())
	}
	if len(node.GetChildren()) != n {
		return errors.Errorf("expected node %q with %d children, got %d", want, n, len(node.GetChildren()))
	}
	return nil
}

func intChild(node pc.Queryable, i int, bits int) (uint64, error) {
	raw := node.GetChildren()[i].GetValue()
	n, err := strconv.ParseUint(raw, 10, bits)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing integer operand %q", raw)
	}
	return n, nil
}

func foldMemoryOp(node pc.Queryable) (Operation, error) {
	if err := shape(node, "memory_op", 3); err != nil {
		return nil, err
	}

	offset, err := intChild(node, 2, 16)
	if err != nil {
		return nil, err
	}

	return MemoryOp{
		Operation: OperationType(node.GetChildren()[0].GetValue()),
		Segment:   SegmentType(node.GetChildren()[1].GetValue()),
		Offset:    uint16(offset),
	}, nil
}

func foldArithmeticOp(node pc.Queryable) (Operation, error) {
	if err := shape(node, "arithmetic_op", 1); err != nil {
		return nil, err
	}
	return ArithmeticOp{Operation: ArithOpType(node.GetChildren()[0].GetValue())}, nil
}

func foldLabelDecl(node pc.Queryable) (Operation, error) {
	if err := shape(node, "label_decl", 2); err != nil {
		return nil, err
	}
	return LabelDeclaration{Name: node.GetChildren()[1].GetValue()}, nil
}

func foldGotoOp(node pc.Queryable) (Operation, error) {
	if err := shape(node, "goto_op", 2); err != nil {
		return nil, err
	}
	return GotoOp{
		Jump:  JumpType(node.GetChildren()[0].GetValue()),
		Label: node.GetChildren()[1].GetValue(),
	}, nil
}

func foldFuncDecl(node pc.Queryable) (Operation, error) {
	if err := shape(node, "func_decl", 3); err != nil {
		return nil, err
	}
	args, err := intChild(node, 2, 8)
	if err != nil {
		return nil, err
	}
	return FuncDecl{Name: node.GetChildren()[1].GetValue(), ArgsNum: uint8(args)}, nil
}

func foldFuncCall(node pc.Queryable) (Operation, error) {
	if err := shape(node, "func_call", 3); err != nil {
		return nil, err
	}
	args, err := intChild(node, 2, 8)
	if err != nil {
		return nil, err
	}
	return FuncCallOp{Name: node.GetChildren()[1].GetValue(), ArgsNum: uint8(args)}, nil
}

func foldReturnOp(node pc.Queryable) (Operation, error) {
	if err := shape(node, "return_op", 1); err != nil {
		return nil, err
	}
	return ReturnOp{}, nil
}
