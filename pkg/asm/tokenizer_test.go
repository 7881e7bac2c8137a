package asm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hackforge.io/n2t/pkg/asm"
)

func TestTokenizeBlankAndCommentLines(t *testing.T) {
	tokenizer := asm.NewTokenizer()

	for _, line := range []string{"", "   ", "// a comment", "   // indented comment"} {
		tok, err := tokenizer.Tokenize(line)
		require.NoError(t, err)
		require.Nil(t, tok)
	}
}

func TestTokenizeLabels(t *testing.T) {
	tokenizer := asm.NewTokenizer()

	tok, err := tokenizer.Tokenize("(LOOP)")
	require.NoError(t, err)
	require.Equal(t, asm.LabelToken{Name: "LOOP"}, tok)

	tok, err = tokenizer.Tokenize("  (loop.end$1) // trailing comment")
	require.NoError(t, err)
	require.Equal(t, asm.LabelToken{Name: "loop.end$1"}, tok)
}

func TestTokenizeAInstructions(t *testing.T) {
	tokenizer := asm.NewTokenizer()

	tok, err := tokenizer.Tokenize("@123")
	require.NoError(t, err)
	require.Equal(t, asm.AInstToken{Location: "123"}, tok)

	tok, err = tokenizer.Tokenize("@i")
	require.NoError(t, err)
	require.Equal(t, asm.AInstToken{Location: "i"}, tok)
}

func TestTokenizeCInstructions(t *testing.T) {
	tokenizer := asm.NewTokenizer()

	tok, err := tokenizer.Tokenize("D=M+1;JGT")
	require.NoError(t, err)
	require.Equal(t, asm.CInstToken{Dest: "D", Comp: "M+1", Jump: "JGT"}, tok)

	tok, err = tokenizer.Tokenize("0;JMP")
	require.NoError(t, err)
	require.Equal(t, asm.CInstToken{Dest: "", Comp: "0", Jump: "JMP"}, tok)

	tok, err = tokenizer.Tokenize("M=1")
	require.NoError(t, err)
	require.Equal(t, asm.CInstToken{Dest: "M", Comp: "1", Jump: ""}, tok)
}

func TestTokenizeErrors(t *testing.T) {
	tokenizer := asm.NewTokenizer()

	_, err := tokenizer.Tokenize("(LOOP")
	require.Error(t, err)
	var tokErr asm.TokenError
	require.ErrorAs(t, err, &tokErr)
	require.Equal(t, asm.UnclosedLabel, tokErr.Kind)

	_, err = tokenizer.Tokenize("(1LOOP)")
	require.Error(t, err)
	require.ErrorAs(t, err, &tokErr)
	require.Equal(t, asm.InvalidSymbolFirstChar, tokErr.Kind)

	_, err = tokenizer.Tokenize("(LO#OP)")
	require.Error(t, err)
	require.ErrorAs(t, err, &tokErr)
	require.Equal(t, asm.InvalidSymbolChar, tokErr.Kind)

	_, err = tokenizer.Tokenize("D=;JMP")
	require.Error(t, err)
	require.ErrorAs(t, err, &tokErr)
	require.Equal(t, asm.MissingCmpInstruction, tokErr.Kind)
}
