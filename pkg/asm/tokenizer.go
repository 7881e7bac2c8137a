package asm

import (
	"strconv"
	"strings"
	"unicode"
)

// ----------------------------------------------------------------------------
// Tokenizer

// The Tokenizer turns one source line at a time into a Token, skipping blank lines and
// comments. It scans rune by rune rather than going through a parser combinator: every
// error it raises needs to carry the offending character's column so the CLI can print
// a diagnostic pointing at the exact spot in the source, which a combinator's pass/fail
// result doesn't expose.
//
// This is a direct rewrite, in this repo's idiom, of the reference scanner it's grounded
// on (a hand-rolled character scan over the same three statement shapes).
type Tokenizer struct{}

// NewTokenizer returns a ready to use Tokenizer. It carries no state of its own: every
// line is tokenized independently, the surrounding two-pass Driver is what accumulates
// state (the symbol table, the ROM line counter) across lines.
func NewTokenizer() Tokenizer { return Tokenizer{} }

// Tokenize scans a single source line and returns its Token, or nil if the line is
// blank or a comment-only line.
func (Tokenizer) Tokenize(line string) (Token, error) {
	trimmed := strings.TrimSpace(stripComment(line))
	if trimmed == "" {
		return nil, nil
	}

	for i, r := range trimmed {
		switch {
		case r == ' ':
			continue
		case r == '(':
			return extractLabel(trimmed, i+1)
		case r == '@':
			return extractAInst(trimmed, i+1)
		default:
			return extractCInst(trimmed)
		}
	}

	return nil, nil
}

func stripComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx]
	}
	return line
}

func extractLabel(line string, start int) (Token, error) {
	runes := []rune(line)
	if start >= len(runes) {
		return nil, TokenError{Kind: UnclosedLabel, Line: line, Column: start}
	}
	if !isValidSymbolFirstChar(runes[start]) {
		return nil, TokenError{Kind: InvalidSymbolFirstChar, Detail: string(runes[start]), Line: line, Column: start + 1}
	}

	for i := start; i < len(runes); i++ {
		switch {
		case runes[i] == ')':
			name := string(runes[start:i])
			if i+1 < len(runes) {
				return nil, TokenError{Kind: UnexpectedCharacter, Detail: string(runes[i+1]), Line: line, Column: i + 2}
			}
			return LabelToken{Name: name}, nil
		case !isValidSymbol(runes[i]):
			return nil, TokenError{Kind: InvalidSymbolChar, Detail: string(runes[i]), Line: line, Column: i + 1}
		}
	}

	return nil, TokenError{Kind: UnclosedLabel, Line: line, Column: len(runes)}
}

func extractAInst(line string, start int) (Token, error) {
	rest := line[start:]
	if _, err := strconv.ParseUint(rest, 10, 16); err == nil {
		return AInstToken{Location: rest}, nil
	}

	runes := []rune(line)
	if start >= len(runes) {
		return nil, TokenError{Kind: EmptyAInstruction, Line: line}
	}
	if !isValidSymbolFirstChar(runes[start]) {
		return nil, TokenError{Kind: InvalidSymbolFirstChar, Detail: string(runes[start]), Line: line, Column: start + 1}
	}
	for i := start; i < len(runes); i++ {
		if !isValidSymbol(runes[i]) {
			return nil, TokenError{Kind: InvalidSymbolChar, Detail: string(runes[i]), Line: line, Column: i + 1}
		}
	}

	return AInstToken{Location: string(runes[start:])}, nil
}

func extractCInst(line string) (Token, error) {
	dest, rest := "", line
	if idx := strings.Index(line, "="); idx >= 0 {
		dest, rest = line[:idx], line[idx+1:]
	}

	comp, jump := rest, ""
	if idx := strings.Index(rest, ";"); idx >= 0 {
		comp, jump = rest[:idx], rest[idx+1:]
	}

	comp = strings.TrimSpace(comp)
	if comp == "" {
		return nil, TokenError{Kind: MissingCmpInstruction, Line: line}
	}

	return CInstToken{Dest: strings.TrimSpace(dest), Comp: comp, Jump: strings.TrimSpace(jump)}, nil
}

func isValidSymbolFirstChar(r rune) bool {
	return isValidSymbol(r) && !unicode.IsDigit(r)
}

func isValidSymbol(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '.' || r == '$' || r == ':')
}
