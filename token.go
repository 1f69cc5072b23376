package main

import "strings"

// TokenKind classifies a lexical unit.
type TokenKind string

const (
	NUMBER     TokenKind = "NUMBER"
	ASSIGN     TokenKind = "ASSIGN"
	IDENTIFIER TokenKind = "IDENTIFIER"
	OPERATOR   TokenKind = "OPERATOR"
	LPAREN     TokenKind = "LPAREN"
	RPAREN     TokenKind = "RPAREN"
)

// Token is one classified lexical unit.
type Token struct {
	Kind TokenKind
	// Value is the canonical name (id1, id2, ...) for identifiers and the
	// literal text for everything else.
	Value string
	// Original is the identifier as written in the source. Empty for
	// non-identifiers.
	Original string
	// Pos is the byte offset of the token in the source.
	Pos int
}

func (t Token) String() string {
	if t.Kind == IDENTIFIER {
		return string(t.Kind) + " " + quote(t.Original)
	}
	return string(t.Kind) + " " + quote(t.Value)
}

// FormatTokens renders token values separated by spaces, e.g.
// "id1 = 2 * id2 + 2.9 * id3".
func FormatTokens(tokens []Token) string {
	values := make([]string, len(tokens))
	for i, tok := range tokens {
		values[i] = tok.Value
	}
	return strings.Join(values, " ")
}

func quote(s string) string {
	return "\"" + s + "\""
}
