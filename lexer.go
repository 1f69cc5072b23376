package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// LexicalError reports source text that cannot be split into tokens.
type LexicalError struct {
	Pos int
	Msg string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %d: %s", e.Pos, e.Msg)
}

// Symbol is one entry of a SymbolTable.
type Symbol struct {
	Original  string
	Canonical string
}

// SymbolTable maps identifier spellings to canonical names in
// first-occurrence order.
type SymbolTable struct {
	symbols []Symbol
	index   map[string]int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]int)}
}

// Intern returns the canonical name for original, allocating the next idN
// if the spelling has not been seen yet.
func (st *SymbolTable) Intern(original string) string {
	if i, ok := st.index[original]; ok {
		return st.symbols[i].Canonical
	}
	canonical := "id" + strconv.Itoa(len(st.symbols)+1)
	st.index[original] = len(st.symbols)
	st.symbols = append(st.symbols, Symbol{Original: original, Canonical: canonical})
	return canonical
}

// Lookup returns the canonical name for original.
func (st *SymbolTable) Lookup(original string) (string, bool) {
	i, ok := st.index[original]
	if !ok {
		return "", false
	}
	return st.symbols[i].Canonical, true
}

// Symbols returns the entries in first-occurrence order.
func (st *SymbolTable) Symbols() []Symbol {
	return append([]Symbol(nil), st.symbols...)
}

func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

func (st *SymbolTable) String() string {
	parts := make([]string, len(st.symbols))
	for i, sym := range st.symbols {
		parts[i] = sym.Original + ": " + sym.Canonical
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type lexer struct {
	input   string
	pos     int
	tokens  []Token
	symbols *SymbolTable
}

// Lex splits source into tokens and interns every identifier spelling. On
// error neither tokens nor a symbol table is returned.
func Lex(source string) ([]Token, *SymbolTable, error) {
	l := &lexer{input: source, symbols: NewSymbolTable()}
	for l.pos < len(l.input) {
		if err := l.next(); err != nil {
			return nil, nil, err
		}
	}
	return l.tokens, l.symbols, nil
}

func (l *lexer) next() error {
	c := l.input[l.pos]
	start := l.pos

	if isDigit(c) {
		l.emit(Token{Kind: NUMBER, Value: l.readNumber(), Pos: start})

	} else if c == '=' {
		l.pos++
		l.emit(Token{Kind: ASSIGN, Value: "=", Pos: start})

	} else if isLetter(c) {
		name := l.readIdentifier()
		if prev, ok := l.last(); ok && prev.Kind == NUMBER {
			return &LexicalError{
				Pos: start,
				Msg: fmt.Sprintf("number %s followed by identifier %s without an operator", quote(prev.Value), quote(name)),
			}
		}
		l.emit(Token{Kind: IDENTIFIER, Value: l.symbols.Intern(name), Original: name, Pos: start})

	} else if c == '+' || c == '-' || c == '*' || c == '/' {
		l.pos++
		l.emit(Token{Kind: OPERATOR, Value: string(c), Pos: start})

	} else if c == '(' {
		l.pos++
		l.emit(Token{Kind: LPAREN, Value: "(", Pos: start})

	} else if c == ')' {
		l.pos++
		l.emit(Token{Kind: RPAREN, Value: ")", Pos: start})

	} else if isSpace(c) {
		for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
			l.pos++
		}

	} else {
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		return &LexicalError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", r)}
	}
	return nil
}

func (l *lexer) emit(tok Token) {
	l.tokens = append(l.tokens, tok)
}

func (l *lexer) last() (Token, bool) {
	if len(l.tokens) == 0 {
		return Token{}, false
	}
	return l.tokens[len(l.tokens)-1], true
}

func (l *lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// readNumber consumes digits with an optional fraction. A '.' only belongs
// to the number when a digit follows it.
func (l *lexer) readNumber() string {
	start := l.pos
	for isDigit(l.peekByte(0)) {
		l.pos++
	}
	if l.peekByte(0) == '.' && isDigit(l.peekByte(1)) {
		l.pos++
		for isDigit(l.peekByte(0)) {
			l.pos++
		}
	}
	return l.input[start:l.pos]
}

func (l *lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.peekByte(0)) || isDigit(l.peekByte(0)) {
		l.pos++
	}
	return l.input[start:l.pos]
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
