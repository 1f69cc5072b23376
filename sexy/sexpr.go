// Package sexy reads the s-expressions used to state expectations in the
// Markdown test corpus, and matches them against actual output.
package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeNumber
	NodeEllipsis
	NodeList
	NodeMap
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeNumber:
		return "number"
	case NodeEllipsis:
		return "ellipsis"
	case NodeList:
		return "list"
	case NodeMap:
		return "map"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is one datum.
type Node struct {
	Type NodeType

	// NodeSymbol, NodeString, NodeNumber
	Text string

	// NodeList, NodeMap
	Items []*Node
	// NodeMap keys, parallel to Items
	Keys []string
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeNumber:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return "\"" + escaped + "\""
	case NodeEllipsis:
		return "..."
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	case NodeMap:
		parts := make([]string, len(n.Keys))
		for i, key := range n.Keys {
			parts[i] = key + ": " + n.Items[i].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewNumber(text string) *Node {
	return &Node{Type: NodeNumber, Text: text}
}

func NewEllipsis() *Node {
	return &Node{Type: NodeEllipsis}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

func NewMap(keys []string, items []*Node) *Node {
	return &Node{Type: NodeMap, Keys: keys, Items: items}
}

// Get returns the value stored under key in a map node.
func (n *Node) Get(key string) (*Node, bool) {
	for i, k := range n.Keys {
		if k == key {
			return n.Items[i], true
		}
	}
	return nil, false
}

// IsAtom checks if the node is an atomic value
func (n *Node) IsAtom() bool {
	return n.Type == NodeSymbol || n.Type == NodeString || n.Type == NodeNumber || n.Type == NodeEllipsis
}

// Match compares actual against pattern and describes the first difference.
// Within a list pattern, a trailing ... matches any remaining items. Map
// keys must appear in the same order.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeEllipsis {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s %s, got %s %s", path, pattern.Type, pattern, actual.Type, actual)
	}

	switch pattern.Type {
	case NodeList:
		for i, item := range pattern.Items {
			if item.Type == NodeEllipsis && i == len(pattern.Items)-1 {
				return nil
			}
			if i >= len(actual.Items) {
				return fmt.Errorf("at %s: expected %s, got %s (too few items)", path, pattern, actual)
			}
			if err := match(item, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		if len(actual.Items) > len(pattern.Items) {
			return fmt.Errorf("at %s: expected %s, got %s (too many items)", path, pattern, actual)
		}
		return nil

	case NodeMap:
		if len(pattern.Keys) != len(actual.Keys) {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		for i, key := range pattern.Keys {
			if actual.Keys[i] != key {
				return fmt.Errorf("at %s: expected key %s, got %s", path, key, actual.Keys[i])
			}
			if err := match(pattern.Items[i], actual.Items[i], path+"."+key); err != nil {
				return err
			}
		}
		return nil

	default:
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	}
}

type parser struct {
	lexer        *lexer
	currentToken token
	peekToken    token
}

// Parse parses the entire input and returns the top-level datum
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()
	p.nextToken()

	result, err := p.parseDatum()
	if p.lexer.err != nil {
		// Lexer errors take priority because they might cause confusing parser errors.
		return nil, p.lexer.err
	}
	if err != nil {
		return nil, err
	}
	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("expected EOF but got %s", p.currentToken.Type)
	}
	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.peekToken
	p.peekToken = p.lexer.nextToken()
}

func (p *parser) parseDatum() (*Node, error) {
	tok := p.currentToken
	switch tok.Type {
	case tokenSymbol:
		p.nextToken()
		return NewSymbol(tok.Value), nil
	case tokenString:
		p.nextToken()
		return NewString(tok.Value), nil
	case tokenNumber:
		p.nextToken()
		return NewNumber(tok.Value), nil
	case tokenEllipsis:
		p.nextToken()
		return NewEllipsis(), nil
	case tokenLParen:
		return p.parseList()
	case tokenLBrace:
		return p.parseMap()
	default:
		return nil, fmt.Errorf("unexpected token: %s", tok.Type)
	}
}

func (p *parser) parseList() (*Node, error) {
	p.nextToken() // consume '('

	var items []*Node
	for p.currentToken.Type != tokenRParen && p.currentToken.Type != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.currentToken.Type != tokenRParen {
		return nil, fmt.Errorf("expected ')' but got %s", p.currentToken.Type)
	}
	p.nextToken() // consume ')'
	return NewList(items...), nil
}

func (p *parser) parseMap() (*Node, error) {
	p.nextToken() // consume '{'

	var keys []string
	var items []*Node
	for p.currentToken.Type != tokenRBrace && p.currentToken.Type != tokenEOF {
		if p.currentToken.Type != tokenSymbol {
			return nil, fmt.Errorf("expected symbol for map key but got %s", p.currentToken.Type)
		}
		keys = append(keys, p.currentToken.Value)
		p.nextToken()

		if p.currentToken.Type != tokenColon {
			return nil, fmt.Errorf("expected ':' after map key but got %s", p.currentToken.Type)
		}
		p.nextToken()

		value, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, value)

		if p.currentToken.Type == tokenComma {
			p.nextToken()
		} else if p.currentToken.Type != tokenRBrace {
			return nil, fmt.Errorf("expected ',' or '}' in map but got %s", p.currentToken.Type)
		}
	}

	if p.currentToken.Type != tokenRBrace {
		return nil, fmt.Errorf("expected '}' but got %s", p.currentToken.Type)
	}
	p.nextToken() // consume '}'
	return NewMap(keys, items), nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenNumber
	tokenEllipsis
	tokenLParen
	tokenRParen
	tokenLBrace
	tokenRBrace
	tokenColon
	tokenComma
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type  tokenType
	Value string
}

type lexer struct {
	input []rune
	pos   int
	// err is the first lexical error; once set, only EOF is produced.
	err error
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) peek(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) fail(format string, args ...any) token {
	if l.err == nil {
		l.err = fmt.Errorf(format, args...)
	}
	l.pos = len(l.input)
	return token{Type: tokenEOF}
}

func (l *lexer) nextToken() token {
	for {
		for unicode.IsSpace(l.peek(0)) {
			l.pos++
		}
		if l.peek(0) != ';' {
			break
		}
		for l.peek(0) != '\n' && l.peek(0) != 0 {
			l.pos++
		}
	}

	c := l.peek(0)
	punctuation := map[rune]tokenType{
		'(': tokenLParen, ')': tokenRParen,
		'{': tokenLBrace, '}': tokenRBrace,
		':': tokenColon, ',': tokenComma,
	}
	if tt, ok := punctuation[c]; ok {
		l.pos++
		return token{Type: tt, Value: string(c)}
	}

	switch {
	case c == 0:
		return token{Type: tokenEOF}
	case c == '"':
		return l.readString()
	case c == '.':
		if l.peek(1) == '.' && l.peek(2) == '.' {
			l.pos += 3
			return token{Type: tokenEllipsis, Value: "..."}
		}
		return l.fail("unexpected character '.'")
	case unicode.IsDigit(c) || ((c == '+' || c == '-') && unicode.IsDigit(l.peek(1))):
		return token{Type: tokenNumber, Value: l.readNumber()}
	case isSymbolChar(c):
		start := l.pos
		for isSymbolChar(l.peek(0)) {
			l.pos++
		}
		return token{Type: tokenSymbol, Value: string(l.input[start:l.pos])}
	default:
		return l.fail("unexpected character '%c'", c)
	}
}

func (l *lexer) readString() token {
	l.pos++ // skip opening quote
	var sb strings.Builder
	for l.peek(0) != '"' {
		switch l.peek(0) {
		case 0:
			return l.fail("unterminated string")
		case '\\':
			l.pos++
			switch l.peek(0) {
			case '"', '\\':
				sb.WriteRune(l.peek(0))
			default:
				return l.fail("invalid escape sequence: \\%c", l.peek(0))
			}
		default:
			sb.WriteRune(l.peek(0))
		}
		l.pos++
	}
	l.pos++ // skip closing quote
	return token{Type: tokenString, Value: sb.String()}
}

// readNumber reads an optionally signed integer or decimal.
func (l *lexer) readNumber() string {
	start := l.pos
	if l.peek(0) == '+' || l.peek(0) == '-' {
		l.pos++
	}
	for unicode.IsDigit(l.peek(0)) {
		l.pos++
	}
	if l.peek(0) == '.' && unicode.IsDigit(l.peek(1)) {
		l.pos++
		for unicode.IsDigit(l.peek(0)) {
			l.pos++
		}
	}
	return string(l.input[start:l.pos])
}

// isSymbolChar accepts letters, digits and the operator characters used in
// the corpus, so + and int-to-float are symbols.
func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-_+*/=", r)
}
