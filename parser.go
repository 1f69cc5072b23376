package main

import "fmt"

const endOfInput = "end of input"

// SyntaxError reports a token sequence that does not form a statement.
type SyntaxError struct {
	Pos      int
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

type parser struct {
	tokens []Token
	pos    int
}

// Parse builds the tree of one assignment statement:
//
//	statement  := IDENTIFIER '=' expression
//	expression := term (('+' | '-') term)*
//	term       := factor (('*' | '/') factor)*
//	factor     := NUMBER | IDENTIFIER | '(' expression ')'
//
// The tokens are only read, so parsing the same slice again yields a fresh,
// independent tree. Tokens left over after the statement are an error.
func Parse(tokens []Token) (*Assignment, error) {
	p := &parser{tokens: tokens}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorf(endOfInput)
	}
	return stmt, nil
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) current() Token {
	return p.tokens[p.pos]
}

func (p *parser) errorf(expected string) *SyntaxError {
	if p.atEnd() {
		return &SyntaxError{Pos: p.endPos(), Expected: expected, Found: endOfInput}
	}
	tok := p.current()
	return &SyntaxError{Pos: tok.Pos, Expected: expected, Found: tok.String()}
}

func (p *parser) endPos() int {
	if len(p.tokens) == 0 {
		return 0
	}
	last := p.tokens[len(p.tokens)-1]
	text := last.Value
	if last.Kind == IDENTIFIER {
		text = last.Original
	}
	return last.Pos + len(text)
}

// skipToken consumes the current token, which must be of the given kind.
func (p *parser) skipToken(kind TokenKind) (Token, error) {
	if p.atEnd() || p.current().Kind != kind {
		return Token{}, p.errorf(string(kind))
	}
	tok := p.current()
	p.pos++
	return tok, nil
}

// atOperator reports whether the current token is one of ops.
func (p *parser) atOperator(ops ...string) bool {
	if p.atEnd() || p.current().Kind != OPERATOR {
		return false
	}
	for _, op := range ops {
		if p.current().Value == op {
			return true
		}
	}
	return false
}

func (p *parser) parseStatement() (*Assignment, error) {
	target, err := p.skipToken(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipToken(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Assignment{
		Target: &Identifier{Name: target.Value, Original: target.Original},
		Value:  value,
	}, nil
}

func (p *parser) parseExpression() (Node, error) {
	return p.parseBinary(p.parseTerm, "+", "-")
}

func (p *parser) parseTerm() (Node, error) {
	return p.parseBinary(p.parseFactor, "*", "/")
}

// parseBinary folds operand (op operand)* to the left, so a - b - c
// becomes (a - b) - c.
func (p *parser) parseBinary(operand func() (Node, error), ops ...string) (Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.atOperator(ops...) {
		op := p.current().Value
		p.pos++
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseFactor() (Node, error) {
	if p.atEnd() {
		return nil, p.errorf("operand")
	}

	tok := p.current()
	switch tok.Kind {
	case NUMBER:
		p.pos++
		return &NumberLiteral{Text: tok.Value}, nil

	case IDENTIFIER:
		p.pos++
		return &Identifier{Name: tok.Value, Original: tok.Original}, nil

	case LPAREN:
		p.pos++
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.skipToken(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.errorf("operand")
	}
}
