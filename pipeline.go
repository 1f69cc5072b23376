package main

// Result holds every artifact of one compilation.
type Result struct {
	Tokens  []Token
	Symbols *SymbolTable
	// Syntax is the tree exactly as parsed.
	Syntax *Assignment
	// Semantic is an independent tree carrying coercion marks.
	Semantic *Assignment
	Code     []Instruction
}

// Compile runs the whole pipeline over one statement. The token list is
// parsed once per consumer so that annotating one tree cannot leak into
// another. Lexical and syntax errors are returned as *LexicalError and
// *SyntaxError.
func Compile(source string, types TypeTable) (*Result, error) {
	tokens, symbols, err := Lex(source)
	if err != nil {
		return nil, err
	}

	syntax, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	semantic, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	ResolveTypes(semantic, types)

	codeTree, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	ResolveTypes(codeTree, types)

	return &Result{
		Tokens:   tokens,
		Symbols:  symbols,
		Syntax:   syntax,
		Semantic: semantic,
		Code:     GenerateCode(codeTree, types),
	}, nil
}
