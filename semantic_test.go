package main

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/nalgeon/be"
)

func resolveInput(t *testing.T, input string, types TypeTable) *Assignment {
	t.Helper()
	stmt := parseInput(t, input)
	ResolveTypes(stmt, types)
	return stmt
}

func TestTypeOfLeaves(t *testing.T) {
	types := TypeTable{"X": Float, "n": Int}

	be.Equal(t, TypeOf(&NumberLiteral{Text: "2"}, types), Int)
	be.Equal(t, TypeOf(&NumberLiteral{Text: "2.9"}, types), Float)
	be.Equal(t, TypeOf(&NumberLiteral{Text: "2", Coercion: IntToFloat}, types), Float)
	be.Equal(t, TypeOf(&Identifier{Name: "id1", Original: "X"}, types), Float)
	be.Equal(t, TypeOf(&Identifier{Name: "id1", Original: "n"}, types), Int)
	be.Equal(t, TypeOf(&Identifier{Name: "id1", Original: "undeclared"}, types), Int)
	be.Equal(t, TypeOf(&Identifier{Name: "id1", Original: "n", Coercion: IntToFloat}, types), Float)
}

func TestTypeOfLooksUpOriginalSpelling(t *testing.T) {
	// The canonical name must not be used as the lookup key.
	types := TypeTable{"id1": Float}
	be.Equal(t, TypeOf(&Identifier{Name: "id1", Original: "x"}, types), Int)
}

func TestTypeOfBinary(t *testing.T) {
	types := TypeTable{"X": Float}

	intOp := &BinaryOp{Op: "+", Left: &NumberLiteral{Text: "1"}, Right: &NumberLiteral{Text: "2"}}
	be.Equal(t, TypeOf(intOp, types), Int)

	mixed := &BinaryOp{Op: "*", Left: &NumberLiteral{Text: "1"}, Right: &Identifier{Name: "id1", Original: "X"}}
	be.Equal(t, TypeOf(mixed, types), Float)

	be.Equal(t, TypeOf(&Assignment{Target: &Identifier{Original: "X"}, Value: intOp}, types), Float)
	be.Equal(t, TypeOf(&Assignment{Target: &Identifier{Original: "n"}, Value: intOp}, types), Int)

	// A nil table declares nothing.
	be.Equal(t, TypeOf(mixed, nil), Int)
}

func TestResolveTypesAllInt(t *testing.T) {
	stmt := resolveInput(t, "Z = 2 * y + 3", TypeTable{})
	be.Equal(t, ToSExpr(stmt), `(assign (ident "id1" "Z") (binary "+" (binary "*" (number "2") (ident "id2" "y")) (number "3")))`)
}

func TestResolveTypesPropagatesToLeaves(t *testing.T) {
	stmt := resolveInput(t, "Z = 2 * y + 2.9 * X", TypeTable{"y": Int, "X": Float})

	sum := stmt.Value.(*BinaryOp)
	product := sum.Left.(*BinaryOp)
	be.Equal(t, product.Left.(*NumberLiteral).Coercion, IntToFloat)
	be.Equal(t, product.Right.(*Identifier).Coercion, IntToFloat)

	floatProduct := sum.Right.(*BinaryOp)
	be.Equal(t, floatProduct.Left.(*NumberLiteral).Coercion, NoCoercion)
	be.Equal(t, floatProduct.Right.(*Identifier).Coercion, NoCoercion)

	// Z is int and the right-hand side is float, so the target is marked too.
	be.Equal(t, stmt.Target.Coercion, IntToFloat)
}

func TestResolveTypesFloatTarget(t *testing.T) {
	stmt := resolveInput(t, "Z = a + 1", TypeTable{"Z": Float})

	be.Equal(t, ToSExpr(stmt), `(assign (ident "id1" "Z") (binary "+" (int-to-float (ident "id2" "a")) (int-to-float (number "1"))))`)
}

func TestResolveTypesSkipsFloatLiterals(t *testing.T) {
	// 1.5 is written as a float and keeps its text.
	stmt := resolveInput(t, "Z = (1 + 1.5) * (2 - 3)", TypeTable{"Z": Float})

	be.Equal(t, ToSExpr(stmt.Value), `(binary "*" (binary "+" (int-to-float (number "1")) (number "1.5")) (binary "-" (int-to-float (number "2")) (int-to-float (number "3"))))`)
}

func TestResolveTypesMarksInnerMismatch(t *testing.T) {
	// The inner + widens a, which makes the left operand of * float, so b
	// is widened too.
	stmt := resolveInput(t, "Z = (a + 0.5) * b", TypeTable{"Z": Float})

	be.Equal(t, ToSExpr(stmt.Value), `(binary "*" (binary "+" (int-to-float (ident "id2" "a")) (number "0.5")) (int-to-float (ident "id3" "b")))`)
}

func TestResolveTypesIsIdempotent(t *testing.T) {
	types := TypeTable{"y": Int, "X": Float}
	once := resolveInput(t, "Z = 2 * y + 2.9 * X - (k / 4)", types)
	twice := resolveInput(t, "Z = 2 * y + 2.9 * X - (k / 4)", types)
	ResolveTypes(twice, types)

	if diff := deep.Equal(once, twice); diff != nil {
		t.Error(diff)
	}
}

func TestResolveTypesLeavesSyntaxTreeAlone(t *testing.T) {
	tokens, _, err := Lex("Z = y + X")
	be.Err(t, err, nil)

	syntax, err := Parse(tokens)
	be.Err(t, err, nil)
	semantic, err := Parse(tokens)
	be.Err(t, err, nil)

	ResolveTypes(semantic, TypeTable{"X": Float})

	be.Equal(t, ToSExpr(syntax), `(assign (ident "id1" "Z") (binary "+" (ident "id2" "y") (ident "id3" "X")))`)
	be.Equal(t, ToSExpr(semantic), `(assign (int-to-float (ident "id1" "Z")) (binary "+" (int-to-float (ident "id2" "y")) (ident "id3" "X")))`)
}

func TestFormatTree(t *testing.T) {
	types := TypeTable{"X": Float}
	stmt := resolveInput(t, "Z = 2 * y + 2.9 * X", types)

	expected := `=
  id1 (float)
  +
    *
      2.0
      id2 (float)
    *
      2.9
      id3 (float)
`
	be.Equal(t, FormatTree(stmt, types), expected)

	plain := parseInput(t, "Z = 2 * y + 2.9 * X")
	expectedPlain := `=
  id1
  +
    *
      2
      id2
    *
      2.9
      id3
`
	be.Equal(t, FormatTree(plain, nil), expectedPlain)
}

func TestCoercionString(t *testing.T) {
	be.Equal(t, NoCoercion.String(), "none")
	be.Equal(t, IntToFloat.String(), "int-to-float")
	be.Equal(t, Coercion(7).String(), "Coercion(7)")
}
