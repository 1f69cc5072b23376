package main

import (
	"strconv"
	"strings"
)

// Coercion records an implicit conversion applied to a leaf's value.
type Coercion int

const (
	NoCoercion Coercion = iota
	IntToFloat
)

func (c Coercion) String() string {
	switch c {
	case NoCoercion:
		return "none"
	case IntToFloat:
		return "int-to-float"
	default:
		return "Coercion(" + strconv.Itoa(int(c)) + ")"
	}
}

// Node is one of *Assignment, *BinaryOp, *Identifier or *NumberLiteral.
//
// Every node exclusively owns its children. After parsing, the only field
// that may change is the Coercion of a leaf.
type Node interface {
	node()
}

// Assignment is the root of every statement.
type Assignment struct {
	Target *Identifier
	Value  Node
}

// BinaryOp is one of + - * / applied to two operands.
type BinaryOp struct {
	Op    string
	Left  Node
	Right Node
}

type Identifier struct {
	// Name is the canonical name assigned by the lexer.
	Name string
	// Original is the source spelling; types are looked up by it.
	Original string
	Coercion Coercion
}

type NumberLiteral struct {
	Text     string
	Coercion Coercion
}

func (*Assignment) node()    {}
func (*BinaryOp) node()      {}
func (*Identifier) node()    {}
func (*NumberLiteral) node() {}

// IsFloatLiteral reports whether the literal is written with a decimal point.
func (n *NumberLiteral) IsFloatLiteral() bool {
	return strings.Contains(n.Text, ".")
}

// ToSExpr converts a tree to its s-expression representation. Coerced
// leaves are wrapped in (int-to-float ...).
func ToSExpr(node Node) string {
	switch n := node.(type) {
	case *Assignment:
		return "(assign " + ToSExpr(n.Target) + " " + ToSExpr(n.Value) + ")"
	case *BinaryOp:
		return "(binary " + quote(n.Op) + " " + ToSExpr(n.Left) + " " + ToSExpr(n.Right) + ")"
	case *Identifier:
		return wrapCoercion(n.Coercion, "(ident "+quote(n.Name)+" "+quote(n.Original)+")")
	case *NumberLiteral:
		return wrapCoercion(n.Coercion, "(number "+quote(n.Text)+")")
	default:
		return ""
	}
}

func wrapCoercion(c Coercion, s string) string {
	if c == NoCoercion {
		return s
	}
	return "(" + c.String() + " " + s + ")"
}

// FormatTree renders a tree as an indented outline, one node per line.
// Identifiers whose type is float are suffixed with " (float)" and coerced
// numbers are shown in their widened form. Pass a nil table for a purely
// structural view.
func FormatTree(node Node, types TypeTable) string {
	var sb strings.Builder
	formatTree(&sb, node, types, 0)
	return sb.String()
}

func formatTree(sb *strings.Builder, node Node, types TypeTable, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch n := node.(type) {
	case *Assignment:
		sb.WriteString("=\n")
		formatTree(sb, n.Target, types, depth+1)
		formatTree(sb, n.Value, types, depth+1)
	case *BinaryOp:
		sb.WriteString(n.Op + "\n")
		formatTree(sb, n.Left, types, depth+1)
		formatTree(sb, n.Right, types, depth+1)
	case *Identifier:
		sb.WriteString(n.Name)
		if types != nil && TypeOf(n, types) == Float {
			sb.WriteString(" (float)")
		}
		sb.WriteString("\n")
	case *NumberLiteral:
		sb.WriteString(widenedLiteral(n) + "\n")
	}
}

func widenedLiteral(n *NumberLiteral) string {
	if n.Coercion != IntToFloat {
		return n.Text
	}
	v, err := strconv.ParseFloat(n.Text, 64)
	if err != nil {
		return n.Text
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
