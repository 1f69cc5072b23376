package main

import (
	"sort"
	"strconv"
	"strings"
)

// InstrKind selects the shape of an Instruction.
type InstrKind int

const (
	Copy    InstrKind = iota // dest = left
	Convert                  // dest = float(left)
	Binary                   // dest = left op right
)

// Instruction is one line of three-address code.
type Instruction struct {
	Kind  InstrKind
	Dest  string
	Left  string
	Op    string
	Right string
	// Type is the type of the value written to Dest.
	Type Type
}

func (in Instruction) String() string {
	switch in.Kind {
	case Convert:
		return in.Dest + " = float(" + in.Left + ")"
	case Binary:
		return in.Dest + " = " + in.Left + " " + in.Op + " " + in.Right
	default:
		return in.Dest + " = " + in.Left
	}
}

// TypedString is String followed by the type of the written value.
func (in Instruction) TypedString() string {
	return in.String() + "  : " + in.Type.String()
}

// FormatCode renders instructions one per line.
func FormatCode(code []Instruction) string {
	var sb strings.Builder
	for _, in := range code {
		sb.WriteString(in.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// conversionKey identifies a coerced source value: an identifier by its
// spelling or a number by its literal text.
type conversionKey struct {
	leaf  string
	value string
}

type conversion struct {
	seq   int
	instr Instruction
}

type codeGenerator struct {
	types       TypeTable
	temps       int
	conversions map[conversionKey]*conversion
	code        []Instruction
}

// GenerateCode emits three-address code for an annotated statement.
//
// Conversions of coerced leaves come first, one per distinct identifier
// spelling or literal, in the order their temporaries were allocated. The
// operators follow in evaluation order, each into a fresh temporary, and the
// statement ends with the copy into the target. Temporaries are numbered
// temp1, temp2, ... per call.
//
// A tree with a missing operand violates the parser's output contract and
// makes GenerateCode panic.
func GenerateCode(root *Assignment, types TypeTable) []Instruction {
	if root == nil || root.Target == nil || root.Value == nil {
		panic("codegen: incomplete assignment")
	}
	g := &codeGenerator{
		types:       types,
		conversions: make(map[conversionKey]*conversion),
	}

	// The target is only written, so it never needs a conversion.
	g.collectConversions(root.Value)
	g.emitConversions()

	value := g.emitExpression(root.Value)
	g.emit(Instruction{Kind: Copy, Dest: root.Target.Name, Left: value, Type: TypeOf(root.Value, types)})
	return g.code
}

func (g *codeGenerator) newTemp() string {
	g.temps++
	return "temp" + strconv.Itoa(g.temps)
}

func (g *codeGenerator) emit(in Instruction) {
	g.code = append(g.code, in)
}

func leafKey(node Node) (conversionKey, string) {
	switch n := node.(type) {
	case *Identifier:
		return conversionKey{leaf: "ident", value: n.Original}, n.Name
	case *NumberLiteral:
		return conversionKey{leaf: "number", value: n.Text}, n.Text
	default:
		panic("codegen: conversion of a non-leaf node")
	}
}

func coercionOf(node Node) Coercion {
	switch n := node.(type) {
	case *Identifier:
		return n.Coercion
	case *NumberLiteral:
		return n.Coercion
	default:
		return NoCoercion
	}
}

func (g *codeGenerator) collectConversions(node Node) {
	switch n := node.(type) {
	case *BinaryOp:
		g.collectConversions(n.Left)
		g.collectConversions(n.Right)
	case *Identifier, *NumberLiteral:
		if coercionOf(n) != IntToFloat {
			return
		}
		key, operand := leafKey(n)
		if _, ok := g.conversions[key]; ok {
			return
		}
		g.conversions[key] = &conversion{
			seq:   g.temps + 1,
			instr: Instruction{Kind: Convert, Dest: g.newTemp(), Left: operand, Type: Float},
		}
	case nil:
		panic("codegen: missing operand")
	default:
		panic("codegen: assignment below the root")
	}
}

func (g *codeGenerator) emitConversions() {
	convs := make([]*conversion, 0, len(g.conversions))
	for _, c := range g.conversions {
		convs = append(convs, c)
	}
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].seq < convs[j].seq
	})
	for _, c := range convs {
		g.emit(c.instr)
	}
}

// emitExpression emits the instructions computing node and returns the
// operand holding its value.
func (g *codeGenerator) emitExpression(node Node) string {
	switch n := node.(type) {
	case *BinaryOp:
		left := g.emitExpression(n.Left)
		right := g.emitExpression(n.Right)
		dest := g.newTemp()
		g.emit(Instruction{Kind: Binary, Dest: dest, Left: left, Op: n.Op, Right: right, Type: TypeOf(n, g.types)})
		return dest
	case *Identifier, *NumberLiteral:
		key, operand := leafKey(n)
		if coercionOf(n) != IntToFloat {
			return operand
		}
		c, ok := g.conversions[key]
		if !ok {
			panic("codegen: coerced leaf " + operand + " has no conversion")
		}
		return c.instr.Dest
	case nil:
		panic("codegen: missing operand")
	default:
		panic("codegen: assignment below the root")
	}
}
