package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseType(t *testing.T) {
	typ, err := ParseType("int")
	be.Err(t, err, nil)
	be.Equal(t, typ, Int)

	typ, err = ParseType("float")
	be.Err(t, err, nil)
	be.Equal(t, typ, Float)

	_, err = ParseType("double")
	be.Err(t, err, `unknown type "double" (want int or float)`)

	_, err = ParseType("Float")
	be.Err(t, err)
}

func TestTypeString(t *testing.T) {
	be.Equal(t, Int.String(), "int")
	be.Equal(t, Float.String(), "float")
	be.Equal(t, Type(9).String(), "Type(9)")
}

func TestParseTypeTable(t *testing.T) {
	tests := []struct {
		input    string
		expected TypeTable
	}{
		{"", TypeTable{}},
		{"X=float", TypeTable{"X": Float}},
		{"y=int, X=float", TypeTable{"y": Int, "X": Float}},
		{" y = int ,X=float,", TypeTable{"y": Int, "X": Float}},
		{"a=float,a=int", TypeTable{"a": Int}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			table, err := ParseTypeTable(tt.input)
			be.Err(t, err, nil)
			be.Equal(t, table, tt.expected)
		})
	}
}

func TestParseTypeTableErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"y=double", `type declaration "y=double": unknown type "double"`},
		{"X", `type declaration "X": expected name=type`},
		{"=int", `type declaration "=int": missing name`},
		{"X=float,y", `type declaration "y": expected name=type`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			table, err := ParseTypeTable(tt.input)
			be.Err(t, err, tt.expected)
			be.True(t, table == nil)
		})
	}
}

func TestTypeTableLookup(t *testing.T) {
	table := TypeTable{"X": Float, "y": Int}

	be.Equal(t, table.Lookup("X"), Float)
	be.Equal(t, table.Lookup("y"), Int)
	be.Equal(t, table.Lookup("x"), Int)
	be.Equal(t, TypeTable(nil).Lookup("X"), Int)
}

func TestTypeTableString(t *testing.T) {
	be.Equal(t, TypeTable{}.String(), "")
	be.Equal(t, TypeTable{"y": Int, "X": Float, "b": Float}.String(), "X=float,b=float,y=int")

	table, err := ParseTypeTable(TypeTable{"y": Int, "X": Float}.String())
	be.Err(t, err, nil)
	be.Equal(t, table, TypeTable{"y": Int, "X": Float})
}
