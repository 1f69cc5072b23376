package main

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the static type of a value.
type Type int

const (
	Int Type = iota
	Float
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType converts "int" or "float" to a Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	default:
		return Int, fmt.Errorf("unknown type %q (want int or float)", name)
	}
}

// TypeTable maps identifier source spellings to their declared types.
// Identifiers missing from the table are int.
type TypeTable map[string]Type

// Lookup returns the declared type of an identifier spelling.
func (tt TypeTable) Lookup(original string) Type {
	if t, ok := tt[original]; ok {
		return t
	}
	return Int
}

// String renders the table sorted by name, e.g. "X=float,y=int", the same
// form ParseTypeTable accepts.
func (tt TypeTable) String() string {
	names := make([]string, 0, len(tt))
	for name := range tt {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + tt[name].String()
	}
	return strings.Join(parts, ",")
}

// ParseTypeTable parses comma-separated name=type pairs such as
// "y=int, X=float". An empty string yields an empty table.
func ParseTypeTable(s string) (TypeTable, error) {
	tt := TypeTable{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, typeName, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("type declaration %q: expected name=type", pair)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("type declaration %q: missing name", pair)
		}
		t, err := ParseType(strings.TrimSpace(typeName))
		if err != nil {
			return nil, fmt.Errorf("type declaration %q: %w", pair, err)
		}
		tt[name] = t
	}
	return tt, nil
}
