package main

// TypeOf infers the type of a subtree. A coerced leaf is float; a number
// is float when written with a decimal point; an identifier has its declared
// type; a binary or assignment node is float when either side is.
func TypeOf(node Node, types TypeTable) Type {
	switch n := node.(type) {
	case *NumberLiteral:
		if n.Coercion == IntToFloat || n.IsFloatLiteral() {
			return Float
		}
		return Int
	case *Identifier:
		if n.Coercion == IntToFloat {
			return Float
		}
		return types.Lookup(n.Original)
	case *BinaryOp:
		return widest(TypeOf(n.Left, types), TypeOf(n.Right, types))
	case *Assignment:
		return widest(TypeOf(n.Target, types), TypeOf(n.Value, types))
	default:
		panic("semantic: unexpected node type")
	}
}

func widest(a, b Type) Type {
	if a == Float || b == Float {
		return Float
	}
	return Int
}

// ResolveTypes marks, bottom-up, the leaves that must be widened from int to
// float. Wherever the two operands of a binary or assignment node disagree,
// every int leaf beneath the int-typed side is marked. Running it again on
// an already resolved tree changes nothing.
func ResolveTypes(node Node, types TypeTable) {
	switch n := node.(type) {
	case *Assignment:
		ResolveTypes(n.Target, types)
		ResolveTypes(n.Value, types)
		unify(n.Target, n.Value, types)
	case *BinaryOp:
		ResolveTypes(n.Left, types)
		ResolveTypes(n.Right, types)
		unify(n.Left, n.Right, types)
	}
}

func unify(left, right Node, types TypeTable) {
	leftType := TypeOf(left, types)
	rightType := TypeOf(right, types)
	if leftType == rightType {
		return
	}
	if leftType == Int {
		markForCoercion(left)
	}
	if rightType == Int {
		markForCoercion(right)
	}
}

// markForCoercion marks every leaf under node except literals already
// written as floats.
func markForCoercion(node Node) {
	switch n := node.(type) {
	case *Identifier:
		n.Coercion = IntToFloat
	case *NumberLiteral:
		if !n.IsFloatLiteral() {
			n.Coercion = IntToFloat
		}
	case *BinaryOp:
		markForCoercion(n.Left)
		markForCoercion(n.Right)
	case *Assignment:
		markForCoercion(n.Target)
		markForCoercion(n.Value)
	}
}
