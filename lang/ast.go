package lang

import (
	"slices"
	"strconv"
	"strings"
)

// Expr is a node of an expression tree.
//
// The concrete types are [*NumberLit], [*VarRef], [*UnaryExpr],
// [*BinaryExpr] and [*CallExpr]. String renders the node in a canonical form
// that parses back to an equivalent tree.
type Expr interface {
	Pos() Position
	String() string
	expr()
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Text  string
	Value float64
	At    Position
}

// VarRef reads a variable or a named constant.
type VarRef struct {
	Name string
	At   Position
}

// UnaryExpr applies a prefix operator ("-" or "+").
type UnaryExpr struct {
	Operand Expr
	Op      string
	At      Position
}

// BinaryExpr applies an infix operator ("+", "-", "*", "/" or "^").
type BinaryExpr struct {
	Left  Expr
	Right Expr
	Op    string
	At    Position
}

// CallExpr applies a named function to one argument.
type CallExpr struct {
	Arg  Expr
	Name string
	At   Position
}

func (n *NumberLit) Pos() Position  { return n.At }
func (n *VarRef) Pos() Position     { return n.At }
func (n *UnaryExpr) Pos() Position  { return n.At }
func (n *BinaryExpr) Pos() Position { return n.At }
func (n *CallExpr) Pos() Position   { return n.At }

func (*NumberLit) expr()  {}
func (*VarRef) expr()     {}
func (*UnaryExpr) expr()  {}
func (*BinaryExpr) expr() {}
func (*CallExpr) expr()   {}

// Binding strength, loosest first.
const (
	precAdditive = iota + 1
	precMultiplicative
	precPower
	precUnary
	precPrimary
)

func binaryPrec(op string) int {
	switch op {
	case "+", "-":
		return precAdditive
	case "*", "/":
		return precMultiplicative
	default:
		return precPower
	}
}

func precOf(e Expr) int {
	switch n := e.(type) {
	case *BinaryExpr:
		return binaryPrec(n.Op)
	case *UnaryExpr:
		return precUnary
	default:
		return precPrimary
	}
}

func group(e Expr, paren bool) string {
	if paren {
		return "(" + e.String() + ")"
	}

	return e.String()
}

func (n *NumberLit) String() string {
	if n.Text != "" {
		return n.Text
	}

	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *VarRef) String() string { return n.Name }

func (n *UnaryExpr) String() string {
	return n.Op + group(n.Operand, precOf(n.Operand) < precUnary)
}

func (n *BinaryExpr) String() string {
	p := binaryPrec(n.Op)
	lp, rp := precOf(n.Left), precOf(n.Right)

	// "^" groups to the right, every other operator to the left.
	var left, right bool
	if p == precPower {
		left, right = lp <= p, rp < p
	} else {
		left, right = lp < p, rp <= p
	}

	return group(n.Left, left) + " " + n.Op + " " + group(n.Right, right)
}

func (n *CallExpr) String() string {
	return n.Name + "(" + n.Arg.String() + ")"
}

// Program is one parsed line: an expression and an optional assignment
// target.
type Program struct {
	Expr   Expr
	Target string
	// Names lists the variables Expr reads, sorted and without duplicates.
	Names []string
}

func (p *Program) String() string {
	if p.Target == "" {
		return p.Expr.String()
	}

	return p.Expr.String() + " == " + p.Target
}

// Walk calls fn for e and each of its descendants in depth-first order.
func Walk(e Expr, fn func(Expr)) {
	fn(e)

	switch n := e.(type) {
	case *UnaryExpr:
		Walk(n.Operand, fn)
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *CallExpr:
		Walk(n.Arg, fn)
	}
}

func referencedNames(e Expr) []string {
	var names []string

	Walk(e, func(e Expr) {
		if v, ok := e.(*VarRef); ok {
			names = append(names, v.Name)
		}
	})

	slices.Sort(names)

	return slices.Compact(names)
}

// Tree renders the structure of e as an indented outline, one node per
// line.
func Tree(e Expr) string {
	var sb strings.Builder

	writeTree(&sb, e, 0)

	return sb.String()
}

func writeTree(sb *strings.Builder, e Expr, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))

	switch n := e.(type) {
	case *NumberLit:
		sb.WriteString("number " + n.String())
	case *VarRef:
		sb.WriteString("var " + n.Name)
	case *UnaryExpr:
		sb.WriteString("unary " + n.Op)
	case *BinaryExpr:
		sb.WriteString("binary " + n.Op)
	case *CallExpr:
		sb.WriteString("call " + n.Name)
	}

	sb.WriteByte('\n')

	switch n := e.(type) {
	case *UnaryExpr:
		writeTree(sb, n.Operand, depth+1)
	case *BinaryExpr:
		writeTree(sb, n.Left, depth+1)
		writeTree(sb, n.Right, depth+1)
	case *CallExpr:
		writeTree(sb, n.Arg, depth+1)
	}
}
