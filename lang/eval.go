package lang

import (
	"math"
	"strconv"
)

// Eval evaluates e, resolving variables first in scope and then among the
// named constants ("pi", "e", "tau").
//
// The result is always finite. Failures are [*Error] values of kind
// [KindDivideByZero], [KindDomain], [KindOverflow],
// [KindUndefinedVariable] or [KindUnknownFunction], located at the node
// that failed. Eval never modifies scope.
func Eval(e Expr, scope Scope) (float64, error) {
	switch n := e.(type) {
	case *NumberLit:
		return n.Value, nil

	case *VarRef:
		return resolve(n, scope)

	case *UnaryExpr:
		v, err := Eval(n.Operand, scope)
		if err != nil {
			return 0, err
		}

		if n.Op == "-" {
			return -v, nil
		}

		return v, nil

	case *BinaryExpr:
		return evalBinary(n, scope)

	case *CallExpr:
		return evalCall(n, scope)

	default:
		return 0, ErrParse.WithDetail("unsupported expression")
	}
}

// Run evaluates p against scope.
func (p *Program) Run(scope Scope) (float64, error) {
	return Eval(p.Expr, scope)
}

func resolve(n *VarRef, scope Scope) (float64, error) {
	if scope != nil {
		if v, ok := scope.Lookup(n.Name); ok {
			return v, nil
		}
	}

	if v, ok := LookupConst(n.Name); ok {
		return v, nil
	}

	return 0, ErrUndefinedVariable.WithPosition(n.At).WithDetail(n.Name)
}

func evalBinary(n *BinaryExpr, scope Scope) (float64, error) {
	x, err := Eval(n.Left, scope)
	if err != nil {
		return 0, err
	}

	y, err := Eval(n.Right, scope)
	if err != nil {
		return 0, err
	}

	var z float64

	switch n.Op {
	case "+":
		z = x + y
	case "-":
		z = x - y
	case "*":
		z = x * y

	case "/":
		if y == 0 {
			return 0, ErrDivideByZero.WithPosition(n.At)
		}

		z = x / y

	case "^":
		if x == 0 && y < 0 {
			return 0, ErrDivideByZero.WithPosition(n.At).
				WithDetail("zero raised to a negative power")
		}

		if x < 0 && y != math.Trunc(y) {
			return 0, ErrDomain.WithPosition(n.At).
				WithDetail("negative base " + formatOperand(x) +
					" with fractional exponent " + formatOperand(y))
		}

		z = math.Pow(x, y)

	default:
		return 0, ErrParse.WithPosition(n.At).WithDetail("unknown operator " + n.Op)
	}

	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, ErrOverflow.WithPosition(n.At).
			WithDetail(formatOperand(x) + " " + n.Op + " " + formatOperand(y))
	}

	return z, nil
}

func evalCall(n *CallExpr, scope Scope) (float64, error) {
	fn, ok := LookupFunc(n.Name)
	if !ok {
		return 0, ErrUnknownFunction.WithPosition(n.At).WithDetail(n.Name)
	}

	x, err := Eval(n.Arg, scope)
	if err != nil {
		return 0, err
	}

	z, ok := fn(x)
	if !ok || math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, ErrDomain.WithPosition(n.At).
			WithDetail(n.Name + "(" + formatOperand(x) + ")")
	}

	return z, nil
}

func formatOperand(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
