package lang

import (
	"iter"
	"maps"
	"math"
	"slices"
	"strings"
)

// NamespacePrefix may qualify any function or constant name: "math.sqrt"
// and "sqrt" name the same function.
const NamespacePrefix = "math."

// Func is a built-in function of one argument. It reports false when the
// argument lies outside the function's domain.
type Func func(x float64) (float64, bool)

func total(fn func(float64) float64) Func {
	return func(x float64) (float64, bool) { return fn(x), true }
}

func partial(fn func(float64) float64, domain func(float64) bool) Func {
	return func(x float64) (float64, bool) {
		if !domain(x) {
			return 0, false
		}

		return fn(x), true
	}
}

func positive(x float64) bool    { return x > 0 }
func nonNegative(x float64) bool { return x >= 0 }
func unit(x float64) bool        { return -1 <= x && x <= 1 }

var functions = map[string]Func{
	"abs":     total(math.Abs),
	"acos":    partial(math.Acos, unit),
	"asin":    partial(math.Asin, unit),
	"atan":    total(math.Atan),
	"cbrt":    total(math.Cbrt),
	"ceil":    total(math.Ceil),
	"cos":     total(math.Cos),
	"cosh":    total(math.Cosh),
	"degrees": total(func(x float64) float64 { return x * 180 / math.Pi }),
	"exp":     total(math.Exp),
	"floor":   total(math.Floor),
	"ln":      partial(math.Log, positive),
	"log":     partial(math.Log, positive),
	"log10":   partial(math.Log10, positive),
	"log2":    partial(math.Log2, positive),
	"radians": total(func(x float64) float64 { return x * math.Pi / 180 }),
	"round":   total(math.Round),
	"sin":     total(math.Sin),
	"sinh":    total(math.Sinh),
	"sqrt":    partial(math.Sqrt, nonNegative),
	"tan":     total(math.Tan),
	"tanh":    total(math.Tanh),
	"trunc":   total(math.Trunc),
}

var constants = map[string]float64{
	"e":   math.E,
	"pi":  math.Pi,
	"tau": 2 * math.Pi,
}

// LookupFunc returns the built-in function called name, with or without
// [NamespacePrefix]. Names are case-sensitive.
func LookupFunc(name string) (Func, bool) {
	fn, ok := functions[strings.TrimPrefix(name, NamespacePrefix)]

	return fn, ok
}

// LookupConst returns the named constant called name, with or without
// [NamespacePrefix].
func LookupConst(name string) (float64, bool) {
	v, ok := constants[strings.TrimPrefix(name, NamespacePrefix)]

	return v, ok
}

// FuncNames returns the names of all built-in functions in sorted order.
func FuncNames() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(functions)))
}

// ConstNames returns the names of all named constants in sorted order.
func ConstNames() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(constants)))
}
