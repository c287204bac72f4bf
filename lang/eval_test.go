package lang

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/expr-lang/expr"
)

func eval(t *testing.T, input string, env *Env) (float64, error) {
	t.Helper()

	prog, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}

	return prog.Run(env)
}

func TestEval(t *testing.T) {
	env := NewEnv()
	env.Set("salary", 1500)
	env.Set("tax", 300)
	env.Set("Rate", 0.5)

	tests := []struct {
		input string
		want  float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"7 / 2", 3.5},
		{"2 ^ 10", 1024},
		{"2 ** 10", 1024},
		{"2 ^ 3 ^ 2", 512},
		{"-2 ^ 2", 4},
		{"-(2 ^ 2)", -4},
		{"2 ^ -1", 0.5},
		{"(-8) ^ 3", -512},
		{"(-2) ^ 0.0", 1},
		{"0 ^ 0", 1},
		{"--3", 3},
		{"+3", 3},
		{"salary - tax", 1200},
		{"salary * Rate", 750},
		{"sqrt(16)", 4},
		{"math.sqrt(16)", 4},
		{"abs(-2.5)", 2.5},
		{"floor(2.7) + ceil(2.1)", 5},
		{"round(2.5)", 3},
		{"log10(1000)", 3},
		{"log2(8)", 3},
		{"ln(e)", 1},
		{"cbrt(27)", 3},
		{"degrees(pi)", 180},
		{"tau / 2 - math.pi", 0},
		{"1e3 / .5", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := eval(t, tt.input, env)
			if err != nil {
				t.Fatalf("error: %v", err)
			}

			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("= %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEval_MatchesExprLang(t *testing.T) {
	vars := map[string]any{"x": 3.0, "y": 4.5, "z": -2.0}

	env := NewEnv()
	for _, name := range []string{"x", "y", "z"} {
		env.Set(name, vars[name].(float64))
	}

	inputs := []string{
		"1 + 2 * 3",
		"(1 + 2) * 3 / 4",
		"10 - 4 - 3",
		"100 / 8 / 5",
		"1.5 * 4 - 0.25",
		"x * y + x",
		"(x - y) * (x + y) / z",
		"x ^ 2 + y ^ 2",
		"-x + y * -z",
		"2 ^ 0.5 * x",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			out, err := expr.Eval(input, vars)
			if err != nil {
				t.Fatalf("expr.Eval: %v", err)
			}

			var want float64

			switch v := out.(type) {
			case int:
				want = float64(v)
			case float64:
				want = v
			default:
				t.Fatalf("expr.Eval returned %T", out)
			}

			got, err := eval(t, input, env)
			if err != nil {
				t.Fatalf("error: %v", err)
			}

			if math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
				t.Errorf("= %v, expr-lang says %v", got, want)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	env := NewEnv()
	env.Set("zero", 0)

	tests := []struct {
		input string
		want  *Error
		text  string
	}{
		{"10 / 0", ErrDivideByZero, "division by zero"},
		{"1 / zero", ErrDivideByZero, "division by zero"},
		{"1 / (2 - 2)", ErrDivideByZero, "division by zero"},
		{"0 ^ -1", ErrDivideByZero, "division by zero: zero raised to a negative power"},
		{"sqrt(-1)", ErrDomain, "domain error: sqrt(-1)"},
		{"ln(0)", ErrDomain, "domain error: ln(0)"},
		{"asin(2)", ErrDomain, "domain error: asin(2)"},
		{"(-8) ^ 0.5", ErrDomain, "domain error: negative base -8 with fractional exponent 0.5"},
		{"exp(1000)", ErrDomain, "domain error: exp(1000)"},
		{"10 ^ 400", ErrOverflow, "numeric overflow"},
		{"1e300 * 1e300", ErrOverflow, "numeric overflow"},
		{"foo + 1", ErrUndefinedVariable, "undefined variable: foo"},
		{"Zero", ErrUndefinedVariable, "undefined variable: Zero"},
		{"math.zero", ErrUndefinedVariable, "undefined variable: math.zero"},
		{"foo(3)", ErrUnknownFunction, "unknown function: foo"},
		{"Sqrt(4)", ErrUnknownFunction, "unknown function: Sqrt"},
		{"os.sqrt(4)", ErrUnknownFunction, "unknown function: os.sqrt"},
		{"sqrt(nope)", ErrUndefinedVariable, "undefined variable: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := eval(t, tt.input, env)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			if !KindOf(err).IsEval() {
				t.Errorf("kind %v is not an evaluation kind", KindOf(err))
			}

			if !strings.HasPrefix(err.Error(), tt.text) {
				t.Errorf("text = %q, want prefix %q", err.Error(), tt.text)
			}
		})
	}
}

func TestEval_ScopeShadowsConstants(t *testing.T) {
	env := NewEnv()
	env.Set("pi", 3)

	got, err := eval(t, "pi", env)
	if err != nil || got != 3 {
		t.Errorf("pi = %v, %v; want 3 from scope", got, err)
	}

	got, err = eval(t, "math.pi", env)
	if err != nil || got != math.Pi {
		t.Errorf("math.pi = %v, %v; want the constant", got, err)
	}
}

func TestEval_NilScope(t *testing.T) {
	prog, err := Parse("2 * pi")
	if err != nil {
		t.Fatal(err)
	}

	if got, err := prog.Run(nil); err != nil || got != 2*math.Pi {
		t.Errorf("= %v, %v", got, err)
	}
}

func TestEval_DoesNotMutateScope(t *testing.T) {
	env := NewEnv()
	env.Set("a", 1)

	if _, err := eval(t, "a + 1 == a", env); err != nil {
		t.Fatal(err)
	}

	if v, _ := env.Get("a"); v != 1 || env.Len() != 1 {
		t.Errorf("scope changed: a = %v, len %d", v, env.Len())
	}
}
