package lang

import (
	"errors"
	"slices"
	"testing"
)

type tokenSpec struct {
	kind TokenKind
	text string
}

func specs(tokens []Token) []tokenSpec {
	out := make([]tokenSpec, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenSpec{tok.Kind, tok.Text}
	}

	return out
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tokenSpec
	}{
		{"empty", "", []tokenSpec{}},
		{"blank", " \t ", []tokenSpec{}},
		{
			"assignment",
			"1500 * 0.2 == tax",
			[]tokenSpec{
				{TokenNumber, "1500"}, {TokenOperator, "*"}, {TokenNumber, "0.2"},
				{TokenAssign, "=="}, {TokenIdentifier, "tax"},
			},
		},
		{
			"no spaces around assignment",
			"2+3==x",
			[]tokenSpec{
				{TokenNumber, "2"}, {TokenOperator, "+"}, {TokenNumber, "3"},
				{TokenAssign, "=="}, {TokenIdentifier, "x"},
			},
		},
		{
			"double star is caret",
			"2**3",
			[]tokenSpec{{TokenNumber, "2"}, {TokenOperator, "^"}, {TokenNumber, "3"}},
		},
		{
			"function name",
			"sqrt(16)",
			[]tokenSpec{
				{TokenFunctionName, "sqrt"}, {TokenLParen, "("},
				{TokenNumber, "16"}, {TokenRParen, ")"},
			},
		},
		{
			"function name before space",
			"sqrt (16)",
			[]tokenSpec{
				{TokenFunctionName, "sqrt"}, {TokenLParen, "("},
				{TokenNumber, "16"}, {TokenRParen, ")"},
			},
		},
		{
			"qualified name",
			"math.pi * r",
			[]tokenSpec{
				{TokenIdentifier, "math.pi"}, {TokenOperator, "*"}, {TokenIdentifier, "r"},
			},
		},
		{
			"numbers",
			".5 5. 1e3 2.5E-4",
			[]tokenSpec{
				{TokenNumber, ".5"}, {TokenNumber, "5."},
				{TokenNumber, "1e3"}, {TokenNumber, "2.5E-4"},
			},
		},
		{
			"exponent without digits",
			"2e",
			[]tokenSpec{{TokenNumber, "2"}, {TokenIdentifier, "e"}},
		},
		{
			"hash comment line",
			"  # a note",
			[]tokenSpec{{TokenComment, "# a note"}},
		},
		{
			"slash comment line",
			"// a note",
			[]tokenSpec{{TokenComment, "// a note"}},
		},
		{
			"trailing comment",
			"1 / 2 // half",
			[]tokenSpec{
				{TokenNumber, "1"}, {TokenOperator, "/"}, {TokenNumber, "2"},
				{TokenComment, "// half"},
			},
		},
		{
			"underscore identifier",
			"_tax2 * 2\r",
			[]tokenSpec{
				{TokenIdentifier, "_tax2"}, {TokenOperator, "*"}, {TokenNumber, "2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.input, err)
			}

			if got := specs(tokens); !slices.Equal(got, tt.want) {
				t.Errorf("Lex(%q)\n got %v\nwant %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLex_Positions(t *testing.T) {
	tokens, err := Lex("ab +\t10")
	if err != nil {
		t.Fatal(err)
	}

	want := []Position{{0, 1}, {3, 4}, {5, 6}}
	for i, tok := range tokens {
		if tok.Pos != want[i] {
			t.Errorf("token %d %v at %+v, want %+v", i, tok, tok.Pos, want[i])
		}
	}
}

func TestLex_DoubleStarSource(t *testing.T) {
	tokens, err := Lex("2 ** 3")
	if err != nil {
		t.Fatal(err)
	}

	if op := tokens[1]; op.Text != "^" || op.Source != "**" {
		t.Errorf("operator = %+v", op)
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		input  string
		column int
	}{
		{"5 $ 3", 3},
		{"x = 3", 3},
		{"1, 2", 2},
		{"€", 1},
		{"π", 1},
		{"café + 1", 4},
		{"5 == café", 9},
		{"a٣", 2},
		{"x\u00a0+ 1", 2},
		{"1\v+ 2", 2},
		{"1 +\f2", 4},
		{"a == b @", 8},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Lex(tt.input)
			if !errors.Is(err, ErrLex) {
				t.Fatalf("Lex(%q) error = %v, want ErrLex", tt.input, err)
			}

			var e *Error
			if !errors.As(err, &e) || e.Pos().Column != tt.column {
				t.Errorf("Lex(%q) error at %+v, want column %d", tt.input, e.Pos(), tt.column)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	for input, want := range map[string]bool{
		"":        true,
		"   ":     true,
		"# x":     true,
		"// y":    true,
		"1 # z":   false,
		"x == y ": false,
	} {
		tokens, err := Lex(input)
		if err != nil {
			t.Fatal(err)
		}

		if got := IsBlank(tokens); got != want {
			t.Errorf("IsBlank(%q) = %v, want %v", input, got, want)
		}
	}
}
