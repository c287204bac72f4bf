package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// TestNativeFmt tests the canonical form of each kind of line.
func TestNativeFmt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spacing", "1+2*3", "1 + 2 * 3"},
		{"assignment", "salary*12==yearly", "salary * 12 == yearly"},
		{"redundant parens", "((1+2))*3", "(1 + 2) * 3"},
		{"comment kept", "2*x   # double", "2 * x  # double"},
		{"comment only", "# heading", "# heading"},
		{"blank trimmed", "   ", ""},
		{"call", "sqrt( 16 )", "sqrt(16)"},
		{"parse error unchanged", "1 +", "1 +"},
		{"lex error unchanged", "2 $ 3", "2 $ 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := canonical(tt.in)
			if got != tt.want {
				t.Errorf("canonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNativeFmtRun(t *testing.T) {
	dir := writeFiles(t, map[string]string{"doc.calc": "1+1==two\n\ntwo*(3)\n1 +\n"})

	var out bytes.Buffer

	ctx := WithOutput(context.Background(), &out)
	if err := (&Native{Sources: []string{filepath.Join(dir, "doc.calc")}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if want := "1 + 1 == two\n\ntwo * 3\n1 +\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestASTFmt(t *testing.T) {
	dir := writeFiles(t, map[string]string{"doc.calc": "# totals\n-x + 2 == y\n3 *\n"})

	var out bytes.Buffer

	ctx := WithOutput(context.Background(), &out)
	if err := (&AST{Sources: []string{filepath.Join(dir, "doc.calc")}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	want := []string{
		"2: -x + 2 == y",
		"  assign y",
		"  binary +",
		"    unary -",
		"      var x",
		"    number 2",
	}

	if len(lines) != len(want)+1 {
		t.Fatalf("output:\n%s", out.String())
	}

	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], w)
		}
	}

	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "3: ") {
		t.Errorf("error line = %q, want it numbered 3", last)
	}
}
