package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/solvee/lang"
	"github.com/ardnew/solvee/log"
	"github.com/ardnew/solvee/sheet"
)

func TestSessionEval(t *testing.T) {
	s := NewSession(nil, lang.DefaultPrecision, log.Logger{})

	if s.Len() != 0 || s.Text() != "" {
		t.Fatalf("new session: Len() = %d, Text() = %q", s.Len(), s.Text())
	}

	steps := []struct {
		input string
		state sheet.State
		text  string
	}{
		{"5000 == salary", sheet.StateOK, "5000"},
		{"salary * 12", sheet.StateOK, "60000"},
		{"# comment", sheet.StateEmpty, ""},
		{"salary / 0", sheet.StateEvalError, "division by zero"},
		{"bonus", sheet.StateEvalError, "undefined variable: bonus"},
		{"salary * 0.1 == bonus", sheet.StateOK, "500"},
	}

	for _, st := range steps {
		rec := s.Eval(st.input)
		if rec.State != st.state || rec.Text != st.text {
			t.Errorf("Eval(%q) = %v %q, want %v %q", st.input, rec.State, rec.Text, st.state, st.text)
		}
	}

	if s.Len() != len(steps) {
		t.Errorf("Len() = %d, want %d", s.Len(), len(steps))
	}

	if got := s.Variables(); !slices.Equal(got, []string{"salary = 5000", "bonus = 500"}) {
		t.Errorf("Variables() = %q", got)
	}

	names := s.Names()
	for _, want := range []string{"salary", "bonus", "sqrt", "pi"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() lacks %q", want)
		}
	}

	s.Reset()

	if s.Len() != 0 || len(s.Variables()) != 0 {
		t.Errorf("after Reset: Len() = %d, Variables() = %q", s.Len(), s.Variables())
	}
}

func TestSessionSetText(t *testing.T) {
	s := NewSession([]string{"1 == a"}, -1, log.Logger{})

	failed := s.SetText("2 == a\na +\na * 3\n")

	if len(failed) != 1 || failed[0].Index != 1 {
		t.Fatalf("failed = %+v, want line 1 only", failed)
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	if rec := s.Eval("a"); rec.Text != "2" {
		t.Errorf("a = %q, want 2", rec.Text)
	}
}

func TestFormatRecord(t *testing.T) {
	recs := sheet.Evaluate([]string{"2 == x", "x + 1", "1 +", ""}, sheet.WithPrecision(-1))

	want := []string{"x = 2", "3", "error: syntax error at column 4: unexpected end of expression", ""}

	for i, rec := range recs {
		if got := formatRecord(rec, plainRecord); got != want[i] {
			t.Errorf("formatRecord(line %d) = %q, want %q", i, got, want[i])
		}
	}
}
