package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func runEval(t *testing.T, e Eval) (string, error) {
	t.Helper()

	var out bytes.Buffer

	err := e.Run(WithOutput(context.Background(), &out))

	return out.String(), err
}

const payroll = "5000 == salary\nsalary * 12  # yearly\n\nbonus + 1\n"

// TestEvalText tests the aligned two-column output.
func TestEvalText(t *testing.T) {
	dir := writeFiles(t, map[string]string{"pay.calc": payroll})

	got, err := runEval(t, Eval{
		Sources:   []string{filepath.Join(dir, "pay.calc")},
		Format:    "text",
		Precision: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"5000 == salary         │ 5000",
		"salary * 12  # yearly  │ 60000",
		"",
		"bonus + 1              │ undefined variable: bonus",
		"",
	}, "\n")

	if got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

// TestEvalEncoded tests the JSON and YAML encodings.
func TestEvalEncoded(t *testing.T) {
	dir := writeFiles(t, map[string]string{"pay.calc": payroll})

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			got, err := runEval(t, Eval{
				Sources:   []string{filepath.Join(dir, "pay.calc")},
				Format:    format,
				Indent:    2,
				Precision: 10,
			})
			if err != nil {
				t.Fatal(err)
			}

			var recs []map[string]any
			if format == "json" {
				err = json.Unmarshal([]byte(got), &recs)
			} else {
				err = yaml.Unmarshal([]byte(got), &recs)
			}

			if err != nil {
				t.Fatalf("decoding %s: %v\n%s", format, err, got)
			}

			if len(recs) != 4 {
				t.Fatalf("got %d records, want 4", len(recs))
			}

			if recs[0]["target"] != "salary" || recs[1]["text"] != "60000" {
				t.Errorf("records = %v", recs[:2])
			}

			if recs[2]["state"] != "empty" || recs[3]["state"] != "eval-error" {
				t.Errorf("states = %v, %v", recs[2]["state"], recs[3]["state"])
			}
		})
	}
}

// TestEvalStrict tests that --strict fails with every line error.
func TestEvalStrict(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.calc": "1 / 0\n2 +\n3\n"})
	path := filepath.Join(dir, "bad.calc")

	if _, err := runEval(t, Eval{Sources: []string{path}, Format: "text"}); err != nil {
		t.Fatalf("without --strict: %v", err)
	}

	_, err := runEval(t, Eval{Sources: []string{path}, Format: "text", Strict: true})
	if !errors.Is(err, ErrFailedLines) {
		t.Fatalf("err = %v, want ErrFailedLines", err)
	}

	for _, want := range []string{"line 1: division by zero", "line 2: "} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not contain %q", err, want)
		}
	}

	if strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q names a line that succeeded", err)
	}
}

func TestEvalBadFormat(t *testing.T) {
	if _, err := runEval(t, Eval{Format: "xml"}); !errors.Is(err, ErrEncode) {
		t.Errorf("err = %v, want ErrEncode", err)
	}
}

func TestEvalPrecision(t *testing.T) {
	dir := writeFiles(t, map[string]string{"pi.calc": "1 / 3\n"})

	got, err := runEval(t, Eval{
		Sources:   []string{filepath.Join(dir, "pi.calc")},
		Format:    "text",
		Precision: 3,
	})
	if err != nil {
		t.Fatal(err)
	}

	if got != "1 / 3  │ 0.333\n" {
		t.Errorf("output = %q", got)
	}
}
