package pad

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/solvee/sheet"
	"github.com/ardnew/solvee/theme"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	pm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}

	return pm, cmd
}

func TestNewEvaluatesText(t *testing.T) {
	m := New(t.Context(), "", "2 == a\na * 3", theme.Default())

	recs := m.Records()
	if len(recs) != 2 || recs[1].Text != "6" {
		t.Fatalf("Records() = %+v", recs)
	}

	if m.Dirty() {
		t.Error("new pad is dirty")
	}
}

func TestTypingReevaluates(t *testing.T) {
	m := New(t.Context(), "", "", theme.Default())

	for _, r := range "4 * 5" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	if m.Text() != "4 * 5" {
		t.Fatalf("Text() = %q", m.Text())
	}

	if recs := m.Records(); len(recs) != 1 || recs[0].Text != "20" {
		t.Errorf("Records() = %+v", recs)
	}

	if !m.Dirty() {
		t.Error("edited pad is not dirty")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.calc")

	m := New(t.Context(), path, "1 + 1", theme.Default())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s returned no command")
	}

	m, _ = update(t, m, cmd())

	if m.Dirty() {
		t.Error("pad still dirty after save")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(b); got != m.Text()+"\n" {
		t.Errorf("file = %q, want %q", got, m.Text()+"\n")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	m := New(t.Context(), "", "1", theme.Default())

	msg, ok := m.save()().(savedMsg)
	if !ok || !errors.Is(msg.err, ErrSave) {
		t.Fatalf("save() = %+v, want ErrSave", msg)
	}

	m, _ = update(t, m, msg)
	if !strings.Contains(m.View(), "save failed") {
		t.Error("status does not report the failure")
	}
}

func TestQuit(t *testing.T) {
	m := New(t.Context(), "", "", theme.Default())

	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := update(t, m, tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("%v returned no command", key)
		}

		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v did not quit", key)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	text, err := readFile(filepath.Join(dir, "missing.calc"))
	if err != nil || text != "" {
		t.Errorf("missing file: %q, %v", text, err)
	}

	path := filepath.Join(dir, "doc.calc")
	if err := os.WriteFile(path, []byte("1\n2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if text, err = readFile(path); err != nil || text != "1\n2" {
		t.Errorf("readFile = %q, %v", text, err)
	}
}

func TestRenderResults(t *testing.T) {
	recs := sheet.Evaluate([]string{"1 == a", "", "1 / 0", "a + 1"})

	var s Styles

	got := strings.Split(RenderResults(recs, nil, 0, 5, 40, s), "\n")
	want := []string{"1", "", "division by zero", "2", ""}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("RenderResults = %q, want %q", got, want)
	}

	got = strings.Split(RenderResults(recs, nil, 2, 2, 5, s), "\n")
	if len(got) != 2 || got[0] != "divi…" || got[1] != "2" {
		t.Errorf("scrolled and truncated = %q", got)
	}
}

func TestRenderResultsWrapped(t *testing.T) {
	recs := sheet.Evaluate([]string{"1 == a", "a + 1", "a + 2"})

	var s Styles

	got := strings.Split(RenderResults(recs, []int{1, 3, 1}, 0, 6, 40, s), "\n")
	want := []string{"1", "2", "", "", "3", ""}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("RenderResults = %q, want %q", got, want)
	}

	got = strings.Split(RenderResults(recs, []int{1, 3, 1}, 2, 3, 40, s), "\n")
	want = []string{"", "", "3"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("scrolled into a wrapped line = %q, want %q", got, want)
	}
}

func TestWrappedRows(t *testing.T) {
	tests := []struct {
		line  string
		width int
		want  int
	}{
		{"", 10, 1},
		{"1 + 2", 10, 1},
		{"123456789", 10, 1},
		{"1234567890", 10, 2},
		{"aaaa bbbb cccc", 10, 2},
		{"aaaa bbbb cc dd ee", 10, 2},
		{strings.Repeat("a", 25), 10, 3},
		{"x y", 0, 1},
	}

	for _, tt := range tests {
		if got := WrappedRows(tt.line, tt.width); got != tt.want {
			t.Errorf("WrappedRows(%q, %d) = %d, want %d", tt.line, tt.width, got, tt.want)
		}
	}
}

func TestViewAlignsWrappedLines(t *testing.T) {
	first := "1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 == total"

	m := New(t.Context(), "", first+"\ntotal * 2", theme.Default())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})

	wrapped := WrappedRows(first, m.editor.Width())
	if wrapped < 2 {
		t.Fatalf("first line fits on one row of width %d", m.editor.Width())
	}

	rows := strings.Split(m.View(), "\n")

	for at, want := range map[int]string{0: "12", wrapped: "24"} {
		if got := strings.TrimRight(rows[at], " "); !strings.HasSuffix(got, want) {
			t.Errorf("row %d = %q, want result %q", at, got, want)
		}
	}

	for at := 1; at < wrapped; at++ {
		if got := strings.TrimRight(rows[at], " "); strings.HasSuffix(got, "24") {
			t.Errorf("row %d = %q, result shown on a wrapped row", at, got)
		}
	}
}
