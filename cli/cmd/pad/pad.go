// Package pad implements a two-pane editor: the document on the left and the
// result of every line on the right, refreshed on every keystroke.
package pad

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/solvee/lang"
	"github.com/ardnew/solvee/log"
	"github.com/ardnew/solvee/sheet"
	"github.com/ardnew/solvee/theme"
)

// ErrSave is returned when the document cannot be written.
var ErrSave = lang.NewError(lang.KindNone, "save failed")

const (
	defaultWidth  = 100
	defaultHeight = 24
	resultsShare  = 3 // results pane gets 1/resultsShare of the width
	fileMode      = 0o644
)

type savedMsg struct {
	path string
	err  error
}

// Styles colours the panes.
type Styles struct {
	Text, Variable, Result, Error, Placeholder lipgloss.Style
}

// NewStyles returns the styles of t.
func NewStyles(t theme.Theme) Styles {
	return Styles{
		Text:        t.Style("text_color"),
		Variable:    t.Style("variable_color"),
		Result:      t.Style("result_color"),
		Error:       t.Style("error_color"),
		Placeholder: t.Style("placeholder_color"),
	}
}

// Model is the Bubble Tea model of the pad.
type Model struct {
	ctx     context.Context //nolint:containedctx
	logger  log.Logger
	doc     *sheet.Document
	records []sheet.Record
	editor  textarea.Model
	styles  Styles
	path    string
	status  string
	top     int
	width   int
	height  int
	dirty   bool
}

// New returns a pad editing text, saved to path on ctrl+s. An empty path
// disables saving.
func New(ctx context.Context, path, text string, th theme.Theme, opts ...sheet.Option) Model {
	ed := textarea.New()
	ed.Prompt = ""
	ed.Placeholder = "1 + 2 == x"
	ed.ShowLineNumbers = true
	ed.CharLimit = 0
	ed.MaxHeight = 0

	s := NewStyles(th)
	ed.FocusedStyle.Text = s.Text
	ed.FocusedStyle.Placeholder = s.Placeholder
	ed.FocusedStyle.LineNumber = s.Placeholder
	ed.BlurredStyle = ed.FocusedStyle

	ed.SetValue(text)
	ed.Focus()

	m := Model{
		ctx:    ctx,
		logger: log.Default(),
		doc:    sheet.New(opts...),
		editor: ed,
		styles: s,
		path:   path,
	}

	m.resize(defaultWidth, defaultHeight)
	m.records = m.doc.SetText(ed.Value())

	return m
}

// Run opens path in the pad and blocks until the user quits. A path that
// does not exist yet starts an empty document.
func Run(ctx context.Context, path string, th theme.Theme, opts ...sheet.Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	text, err := readFile(path)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "pad start", slog.String("path", path), slog.Any("theme", th))

	p := tea.NewProgram(New(ctx, path, text, th, opts...),
		tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()

	return err
}

func readFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(string(b), "\n"), nil
}

// Text returns the document being edited.
func (m Model) Text() string { return m.editor.Value() }

// Records returns the results of the last pass.
func (m Model) Records() []sheet.Record { return m.records }

// Dirty reports whether there are unsaved edits.
func (m Model) Dirty() bool { return m.dirty }

func (m Model) Init() tea.Cmd { return textarea.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.logger.WarnContext(m.ctx, "pad save failed", slog.Any("error", msg.err))

			return m, nil
		}

		m.dirty = false
		m.status = "saved " + msg.path

		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlS:
			return m, m.save()
		}
	}

	before := m.editor.Value()

	var cmd tea.Cmd

	m.editor, cmd = m.editor.Update(msg)

	if text := m.editor.Value(); text != before {
		m.records = m.doc.SetText(text)
		m.dirty = true
		m.status = ""
	}

	m.follow()

	return m, cmd
}

// save returns a command writing the document to the pad's file.
func (m Model) save() tea.Cmd {
	path, text := m.path, m.editor.Value()

	return func() tea.Msg {
		if path == "" {
			return savedMsg{err: ErrSave.WithDetail("no file name")}
		}

		if err := os.WriteFile(path, []byte(text+"\n"), fileMode); err != nil {
			return savedMsg{path: path, err: ErrSave.Wrap(err)}
		}

		return savedMsg{path: path}
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	m.editor.SetWidth(width - m.resultsWidth() - 1)
	m.editor.SetHeight(max(height-1, 1))
	m.follow()
}

func (m Model) resultsWidth() int { return max(m.width/resultsShare, 1) }

// heights returns the number of editor rows each line wraps onto.
func (m Model) heights() []int {
	h := make([]int, len(m.records))
	for i, rec := range m.records {
		h[i] = WrappedRows(rec.Source, m.editor.Width())
	}

	return h
}

// follow keeps the cursor row inside the rows shown by the results pane. Rows
// count soft-wrapped lines, the same way the editor scrolls.
func (m *Model) follow() {
	rows := m.editor.Height()
	row := m.editor.LineInfo().RowOffset

	heights := m.heights()
	for _, h := range heights[:min(m.editor.Line(), len(heights))] {
		row += h
	}

	switch {
	case row < m.top:
		m.top = row
	case row >= m.top+rows:
		m.top = row - rows + 1
	}
}

func (m Model) View() string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.editor.View(),
		" ",
		RenderResults(m.records, m.heights(), m.top, m.editor.Height(),
			m.resultsWidth(), m.styles),
	)

	status := m.status
	if status == "" {
		status = m.path
		if m.dirty {
			status += " [+]"
		}
	}

	return panes + "\n" + m.styles.Placeholder.Render(
		runewidth.Truncate(status+"  ctrl+s save  esc quit", m.width, "…"))
}

// RenderResults renders the results beside editor rows top..top+rows-1.
// Record i occupies heights[i] rows, one if heights is short; its result sits
// on the first of them, truncated to width cells.
func RenderResults(records []sheet.Record, heights []int, top, rows, width int, s Styles) string {
	lines := make([]string, rows)
	row := 0

	for i, rec := range records {
		if row >= top+rows {
			break
		}

		at := row - top

		row++
		if i < len(heights) {
			row += max(heights[i]-1, 0)
		}

		if at < 0 {
			continue
		}

		text := runewidth.Truncate(rec.Text, width, "…")

		switch {
		case rec.State.IsError():
			lines[at] = s.Error.Render(text)
		case rec.State != sheet.StateOK:
		case rec.Target != "":
			lines[at] = s.Variable.Render(text)
		default:
			lines[at] = s.Result.Render(text)
		}
	}

	return strings.Join(lines, "\n")
}

// WrappedRows reports how many rows the editor spreads line over when its
// text is width cells wide. Lines break after spaces and words wider than a
// row are split. A line that fills its last row gets one more for the cursor.
func WrappedRows(line string, width int) int {
	if width <= 0 {
		return 1
	}

	rows, used, word, spaces := 1, 0, 0, 0

	for _, r := range line {
		if unicode.IsSpace(r) {
			spaces++
		} else {
			word += runewidth.RuneWidth(r)
		}

		switch {
		case spaces > 0:
			if used+word+spaces > width {
				rows++
				used = 0
			}

			used += word + spaces
			word, spaces = 0, 0

		case word+runewidth.RuneWidth(r) > width:
			if used > 0 {
				rows++
			}

			used, word = word, 0
		}
	}

	if used+word >= width {
		rows++
	}

	return rows
}
