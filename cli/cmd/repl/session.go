package repl

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ardnew/solvee/lang"
	"github.com/ardnew/solvee/log"
	"github.com/ardnew/solvee/sheet"
)

// Session is the document a REPL builds one line at a time. Each evaluated
// input becomes the next line, so later inputs see earlier assignments.
type Session struct {
	doc       *sheet.Document
	precision int
}

// NewSession returns a session holding lines.
func NewSession(lines []string, precision int, logger log.Logger) *Session {
	s := &Session{
		doc: sheet.New(
			sheet.WithLogger(logger),
			sheet.WithPrecision(precision),
		),
		precision: precision,
	}

	if len(lines) > 0 {
		s.doc.SetLines(lines)
	}

	return s
}

// Eval appends input to the session and returns its record.
func (s *Session) Eval(input string) sheet.Record {
	var recs []sheet.Record
	if s.empty() {
		recs = s.doc.SetLines([]string{input})
	} else {
		recs = s.doc.Append(input)
	}

	return recs[len(recs)-1]
}

// empty reports whether the session holds only the single empty line every
// new document starts with.
func (s *Session) empty() bool {
	line, _ := s.doc.Line(0)

	return s.doc.Len() == 1 && line.Text == ""
}

// Reset discards every line.
func (s *Session) Reset() { s.doc.SetLines(nil) }

// Len returns the number of lines entered.
func (s *Session) Len() int {
	if s.empty() {
		return 0
	}

	return s.doc.Len()
}

// Text returns the session as a document.
func (s *Session) Text() string {
	if s.empty() {
		return ""
	}

	return s.doc.Text()
}

// SetText replaces the session with text and returns the records of its
// failed lines.
func (s *Session) SetText(text string) []sheet.Record {
	text = strings.TrimSuffix(text, "\n")

	var failed []sheet.Record

	for _, rec := range s.doc.SetText(text) {
		if rec.State.IsError() {
			failed = append(failed, rec)
		}
	}

	return failed
}

// Variables returns "name = value" for every assigned variable, in the
// order they were first assigned.
func (s *Session) Variables() []string {
	var vars []string

	for name, value := range s.doc.Env().All() {
		vars = append(vars, fmt.Sprintf("%s = %s", name, lang.FormatNumber(value, s.precision)))
	}

	return vars
}

// Names returns every name an expression can reference: variables,
// functions and constants.
func (s *Session) Names() []string {
	names := s.doc.Env().Names()
	names = slices.AppendSeq(names, lang.FuncNames())
	names = slices.AppendSeq(names, lang.ConstNames())

	slices.Sort(names)

	return slices.Compact(names)
}
