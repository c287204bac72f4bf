package sheet

import (
	"errors"
	"strconv"

	"github.com/ardnew/solvee/lang"
)

// State is the outcome of evaluating one line.
type State int

const (
	// StateEmpty marks a blank or comment-only line.
	StateEmpty State = iota
	// StateParsed marks a line that parsed and awaits evaluation. No line is
	// left in this state once a pass completes.
	StateParsed
	// StateParseError marks a line that failed to lex or parse.
	StateParseError
	// StateEvalError marks a line that parsed but failed to evaluate.
	StateEvalError
	// StateOK marks a line with a value.
	StateOK
)

var stateNames = [...]string{
	StateEmpty:      "empty",
	StateParsed:     "parsed",
	StateParseError: "parse-error",
	StateEvalError:  "eval-error",
	StateOK:         "ok",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "State(" + strconv.Itoa(int(s)) + ")"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)

			return nil
		}
	}

	return errors.New("unknown line state " + strconv.Quote(string(text)))
}

// IsError reports whether s is one of the error states.
func (s State) IsError() bool { return s == StateParseError || s == StateEvalError }

// Line is the evaluated state of one line of a [Document].
type Line struct {
	// Program is the parsed line, or nil if the line is empty or failed to
	// parse. Lines with the same text share one Program; it must not be
	// modified.
	Program *lang.Program
	// Err is the line's lex, parse or evaluation error.
	Err error
	// Text is the line as written.
	Text string
	// Target is the variable the line assigns, if it parsed.
	Target string
	// Value is the line's result when State is [StateOK].
	Value float64
	// Index is the 0-based position of the line in its document.
	Index int
	State State
}

// Display returns the text shown beside the line: the formatted value, the
// error message, or nothing for empty lines.
func (l Line) Display(precision int) string {
	switch l.State {
	case StateOK:
		return lang.FormatNumber(l.Value, precision)
	case StateParseError, StateEvalError:
		if l.Err != nil {
			return l.Err.Error()
		}
	}

	return ""
}

// Record is the presentation of one [Line].
type Record struct {
	Value  *float64 `json:"value,omitempty"  yaml:"value,omitempty"`
	Source string   `json:"source"           yaml:"source"`
	Text   string   `json:"text"             yaml:"text"`
	Target string   `json:"target,omitempty" yaml:"target,omitempty"`
	Kind   string   `json:"kind,omitempty"   yaml:"kind,omitempty"`
	Index  int      `json:"index"            yaml:"index"`
	State  State    `json:"state"            yaml:"state"`
}

// Record returns the presentation of l.
func (l Line) Record(precision int) Record {
	r := Record{
		Index:  l.Index,
		State:  l.State,
		Source: l.Text,
		Text:   l.Display(precision),
		Target: l.Target,
	}

	switch l.State {
	case StateOK:
		v := l.Value
		r.Value = &v

	case StateParseError, StateEvalError:
		if k := lang.KindOf(l.Err); k != lang.KindNone {
			r.Kind = k.String()
		}
	}

	return r
}
