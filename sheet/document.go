package sheet

import (
	"log/slog"
	"strings"

	"github.com/ardnew/solvee/lang"
	"github.com/ardnew/solvee/log"
)

// ErrOutOfRange is returned by edits that name a line the document does not
// have.
var ErrOutOfRange = lang.NewError(lang.KindNone, "line index out of range")

// Option configures a [Document].
type Option func(*Document)

// WithLogger sets the logger that receives per-pass trace records.
func WithLogger(logger log.Logger) Option {
	return func(d *Document) { d.logger = logger }
}

// WithIncremental controls whether a pass may reuse the results of earlier
// passes. Reuse never changes a result; disabling it forces every line to
// be lexed, parsed and evaluated on every pass.
func WithIncremental(enable bool) Option {
	return func(d *Document) { d.incremental = enable }
}

// WithPrecision sets the number of fractional digits in display text. A
// negative value selects [lang.DefaultPrecision].
func WithPrecision(digits int) Option {
	return func(d *Document) { d.precision = digits }
}

// Stats counts the work done by the most recent pass.
type Stats struct {
	Lines     int // lines in the document
	Empty     int // blank or comment-only lines
	Failed    int // lines in an error state
	Evaluated int // lines evaluated afresh
	Reused    int // lines whose cached result was reused
}

// Document is an ordered list of lines evaluated top to bottom.
//
// Every edit re-runs a pass: a fresh environment is built, and each line is
// evaluated against the assignments of the lines above it. A line that
// fails leaves the environment untouched; lines below that read its target
// see the previous binding or none.
//
// A Document is not safe for concurrent use.
type Document struct {
	logger      log.Logger
	env         *lang.Env
	cache       cache
	lines       []Line
	stats       Stats
	revision    uint64
	precision   int
	incremental bool
}

// New returns a document with a single empty line.
func New(opts ...Option) *Document {
	d := &Document{
		cache:       newCache(),
		precision:   lang.DefaultPrecision,
		incremental: true,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.SetLines(nil)

	return d
}

// Evaluate runs a single pass over lines and returns their records.
func Evaluate(lines []string, opts ...Option) []Record {
	d := New(opts...)

	return d.SetLines(lines)
}

// SetText replaces the whole document with text, split into lines at "\n".
// A trailing "\r" on each line is dropped.
func (d *Document) SetText(text string) []Record {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return d.SetLines(lines)
}

// SetLines replaces the whole document. An empty slice leaves one empty
// line.
func (d *Document) SetLines(lines []string) []Record {
	if len(lines) == 0 {
		lines = []string{""}
	}

	d.lines = make([]Line, len(lines))
	for i, text := range lines {
		d.lines[i].Text = text
	}

	return d.pass()
}

// Insert inserts a line before index at. An index equal to [Document.Len]
// appends.
func (d *Document) Insert(at int, text string) ([]Record, error) {
	if at < 0 || at > len(d.lines) {
		return nil, d.outOfRange(at)
	}

	d.lines = append(d.lines, Line{})
	copy(d.lines[at+1:], d.lines[at:])
	d.lines[at] = Line{Text: text}

	return d.pass(), nil
}

// Append adds a line at the end of the document.
func (d *Document) Append(text string) []Record {
	recs, _ := d.Insert(len(d.lines), text)

	return recs
}

// Replace changes the text of line at.
func (d *Document) Replace(at int, text string) ([]Record, error) {
	if at < 0 || at >= len(d.lines) {
		return nil, d.outOfRange(at)
	}

	d.lines[at].Text = text

	return d.pass(), nil
}

// Delete removes line at. Deleting the only line leaves one empty line.
func (d *Document) Delete(at int) ([]Record, error) {
	if at < 0 || at >= len(d.lines) {
		return nil, d.outOfRange(at)
	}

	d.lines = append(d.lines[:at], d.lines[at+1:]...)
	if len(d.lines) == 0 {
		d.lines = []Line{{}}
	}

	return d.pass(), nil
}

// Move moves line from to index to, shifting the lines between.
func (d *Document) Move(from, to int) ([]Record, error) {
	if from < 0 || from >= len(d.lines) {
		return nil, d.outOfRange(from)
	}

	if to < 0 || to >= len(d.lines) {
		return nil, d.outOfRange(to)
	}

	line := d.lines[from]
	d.lines = append(d.lines[:from], d.lines[from+1:]...)
	d.lines = append(d.lines[:to], append([]Line{line}, d.lines[to:]...)...)

	return d.pass(), nil
}

func (d *Document) outOfRange(at int) error {
	return ErrOutOfRange.With(slog.Int("index", at), slog.Int("lines", len(d.lines)))
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns line at.
func (d *Document) Line(at int) (Line, bool) {
	if at < 0 || at >= len(d.lines) {
		return Line{}, false
	}

	return d.lines[at], true
}

// Lines returns a copy of every line.
func (d *Document) Lines() []Line { return append([]Line(nil), d.lines...) }

// Text returns the document joined with "\n".
func (d *Document) Text() string {
	texts := make([]string, len(d.lines))
	for i, line := range d.lines {
		texts[i] = line.Text
	}

	return strings.Join(texts, "\n")
}

// Records returns the presentation of every line.
func (d *Document) Records() []Record {
	recs := make([]Record, len(d.lines))
	for i, line := range d.lines {
		recs[i] = line.Record(d.precision)
	}

	return recs
}

// Env returns a copy of the environment after the last line.
func (d *Document) Env() *lang.Env { return d.env.Clone() }

// Revision counts the passes run so far. Results computed for an older
// revision are stale.
func (d *Document) Revision() uint64 { return d.revision }

// Stats describes the most recent pass.
func (d *Document) Stats() Stats { return d.stats }

// Precision returns the number of fractional digits in display text.
func (d *Document) Precision() int { return d.precision }

func (d *Document) pass() []Record {
	if !d.incremental {
		d.cache = newCache()
	}

	env := lang.NewEnv()
	stats := Stats{Lines: len(d.lines)}
	live := make(map[uint64]struct{}, len(d.lines))

	for i := range d.lines {
		line := &d.lines[i]
		*line = Line{Index: i, Text: line.Text}

		key := hashLine(line.Text)
		live[key] = struct{}{}

		p := d.cache.parse(key, line.Text)

		switch {
		case p.blank:
			stats.Empty++

			continue

		case p.err != nil:
			line.State, line.Err = StateParseError, p.err
			stats.Failed++

			continue
		}

		line.Program, line.Target, line.State = p.program, p.program.Target, StateParsed

		e, ok := d.cache.lookup(key, line.Text, env)
		if ok {
			stats.Reused++
		} else {
			e = d.cache.eval(key, line.Text, p.program, env)
			stats.Evaluated++
		}

		if e.err != nil {
			line.State, line.Err = StateEvalError, e.err
			stats.Failed++

			continue
		}

		line.State, line.Value = StateOK, e.value

		if line.Target != "" {
			env.Set(line.Target, e.value)
		}
	}

	d.cache.retain(live)
	d.env = env
	d.stats = stats
	d.revision++

	d.logger.Trace("document evaluated",
		slog.Uint64("revision", d.revision),
		slog.Int("lines", stats.Lines),
		slog.Int("evaluated", stats.Evaluated),
		slog.Int("reused", stats.Reused),
		slog.Int("failed", stats.Failed))

	return d.Records()
}
