package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/solvee/log"
	"github.com/ardnew/solvee/pkg"
	"github.com/ardnew/solvee/sheet"
)

// Eval evaluates documents and prints the result of every line.
type Eval struct {
	Sources   []string `arg:"" help:"Source documents, or '-' for stdin" name:"source" optional:"" type:"existingfile"`
	Format    string   `       help:"Output format"                      default:"text"         enum:"text,json,yaml"   short:"o"`
	Indent    int      `       help:"Indent width for JSON and YAML"     default:"2"            short:"i"`
	Precision int      `       help:"Fractional digits in results"       default:"${precision}" short:"p"`
	Strict    bool     `       help:"Fail if any line has an error"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := sheet.ParseFormat(e.Format)
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	src := sourcesFor(ctx, e.Sources)
	defer src.Close()

	doc, err := sheet.Read(ctx, src,
		sheet.WithLogger(log.Default()),
		sheet.WithPrecision(e.Precision),
	)
	if err != nil {
		return ErrReadSource.Wrap(err)
	}

	stats := doc.Stats()

	log.DebugContext(ctx, "document evaluated",
		slog.Int("lines", stats.Lines),
		slog.Int("failed", stats.Failed),
	)

	err = sheet.Encode(ctx, outputFrom(ctx), doc.Records(), format, e.Indent)
	if err != nil {
		return ErrEncode.With(slog.String("format", e.Format)).Wrap(err)
	}

	if e.Strict && stats.Failed > 0 {
		return ErrFailedLines.
			With(slog.Int("failed", stats.Failed)).
			Wrap(lineErrors(doc))
	}

	return nil
}

// lineErrors collects the errors of every failed line, prefixed with the
// line number.
func lineErrors(doc *sheet.Document) error {
	var errs []error

	for _, line := range doc.Lines() {
		if line.State.IsError() {
			errs = append(errs, fmt.Errorf("line %d: %w", line.Index+1, line.Err))
		}
	}

	return pkg.MakeError(errs...)
}
