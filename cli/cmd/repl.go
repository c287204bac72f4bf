package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/solvee/cli/cmd/repl"
	"github.com/ardnew/solvee/log"
	"github.com/ardnew/solvee/pkg"
)

// Repl evaluates lines typed at an interactive prompt. Each input is a new
// line of a session document, so assignments carry over between inputs.
type Repl struct {
	Sources   []string `arg:"" help:"Documents to preload into the session" name:"source" optional:"" type:"existingfile"`
	Plain     bool     `       help:"Use a plain line editor instead of the full-screen prompt"`
	Precision int      `       help:"Fractional digits in results" default:"${precision}" short:"p"`
	NoHistory bool     `       help:"Do not read or write the history file"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var lines []string

	if sourcesGiven(ctx, r.Sources) {
		if lines, err = readSources(ctx, r.Sources); err != nil {
			return err
		}
	}

	logger := log.Default()
	session := repl.NewSession(lines, r.Precision, logger)

	path := ""
	if !r.NoHistory {
		path = pkg.CachePath(repl.HistoryFile)
	}

	history := repl.NewHistory(path)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "history not loaded",
			slog.String("path", path), slog.Any("error", err))
	}

	if r.Plain {
		return repl.RunPlain(ctx, session, history, logger)
	}

	return repl.Run(ctx, session, history, logger)
}

// sourcesGiven reports whether args or the global sources name any document.
// Interactive commands read stdin only when it is named explicitly.
func sourcesGiven(ctx context.Context, args []string) bool {
	if len(args) > 0 {
		return true
	}

	global, _ := ctx.Value(sourceFilesKey{}).([]string)

	return len(global) > 0
}
