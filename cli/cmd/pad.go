package cmd

import (
	"context"

	"github.com/ardnew/solvee/cli/cmd/pad"
	"github.com/ardnew/solvee/log"
	"github.com/ardnew/solvee/sheet"
	"github.com/ardnew/solvee/theme"
)

// Pad edits a document in a two-pane editor with live results.
type Pad struct {
	File      string `arg:"" help:"Document to edit, created on first save" optional:"" type:"path"`
	Theme     string `       help:"Theme file"                                             type:"existingfile"`
	Precision int    `       help:"Fractional digits in results" default:"${precision}" short:"p"`
}

// Run executes the pad command.
func (p *Pad) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	th, err := theme.Load(ctx, p.Theme)
	if err != nil {
		return err
	}

	return pad.Run(ctx, p.File, th,
		sheet.WithLogger(log.Default()),
		sheet.WithPrecision(p.Precision),
	)
}
