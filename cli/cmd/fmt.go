package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/solvee/lang"
	"github.com/ardnew/solvee/log"
	"github.com/ardnew/solvee/sheet"
)

// Fmt reads documents and prints them in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format lines in canonical form (default)."`
	AST    AST    `cmd:""                    help:"Format lines as expression trees."`
}

// Native rewrites every line in canonical form. Blank lines, comments and
// lines that do not parse are printed unchanged.
type Native struct {
	Sources []string `arg:"" help:"Source documents, or '-' for stdin" name:"source" optional:"" type:"existingfile"`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	lines, err := readSources(ctx, f.Sources)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(outputFrom(ctx))

	for i, line := range lines {
		text, err := canonical(line)
		if err != nil {
			log.WarnContext(ctx, "line left unformatted",
				slog.Int("line", i+1), slog.Any("error", err))
		}

		fmt.Fprintln(w, text)
	}

	return w.Flush()
}

// canonical returns line in canonical form with its trailing comment, or
// line itself if it is blank or does not parse.
func canonical(line string) (string, error) {
	tokens, err := lang.Lex(line)
	if err != nil {
		return line, err
	}

	if lang.IsBlank(tokens) {
		return strings.TrimRight(line, " \t\r"), nil
	}

	prog, err := lang.ParseTokens(tokens)
	if err != nil {
		return line, err
	}

	text := prog.String()
	if last := tokens[len(tokens)-1]; last.Kind == lang.TokenComment {
		text += "  " + last.Text
	}

	return text, nil
}

// AST prints the expression tree of every line that parses.
type AST struct {
	Sources []string `arg:"" help:"Source documents, or '-' for stdin" name:"source" optional:"" type:"existingfile"`
}

// Run executes the fmt ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	lines, err := readSources(ctx, a.Sources)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(outputFrom(ctx))

	for i, line := range lines {
		tokens, err := lang.Lex(line)
		if err == nil && lang.IsBlank(tokens) {
			continue
		}

		var prog *lang.Program
		if err == nil {
			prog, err = lang.ParseTokens(tokens)
		}

		if err != nil {
			fmt.Fprintf(w, "%d: %v\n", i+1, err)

			continue
		}

		fmt.Fprintf(w, "%d: %s\n", i+1, prog)

		if prog.Target != "" {
			fmt.Fprintf(w, "  assign %s\n", prog.Target)
		}

		for tree := range strings.Lines(lang.Tree(prog.Expr)) {
			fmt.Fprint(w, "  ", tree)
		}
	}

	return w.Flush()
}

func readSources(ctx context.Context, args []string) ([]string, error) {
	src := sourcesFor(ctx, args)
	defer src.Close()

	lines, err := sheet.ReadLines(ctx, src)
	if err != nil {
		return nil, ErrReadSource.Wrap(err)
	}

	return lines, nil
}
