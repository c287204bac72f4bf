package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/ardnew/solvee/log"
)

const plainCommandPrefix = ":"

// RunPlain starts a line-oriented session without a full-screen interface.
// Control commands are entered with a ':' prefix, for example ":list".
func RunPlain(ctx context.Context, session *Session, history *History, logger log.Logger) error {
	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)
	ln.SetTabCompletionStyle(liner.TabPrints)
	ln.SetWordCompleter(wordCompleter(session))

	for _, line := range history.Lines(modeEval) {
		ln.AppendHistory(line)
	}

	for _, line := range history.Lines(modeCtrl) {
		ln.AppendHistory(plainCommandPrefix + line)
	}

	logger.TraceContext(ctx, "repl start", slog.Bool("plain", true))

	p := plain{ctx: ctx, session: session, history: history, logger: logger, out: os.Stdout}

	for ctx.Err() == nil {
		input, err := ln.Prompt(evalPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)

			return nil
		}

		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		ln.AppendHistory(input)

		if !p.execute(input) {
			return nil
		}
	}

	return ctx.Err()
}

// plain executes the inputs of a [RunPlain] session.
type plain struct {
	ctx     context.Context //nolint:containedctx
	session *Session
	history *History
	logger  log.Logger
	out     io.Writer
}

// execute evaluates input or runs the command it names. It reports false
// when the session should end.
func (p plain) execute(input string) bool {
	cmd, isCmd := strings.CutPrefix(input, plainCommandPrefix)

	mode := modeEval
	if isCmd {
		mode = modeCtrl
	}

	if err := p.history.Add(strings.TrimSpace(cmd), mode); err != nil {
		p.logger.WarnContext(p.ctx, "history not saved", slog.Any("error", err))
	}

	if !isCmd {
		if out := formatRecord(p.session.Eval(input), plainRecord); out != "" {
			fmt.Fprintln(p.out, out)
		}

		return true
	}

	name, ok := lookupCommand(cmd)
	if !ok {
		fmt.Fprintln(p.out, ErrUnknownCommand.WithDetail(name).Error()+" (try ':help')")

		return true
	}

	switch name {
	case "quit":
		return false

	case "help":
		fmt.Fprintln(p.out, helpMessage(false))

	case "list":
		for _, v := range p.session.Variables() {
			fmt.Fprintln(p.out, "  "+v)
		}

	case "clear":
		fmt.Fprint(p.out, "\x1b[H\x1b[2J")

	case "reset":
		p.session.Reset()
		fmt.Fprintln(p.out, "session cleared")

	case "edit":
		text, err := edit(p.ctx, p.session.Text(), os.Stdin, os.Stdout, os.Stderr)
		if err != nil {
			fmt.Fprintln(p.out, "error: "+err.Error())

			break
		}

		for _, rec := range p.session.SetText(text) {
			fmt.Fprintf(p.out, "  line %d: %s\n", rec.Index+1, rec.Text)
		}
	}

	return true
}

// wordCompleter completes the word at the cursor from the session's names
// and, after the command prefix, from the control commands.
func wordCompleter(session *Session) liner.WordCompleter {
	return func(line string, pos int) (head string, completions []string, tail string) {
		runes := []rune(line)
		cursor := len(string(runes[:min(max(pos, 0), len(runes))]))

		var (
			word       string
			start, end int
			candidates []string
		)

		if isCommandWord(line, cursor) {
			word, start, end = line[1:cursor], 1, cursor
			candidates = commandNames()
		} else {
			word, start, end = wordBounds(line, cursor)
			candidates = candidatesFor(word, session.Names())
		}

		for _, match := range findMatches(word, candidates) {
			completions = append(completions, match.Str)
		}

		return line[:start], completions, line[end:]
	}
}

// isCommandWord reports whether the cursor is in the first word of a
// control command.
func isCommandWord(line string, cursor int) bool {
	return cursor >= len(plainCommandPrefix) &&
		strings.HasPrefix(line, plainCommandPrefix) &&
		!strings.ContainsAny(line[len(plainCommandPrefix):cursor], " \t")
}
