package repl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/solvee/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]: it opens the session text in the
// user's editor and keeps the edited text.
type editCommand struct {
	ctx    context.Context //nolint:containedctx
	logger log.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	text   string
	edited string
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run opens the editor and stores the result in c.edited.
func (c *editCommand) Run() (err error) {
	c.edited, err = edit(c.ctx, c.text, c.stdin, c.stdout, c.stderr)

	c.logger.TraceContext(c.ctx, "editor closed",
		slog.Int("bytes", len(c.edited)),
		slog.Bool("ok", err == nil))

	return err
}

// edit writes text to a temporary file, runs $EDITOR on it, and returns the
// file's content once the editor exits.
func edit(ctx context.Context, text string, stdin io.Reader, stdout, stderr io.Writer) (string, error) {
	f, err := os.CreateTemp("", "solvee-*.calc")
	if err != nil {
		return "", ErrEditor.Wrap(err)
	}

	path := f.Name()
	defer os.Remove(path)

	_, err = f.WriteString(text)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return "", ErrEditor.Wrap(err)
	}

	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr

	if err := cmd.Run(); err != nil {
		return "", ErrEditor.WithDetail(args[0]).Wrap(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", ErrEditor.Wrap(err)
	}

	return string(data), nil
}
