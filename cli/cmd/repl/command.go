package repl

import (
	"fmt"
	"strings"
)

type command struct {
	name  string
	alias string
	help  string
}

var commands = []command{
	{"help", "h", "Print this help"},
	{"list", "l", "List variables and their values"},
	{"clear", "c", "Clear the screen"},
	{"reset", "r", "Discard every line of the session"},
	{"edit", "e", "Edit the session in $EDITOR"},
	{"quit", "q", "Exit"},
}

// commandNames returns the name of every control command.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

// lookupCommand returns the name of the control command input invokes,
// matching either its name or its alias. "exit" is accepted for "quit".
func lookupCommand(input string) (string, bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", false
	}

	word := fields[0]
	if word == "exit" {
		return "quit", true
	}

	for _, c := range commands {
		if word == c.name || word == c.alias {
			return c.name, true
		}
	}

	return word, false
}

func helpMessage(modal bool) string {
	var b strings.Builder

	b.WriteString("\nCommands")
	if modal {
		b.WriteString(" (press Esc to toggle mode)")
	} else {
		b.WriteString(" (prefix with ':')")
	}

	b.WriteString(":\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-6s %s\n", c.name, c.help)
	}

	b.WriteString(`
Usage:
  Type an expression to evaluate it; "expr == name" assigns it to name
  Each line sees the assignments of the lines before it
  Press Tab / Shift-Tab to cycle through completions
  Use Up/Down arrows for history navigation
  Press Ctrl+C on an empty line or Ctrl+D to exit
`)

	return b.String()
}
