package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/solvee/lang"
)

// summaries describe the built-in functions in signature hints.
var summaries = map[string]string{
	"abs":     "absolute value",
	"acos":    "arccosine, in radians",
	"asin":    "arcsine, in radians",
	"atan":    "arctangent, in radians",
	"cbrt":    "cube root",
	"ceil":    "least integer not less than x",
	"cos":     "cosine of x radians",
	"cosh":    "hyperbolic cosine",
	"degrees": "radians to degrees",
	"exp":     "e raised to x",
	"floor":   "greatest integer not greater than x",
	"ln":      "natural logarithm",
	"log":     "natural logarithm",
	"log10":   "base-10 logarithm",
	"log2":    "base-2 logarithm",
	"radians": "degrees to radians",
	"round":   "nearest integer, half away from zero",
	"sin":     "sine of x radians",
	"sinh":    "hyperbolic sine",
	"sqrt":    "square root",
	"tan":     "tangent of x radians",
	"tanh":    "hyperbolic tangent",
	"trunc":   "integer part of x",
}

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	currentParamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// enclosingCall returns the name of the function whose argument list
// contains cursor, or "" if the cursor is not inside a call.
func enclosingCall(input string, cursor int) string {
	cursor = min(max(cursor, 0), len(input))

	depth := 0
	open := -1

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
	}

	if open < 0 {
		return ""
	}

	name := strings.TrimRight(input[:open], " \t")

	start := len(name)
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(name[:start])
		if r != '.' && r != '_' && !isAlnum(r) {
			break
		}

		start -= size
	}

	return name[start:]
}

func isAlnum(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// signature returns the signature of the built-in function name and a short
// description, or "" if name is not a function.
func signature(name string) (sig, summary string) {
	if _, ok := lang.LookupFunc(name); !ok {
		return "", ""
	}

	return name + "(x)", summaries[strings.TrimPrefix(name, lang.NamespacePrefix)]
}

// renderSignatureHint renders the signature of name with its parameter
// highlighted, followed by its description.
func renderSignatureHint(name string) string {
	sig, summary := signature(name)
	if sig == "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))
	b.WriteString(currentParamStyle.Render("x"))
	b.WriteString(signatureStyle.Render(")"))

	if summary != "" {
		b.WriteString(signatureStyle.Render("  " + summary))
	}

	return b.String()
}
