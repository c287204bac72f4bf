package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/solvee/lang"
)

// isWordBoundary reports whether r separates words for completion. Dots are
// part of qualified names such as math.sqrt.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', '+', '-', '*', '/', '^', '=', '#', ',':
		return true
	}

	return false
}

// wordBounds returns the word at cursor and its byte boundaries within
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidatesFor returns the names word may complete to. A word qualified
// with [lang.NamespacePrefix] completes to qualified functions and
// constants only.
func candidatesFor(word string, names []string) []string {
	if !strings.HasPrefix(word, lang.NamespacePrefix) {
		return names
	}

	var qualified []string

	for name := range lang.FuncNames() {
		qualified = append(qualified, lang.NamespacePrefix+name)
	}

	for name := range lang.ConstNames() {
		qualified = append(qualified, lang.NamespacePrefix+name)
	}

	return qualified
}

// findMatches ranks candidates by fuzzy similarity to word. An empty word
// or a number matches nothing.
func findMatches(word string, candidates []string) fuzzy.Matches {
	if word == "" || len(candidates) == 0 {
		return nil
	}

	if c := word[0]; c == '.' || ('0' <= c && c <= '9') {
		return nil
	}

	return fuzzy.Find(word, candidates)
}

// isFunction reports whether name is a built-in function, displayed with a
// "()" suffix.
func isFunction(name string) bool {
	_, ok := lang.LookupFunc(name)

	return ok
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected
// style.
func renderCandidateBar(matches fuzzy.Matches, suggIdx int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)
		w := lipgloss.Width(rendered)

		if i > 0 {
			if used+lipgloss.Width(sep)+w+reserve > width && i < len(matches)-1 {
				b.WriteString(sep + ellipsis)

				break
			}

			b.WriteString(sep)
			used += lipgloss.Width(sep)
		}

		b.WriteString(rendered)
		used += w
	}

	return b.String()
}

// renderCandidate renders a single candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, highlight = selectedStyle, selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
