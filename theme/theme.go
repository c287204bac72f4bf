package theme

import (
	"io"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ardnew/solvee/lang"
)

// FileName is the name of a theme file within a search directory.
const FileName = "theme.toml"

// ErrDecode is returned for a theme file that is not valid TOML.
var ErrDecode = lang.NewError(lang.KindNone, "invalid theme file")

// Color holds the palette, as "#rrggbb" or "#rgb" strings.
type Color struct {
	Background  string `toml:"background_color"`
	Text        string `toml:"text_color"`
	Number      string `toml:"number_color"`
	Operator    string `toml:"operator_color"`
	Variable    string `toml:"variable_color"`
	Assignment  string `toml:"assignment_color"`
	Result      string `toml:"result_color"`
	Error       string `toml:"error_color"`
	Placeholder string `toml:"placeholder_color"`
}

// Font names the preferred typeface. Terminal front ends cannot select a
// font; the values are kept so a theme file round-trips unchanged.
type Font struct {
	Family string `toml:"family"`
	Size   int    `toml:"size"`
}

// Theme is the decoded contents of a theme file.
type Theme struct {
	// Path is the file the theme was loaded from, or "" for the default.
	Path  string `toml:"-"`
	Font  Font   `toml:"font"`
	Color Color  `toml:"color"`
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Color: Color{
			Background:  "#1E1E1E",
			Text:        "#ABB2BF",
			Number:      "#D19A66",
			Operator:    "#56B6C2",
			Variable:    "#C678DD",
			Assignment:  "#E06C75",
			Result:      "#98C379",
			Error:       "#E06C75",
			Placeholder: "#5C6370",
		},
		Font: Font{Family: "CaskaydiaCove Nerd Font", Size: 14},
	}
}

// validColor reports whether s is a "#rgb" or "#rrggbb" color.
func validColor(s string) bool {
	if (len(s) != len("#rgb") && len(s) != len("#rrggbb")) || strings.ContainsAny(s, " \t+-") {
		return false
	}

	_, err := colorful.Hex(s)

	return err == nil
}

// Decode reads a theme from r. Keys absent from r keep their default
// values. Unknown keys are ignored, and invalid colors or sizes are replaced
// by their defaults; the names of both are returned.
func Decode(r io.Reader) (Theme, []string, error) {
	t := Default()

	md, err := toml.NewDecoder(r).Decode(&t)
	if err != nil {
		return Default(), nil, ErrDecode.Wrap(err)
	}

	var invalid []string

	for _, key := range md.Undecoded() {
		invalid = append(invalid, key.String())
	}

	def := Default()
	for _, c := range t.colors() {
		if *c.value = strings.TrimSpace(*c.value); !validColor(*c.value) {
			invalid = append(invalid, "color."+c.key)
			*c.value = *def.color(c.key)
		}
	}

	if t.Font.Size <= 0 {
		invalid = append(invalid, "font.size")
		t.Font.Size = def.Font.Size
	}

	return t, invalid, nil
}

// Encode writes t to w as TOML.
func (t Theme) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(t)
}

type colorField struct {
	value *string
	key   string
}

func (t *Theme) colors() []colorField {
	c := &t.Color

	return []colorField{
		{&c.Background, "background_color"},
		{&c.Text, "text_color"},
		{&c.Number, "number_color"},
		{&c.Operator, "operator_color"},
		{&c.Variable, "variable_color"},
		{&c.Assignment, "assignment_color"},
		{&c.Result, "result_color"},
		{&c.Error, "error_color"},
		{&c.Placeholder, "placeholder_color"},
	}
}

func (t *Theme) color(key string) *string {
	for _, c := range t.colors() {
		if c.key == key {
			return c.value
		}
	}

	return nil
}

// Style returns a foreground style in the color stored under key, such as
// "result_color", on the theme's background.
func (t Theme) Style(key string) lipgloss.Style {
	s := lipgloss.NewStyle().Background(lipgloss.Color(t.Color.Background))
	if c := t.color(key); c != nil {
		s = s.Foreground(lipgloss.Color(*c))
	}

	return s
}

func (t Theme) LogValue() slog.Value {
	path := t.Path
	if path == "" {
		path = "(default)"
	}

	return slog.GroupValue(
		slog.String("path", path),
		slog.String("font", t.Font.Family),
		slog.Int("size", t.Font.Size),
	)
}
