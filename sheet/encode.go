package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-runewidth"

	"github.com/ardnew/solvee/lang"
)

// Format selects the encoding of [Encode].
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported [Format].
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ErrFormat is returned for an unsupported [Format].
var ErrFormat = lang.NewError(lang.KindNone, "unsupported output format")

// Encode writes records to w.
//
// [FormatText] writes two aligned columns, the source line and its display
// text, separated by gutter. [FormatJSON] and [FormatYAML] write the
// records as a list; indent selects block style with that many spaces, and
// zero selects compact (JSON) or flow (YAML) style.
func Encode(ctx context.Context, w io.Writer, recs []Record, format Format, indent int) error {
	switch format {
	case FormatText:
		return encodeText(w, recs)
	case FormatJSON:
		return encodeJSON(w, recs, indent)
	case FormatYAML:
		return encodeYAML(ctx, w, recs, indent)
	default:
		return ErrFormat.WithDetail(string(format))
	}
}

const gutter = "  │ "

func encodeText(w io.Writer, recs []Record) error {
	width := 0
	for _, r := range recs {
		width = max(width, runewidth.StringWidth(r.Source))
	}

	for _, r := range recs {
		line := runewidth.FillRight(r.Source, width)
		if r.Text != "" {
			line += gutter + r.Text
		}

		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}

	return nil
}

func encodeJSON(w io.Writer, recs []Record, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(nonNil(recs))
}

func encodeYAML(ctx context.Context, w io.Writer, recs []Record, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, nonNil(recs), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func nonNil(recs []Record) []Record {
	if recs == nil {
		return []Record{}
	}

	return recs
}

// ParseFormat returns the [Format] named s.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}

	return "", ErrFormat.WithDetail(s)
}
