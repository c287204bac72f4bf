package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the TOML table named table.
//
// Flag names may be written with hyphens or underscores:
//
//	[config]
//	log_level = "debug"
//	log-pretty = false
//	precision = 4
//
// Command-line flags override config file values. A file that does not
// decode, or that lacks the table, configures nothing.
func resolve(table string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return config{}, nil //nolint:nilerr
		}

		t, ok := doc[table].(map[string]any)
		if !ok {
			return config{}, nil
		}

		c := make(config, len(t))
		for key, value := range t {
			c[key] = flagValue(value)
		}

		return c, nil
	}
}

// config implements [kong.Resolver] for TOML configuration tables.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}

// flagValue converts a decoded TOML value to a form kong's mappers accept.
// Numbers become strings.
func flagValue(v any) any {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = flagValue(item)
		}

		return items
	default:
		return v
	}
}
