package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"

	"github.com/ardnew/solvee/log"
	"github.com/ardnew/solvee/profile"
	"github.com/ardnew/solvee/theme"
)

// Init writes a configuration file holding the current flag values, or the
// default theme file.
type Init struct {
	Force bool `help:"Overwrite an existing file"                   short:"f"`
	Theme bool `help:"Write the default theme instead of the config"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	path, encode := confPath, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(map[string]any{
			ConfigIdentifier: flagValues(ktx),
		})
	}

	if i.Theme {
		path = filepath.Join(filepath.Dir(confPath), theme.FileName)
		encode = theme.Default().Encode
	}

	if err := i.write(path, encode); err != nil {
		return err
	}

	log.DebugContext(ctx, "initialized file", slog.String("path", path))

	return nil
}

func (i *Init) write(path string, encode func(io.Writer) error) error {
	_, err := os.Stat(path)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", path), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(path)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}
	defer file.Close()

	if err := encode(file); err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	return file.Close()
}

// flagValues returns the value of every configurable flag, keyed by flag
// name with hyphens replaced by underscores. Unset and empty values are
// omitted.
func flagValues(ktx *kong.Context) map[string]any {
	values := make(map[string]any)

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		key := strings.ReplaceAll(flag.Name, "-", "_")

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v != "" {
				values[key] = v
			}

		case []string:
			if len(v) > 0 {
				values[key] = v
			}

		default:
			values[key] = v
		}
	}

	return values
}
