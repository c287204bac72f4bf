package theme

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/solvee/lang"
	"github.com/ardnew/solvee/log"
	"github.com/ardnew/solvee/pkg"
)

// EnvPath names the environment variable holding extra theme directories,
// separated like PATH. They are searched before the standard directories.
const EnvPath = "SOLVEE_THEME_PATH"

// SystemDir is the system-wide theme directory.
const SystemDir = "/usr/share/solvee"

// SearchPath returns the directories searched for [FileName], in order: the
// directories of [EnvPath], the working directory, [SystemDir], then the
// user's configuration directory.
func SearchPath() []string {
	std := []string{".", SystemDir}
	if dir := pkg.ConfigDir(); dir != "" {
		std = append(std, dir)
	}

	sep := string(os.PathListSeparator)

	joined := mung.Make(
		mung.WithSubjectItems(strings.Join(std, sep)),
		mung.WithDelim(sep),
		mung.WithPrefixItems(filepath.SplitList(os.Getenv(EnvPath))...),
	).String()

	var dirs []string

	for _, dir := range filepath.SplitList(joined) {
		if dir = strings.TrimSpace(dir); dir != "" && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// Load returns the theme in file, or, if file is empty, the first readable
// theme on the [SearchPath]. A candidate that cannot be decoded is logged
// and skipped. With no usable candidate, Load returns [Default].
//
// Only an explicitly named file that cannot be read or decoded is an error.
func Load(ctx context.Context, file string) (Theme, error) {
	if file != "" {
		return loadFile(ctx, file)
	}

	for _, dir := range SearchPath() {
		path := filepath.Join(dir, FileName)

		t, err := loadFile(ctx, path)
		if err == nil {
			return t, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			log.WarnContext(ctx, "skipping theme", slog.String("path", path), slog.Any("error", err))
		}
	}

	return Default(), nil
}

func loadFile(ctx context.Context, path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), err
	}
	defer f.Close()

	t, ignored, err := Decode(f)
	if err != nil {
		return Default(), lang.WrapError(err).WithDetail(path)
	}

	if len(ignored) > 0 {
		log.WarnContext(ctx, "theme keys ignored",
			slog.String("path", path), slog.Any("keys", ignored))
	}

	t.Path = path

	log.DebugContext(ctx, "theme loaded", slog.Any("theme", t))

	return t, nil
}
