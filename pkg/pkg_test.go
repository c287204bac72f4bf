package pkg

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

func TestMetadata(t *testing.T) {
	if Name != "solvee" {
		t.Errorf("Name = %q", Name)
	}

	if Version == "" || strings.ContainsAny(Version, " \n") {
		t.Errorf("Version = %q", Version)
	}

	if len(Author) == 0 {
		t.Error("no authors")
	}
}

func TestDirs(t *testing.T) {
	for name, dir := range map[string]string{
		"config": ConfigDir(),
		"cache":  CacheDir(),
	} {
		if filepath.Base(dir) != Name {
			t.Errorf("%s dir %q does not end in %q", name, dir, Name)
		}
	}

	if got := ConfigPath("theme.toml"); got != filepath.Join(ConfigDir(), "theme.toml") {
		t.Errorf("ConfigPath = %q", got)
	}

	if got := CachePath(); got != CacheDir() {
		t.Errorf("CachePath() = %q", got)
	}
}

func TestMakeError(t *testing.T) {
	if MakeError() != nil || MakeError(nil, nil) != nil {
		t.Error("MakeError without errors is not nil")
	}

	err := MakeError(io.EOF, nil, fs.ErrNotExist)

	if !errors.Is(err, io.EOF) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("collected error does not match its parts: %v", err)
	}

	if got := err.Error(); got != "EOF\nfile does not exist" {
		t.Errorf("Error() = %q", got)
	}
}
