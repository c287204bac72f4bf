package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

type (
	sourceFilesKey struct{}

	// SourceFiles reads one or more documents in order as a single document.
	SourceFiles interface {
		IsZero() bool
		Stdin() io.Reader
		io.ReadCloser
	}

	sourceFiles struct {
		files    []*os.File
		multi    io.Reader
		hasStdin bool
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.files) == 0 && !s.hasStdin }

// Stdin returns os.Stdin if stdin was included as a source, or nil otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return os.Stdin
	}

	return nil
}

// Read reads the source files in order, then stdin if present. Each source
// is terminated with a newline so that the last line of one file never runs
// into the first line of the next.
func (s *sourceFiles) Read(p []byte) (int, error) {
	if s.multi == nil {
		readers := make([]io.Reader, 0, len(s.files)+1)
		for _, f := range s.files {
			readers = append(readers, &terminated{r: f})
		}

		if s.hasStdin {
			readers = append(readers, &terminated{r: os.Stdin})
		}

		s.multi = io.MultiReader(readers...)
	}

	return s.multi.Read(p)
}

// Close closes every opened file. Stdin is left open.
func (s *sourceFiles) Close() error {
	errs := make([]error, 0, len(s.files))
	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	return errors.Join(errs...)
}

// terminated appends a newline to r's content if it is non-empty and does
// not already end with one.
type terminated struct {
	r       io.Reader
	last    byte
	read    bool
	pending bool
	done    bool
}

func (t *terminated) Read(p []byte) (int, error) {
	switch {
	case len(p) == 0:
		return 0, nil
	case t.done:
		return 0, io.EOF
	case t.pending:
		p[0], t.done = '\n', true

		return 1, io.EOF
	}

	n, err := t.r.Read(p)
	if n > 0 {
		t.last, t.read = p[n-1], true
	}

	if !errors.Is(err, io.EOF) {
		return n, err
	}

	if !t.read || t.last == '\n' {
		t.done = true

		return n, io.EOF
	}

	if n < len(p) {
		p[n], t.done = '\n', true

		return n + 1, io.EOF
	}

	t.pending = true

	return n, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing the documents
// named by sources, for commands given no sources of their own.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, sources)
}

// sourcesFor opens the documents a command reads: args if given, otherwise
// the sources stored by [WithSourceFiles], otherwise stdin.
func sourcesFor(ctx context.Context, args []string) SourceFiles {
	if len(args) == 0 {
		args, _ = ctx.Value(sourceFilesKey{}).([]string)
	}

	if len(args) == 0 {
		args = []string{stdinSource}
	}

	return buildSourceFiles(args)
}

// buildSourceFiles opens each of sources once. Duplicates are detected by
// resolving symlinks and comparing device/inode pairs. All occurrences of
// "-" are replaced with a single stdin reader placed last, so it reads after
// all regular files. Files that cannot be opened are skipped.
func buildSourceFiles(sources []string) *sourceFiles {
	srcs := &sourceFiles{files: make([]*os.File, 0, len(sources))}
	seen := make(map[fileKey]struct{})

	stdinKey, stdinOK := fileKey{}, false
	if info, err := os.Stdin.Stat(); err == nil {
		stdinKey, stdinOK = makeFileKey(info)
	}

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		file, key, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		// Stdin named by path reads as stdin.
		if stdinOK && key == stdinKey {
			file.Close()

			srcs.hasStdin = true

			continue
		}

		srcs.files = append(srcs.files, file)
	}

	return srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fileKey{}, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, fileKey{}, false
	}

	if _, exists := seen[key]; exists {
		return nil, key, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, key, false
	}

	return file, key, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
