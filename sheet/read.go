package sheet

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/solvee/lang"
)

// ErrRead is returned when a document source cannot be read.
var ErrRead = lang.NewError(lang.KindNone, "failed to read document")

const maxLineBytes = 1 << 20

// ReadLines reads r to the end and returns its lines without their
// terminators. Reading stops early if ctx is canceled.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	sc := bufio.NewScanner(ra)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var lines []string

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, ErrRead.Wrap(err)
		}

		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}

	if err := sc.Err(); err != nil {
		return nil, ErrRead.Wrap(err)
	}

	return lines, nil
}

// Read builds a document from the lines of r.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	lines, err := ReadLines(ctx, r)
	if err != nil {
		return nil, err
	}

	d := New(opts...)
	d.SetLines(lines)

	return d, nil
}
