package dta

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/multierr"
)

// ReadRange opens path, reads exactly the bytes of r and closes the file
// again before returning. A short read is reported as ErrTruncatedRead; the
// caller never receives partial text.
func ReadRange(path string, r IndexRange) (text string, err error) {
	if r.Start > math.MaxInt64 || r.End() > math.MaxInt64 {
		return "", fmt.Errorf("%w: range [%d, %d) exceeds file offsets", ErrSizeOverflow, r.Start, r.End())
	}

	f, err := os.Open(path) //nolint:gosec // reading the user-supplied source is the point
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			text, err = "", multierr.Append(err, closeErr)
		}
	}()

	buf := make([]byte, r.Size)
	n, err := io.ReadFull(io.NewSectionReader(f, int64(r.Start), int64(r.Size)), buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: got %d of %d bytes at offset %d in %s", ErrTruncatedRead, n, r.Size, r.Start, path)
		}
		return "", fmt.Errorf("%w: %w", ErrTruncatedRead, err)
	}
	return string(buf), nil
}
