package dta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/multimediallc/dta-reader/pkg/msreader"
)

// IndexRange is the byte span of one spectrum within a concatenated file.
type IndexRange = msreader.IndexElement

const scanBufferSize = 1024 * 1000

// SegmentBlankLines scans r line by line and returns one range per maximal
// run of non-blank lines, in source order. A line is blank when nothing but
// whitespace or control bytes remain after trimming. Ranges cover the
// run's lines including their line breaks and exclude the separating blank
// lines.
//
// The first line is treated as if it followed a blank line, so content at
// offset 0 opens a segment and leading blank lines never produce one.
func SegmentBlankLines(r io.Reader) ([]IndexRange, error) {
	br := bufio.NewReaderSize(r, scanBufferSize)

	var (
		ranges    []IndexRange
		offset    uint64 // offset just past the last consumed byte
		lineStart uint64
		start     uint64 // start of the open segment
		prevBlank = true
		lineBlank = true
	)

	closeSegment := func(end uint64) error {
		size := end - start
		if size == 0 {
			return nil
		}
		if size > math.MaxUint32 {
			return fmt.Errorf("%w: segment at offset %d is %d bytes", ErrSizeOverflow, start, size)
		}
		ranges = append(ranges, IndexRange{Start: start, Size: uint32(size)})
		return nil
	}

	for {
		frag, err := br.ReadSlice('\n')
		offset += uint64(len(frag))
		if lineBlank && !isBlank(frag) {
			lineBlank = false
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			// line longer than the buffer; keep accumulating it
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		if len(frag) > 0 || offset > lineStart {
			if lineBlank {
				if !prevBlank {
					if cerr := closeSegment(lineStart); cerr != nil {
						return nil, cerr
					}
				}
				start = offset
				prevBlank = true
			} else {
				prevBlank = false
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		lineStart = offset
		lineBlank = true
	}

	if !prevBlank {
		if err := closeSegment(offset); err != nil {
			return nil, err
		}
	}
	return ranges, nil
}

// isBlank reports whether b holds only bytes the line trim removes: spaces,
// tabs, line breaks and other control characters.
func isBlank(b []byte) bool {
	for _, c := range b {
		if c > ' ' {
			return false
		}
	}
	return true
}
