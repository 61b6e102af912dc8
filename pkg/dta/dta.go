// Package dta provides random access to DTA peak-list sources.
//
// A source is either a single file holding one or more spectra separated by
// blank lines, or a directory whose *.dta members hold one spectrum each.
// Open inspects the source once and builds an in-memory index; every later
// lookup reuses that index and opens the source only for the duration of a
// single read.
package dta

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/multimediallc/dta-reader/pkg/msreader"
)

type mode int

const (
	modeFile mode = iota
	modeDirectory
)

func (m mode) String() string {
	if m == modeDirectory {
		return "directory"
	}
	return "file"
}

// File is an indexed DTA source. It holds no open file handle, so a File may
// be shared by concurrent readers once Open returns.
type File struct {
	source  string
	mode    mode
	names   []string     // directory mode: member filenames in listing order
	ranges  []IndexRange // file mode: spectrum n lives at ranges[n-1]
	decoder Decoder
	logger  *zap.Logger
}

var _ msreader.Reader = (*File)(nil)

// Open indexes the DTA source at path. A directory is listed for members
// matching the configured pattern; any other path is scanned for
// blank-line separated spectra. The member pattern is only validated for
// directories. Open either returns a complete index or an error.
func Open(path string, opts ...Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	df := &File{
		source:  path,
		decoder: o.decoder,
		logger:  o.logger.With(zap.String("source", path)),
	}
	t0 := time.Now()
	if info.IsDir() {
		if !doublestar.ValidatePattern(o.pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, o.pattern)
		}
		df.mode = modeDirectory
		df.names = listDirectory(path, o.pattern, df.logger)
	} else {
		df.mode = modeFile
		if df.ranges, err = indexFile(path); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
		}
	}
	df.logger.Debug("indexed dta source",
		zap.Stringer("mode", df.mode),
		zap.Int("spectra", df.SpectraCount()),
		zap.Duration("elapsed", time.Since(t0)),
	)
	return df, nil
}

func indexFile(path string) (ranges []IndexRange, err error) {
	src, err := os.Open(path) //nolint:gosec // user-supplied source file
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			ranges, err = nil, multierr.Append(err, closeErr)
		}
	}()
	return SegmentBlankLines(src)
}

// Source returns the path the File was opened with.
func (df *File) Source() string {
	return df.source
}

// IsDirectory reports whether the source was a directory when opened.
func (df *File) IsDirectory() bool {
	return df.mode == modeDirectory
}

// SpectraCount returns the number of indexed spectra.
func (df *File) SpectraCount() int {
	if df.mode == modeDirectory {
		return len(df.names)
	}
	return len(df.ranges)
}

// SpectraIDs returns the member filenames in directory mode, otherwise the
// ordinals 1..N as strings.
func (df *File) SpectraIDs() []string {
	if df.mode == modeDirectory {
		return slices.Clone(df.names)
	}
	ids := make([]string, len(df.ranges))
	for i := range df.ranges {
		ids[i] = strconv.Itoa(i + 1)
	}
	return ids
}

// ResolveOrdinal returns the byte range of the spectrum with the given
// 1-based ordinal.
func (df *File) ResolveOrdinal(ordinal int) (IndexRange, error) {
	if df.mode != modeFile {
		return IndexRange{}, fmt.Errorf("%w: ordinal %d used on a directory source; spectra are identified by filename", ErrInvalidIdentifier, ordinal)
	}
	if ordinal < 1 || ordinal > len(df.ranges) {
		return IndexRange{}, fmt.Errorf("%w: spectrum with index %d does not exist in %s", ErrNotFound, ordinal, df.source)
	}
	return df.ranges[ordinal-1], nil
}

// ResolveFilename returns the path of a directory member. Membership in the
// listing is not checked; a missing member surfaces when it is read.
func (df *File) ResolveFilename(name string) (string, error) {
	if df.mode != modeDirectory {
		return "", fmt.Errorf("%w: filename %q used on a concatenated file; spectra are identified by ordinal", ErrInvalidIdentifier, name)
	}
	if name == "" {
		return "", fmt.Errorf("%w: empty filename", ErrInvalidIdentifier)
	}
	return filepath.Join(df.source, name), nil
}

// SpectrumByOrdinal reads and decodes the spectrum with the given 1-based
// ordinal from a concatenated file.
func (df *File) SpectrumByOrdinal(ordinal int) (*Spectrum, error) {
	r, err := df.ResolveOrdinal(ordinal)
	if err != nil {
		return nil, err
	}
	text, err := ReadRange(df.source, r)
	if err != nil {
		return nil, err
	}
	return df.decoder.DecodeText(text, ordinal)
}

// SpectrumByFilename decodes the named member of a directory source.
func (df *File) SpectrumByFilename(name string) (*Spectrum, error) {
	path, err := df.ResolveFilename(name)
	if err != nil {
		return nil, err
	}
	return df.decoder.DecodeFile(path)
}

// Lookup resolves a string identifier in the mode of the source: a decimal
// ordinal for concatenated files, a filename for directories.
func (df *File) Lookup(id string) (*Spectrum, error) {
	if df.mode == modeDirectory {
		return df.SpectrumByFilename(id)
	}
	ordinal, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a spectrum index", ErrInvalidIdentifier, id)
	}
	return df.SpectrumByOrdinal(ordinal)
}

// SpectrumAt returns the spectrum at the 0-based position in iteration order.
func (df *File) SpectrumAt(index int) (*Spectrum, error) {
	if df.mode == modeFile {
		return df.SpectrumByOrdinal(index + 1)
	}
	if index < 0 || index >= len(df.names) {
		return nil, fmt.Errorf("%w: no member at position %d in %s", ErrNotFound, index, df.source)
	}
	return df.SpectrumByFilename(df.names[index])
}

// SpectrumByID implements msreader.Reader.
func (df *File) SpectrumByID(id string) (msreader.Spectrum, error) {
	return generic(df.Lookup(id))
}

// SpectrumByIndex implements msreader.Reader.
func (df *File) SpectrumByIndex(index int) (msreader.Spectrum, error) {
	return generic(df.SpectrumAt(index))
}

// All returns a lazy sequence over every spectrum in iteration order. Each
// step reads and decodes one spectrum; a failed step yields its error and
// the sequence continues with the next spectrum.
func (df *File) All() iter.Seq2[*Spectrum, error] {
	return func(yield func(*Spectrum, error) bool) {
		it := df.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Spectra implements msreader.Reader on top of All.
func (df *File) Spectra() iter.Seq2[msreader.Spectrum, error] {
	return func(yield func(msreader.Spectrum, error) bool) {
		for s, err := range df.All() {
			if !yield(generic(s, err)) {
				return
			}
		}
	}
}

// MsLevels reports the MS levels present in the source.
func (df *File) MsLevels() []int {
	return []int{MsLevel}
}

// MsNIndexes returns the ranges of all level 2 spectra in ordinal order.
// Directory sources have no ranges and always return an empty list.
func (df *File) MsNIndexes(msLevel int) []msreader.IndexElement {
	if msLevel != MsLevel || df.mode == modeDirectory {
		return []msreader.IndexElement{}
	}
	return slices.Clone(df.ranges)
}

// IndexElementForIDs maps each ordinal string to its range. Directory
// sources return an empty map.
func (df *File) IndexElementForIDs() map[string]msreader.IndexElement {
	if df.mode == modeDirectory {
		return map[string]msreader.IndexElement{}
	}
	m := make(map[string]msreader.IndexElement, len(df.ranges))
	for i, r := range df.ranges {
		m[strconv.Itoa(i+1)] = r
	}
	return m
}

// AcceptsFile reports that concatenated files are a supported source.
func (df *File) AcceptsFile() bool { return true }

// AcceptsDirectory reports that directories of members are a supported source.
func (df *File) AcceptsDirectory() bool { return true }

// ReadIndexedSpectrum decodes the spectrum at a range that is already known,
// without indexing the file. The spectrum is given ordinal 1.
func ReadIndexedSpectrum(path string, r *IndexRange) (*Spectrum, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: missing source file", ErrInvalidIdentifier)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: missing index element", ErrInvalidIdentifier)
	}
	text, err := ReadRange(path, *r)
	if err != nil {
		return nil, err
	}
	return RawDecoder().DecodeText(text, 1)
}

func generic(s *Spectrum, err error) (msreader.Spectrum, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
