package dta

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MsLevel is the only MS level a DTA file can hold.
const MsLevel = 2

// Spectrum is one located DTA peak list. The text is handed over as found in
// the source; its peak lines are left for downstream decoders.
type Spectrum struct {
	// Ordinal is the 1-based position in a concatenated file, 0 for
	// spectra read from a directory member.
	Ordinal int
	// Filename is set for spectra read from a directory member.
	Filename string
	Text     string
}

// ID returns the filename in directory mode, otherwise the ordinal.
func (s *Spectrum) ID() string {
	if s.Filename != "" {
		return s.Filename
	}
	return strconv.Itoa(s.Ordinal)
}

// MsLevel always returns 2.
func (s *Spectrum) MsLevel() int {
	return MsLevel
}

// Lines returns the non-blank lines of the spectrum text.
func (s *Spectrum) Lines() []string {
	lines := strings.Split(strings.ReplaceAll(s.Text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// Decoder turns located spectrum text into a Spectrum. Errors returned by a
// Decoder are passed to callers unchanged.
type Decoder interface {
	// DecodeText decodes a range read from a concatenated file.
	DecodeText(text string, ordinal int) (*Spectrum, error)
	// DecodeFile decodes a whole directory member.
	DecodeFile(path string) (*Spectrum, error)
}

type rawDecoder struct{}

// RawDecoder keeps the located text verbatim. It rejects text without any
// non-blank line.
func RawDecoder() Decoder {
	return rawDecoder{}
}

func (rawDecoder) DecodeText(text string, ordinal int) (*Spectrum, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: spectrum %d is empty", ErrDecode, ordinal)
	}
	return &Spectrum{Ordinal: ordinal, Text: text}, nil
}

func (rawDecoder) DecodeFile(path string) (*Spectrum, error) {
	b, err := os.ReadFile(path) //nolint:gosec // member of the user-supplied directory
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	if strings.TrimSpace(string(b)) == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrDecode, name)
	}
	return &Spectrum{Filename: name, Text: string(b)}, nil
}
