// Package msreader defines the contract shared by random-access mass
// spectrometry peak-list readers.
package msreader

import "iter"

// Spectrum is a decoded spectrum as seen by generic consumers.
type Spectrum interface {
	// ID returns the identifier the spectrum was looked up by.
	ID() string
	MsLevel() int
}

// IndexElement is the half-open byte span [Start, Start+Size) of one
// spectrum within its source file.
type IndexElement struct {
	Start uint64 `json:"start"`
	Size  uint32 `json:"size"`
}

// End returns the offset one past the last byte of the span.
func (e IndexElement) End() uint64 {
	return e.Start + uint64(e.Size)
}

// Reader gives random and sequential access to the spectra of one source.
type Reader interface {
	SpectraCount() int
	// SpectraIDs returns the identifiers in iteration order.
	SpectraIDs() []string
	SpectrumByID(id string) (Spectrum, error)
	// SpectrumByIndex returns the spectrum at the 0-based position.
	SpectrumByIndex(index int) (Spectrum, error)
	// Spectra returns a lazy sequence decoding one spectrum per step.
	Spectra() iter.Seq2[Spectrum, error]

	MsLevels() []int
	// MsNIndexes lists the byte ranges of all spectra with the given MS level.
	MsNIndexes(msLevel int) []IndexElement
	// IndexElementForIDs maps identifiers to byte ranges for caching layers.
	IndexElementForIDs() map[string]IndexElement

	AcceptsFile() bool
	AcceptsDirectory() bool
}
