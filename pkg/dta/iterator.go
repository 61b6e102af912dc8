package dta

import "fmt"

// Iterator walks the spectra of a File in iteration order, reading one
// spectrum per call to Next. It is single-pass; call File.Iterator again to
// restart from the first spectrum without rescanning the source.
type Iterator struct {
	df  *File
	pos int // 0-based position of the next spectrum
}

// Iterator returns a new iterator positioned before the first spectrum.
func (df *File) Iterator() *Iterator {
	return &Iterator{df: df}
}

// HasNext reports whether Next will return another spectrum.
func (it *Iterator) HasNext() bool {
	if it.df.mode == modeDirectory {
		return it.pos < len(it.df.names)
	}
	// spectrum pos+1 exists
	return it.pos+1 <= len(it.df.ranges)
}

// Next reads and decodes the next spectrum and advances the iterator, even
// when decoding fails. Calling Next when HasNext is false panics.
func (it *Iterator) Next() (*Spectrum, error) {
	if !it.HasNext() {
		panic(fmt.Sprintf("dta: Next called on exhausted iterator after %d spectra", it.pos))
	}
	if it.df.mode == modeDirectory {
		name := it.df.names[it.pos]
		it.pos++
		return it.df.SpectrumByFilename(name)
	}
	it.pos++
	return it.df.SpectrumByOrdinal(it.pos)
}

// Remove always fails; spectra cannot be removed from a source.
func (it *Iterator) Remove() error {
	return fmt.Errorf("%w: spectra cannot be removed during iteration", ErrUnsupportedOperation)
}
