// Package smf decodes Standard MIDI Files into classified, per-track event
// lists.
package smf

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var headerMagic = [4]byte{'M', 'T', 'h', 'd'}

const headerLength = 6

// SMF file formats.
const (
	FormatSingleTrack = 0
	FormatMultiTrack  = 1
	FormatMultiSong   = 2
)

// Header is the content of the MThd chunk.
type Header struct {
	Format     uint16
	TrackCount uint16
	// Division is ticks per quarter note. SMPTE divisions are rejected.
	Division uint16
}

// File is a decoded SMF.
type File struct {
	Header
	Tracks []*Track
}

// ReadFile reads and parses the SMF at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read MIDI file")
	}
	return Parse(data)
}

// Parse decodes a complete SMF held in memory. It stops at the first error;
// no partial result is returned.
func Parse(data []byte) (*File, error) {
	c := NewCursor(data)
	h, err := ParseHeader(c)
	if err != nil {
		return nil, err
	}
	f := &File{Header: h, Tracks: make([]*Track, 0, h.TrackCount)}
	for i := 0; i < int(h.TrackCount); i++ {
		t, err := DecodeTrack(c, i)
		if err != nil {
			return nil, err
		}
		f.Tracks = append(f.Tracks, t)
	}
	return f, nil
}

// ParseHeader reads the 14-byte MThd chunk. A bad magic fails before any
// further bytes are read.
func ParseHeader(c *Cursor) (Header, error) {
	var h Header
	magic, err := c.ReadN(4)
	if err != nil {
		return h, err
	}
	if [4]byte(magic) != headerMagic {
		return h, errors.Wrapf(ErrInvalidHeader, "chunk type %q", magic)
	}
	length, err := c.ReadUint32()
	if err != nil {
		return h, err
	}
	if length != headerLength {
		return h, errors.Wrapf(ErrInvalidHeader, "header length %d, want %d", length, headerLength)
	}
	if h.Format, err = c.ReadUint16(); err != nil {
		return h, err
	}
	if h.TrackCount, err = c.ReadUint16(); err != nil {
		return h, err
	}
	if h.Division, err = c.ReadUint16(); err != nil {
		return h, err
	}

	switch {
	case h.Format == FormatMultiSong:
		return h, errors.Wrap(ErrUnsupportedFormat, "multi-song (format 2) files")
	case h.Format > FormatMultiSong:
		return h, errors.Wrapf(ErrInvalidHeader, "format %d", h.Format)
	case h.Division&0x8000 != 0:
		return h, errors.Wrapf(ErrUnsupportedDivision, "SMPTE division 0x%04X", h.Division)
	}
	return h, nil
}

// IsSMF reports whether data starts with the MThd signature.
func IsSMF(data []byte) bool {
	return len(data) >= 4 && [4]byte(data[:4]) == headerMagic
}

// HasMIDIExt reports whether filename has a MIDI file extension.
func HasMIDIExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mid", ".midi", ".smf":
		return true
	}
	return false
}
