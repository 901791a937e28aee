package smf

import "github.com/pkg/errors"

// Parse errors. Every decode failure wraps exactly one of these, so callers
// can test with errors.Is regardless of the context attached.
var (
	ErrInvalidHeader        = errors.New("invalid MIDI header")
	ErrUnsupportedFormat    = errors.New("unsupported MIDI format")
	ErrUnsupportedDivision  = errors.New("unsupported time division")
	ErrInvalidTrackHeader   = errors.New("invalid track header")
	ErrTrackLengthMismatch  = errors.New("track length mismatch")
	ErrInvalidCommand       = errors.New("invalid MIDI command")
	ErrMissingRunningStatus = errors.New("data byte without running status")
	ErrTruncatedInput       = errors.New("truncated input")
)
