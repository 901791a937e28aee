package smf

import "github.com/pkg/errors"

// Status bytes that never take part in running status.
const (
	StatusSysEx       = 0xF0
	StatusSysExEscape = 0xF7
	StatusMeta        = 0xFF
)

// dataLengths holds the payload size of each channel voice command, indexed
// by the status high nibble.
var dataLengths = map[byte]int{
	0x8: 2, // note off
	0x9: 2, // note on
	0xA: 2, // aftertouch
	0xB: 2, // control change
	0xC: 1, // patch change
	0xD: 1, // channel pressure
	0xE: 2, // pitch bend
}

// EventDecoder decodes single events from a track. It carries the running
// status byte between calls and must not be shared between tracks.
type EventDecoder struct {
	status byte
}

// Status returns the current running status, or 0 if none is set.
func (d *EventDecoder) Status() byte {
	return d.status
}

// Reset clears the running status.
func (d *EventDecoder) Reset() {
	d.status = 0
}

// Decode consumes one event (without its delta-time) and returns the number
// of bytes consumed, the resolved status byte and the payload.
func (d *EventDecoder) Decode(c *Cursor) (int, byte, []byte, error) {
	start := c.Offset()
	b, err := c.PeekByte()
	if err != nil {
		return 0, 0, nil, err
	}

	status := d.status
	if b&0x80 != 0 {
		status = b
		if _, err := c.ReadByte(); err != nil {
			return 0, 0, nil, err
		}
	} else if status == 0 {
		return 0, 0, nil, errors.Wrapf(ErrMissingRunningStatus, "data byte 0x%02X at offset %d", b, start)
	}

	var payload []byte
	switch status {
	case StatusMeta:
		d.status = 0
		payload, err = d.decodeMeta(c)
	case StatusSysEx, StatusSysExEscape:
		d.status = 0
		payload, err = d.decodeSysEx(c)
	default:
		n, ok := dataLengths[status>>4]
		if !ok {
			return 0, 0, nil, errors.Wrapf(ErrInvalidCommand, "status 0x%02X at offset %d", status, start)
		}
		d.status = status
		payload, err = c.ReadN(n)
	}
	if err != nil {
		return 0, 0, nil, err
	}
	return c.Offset() - start, status, payload, nil
}

// decodeMeta reads the type byte, the length and the body. The length is a
// variable-length quantity; for bodies shorter than 128 bytes this is the
// same as a single length byte.
func (d *EventDecoder) decodeMeta(c *Cursor) ([]byte, error) {
	typ, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	_, length, err := ReadVarLen(c)
	if err != nil {
		return nil, err
	}
	body, err := c.ReadN(int(length))
	if err != nil {
		return nil, err
	}
	return append([]byte{typ}, body...), nil
}

// decodeSysEx reads a length-prefixed SysEx body. No terminator scan is
// done; a trailing 0xF7 is simply part of the body.
func (d *EventDecoder) decodeSysEx(c *Cursor) ([]byte, error) {
	_, length, err := ReadVarLen(c)
	if err != nil {
		return nil, err
	}
	return c.ReadN(int(length))
}
