package smf

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Cursor is a sequential big-endian reader over an in-memory byte slice.
// SMF data is always big-endian.
type Cursor struct {
	data []byte
	off  int
}

// NewCursor returns a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

func (c *Cursor) need(n int) error {
	if n < 0 || c.Remaining() < n {
		return errors.Wrapf(ErrTruncatedInput, "need %d byte(s) at offset %d, have %d", n, c.off, c.Remaining())
	}
	return nil
}

// PeekByte returns the next byte without consuming it.
func (c *Cursor) PeekByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	return c.data[c.off], nil
}

// ReadByte consumes and returns the next byte.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.PeekByte()
	if err != nil {
		return 0, err
	}
	c.off++
	return b, nil
}

// ReadN consumes n bytes and returns a copy of them.
func (c *Cursor) ReadN(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.data[c.off:c.off+n])
	c.off += n
	return out, nil
}

// Sub consumes n bytes and returns a new cursor bounded to exactly them.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	sub := &Cursor{data: c.data[c.off : c.off+n]}
	c.off += n
	return sub, nil
}

// ReadUint16 consumes a big-endian 16-bit value.
func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.data[c.off:])
	c.off += 2
	return v, nil
}

// ReadUint32 consumes a big-endian 32-bit value.
func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v, nil
}
