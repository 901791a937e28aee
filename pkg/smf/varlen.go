package smf

// ReadVarLen decodes a MIDI variable-length quantity: 7 bits per byte, most
// significant group first, high bit set on every byte but the last.
// It returns the number of bytes consumed and the decoded value. No maximum
// length is enforced; the input is bounded, so an unterminated quantity ends
// in ErrTruncatedInput.
func ReadVarLen(c *Cursor) (int, uint32, error) {
	var (
		n     int
		value uint32
	)
	for {
		b, err := c.ReadByte()
		if err != nil {
			return n, value, err
		}
		n++
		value = value<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return n, value, nil
		}
	}
}

// EncodeVarLen is the inverse of ReadVarLen.
func EncodeVarLen(v uint32) []byte {
	out := []byte{byte(v & 0x7F)}
	for v >>= 7; v > 0; v >>= 7 {
		out = append([]byte{byte(v&0x7F) | 0x80}, out...)
	}
	return out
}
