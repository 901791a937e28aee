package smf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVarLen(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		n     int
		value uint32
	}{
		{"zero", []byte{0x00}, 1, 0},
		{"64", []byte{0x40}, 1, 64},
		{"127", []byte{0x7F}, 1, 127},
		{"128", []byte{0x81, 0x00}, 2, 128},
		{"16383", []byte{0xFF, 0x7F}, 2, 16383},
		{"32768", []byte{0x82, 0x80, 0x00}, 3, 32768},
		{"max four bytes", []byte{0xFF, 0xFF, 0xFF, 0x7F}, 4, 0x0FFFFFFF},
		{"stops at terminator", []byte{0x81, 0x00, 0x90}, 2, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.data)
			n, value, err := ReadVarLen(c)
			require.NoError(t, err)
			assert.Equal(t, tt.n, n)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.n, c.Offset())
		})
	}
}

func TestReadVarLenTruncated(t *testing.T) {
	for _, data := range [][]byte{{}, {0x81}, {0xFF, 0xFF}} {
		_, _, err := ReadVarLen(NewCursor(data))
		assert.ErrorIs(t, err, ErrTruncatedInput, "data % X", data)
	}
}

func TestEncodeVarLen(t *testing.T) {
	for _, v := range []uint32{0, 1, 64, 127, 128, 480, 16383, 16384, 32768, 0x0FFFFFFF} {
		encoded := EncodeVarLen(v)
		n, got, err := ReadVarLen(NewCursor(encoded))
		require.NoError(t, err)
		assert.Equal(t, len(encoded), n)
		assert.Equal(t, v, got)
	}
	assert.Equal(t, []byte{0x81, 0x00}, EncodeVarLen(128))
}

func TestCursor(t *testing.T) {
	c := NewCursor([]byte{0x4D, 0x54, 0x00, 0x06, 0x00, 0x00, 0x01, 0xE0, 0xAA})

	b, err := c.PeekByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x4D), b)
	assert.Equal(t, 0, c.Offset())

	u16, err := c.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4D54), u16)

	u16, err = c.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(6), u16)

	u32, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(480), u32)
	assert.Equal(t, 1, c.Remaining())

	_, err = c.ReadN(2)
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.Equal(t, 8, c.Offset(), "failed read must not consume")

	_, err = c.Sub(2)
	assert.ErrorIs(t, err, ErrTruncatedInput)

	sub, err := c.Sub(1)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Remaining())
	b, err = sub.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), b)
	_, err = sub.ReadByte()
	assert.ErrorIs(t, err, ErrTruncatedInput)
}
