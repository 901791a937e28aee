package fixture

// Reference returns the four-track format 1 example file from the Standard
// MIDI Files 1.0 document. It uses running status, including note on with
// velocity zero as note off.
func Reference() []byte {
	return []byte{
		// MThd, length 6, format 1, 4 tracks, 96 ticks per quarter
		0x4d, 0x54, 0x68, 0x64, 0, 0, 0, 6, 0, 1, 0, 4, 0, 0x60,

		// conductor
		0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x14,
		0, 0xff, 0x58, 4, 4, 2, 0x18, 8, // time signature 4/4
		0, 0xff, 0x51, 3, 7, 0xa1, 0x20, // tempo 500000
		0x83, 0, 0xff, 0x2f, 0, // end of track at 384

		// channel 1
		0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x10,
		0, 0xc0, 5,
		0x81, 0x40, 0x90, 0x4c, 0x20,
		0x81, 0x40, 0x4c, 0,
		0, 0xff, 0x2f, 0,

		// channel 2
		0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0xf,
		0, 0xc1, 0x2e,
		0x60, 0x91, 0x43, 0x40,
		0x82, 0x20, 0x43, 0,
		0, 0xff, 0x2f, 0,

		// channel 3, two notes under one running status
		0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x15,
		0, 0xc2, 0x46,
		0, 0x92, 0x30, 0x60,
		0, 0x3c, 0x60,
		0x83, 0, 0x30, 0,
		0, 0x3c, 0,
		0, 0xff, 0x2f, 0,
	}
}

// Chunk wraps body in an MTrk chunk header.
func Chunk(body []byte) []byte {
	n := len(body)
	out := []byte{'M', 'T', 'r', 'k', byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	return append(out, body...)
}

// Header returns an MThd chunk.
func Header(format, tracks, division uint16) []byte {
	return []byte{
		'M', 'T', 'h', 'd', 0, 0, 0, 6,
		byte(format >> 8), byte(format),
		byte(tracks >> 8), byte(tracks),
		byte(division >> 8), byte(division),
	}
}
