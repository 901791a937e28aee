package smf

import (
	"testing"

	"github.com/james-see/midiscope/pkg/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(t *Track) []EventKind {
	out := make([]EventKind, len(t.Events))
	for i, ev := range t.Events {
		out[i] = ev.Kind
	}
	return out
}

func TestParseReference(t *testing.T) {
	f, err := Parse(fixture.Reference())
	require.NoError(t, err)

	assert.Equal(t, uint16(FormatMultiTrack), f.Format)
	assert.Equal(t, uint16(96), f.Division)
	require.Len(t, f.Tracks, 4)

	conductor := f.Tracks[0]
	assert.Equal(t, []EventKind{MetaTimeSignature, MetaTempo, MetaEndOfTrack}, kinds(conductor))
	assert.Equal(t, "Time Signature 4/4, 24 clocks/click, 8 32nds/quarter", conductor.Events[0].Description)
	assert.Equal(t, "Tempo 120.00 BPM (500000 µs/quarter)", conductor.Events[1].Description)
	assert.Equal(t, uint32(384), conductor.Events[2].Delta)
	usec, ok := conductor.Events[1].Tempo()
	assert.True(t, ok)
	assert.Equal(t, uint32(500000), usec)

	first := f.Tracks[1]
	assert.Equal(t, []EventKind{PatchChange, NoteOn, NoteOff, MetaEndOfTrack}, kinds(first))
	assert.Equal(t, "Patch Change Electric Piano 2, channel 1", first.Events[0].Description)
	assert.Equal(t, uint32(192), first.Events[1].Delta)
	assert.Equal(t, byte(0x90), first.Events[2].Status, "note off via running status note on")

	third := f.Tracks[3]
	assert.Equal(t, []EventKind{PatchChange, NoteOn, NoteOn, NoteOff, NoteOff, MetaEndOfTrack}, kinds(third))
	assert.Equal(t, uint8(0x3C), third.Events[2].Key())
	assert.Equal(t, uint8(2), third.Events[2].Channel())

	for i, tr := range f.Tracks {
		assert.Equal(t, i, tr.ID)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"track magic", append([]byte("MTrk"), 0, 0, 0, 6, 0, 0, 0, 1, 0, 0x60), ErrInvalidHeader},
		{"bad length", []byte{'M', 'T', 'h', 'd', 0, 0, 0, 7, 0, 0, 0, 1, 0, 0x60}, ErrInvalidHeader},
		{"multi song", fixture.Header(2, 1, 96), ErrUnsupportedFormat},
		{"unknown format", fixture.Header(3, 1, 96), ErrInvalidHeader},
		{"smpte", fixture.Header(1, 1, 0xE250), ErrUnsupportedDivision},
		{"short", []byte("MTh"), ErrTruncatedInput},
		{"short header", []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 1}, ErrTruncatedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseHeaderStopsAtBadMagic(t *testing.T) {
	c := NewCursor([]byte("RIFF\x00\x00\x00\x06\x00\x01\x00\x01\x00\x60"))
	_, err := ParseHeader(c)
	assert.ErrorIs(t, err, ErrInvalidHeader)
	assert.Equal(t, 4, c.Offset())
}

func TestDecodeTrackErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"bad magic", append([]byte("MThd"), 0, 0, 0, 4, 0, 0xFF, 0x2F, 0), ErrInvalidTrackHeader},
		{"event overruns length", append([]byte("MTrk"), 0, 0, 0, 3, 0, 0x90, 0x3C, 0x40), ErrTrackLengthMismatch},
		{"delta overruns length", append([]byte("MTrk"), 0, 0, 0, 1, 0x81, 0x00, 0xFF, 0x2F, 0), ErrTrackLengthMismatch},
		{"chunk shorter than declared", append([]byte("MTrk"), 0, 0, 0, 9, 0, 0xFF, 0x2F, 0), ErrTruncatedInput},
		{"missing running status", fixture.Chunk([]byte{0, 0x3C, 0x40}), ErrMissingRunningStatus},
		{"invalid command", fixture.Chunk([]byte{0, 0xF4}), ErrInvalidCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTrack(NewCursor(tt.data), 0)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeTrackLargeSysEx(t *testing.T) {
	payload := make([]byte, 60000)
	payload[len(payload)-1] = 0xF7
	body := append([]byte{0, 0xF0}, EncodeVarLen(uint32(len(payload)))...)
	body = append(body, payload...)
	body = append(body, 0, 0xFF, 0x2F, 0)

	track, err := DecodeTrack(NewCursor(fixture.Chunk(body)), 0)
	require.NoError(t, err)
	require.Len(t, track.Events, 2)
	assert.Equal(t, SysEx, track.Events[0].Kind)
	assert.LessOrEqual(t, cap(track.Events), maxEventHint)
}

func TestDecodeTrackBadMagicReadsNothingMore(t *testing.T) {
	c := NewCursor(append([]byte("XXXX"), 0, 0, 0, 0))
	_, err := DecodeTrack(c, 3)
	assert.ErrorIs(t, err, ErrInvalidTrackHeader)
	assert.Equal(t, 4, c.Offset())
}

func TestRunningStatusResetBetweenTracks(t *testing.T) {
	data := fixture.Header(1, 2, 96)
	data = append(data, fixture.Chunk([]byte{0, 0x90, 0x3C, 0x40, 0, 0x3C, 0x00})...)
	data = append(data, fixture.Chunk([]byte{0, 0x3E, 0x40})...)

	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrMissingRunningStatus)
}

func TestParseMissingTrack(t *testing.T) {
	data := append(fixture.Header(1, 2, 96), fixture.Chunk([]byte{0, 0xFF, 0x2F, 0})...)
	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestParseBuiltFile(t *testing.T) {
	data, err := fixture.Build(fixture.Song{
		Division: 480,
		Tracks: []fixture.Track{{
			Name: "Piano",
			Notes: []fixture.Note{
				{Key: 60, Velocity: 64, Start: 0, Duration: 480},
				{Key: 64, Velocity: 64, Start: 480, Duration: 480},
			},
		}},
	})
	require.NoError(t, err)
	require.True(t, IsSMF(data))

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(480), f.Division)
	require.Len(t, f.Tracks, 2)
	assert.Equal(t, "Piano", f.Tracks[1].Name())

	var ons, offs int
	for _, ev := range f.Tracks[1].Events {
		switch ev.Kind {
		case NoteOn:
			ons++
		case NoteOff:
			offs++
		}
	}
	assert.Equal(t, 2, ons)
	assert.Equal(t, 2, offs)
}

func TestHasMIDIExt(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"song.mid", true},
		{"song.MIDI", true},
		{"song.smf", true},
		{"song.syx", false},
		{"song", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := HasMIDIExt(tt.filename); got != tt.expected {
				t.Errorf("HasMIDIExt(%q) = %v, want %v", tt.filename, got, tt.expected)
			}
		})
	}
}
