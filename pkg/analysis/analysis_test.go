package analysis

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/james-see/midiscope/pkg/fixture"
	"github.com/james-see/midiscope/pkg/smf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progression(t *testing.T) []byte {
	t.Helper()
	triad := func(start uint32, keys ...uint8) []fixture.Note {
		var out []fixture.Note
		for _, k := range keys {
			out = append(out, fixture.Note{Key: k, Velocity: 96, Start: start, Duration: 480})
		}
		return out
	}
	var chords []fixture.Note
	chords = append(chords, triad(0, 60, 64, 67)...)
	chords = append(chords, triad(480, 57, 60, 64)...)

	data, err := fixture.Build(fixture.Song{
		Division: 480,
		Tempo:    90,
		Tracks: []fixture.Track{
			{Name: "Chords", Notes: chords},
			{Name: "Drums", Notes: []fixture.Note{
				{Channel: 9, Key: 36, Velocity: 120, Start: 0, Duration: 240},
				{Channel: 9, Key: 38, Velocity: 120, Start: 480, Duration: 240},
			}},
		},
	})
	require.NoError(t, err)
	return data
}

func TestAnalyze(t *testing.T) {
	r, err := Analyze(progression(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, uint16(480), r.Header.Division)
	assert.Equal(t, []string{"", "Chords", "Drums"}, r.TrackNames)
	assert.InDelta(t, 90.0, r.BPM, 0.01)
	assert.Equal(t, []uint8{0, 9}, r.Song.Channels)

	require.Len(t, r.Windows, 2)
	first, second := r.Windows[0], r.Windows[1]

	assert.Equal(t, "C", first.Chord)
	assert.Equal(t, "1:1", first.Position.String())
	assert.Equal(t, uint64(0), first.Start)
	assert.Equal(t, uint64(480), first.End)
	require.Len(t, first.Notes, 3)
	for _, n := range first.Notes {
		assert.False(t, n.IsPercussion)
	}

	assert.Equal(t, "Am", second.Chord)
	assert.Equal(t, "1:2", second.Position.String())
	assert.Equal(t, uint8(57), second.Notes[0].Key, "lowest note first")
	assert.LessOrEqual(t, second.Distance, DefaultOptions().Threshold)
}

func TestAnalyzeWiderWindow(t *testing.T) {
	r, err := Analyze(progression(t), Options{Threshold: 0.5, Window: 4})
	require.NoError(t, err)
	require.Len(t, r.Windows, 1)
	assert.Len(t, r.Windows[0].Notes, 6)
}

func TestAnalyzeStrictThreshold(t *testing.T) {
	r, err := Analyze(progression(t), Options{Threshold: 0.01, Window: 1})
	require.NoError(t, err)
	for _, w := range r.Windows {
		assert.Empty(t, w.Chord)
		assert.Empty(t, w.Candidates)
	}
}

func TestAnalyzeReference(t *testing.T) {
	r, err := Analyze(fixture.Reference(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, uint32(500000), r.Tempo)
	assert.InDelta(t, 120.0, r.BPM, 1e-9)
	assert.Len(t, r.Windows, 4)
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := Analyze([]byte("nope"), DefaultOptions())
	assert.ErrorIs(t, err, smf.ErrInvalidHeader)

	_, err = Analyze([]byte("MTh"), DefaultOptions())
	assert.ErrorIs(t, err, smf.ErrTruncatedInput)

	_, err = Analyze(fixture.Header(2, 1, 96), DefaultOptions())
	assert.ErrorIs(t, err, smf.ErrUnsupportedFormat)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"zero threshold", Options{Threshold: 0, Window: 1}, false},
		{"negative threshold", Options{Threshold: -1, Window: 1}, true},
		{"NaN threshold", Options{Threshold: math.NaN(), Window: 1}, true},
		{"zero window", Options{Threshold: 0.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	a, err := New(DefaultOptions())
	require.NoError(t, err)

	mid := filepath.Join(dir, "song.mid")
	require.NoError(t, os.WriteFile(mid, progression(t), 0644))
	r, err := a.AnalyzeFile(mid)
	require.NoError(t, err)
	assert.Len(t, r.Windows, 2)

	noExt := filepath.Join(dir, "song")
	require.NoError(t, os.WriteFile(noExt, fixture.Reference(), 0644))
	_, err = a.AnalyzeFile(noExt)
	assert.NoError(t, err)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0644))
	_, err = a.AnalyzeFile(txt)
	assert.ErrorIs(t, err, ErrNotMIDI)

	_, err = a.AnalyzeFile(filepath.Join(dir, "missing.mid"))
	assert.Error(t, err)
}

func TestAnalyzeDemoBars(t *testing.T) {
	data, err := fixture.Build(fixture.Demo())
	require.NoError(t, err)

	r, err := Analyze(data, Options{Threshold: DefaultOptions().Threshold, Window: 4})
	require.NoError(t, err)
	require.Len(t, r.Windows, 4)

	var got []string
	for _, w := range r.Windows {
		got = append(got, w.Chord)
	}
	assert.Equal(t, []string{"C", "Am", "F", "G"}, got)
	assert.Equal(t, "3:1", r.Windows[2].Position.String())
}

func TestAnalyzeSkipsSilence(t *testing.T) {
	triad := func(start uint32) []fixture.Note {
		return []fixture.Note{
			{Key: 60, Velocity: 90, Start: start, Duration: 96},
			{Key: 64, Velocity: 90, Start: start, Duration: 96},
			{Key: 67, Velocity: 90, Start: start, Duration: 96},
		}
	}
	data, err := fixture.Build(fixture.Song{
		Division: 96,
		Tracks: []fixture.Track{
			{Name: "Keys", Notes: append(triad(0), triad(96*1000)...)},
			{Name: "Drums", Notes: []fixture.Note{{Channel: 9, Key: 36, Velocity: 100, Start: 96 * 500, Duration: 48}}},
		},
	})
	require.NoError(t, err)

	r, err := Analyze(data, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, r.Windows, 2)
	assert.Equal(t, uint64(0), r.Windows[0].Start)
	assert.Equal(t, uint64(96000), r.Windows[1].Start)
	assert.Equal(t, uint64(96096), r.Windows[1].End)
	assert.Equal(t, "251:1", r.Windows[1].Position.String())
	for _, w := range r.Windows {
		assert.Equal(t, "C", w.Chord)
	}
}

func TestAnalyzeLongSilence(t *testing.T) {
	// one end of track two million ticks in, at one tick per quarter
	data := append(fixture.Header(0, 1, 1), fixture.Chunk([]byte{0x81, 0x80, 0x80, 0x00, 0xff, 0x2f, 0})...)

	r, err := Analyze(data, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<21), r.Song.Length)
	assert.Empty(t, r.Windows)
}

func TestAnalyzeTooManyWindows(t *testing.T) {
	data, err := fixture.Build(fixture.Song{
		Division: 1,
		Tracks: []fixture.Track{{Name: "Drone", Notes: []fixture.Note{
			{Key: 48, Velocity: 80, Start: 0, Duration: MaxWindows + 1},
		}}},
	})
	require.NoError(t, err)

	_, err = Analyze(data, DefaultOptions())
	assert.ErrorIs(t, err, ErrTooManyWindows)

	r, err := Analyze(data, Options{Threshold: 0.5, Window: 2})
	require.NoError(t, err)
	assert.Len(t, r.Windows, MaxWindows/2+1)
}

func TestAnalyzeWindowOverflow(t *testing.T) {
	for _, window := range []uint64{1 << 62, math.MaxUint64 / 2} {
		opts := Options{Threshold: 0.5, Window: window}
		require.NoError(t, opts.Validate())

		_, err := Analyze(fixture.Reference(), opts)
		assert.ErrorIs(t, err, ErrInvalidOptions, "window %d", window)
	}
}
