// Package crosscheck compares our decoding of a file with the decoding done
// by gitlab.com/gomidi/midi/v2/smf.
package crosscheck

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/james-see/midiscope/pkg/smf"
	log "github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	gosmf "gitlab.com/gomidi/midi/v2/smf"
)

// Counts holds what one decoder saw.
type Counts struct {
	Tracks     int
	Division   uint16
	NoteStarts map[uint8]int
	NoteEnds   map[uint8]int
}

func newCounts() Counts {
	return Counts{NoteStarts: make(map[uint8]int), NoteEnds: make(map[uint8]int)}
}

// Result is the outcome of a comparison.
type Result struct {
	Ours       Counts
	Theirs     Counts
	Mismatches []string
}

// OK reports whether both decoders agree.
func (r *Result) OK() bool {
	return len(r.Mismatches) == 0
}

// Verify decodes data with both decoders and compares track count,
// division and per-channel note counts.
func Verify(data []byte) (*Result, error) {
	f, err := smf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}
	theirs, err := gomidiCounts(data)
	if err != nil {
		return nil, err
	}
	return Compare(f, theirs), nil
}

// Compare checks a parsed file against counts taken from another decoder.
func Compare(f *smf.File, theirs Counts) *Result {
	r := &Result{Ours: ourCounts(f), Theirs: theirs}

	if r.Ours.Tracks != theirs.Tracks {
		r.mismatch("track count: ours %d, gomidi %d", r.Ours.Tracks, theirs.Tracks)
	}
	if r.Ours.Division != theirs.Division {
		r.mismatch("division: ours %d, gomidi %d", r.Ours.Division, theirs.Division)
	}
	for _, ch := range channels(r.Ours.NoteStarts, theirs.NoteStarts) {
		if a, b := r.Ours.NoteStarts[ch], theirs.NoteStarts[ch]; a != b {
			r.mismatch("channel %d note starts: ours %d, gomidi %d", ch+1, a, b)
		}
	}
	for _, ch := range channels(r.Ours.NoteEnds, theirs.NoteEnds) {
		if a, b := r.Ours.NoteEnds[ch], theirs.NoteEnds[ch]; a != b {
			r.mismatch("channel %d note ends: ours %d, gomidi %d", ch+1, a, b)
		}
	}

	if !r.OK() {
		log.WithField("mismatches", len(r.Mismatches)).Debug("decoders disagree")
	}
	return r
}

func (r *Result) mismatch(format string, args ...any) {
	r.Mismatches = append(r.Mismatches, fmt.Sprintf(format, args...))
}

func ourCounts(f *smf.File) Counts {
	c := newCounts()
	c.Tracks = len(f.Tracks)
	c.Division = f.Division
	for _, t := range f.Tracks {
		for _, ev := range t.Events {
			switch ev.Kind {
			case smf.NoteOn:
				c.NoteStarts[ev.Channel()]++
			case smf.NoteOff:
				c.NoteEnds[ev.Channel()]++
			}
		}
	}
	return c
}

func gomidiCounts(data []byte) (Counts, error) {
	c := newCounts()
	s, err := gosmf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return c, fmt.Errorf("gomidi failed to parse MIDI: %w", err)
	}
	c.Tracks = len(s.Tracks)
	if mt, ok := s.TimeFormat.(gosmf.MetricTicks); ok {
		c.Division = mt.Resolution()
	}

	var ch, key, vel uint8
	for _, track := range s.Tracks {
		for _, ev := range track {
			msg := midi.Message(ev.Message)
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				c.NoteStarts[ch]++
			case msg.GetNoteEnd(&ch, &key):
				c.NoteEnds[ch]++
			}
		}
	}
	return c, nil
}

func channels(a, b map[uint8]int) []uint8 {
	seen := make(map[uint8]bool)
	for ch := range a {
		seen[ch] = true
	}
	for ch := range b {
		seen[ch] = true
	}
	out := make([]uint8, 0, len(seen))
	for ch := range seen {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
