// Package song assembles decoded tracks into a single timeline and derives
// notes, positions and aggregate facts from it.
package song

import (
	"fmt"
	"sort"

	"github.com/james-see/midiscope/pkg/smf"
	log "github.com/sirupsen/logrus"
)

// DefaultTempo is the SMF default of 120 BPM in microseconds per quarter.
const DefaultTempo = 500000

// Note is a sounding interval built from a note on and its note off.
type Note struct {
	StartTick    uint64
	EndTick      uint64
	Channel      uint8
	Key          uint8
	Velocity     uint8
	IsPercussion bool
	Track        int
}

// Duration returns the note length in ticks.
func (n Note) Duration() uint64 {
	return n.EndTick - n.StartTick
}

// Song is the merged, read-only model of a file.
type Song struct {
	Tracks   []*smf.Track
	Division uint16
	Stream   *Stream
	// Notes are sorted by StartTick.
	Notes []Note
	// Channels lists the channels that carry channel voice events, ascending.
	Channels []uint8
	// Length is the tick of the last event.
	Length uint64

	// Unclosed counts note ons that never got a note off. They are not in Notes.
	Unclosed int
	// Orphans counts note offs that matched no sounding note.
	Orphans int
}

// Build creates a Song from a parsed file.
func Build(f *smf.File) (*Song, error) {
	return New(f.Division, f.Tracks)
}

// New creates a Song from a division and an ordered set of tracks.
func New(division uint16, tracks []*smf.Track) (*Song, error) {
	if division == 0 || division&0x8000 != 0 {
		return nil, fmt.Errorf("division %d: %w", division, smf.ErrUnsupportedDivision)
	}
	s := &Song{
		Tracks:   tracks,
		Division: division,
		Stream:   NewStream(),
	}
	s.mergeTracks()
	s.pairNotes()
	return s, nil
}

// mergeTracks places every event at its absolute tick. Tracks are merged in
// order, so at equal ticks track 0 comes before track 1.
func (s *Song) mergeTracks() {
	channels := make(map[uint8]bool)
	for _, t := range s.Tracks {
		var abs uint64
		for _, ev := range t.Events {
			abs += uint64(ev.Delta)
			s.Stream.Insert(Event{ClassifiedEvent: ev, Track: t.ID, Tick: abs})
			if ev.Kind.IsChannel() {
				channels[ev.Channel()] = true
			}
		}
		if abs > s.Length {
			s.Length = abs
		}
	}
	for ch := range channels {
		s.Channels = append(s.Channels, ch)
	}
	sort.Slice(s.Channels, func(i, j int) bool { return s.Channels[i] < s.Channels[j] })
}

// pairNotes matches each note off with the oldest sounding note of the same
// channel and key.
func (s *Song) pairNotes() {
	var open []Note
	s.Stream.Each(func(ev Event) bool {
		switch ev.Kind {
		case smf.NoteOn:
			open = append(open, Note{
				StartTick:    ev.Tick,
				EndTick:      ev.Tick,
				Channel:      ev.Channel(),
				Key:          ev.Key(),
				Velocity:     ev.Velocity(),
				IsPercussion: ev.IsPercussion(),
				Track:        ev.Track,
			})
		case smf.NoteOff:
			i := findOpen(open, ev.Channel(), ev.Key())
			if i < 0 {
				s.Orphans++
				log.WithFields(log.Fields{"tick": ev.Tick, "channel": ev.Channel(), "key": ev.Key()}).
					Debug("note off without sounding note")
				return true
			}
			n := open[i]
			n.EndTick = ev.Tick
			s.Notes = append(s.Notes, n)
			open = append(open[:i], open[i+1:]...)
		}
		return true
	})

	s.Unclosed = len(open)
	for _, n := range open {
		log.WithFields(log.Fields{"tick": n.StartTick, "channel": n.Channel, "key": n.Key}).
			Debug("note never released, dropped")
	}
	sort.SliceStable(s.Notes, func(i, j int) bool { return s.Notes[i].StartTick < s.Notes[j].StartTick })
}

func findOpen(open []Note, ch, key uint8) int {
	for i, n := range open {
		if n.Channel == ch && n.Key == key {
			return i
		}
	}
	return -1
}

// NotesInRange returns the notes sounding in the window, that is every note
// with EndTick > start and StartTick <= end.
func (s *Song) NotesInRange(start, end uint64) []Note {
	var out []Note
	for _, n := range s.Notes {
		if n.StartTick > end {
			break
		}
		if n.EndTick > start {
			out = append(out, n)
		}
	}
	return out
}

// Tempo returns the first tempo of the song in microseconds per quarter
// note, or DefaultTempo if none is set.
func (s *Song) Tempo() uint32 {
	tempo := uint32(DefaultTempo)
	s.Stream.Each(func(ev Event) bool {
		if usec, ok := ev.Tempo(); ok && usec > 0 {
			tempo = usec
			return false
		}
		return true
	})
	return tempo
}
