// Package fixture builds Standard MIDI Files from simple note lists. It is
// used by the demo command and throughout the tests.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Note is one note to be written.
type Note struct {
	Channel  uint8
	Key      uint8
	Velocity uint8
	Start    uint32
	Duration uint32
}

// Track is a named list of notes.
type Track struct {
	Name  string
	Notes []Note
}

// Song describes a file to build. A conductor track carrying tempo and a
// 4/4 time signature is always written first.
type Song struct {
	Division uint16
	Tempo    float64
	Tracks   []Track
}

// Build renders song as SMF bytes.
func Build(song Song) ([]byte, error) {
	if song.Division == 0 {
		song.Division = 480
	}
	if song.Tempo <= 0 {
		song.Tempo = 120.0
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(song.Division)

	var conductor smf.Track
	usec := uint32(60000000.0 / song.Tempo)
	conductor.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(usec >> 16),
		byte(usec >> 8),
		byte(usec),
	}))
	conductor.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))
	conductor.Close(0)
	if err := s.Add(conductor); err != nil {
		return nil, fmt.Errorf("failed to add conductor track: %w", err)
	}

	for i, t := range song.Tracks {
		track, err := buildTrack(t)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		if err := s.Add(track); err != nil {
			return nil, fmt.Errorf("failed to add track %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

type timed struct {
	tick uint32
	off  bool
	msg  []byte
}

func buildTrack(t Track) (smf.Track, error) {
	var track smf.Track
	if t.Name != "" {
		if len(t.Name) > 127 {
			return nil, errors.New("track name too long")
		}
		meta := append([]byte{0xFF, 0x03, byte(len(t.Name))}, t.Name...)
		track.Add(0, smf.Message(meta))
	}

	events := make([]timed, 0, len(t.Notes)*2)
	for _, n := range t.Notes {
		if n.Channel > 15 || n.Key > 127 || n.Velocity > 127 {
			return nil, fmt.Errorf("note out of range: %+v", n)
		}
		vel := n.Velocity
		if vel == 0 {
			vel = 100
		}
		events = append(events,
			timed{tick: n.Start, msg: midi.NoteOn(n.Channel, n.Key, vel)},
			timed{tick: n.Start + n.Duration, off: true, msg: midi.NoteOff(n.Channel, n.Key)},
		)
	}
	// note offs go before note ons on the same tick so repeated keys pair up
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var current uint32
	for _, ev := range events {
		track.Add(ev.tick-current, ev.msg)
		current = ev.tick
	}
	track.Close(0)
	return track, nil
}
