package song

import (
	"testing"

	"github.com/james-see/midiscope/pkg/smf"
	"github.com/stretchr/testify/assert"
)

func at(tick uint64, track int) Event {
	return Event{ClassifiedEvent: smf.ClassifiedEvent{Kind: smf.NoteOn}, Track: track, Tick: tick}
}

func TestStreamOrder(t *testing.T) {
	s := NewStream()
	for _, ev := range []Event{at(30, 0), at(10, 0), at(20, 0), at(10, 1), at(0, 2), at(10, 2)} {
		s.Insert(ev)
	}

	assert.Equal(t, 6, s.Len())
	assert.Equal(t, []uint64{0, 10, 20, 30}, s.Ticks())

	var tracks []int
	for _, ev := range s.At(10) {
		tracks = append(tracks, ev.Track)
	}
	assert.Equal(t, []int{0, 1, 2}, tracks, "same tick keeps insertion order")
	assert.Nil(t, s.At(15))

	var ticks []uint64
	for _, ev := range s.Events() {
		ticks = append(ticks, ev.Tick)
	}
	assert.Equal(t, []uint64{0, 10, 10, 10, 20, 30}, ticks)
}

func TestStreamEachStops(t *testing.T) {
	s := NewStream()
	for tick := uint64(0); tick < 100; tick++ {
		s.Insert(at(99-tick, 0))
		s.Insert(at(99-tick, 1))
	}

	var seen []Event
	s.Each(func(ev Event) bool {
		seen = append(seen, ev)
		return len(seen) < 3
	})
	assert.Equal(t, []Event{at(0, 0), at(0, 1), at(1, 0)}, seen)
}

func TestStreamEmpty(t *testing.T) {
	s := NewStream()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Ticks())
	assert.Empty(t, s.Events())
}
