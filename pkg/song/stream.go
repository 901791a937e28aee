package song

import (
	"github.com/google/btree"
	"github.com/james-see/midiscope/pkg/smf"
)

// Event is a classified event placed on the song's absolute timeline.
type Event struct {
	smf.ClassifiedEvent
	Track int
	Tick  uint64
}

// slot holds every event at one tick.
type slot struct {
	tick   uint64
	events []Event
}

// Stream is an ordered multimap from absolute tick to events. Events that
// share a tick keep their insertion order.
type Stream struct {
	tree *btree.BTreeG[*slot]
	n    int
}

// NewStream returns an empty stream.
func NewStream() *Stream {
	return &Stream{
		tree: btree.NewG(32, func(a, b *slot) bool { return a.tick < b.tick }),
	}
}

// Insert appends ev under ev.Tick.
func (s *Stream) Insert(ev Event) {
	if sl, ok := s.tree.Get(&slot{tick: ev.Tick}); ok {
		sl.events = append(sl.events, ev)
	} else {
		s.tree.ReplaceOrInsert(&slot{tick: ev.Tick, events: []Event{ev}})
	}
	s.n++
}

// Len returns the total number of events.
func (s *Stream) Len() int {
	return s.n
}

// Ticks returns the distinct ticks in ascending order.
func (s *Stream) Ticks() []uint64 {
	out := make([]uint64, 0, s.tree.Len())
	s.tree.Ascend(func(sl *slot) bool {
		out = append(out, sl.tick)
		return true
	})
	return out
}

// At returns the events at tick in insertion order.
func (s *Stream) At(tick uint64) []Event {
	if sl, ok := s.tree.Get(&slot{tick: tick}); ok {
		return sl.events
	}
	return nil
}

// Each calls fn for every event in ascending tick order, stopping early if
// fn returns false.
func (s *Stream) Each(fn func(Event) bool) {
	s.tree.Ascend(func(sl *slot) bool {
		for _, ev := range sl.events {
			if !fn(ev) {
				return false
			}
		}
		return true
	})
}

// Events returns every event in ascending tick order.
func (s *Stream) Events() []Event {
	out := make([]Event, 0, s.n)
	s.Each(func(ev Event) bool {
		out = append(out, ev)
		return true
	})
	return out
}
