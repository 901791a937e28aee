package smf

// PercussionChannel is the General MIDI drum channel (0-indexed).
const PercussionChannel = 9

// RawEvent is one decoded track event before classification. Status is
// always a full status byte; running status has already been resolved.
//
// For meta events Payload holds the meta type byte followed by the body.
// For SysEx events it holds the body only.
type RawEvent struct {
	Delta   uint32
	Status  byte
	Payload []byte
}

// ClassifiedEvent is a RawEvent with its semantic kind and a readable
// description attached.
type ClassifiedEvent struct {
	RawEvent
	Kind        EventKind
	Description string
}

// Channel returns the channel nibble of a channel voice event.
func (e ClassifiedEvent) Channel() uint8 {
	return e.Status & 0x0F
}

// IsPercussion reports whether a channel voice event is on the drum channel.
func (e ClassifiedEvent) IsPercussion() bool {
	return e.Kind.IsChannel() && e.Channel() == PercussionChannel
}

// Key returns the note number of note and aftertouch events.
func (e ClassifiedEvent) Key() uint8 {
	return e.data(0)
}

// Velocity returns the velocity of note events.
func (e ClassifiedEvent) Velocity() uint8 {
	return e.data(1)
}

func (e ClassifiedEvent) data(i int) uint8 {
	if !e.Kind.IsChannel() || i >= len(e.Payload) {
		return 0
	}
	return e.Payload[i]
}

// MetaBody returns the body of a meta event without its type byte.
func (e ClassifiedEvent) MetaBody() []byte {
	if !e.Kind.IsMeta() || len(e.Payload) == 0 {
		return nil
	}
	return e.Payload[1:]
}

// Tempo returns microseconds per quarter note for a well-formed tempo event.
func (e ClassifiedEvent) Tempo() (uint32, bool) {
	body := e.MetaBody()
	if e.Kind != MetaTempo || len(body) < 3 {
		return 0, false
	}
	return uint32(body[0])<<16 | uint32(body[1])<<8 | uint32(body[2]), true
}

// Text returns the body of a text meta event. It reports false for other
// events and for bodies that are not valid UTF-8.
func (e ClassifiedEvent) Text() (string, bool) {
	if e.Kind < MetaText || e.Kind > MetaCue {
		return "", false
	}
	return decodeText(e.MetaBody())
}

// Track is the ordered event list of one MTrk chunk. Deltas are relative
// to the previous event of the same track.
type Track struct {
	ID     int
	Events []ClassifiedEvent
}

// Name returns the text of the first track name event, if any.
func (t *Track) Name() string {
	for _, ev := range t.Events {
		if ev.Kind != MetaTrackName {
			continue
		}
		if s, ok := ev.Text(); ok {
			return s
		}
	}
	return ""
}
