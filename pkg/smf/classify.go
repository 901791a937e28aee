package smf

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/james-see/midiscope/pkg/names"
)

// InvalidText replaces meta text that is not valid UTF-8.
const InvalidText = "Invalid UTF-8 String"

// Classify maps a raw event to its kind and description. It has no state
// and never fails; malformed events are described, not rejected.
func Classify(raw RawEvent) ClassifiedEvent {
	kind, desc := classify(raw)
	return ClassifiedEvent{RawEvent: raw, Kind: kind, Description: desc}
}

func classify(raw RawEvent) (EventKind, string) {
	if raw.Status < 0x80 {
		return Unsupported, fmt.Sprintf("Unsupported status 0x%02X", raw.Status)
	}
	if raw.Status>>4 == 0xF {
		switch raw.Status {
		case StatusMeta:
			return classifyMeta(raw.Payload)
		case StatusSysEx, StatusSysExEscape:
			return SysEx, describeSysEx(raw.Status, raw.Payload)
		}
		return Unsupported, fmt.Sprintf("Unsupported system message 0x%02X", raw.Status)
	}
	return classifyChannel(raw.Status, raw.Payload)
}

func classifyChannel(status byte, p []byte) (EventKind, string) {
	ch := status & 0x0F
	var kind EventKind
	switch status >> 4 {
	case 0x8:
		kind = NoteOff
	case 0x9:
		kind = NoteOn
		if len(p) >= 2 && p[1] == 0 {
			kind = NoteOff
		}
	case 0xA:
		kind = Aftertouch
	case 0xB:
		kind = ControlChange
	case 0xC:
		kind = PatchChange
	case 0xD:
		kind = ChannelPressure
	case 0xE:
		kind = PitchBend
	}
	if len(p) < dataLengths[status>>4] {
		return Unsupported, fmt.Sprintf("Malformed %s (%s)", kind, plural(len(p), "byte"))
	}

	var desc string
	switch kind {
	case NoteOn:
		desc = fmt.Sprintf("Note On %s velocity %d", noteName(ch, p[0]), p[1])
	case NoteOff:
		desc = fmt.Sprintf("Note Off %s", noteName(ch, p[0]))
	case Aftertouch:
		desc = fmt.Sprintf("Aftertouch %s pressure %d", noteName(ch, p[0]), p[1])
	case ControlChange:
		desc = fmt.Sprintf("Control Change %s = %d", names.Controller(p[0]), p[1])
	case PatchChange:
		if ch == PercussionChannel {
			desc = fmt.Sprintf("Patch Change drum kit %d", p[0])
		} else {
			desc = fmt.Sprintf("Patch Change %s", names.Instrument(p[0]))
		}
	case ChannelPressure:
		desc = fmt.Sprintf("Channel Pressure %d", p[0])
	case PitchBend:
		desc = fmt.Sprintf("Pitch Bend %+d", (int(p[1]&0x7F)<<7|int(p[0]&0x7F))-8192)
	}
	return kind, fmt.Sprintf("%s, channel %d", desc, ch+1)
}

func noteName(ch, key uint8) string {
	if ch == PercussionChannel {
		return names.Percussion(key)
	}
	return names.Note(key)
}

// metaPrefix is the fixed-size part of meta bodies that carry binary data.
// Anything after it is treated as trailing text.
var metaPrefix = map[EventKind]int{
	MetaTempo:            3,
	MetaSMPTEOffset:      5,
	MetaTimeSignature:    4,
	MetaKeySignature:     2,
	MetaSequenceSpecific: 1,
}

func classifyMeta(p []byte) (EventKind, string) {
	if len(p) == 0 {
		return Unsupported, "Malformed meta event"
	}
	typ, body := p[0], p[1:]
	kind, ok := metaKinds[typ]
	if !ok {
		return MetaUnrecognized, fmt.Sprintf("Unrecognized Meta 0x%02X (%s)", typ, plural(len(body), "byte"))
	}

	switch kind {
	case MetaText, MetaCopyright, MetaTrackName, MetaInstrumentName, MetaLyric, MetaMarker, MetaCue:
		return kind, kind.String() + ": " + textOrPlaceholder(body)
	case MetaSequenceNumber:
		if len(body) < 2 {
			return kind, "Sequence Number (track position)"
		}
		return kind, fmt.Sprintf("Sequence Number %d", binary.BigEndian.Uint16(body))
	case MetaChannelPrefix:
		if len(body) < 1 {
			return kind, malformed(kind, body)
		}
		return kind, fmt.Sprintf("Channel Prefix %d", body[0]+1)
	case MetaPortAssignment:
		if len(body) < 1 {
			return kind, malformed(kind, body)
		}
		return kind, fmt.Sprintf("Port %d", body[0])
	case MetaEndOfTrack:
		return kind, "End of Track"
	}

	prefix := metaPrefix[kind]
	if kind == MetaSequenceSpecific && len(body) > 0 && body[0] == 0x00 {
		prefix = 3
	}
	if len(body) < prefix {
		return kind, malformed(kind, body)
	}
	desc := describeFixedMeta(kind, body[:prefix])
	if trailer := body[prefix:]; len(trailer) > 0 {
		desc += ": " + textOrPlaceholder(trailer)
	}
	return kind, desc
}

func describeFixedMeta(kind EventKind, b []byte) string {
	switch kind {
	case MetaTempo:
		usec := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
		if usec == 0 {
			return "Tempo 0 µs/quarter"
		}
		return fmt.Sprintf("Tempo %.2f BPM (%d µs/quarter)", 60e6/float64(usec), usec)
	case MetaSMPTEOffset:
		return fmt.Sprintf("SMPTE Offset %02d:%02d:%02d:%02d.%02d", b[0], b[1], b[2], b[3], b[4])
	case MetaTimeSignature:
		return fmt.Sprintf("Time Signature %d/%d, %d clocks/click, %d 32nds/quarter",
			b[0], uint64(1)<<b[1], b[2], b[3])
	case MetaKeySignature:
		return "Key Signature " + names.Key(int8(b[0]), b[1] == 1)
	case MetaSequenceSpecific:
		return "Sequencer Specific " + ManufacturerName(b)
	}
	return kind.String()
}

func malformed(kind EventKind, body []byte) string {
	return fmt.Sprintf("%s (malformed, %s)", kind, plural(len(body), "byte"))
}

func textOrPlaceholder(b []byte) string {
	if s, ok := decodeText(b); ok {
		return s
	}
	return InvalidText
}

func decodeText(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return strings.TrimRight(string(b), "\x00"), true
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
