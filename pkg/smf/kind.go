package smf

// EventKind is the semantic type of a decoded event.
type EventKind int

const (
	Unsupported EventKind = iota
	NoteOn
	NoteOff
	Aftertouch
	ControlChange
	PatchChange
	ChannelPressure
	PitchBend
	SysEx
	MetaSequenceNumber
	MetaText
	MetaCopyright
	MetaTrackName
	MetaInstrumentName
	MetaLyric
	MetaMarker
	MetaCue
	MetaChannelPrefix
	MetaPortAssignment
	MetaEndOfTrack
	MetaTempo
	MetaSMPTEOffset
	MetaTimeSignature
	MetaKeySignature
	MetaSequenceSpecific
	MetaUnrecognized

	numKinds
)

var kindNames = [numKinds]string{
	Unsupported:          "Unsupported",
	NoteOn:               "Note On",
	NoteOff:              "Note Off",
	Aftertouch:           "Aftertouch",
	ControlChange:        "Control Change",
	PatchChange:          "Patch Change",
	ChannelPressure:      "Channel Pressure",
	PitchBend:            "Pitch Bend",
	SysEx:                "System Exclusive",
	MetaSequenceNumber:   "Sequence Number",
	MetaText:             "Text",
	MetaCopyright:        "Copyright",
	MetaTrackName:        "Track Name",
	MetaInstrumentName:   "Instrument Name",
	MetaLyric:            "Lyric",
	MetaMarker:           "Marker",
	MetaCue:              "Cue Point",
	MetaChannelPrefix:    "Channel Prefix",
	MetaPortAssignment:   "Port",
	MetaEndOfTrack:       "End of Track",
	MetaTempo:            "Tempo",
	MetaSMPTEOffset:      "SMPTE Offset",
	MetaTimeSignature:    "Time Signature",
	MetaKeySignature:     "Key Signature",
	MetaSequenceSpecific: "Sequencer Specific",
	MetaUnrecognized:     "Unrecognized Meta",
}

func (k EventKind) String() string {
	if k < 0 || k >= numKinds {
		return kindNames[Unsupported]
	}
	return kindNames[k]
}

// IsMeta reports whether k is one of the meta event kinds.
func (k EventKind) IsMeta() bool {
	return k >= MetaSequenceNumber && k <= MetaUnrecognized
}

// IsChannel reports whether k is a channel voice event.
func (k EventKind) IsChannel() bool {
	return k >= NoteOn && k <= PitchBend
}

// Meta type bytes.
const (
	metaSequenceNumber   = 0x00
	metaText             = 0x01
	metaCopyright        = 0x02
	metaTrackName        = 0x03
	metaInstrumentName   = 0x04
	metaLyric            = 0x05
	metaMarker           = 0x06
	metaCue              = 0x07
	metaChannelPrefix    = 0x20
	metaPortAssignment   = 0x21
	metaEndOfTrack       = 0x2F
	metaTempo            = 0x51
	metaSMPTEOffset      = 0x54
	metaTimeSignature    = 0x58
	metaKeySignature     = 0x59
	metaSequenceSpecific = 0x7F
)

var metaKinds = map[byte]EventKind{
	metaSequenceNumber:   MetaSequenceNumber,
	metaText:             MetaText,
	metaCopyright:        MetaCopyright,
	metaTrackName:        MetaTrackName,
	metaInstrumentName:   MetaInstrumentName,
	metaLyric:            MetaLyric,
	metaMarker:           MetaMarker,
	metaCue:              MetaCue,
	metaChannelPrefix:    MetaChannelPrefix,
	metaPortAssignment:   MetaPortAssignment,
	metaEndOfTrack:       MetaEndOfTrack,
	metaTempo:            MetaTempo,
	metaSMPTEOffset:      MetaSMPTEOffset,
	metaTimeSignature:    MetaTimeSignature,
	metaKeySignature:     MetaKeySignature,
	metaSequenceSpecific: MetaSequenceSpecific,
}
