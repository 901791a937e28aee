package smf

import "fmt"

// SysExEnd terminates a complete SysEx message. In an SMF body it is just
// the last data byte.
const SysExEnd = 0xF7

// ManufacturerID extracts the manufacturer ID from a SysEx or sequencer
// specific body. IDs starting with 0x00 are three bytes long.
func ManufacturerID(body []byte) ([]byte, bool) {
	if len(body) == 0 {
		return nil, false
	}
	if body[0] == 0x00 {
		if len(body) < 3 {
			return nil, false
		}
		return body[:3], true
	}
	return body[:1], true
}

var manufacturers = map[string]string{
	"\x40":         "Kawai",
	"\x41":         "Roland",
	"\x42":         "Korg",
	"\x43":         "Yamaha",
	"\x44":         "Casio",
	"\x47":         "Akai",
	"\x7D":         "Non-Commercial",
	"\x7E":         "Universal Non-Real Time",
	"\x7F":         "Universal Real Time",
	"\x00\x20\x32": "Behringer",
	"\x00\x20\x29": "Novation",
	"\x00\x21\x1D": "Ableton",
}

// ManufacturerName returns a readable name for a manufacturer ID.
func ManufacturerName(id []byte) string {
	if name, ok := manufacturers[string(id)]; ok {
		return name
	}
	return fmt.Sprintf("0x% X", id)
}

func describeSysEx(status byte, body []byte) string {
	if status == StatusSysExEscape {
		return "System Exclusive escape (" + plural(len(body), "byte") + ")"
	}
	id, ok := ManufacturerID(body)
	if !ok {
		return "System Exclusive (" + plural(len(body), "byte") + ")"
	}
	complete := body[len(body)-1] == SysExEnd
	desc := "System Exclusive " + ManufacturerName(id) + " (" + plural(len(body), "byte")
	if !complete {
		desc += ", continued"
	}
	return desc + ")"
}
