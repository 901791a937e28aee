// Package names holds the static General MIDI lookup tables used when
// describing events.
package names

import "fmt"

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClass returns the name of a pitch class (0 = C .. 11 = B).
func PitchClass(pc int) string {
	return noteNames[((pc%12)+12)%12]
}

// Note returns the scientific pitch name of a MIDI key, e.g. 60 -> "C4".
func Note(key uint8) string {
	return fmt.Sprintf("%s%d", noteNames[key%12], int(key)/12-1)
}

// Instrument returns the General MIDI patch name for program 0-127.
func Instrument(program uint8) string {
	if int(program) >= len(instruments) {
		return fmt.Sprintf("Program %d", program)
	}
	return instruments[program]
}

// Percussion returns the General MIDI drum name for a key on channel 10.
func Percussion(key uint8) string {
	if name, ok := percussion[key]; ok {
		return name
	}
	return fmt.Sprintf("Percussion %d", key)
}

// Controller returns the name of a control change number.
func Controller(cc uint8) string {
	if name, ok := controllers[cc]; ok {
		return name
	}
	return fmt.Sprintf("Controller %d", cc)
}

var majorKeys = [15]string{"Cb", "Gb", "Db", "Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#"}
var minorKeys = [15]string{"Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#", "G#", "D#", "A#"}

// Key returns the key named by a key signature meta event: sf is the number
// of sharps (positive) or flats (negative), minor is the mode flag.
func Key(sf int8, minor bool) string {
	idx := int(sf) + 7
	if idx < 0 || idx >= len(majorKeys) {
		return fmt.Sprintf("Unknown key (%d)", sf)
	}
	if minor {
		return minorKeys[idx] + " minor"
	}
	return majorKeys[idx] + " major"
}
