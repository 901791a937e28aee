package fixture

// Demo returns a four bar C-Am-F-G progression with a bass line and a
// simple drum pattern.
func Demo() Song {
	const (
		division = 480
		bar      = division * 4
	)
	progression := [][]uint8{
		{60, 64, 67}, // C
		{57, 60, 64}, // Am
		{53, 57, 60}, // F
		{55, 59, 62}, // G
	}

	var keys, bass, drums []Note
	for i, triad := range progression {
		start := uint32(i * bar)
		for _, k := range triad {
			keys = append(keys, Note{Channel: 0, Key: k, Velocity: 80, Start: start, Duration: bar})
		}
		for beat := uint32(0); beat < 4; beat++ {
			at := start + beat*division
			bass = append(bass, Note{Channel: 1, Key: triad[0] - 24, Velocity: 100, Start: at, Duration: division / 2})
			drum := uint8(36) // kick
			if beat%2 == 1 {
				drum = 38 // snare
			}
			drums = append(drums,
				Note{Channel: 9, Key: drum, Velocity: 110, Start: at, Duration: division / 4},
				Note{Channel: 9, Key: 42, Velocity: 70, Start: at + division/2, Duration: division / 4},
			)
		}
	}

	return Song{
		Division: division,
		Tempo:    100,
		Tracks: []Track{
			{Name: "Keys", Notes: keys},
			{Name: "Bass", Notes: bass},
			{Name: "Drums", Notes: drums},
		},
	}
}
