package song

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// BeatsPerMeasure is fixed: every song is read as 4/4.
const BeatsPerMeasure = 4

// Position is a 1-based measure and beat, plus the remainder into the beat
// as a reduced fraction of a quarter note.
type Position struct {
	Measure uint64
	Beat    uint64
	Num     uint64
	Den     uint64
}

func (p Position) String() string {
	if p.Num == 0 {
		return fmt.Sprintf("%d:%d", p.Measure, p.Beat)
	}
	return fmt.Sprintf("%d:%d+%d/%d", p.Measure, p.Beat, p.Num, p.Den)
}

// TicksPerMeasure returns the length of one 4/4 measure.
func (s *Song) TicksPerMeasure() uint64 {
	return uint64(s.Division) * BeatsPerMeasure
}

// MeasureForTick returns the 1-based measure containing tick.
func (s *Song) MeasureForTick(tick uint64) uint64 {
	return tick/s.TicksPerMeasure() + 1
}

// BeatForTick returns the 1-based beat within its measure.
func (s *Song) BeatForTick(tick uint64) uint64 {
	return (tick%s.TicksPerMeasure())/uint64(s.Division) + 1
}

// Position returns the measure, beat and beat fraction of tick. Time
// signature events are ignored.
func (s *Song) Position(tick uint64) Position {
	p := Position{
		Measure: s.MeasureForTick(tick),
		Beat:    s.BeatForTick(tick),
		Den:     1,
	}
	div := uint64(s.Division)
	if rem := tick % div; rem != 0 {
		g := gcd(rem, div)
		p.Num, p.Den = rem/g, div/g
	}
	return p
}

func gcd[T constraints.Integer](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
