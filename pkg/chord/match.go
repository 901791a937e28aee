package chord

import (
	"math"
	"sort"
)

const (
	// DefaultThreshold is the largest distance still reported as a match.
	DefaultThreshold = 0.5

	// BassEmphasis scales the first tone of a query.
	BassEmphasis = 2.0
)

// Tone is one sounding note of a query. Overlap is how many ticks of the
// window the note covers.
type Tone struct {
	Key      uint8
	Velocity uint8
	Overlap  uint64
}

// Candidate is a template and its distance from a query.
type Candidate struct {
	Template
	Distance float64
}

// Matcher compares queries against the template library.
type Matcher struct {
	Threshold float64
}

// NewMatcher returns a Matcher with the default threshold.
func NewMatcher() *Matcher {
	return &Matcher{Threshold: DefaultThreshold}
}

// Match returns every template within the default threshold, nearest first.
func Match(tones []Tone) []Candidate {
	return NewMatcher().Match(tones)
}

// Best returns the nearest template within the default threshold.
func Best(tones []Tone) (Candidate, bool) {
	return NewMatcher().Best(tones)
}

// Weights folds tones into a normalized pitch-class vector. Each tone counts
// in proportion to its share of the total overlap and to velocity/127, and
// the first tone is boosted by BassEmphasis. When no tone has any overlap
// they share equally. It reports false if the vector is all zero.
func Weights(tones []Tone) (Vector, bool) {
	var v Vector
	if len(tones) == 0 {
		return v, false
	}

	var total uint64
	for _, t := range tones {
		total += t.Overlap
	}
	for i, t := range tones {
		share := 1.0 / float64(len(tones))
		if total > 0 {
			share = float64(t.Overlap) / float64(total)
		}
		w := share * float64(t.Velocity) / 127
		if i == 0 {
			w *= BassEmphasis
		}
		v[t.Key%12] += w
	}
	ok := v.normalize()
	return v, ok
}

// Match returns every template within m.Threshold of the query, nearest
// first. An empty or silent query matches nothing.
func (m *Matcher) Match(tones []Tone) []Candidate {
	v, ok := Weights(tones)
	if !ok {
		return nil
	}
	return m.MatchVector(v)
}

// MatchVector is Match for an already weighted vector.
func (m *Matcher) MatchVector(v Vector) []Candidate {
	var out []Candidate
	for _, t := range library() {
		d := Distance(v, t.Weights)
		if d <= m.Threshold {
			out = append(out, Candidate{Template: t, Distance: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// Best returns the nearest match, if any.
func (m *Matcher) Best(tones []Tone) (Candidate, bool) {
	c := m.Match(tones)
	if len(c) == 0 {
		return Candidate{}, false
	}
	return c[0], true
}

// Distance is the Euclidean distance between two vectors.
func Distance(a, b Vector) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
