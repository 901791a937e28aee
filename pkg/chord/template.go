// Package chord names groups of concurrently sounding notes by comparing
// their pitch-class weights against a fixed library of chord templates.
package chord

import (
	"slices"
	"sync"

	"github.com/james-see/midiscope/pkg/names"
)

// RootEmphasis scales the root's share in every template.
const RootEmphasis = 1.5

// Quality is one chord shape, described by its intervals above the root.
type Quality struct {
	Name      string
	Suffix    string
	Intervals []uint8
}

// Qualities lists the shapes the library is built from.
var Qualities = []Quality{
	{Name: "power", Suffix: "5", Intervals: []uint8{0, 7}},
	{Name: "major", Suffix: "", Intervals: []uint8{0, 4, 7}},
	{Name: "minor", Suffix: "m", Intervals: []uint8{0, 3, 7}},
	{Name: "augmented", Suffix: "aug", Intervals: []uint8{0, 4, 8}},
	{Name: "suspended second", Suffix: "sus2", Intervals: []uint8{0, 2, 7}},
	{Name: "suspended fourth", Suffix: "sus4", Intervals: []uint8{0, 5, 7}},
	{Name: "sixth", Suffix: "6", Intervals: []uint8{0, 4, 7, 9}},
	{Name: "dominant seventh", Suffix: "7", Intervals: []uint8{0, 4, 7, 10}},
	{Name: "major seventh", Suffix: "maj7", Intervals: []uint8{0, 4, 7, 11}},
	{Name: "minor seventh", Suffix: "m7", Intervals: []uint8{0, 3, 7, 10}},
	{Name: "added ninth", Suffix: "add9", Intervals: []uint8{0, 4, 7, 14}},
}

// Vector is a pitch-class weight vector indexed C=0 to B=11.
type Vector [12]float64

// Template is one chord of the library.
type Template struct {
	Name    string
	Root    uint8
	Quality string
	Weights Vector
}

var (
	templatesOnce sync.Once
	templates     []Template
)

// Templates returns the 132-entry library, ordered by root then quality.
func Templates() []Template {
	return slices.Clone(library())
}

func library() []Template {
	templatesOnce.Do(func() {
		templates = make([]Template, 0, 12*len(Qualities))
		for root := uint8(0); root < 12; root++ {
			for _, q := range Qualities {
				templates = append(templates, newTemplate(root, q))
			}
		}
	})
	return templates
}

func newTemplate(root uint8, q Quality) Template {
	var v Vector
	share := 1.0 / float64(len(q.Intervals))
	for _, iv := range q.Intervals {
		v[(root+iv)%12] += share
	}
	v[root] *= RootEmphasis
	v.normalize()
	return Template{
		Name:    names.PitchClass(int(root)) + q.Suffix,
		Root:    root,
		Quality: q.Name,
		Weights: v,
	}
}

// normalize scales v to sum to 1 and reports false if it is all zero.
func (v *Vector) normalize() bool {
	var sum float64
	for _, w := range v {
		sum += w
	}
	if sum == 0 {
		return false
	}
	for i := range v {
		v[i] /= sum
	}
	return true
}
