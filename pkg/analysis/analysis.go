// Package analysis runs the whole pipeline on a file: decode, build the song
// and name the chord of every window.
package analysis

import (
	"fmt"
	"math"
	"os"
	"slices"
	"sort"

	"github.com/james-see/midiscope/pkg/chord"
	"github.com/james-see/midiscope/pkg/smf"
	"github.com/james-see/midiscope/pkg/song"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidOptions = errors.New("invalid analysis options")
	ErrNotMIDI        = errors.New("not a standard MIDI file")
	ErrTooManyWindows = errors.New("too many chord windows")
)

// MaxWindows is the most chord windows one report may hold.
const MaxWindows = 1 << 16

// Options controls chord windowing and matching.
type Options struct {
	// Threshold is the largest template distance accepted as a chord.
	Threshold float64
	// Window is the chord window length in beats.
	Window uint64
}

// DefaultOptions returns one-beat windows and the default chord threshold.
func DefaultOptions() Options {
	return Options{
		Threshold: chord.DefaultThreshold,
		Window:    1,
	}
}

// Validate checks that opts can be used.
func (o Options) Validate() error {
	if math.IsNaN(o.Threshold) || o.Threshold < 0 {
		return errors.Wrapf(ErrInvalidOptions, "threshold %v is not a non-negative number", o.Threshold)
	}
	if o.Window == 0 {
		return errors.Wrap(ErrInvalidOptions, "window must be at least one beat")
	}
	return nil
}

// Window is one slice of the timeline and the chord heard in it.
type Window struct {
	Start    uint64
	End      uint64
	Position song.Position
	// Notes are the pitched notes sounding in the window, lowest first.
	Notes      []song.Note
	Chord      string
	Distance   float64
	Candidates []chord.Candidate
}

// Report is the result of analysing one file.
type Report struct {
	Header     smf.Header
	Song       *song.Song
	Tempo      uint32
	BPM        float64
	TrackNames []string
	Windows    []Window
}

// Analyzer runs analyses with fixed options.
type Analyzer struct {
	opts    Options
	matcher *chord.Matcher
}

// New creates an Analyzer.
func New(opts Options) (*Analyzer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		opts:    opts,
		matcher: &chord.Matcher{Threshold: opts.Threshold},
	}, nil
}

// Analyze is a shorthand for New(opts) followed by Analyze(data).
func Analyze(data []byte, opts Options) (*Report, error) {
	a, err := New(opts)
	if err != nil {
		return nil, err
	}
	return a.Analyze(data)
}

// AnalyzeFile reads and analyses the file at path. Files without a MIDI
// extension are accepted when their content starts with an MThd chunk.
func (a *Analyzer) AnalyzeFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	if !smf.HasMIDIExt(path) && !smf.IsSMF(data) {
		return nil, errors.Wrap(ErrNotMIDI, path)
	}
	return a.Analyze(data)
}

// Analyze decodes data and builds the report.
func (a *Analyzer) Analyze(data []byte) (*Report, error) {
	f, err := smf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}
	s, err := song.Build(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build song: %w", err)
	}

	windows, err := a.Chords(s)
	if err != nil {
		return nil, err
	}
	tempo := s.Tempo()
	r := &Report{
		Header:  f.Header,
		Song:    s,
		Tempo:   tempo,
		BPM:     60000000.0 / float64(tempo),
		Windows: windows,
	}
	for _, t := range f.Tracks {
		r.TrackNames = append(r.TrackNames, t.Name())
	}

	log.WithFields(log.Fields{
		"tracks":   len(f.Tracks),
		"events":   s.Stream.Len(),
		"notes":    len(s.Notes),
		"unclosed": s.Unclosed,
		"orphans":  s.Orphans,
		"windows":  len(r.Windows),
	}).Debug("analysed file")
	return r, nil
}

// Chords cuts the song into windows of opts.Window beats and names the
// chord of each one. Percussion is ignored and windows in which no pitched
// note sounds are skipped.
func (a *Analyzer) Chords(s *song.Song) ([]Window, error) {
	size := uint64(s.Division) * a.opts.Window
	if size == 0 || size/uint64(s.Division) != a.opts.Window {
		return nil, errors.Wrapf(ErrInvalidOptions, "window of %d beats overflows at %d ticks per quarter", a.opts.Window, s.Division)
	}

	var pitched []song.Note
	for _, n := range s.Notes {
		if !n.IsPercussion {
			pitched = append(pitched, n)
		}
	}

	var (
		out    []Window
		active []song.Note
		next   int
		start  uint64
	)
	for {
		active = slices.DeleteFunc(active, func(n song.Note) bool { return n.EndTick <= start })
		if len(active) == 0 {
			if next == len(pitched) {
				break
			}
			start = max(start, pitched[next].StartTick/size*size)
		}
		end := start + size
		if end < start {
			end = math.MaxUint64
		}
		// pitched is ordered by start, so active stays ordered by start too
		for next < len(pitched) && pitched[next].StartTick < end {
			if pitched[next].EndTick > start {
				active = append(active, pitched[next])
			}
			next++
		}

		if len(active) > 0 {
			if len(out) == MaxWindows {
				return nil, errors.Wrapf(ErrTooManyWindows, "more than %d windows of %d ticks", MaxWindows, size)
			}
			out = append(out, a.window(s, start, end, active))
		}
		if end == math.MaxUint64 {
			break
		}
		start = end
	}
	return out, nil
}

func (a *Analyzer) window(s *song.Song, start, end uint64, sounding []song.Note) Window {
	w := Window{Start: start, End: end, Position: s.Position(start), Notes: slices.Clone(sounding)}
	sort.SliceStable(w.Notes, func(i, j int) bool { return w.Notes[i].Key < w.Notes[j].Key })

	tones := make([]chord.Tone, len(w.Notes))
	for i, n := range w.Notes {
		tones[i] = chord.Tone{
			Key:      n.Key,
			Velocity: n.Velocity,
			Overlap:  min(n.EndTick, end) - max(n.StartTick, start),
		}
	}
	w.Candidates = a.matcher.Match(tones)
	if len(w.Candidates) > 0 {
		w.Chord = w.Candidates[0].Name
		w.Distance = w.Candidates[0].Distance
	}
	return w
}
