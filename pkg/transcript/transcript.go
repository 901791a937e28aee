// Package transcript renders analysis reports as text tables.
package transcript

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/james-see/midiscope/pkg/analysis"
	"github.com/james-see/midiscope/pkg/chord"
	"github.com/james-see/midiscope/pkg/names"
	"github.com/james-see/midiscope/pkg/song"
)

var acidGreen = lipgloss.Color("#39FF14")

// Printer renders reports for one output. Colour is used only when the
// output is a terminal.
type Printer struct {
	w       io.Writer
	heading lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(acidGreen),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func (p *Printer) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			return p.cell
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// Summary describes the file as a whole.
func (p *Printer) Summary(r *analysis.Report) string {
	s := r.Song
	var b strings.Builder
	fmt.Fprintf(&b, "Format %d, %d tracks, %d ticks per quarter\n", r.Header.Format, len(s.Tracks), s.Division)
	fmt.Fprintf(&b, "Tempo %.2f BPM (%d µs/quarter)\n", r.BPM, r.Tempo)
	fmt.Fprintf(&b, "Length %d ticks, ends at %s\n", s.Length, s.Position(s.Length))
	fmt.Fprintf(&b, "Channels %s\n", channelList(s.Channels))
	fmt.Fprintf(&b, "Notes %d (%d unclosed, %d unmatched note offs)\n", len(s.Notes), s.Unclosed, s.Orphans)
	for i, name := range r.TrackNames {
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "Track %d: %s\n", i, name)
	}
	return b.String()
}

func channelList(chs []uint8) string {
	if len(chs) == 0 {
		return "none"
	}
	out := make([]string, len(chs))
	for i, ch := range chs {
		out[i] = strconv.Itoa(int(ch) + 1)
	}
	return strings.Join(out, ", ")
}

// Events lists every event in timeline order.
func (p *Printer) Events(r *analysis.Report) string {
	s := r.Song
	rows := make([][]string, 0, s.Stream.Len())
	s.Stream.Each(func(ev song.Event) bool {
		rows = append(rows, []string{
			strconv.FormatUint(ev.Tick, 10),
			s.Position(ev.Tick).String(),
			strconv.Itoa(ev.Track),
			ev.Description,
		})
		return true
	})
	return p.table([]string{"Tick", "Position", "Track", "Event"}, rows)
}

// NoteName names a note, using drum names for percussion.
func NoteName(n song.Note) string {
	if n.IsPercussion {
		return names.Percussion(n.Key)
	}
	return names.Note(n.Key)
}

// Notes lists the paired notes.
func (p *Printer) Notes(r *analysis.Report) string {
	s := r.Song
	rows := make([][]string, 0, len(s.Notes))
	for _, n := range s.Notes {
		rows = append(rows, []string{
			strconv.FormatUint(n.StartTick, 10),
			s.Position(n.StartTick).String(),
			strconv.FormatUint(n.Duration(), 10),
			strconv.Itoa(int(n.Channel) + 1),
			NoteName(n),
			strconv.Itoa(int(n.Velocity)),
			strconv.Itoa(n.Track),
		})
	}
	return p.table([]string{"Tick", "Position", "Length", "Ch", "Note", "Vel", "Track"}, rows)
}

// Chords lists the chord of every window.
func (p *Printer) Chords(r *analysis.Report) string {
	rows := make([][]string, 0, len(r.Windows))
	for _, w := range r.Windows {
		name, dist := "-", ""
		if w.Chord != "" {
			name, dist = w.Chord, fmt.Sprintf("%.3f", w.Distance)
		}
		keys := make([]string, len(w.Notes))
		for i, n := range w.Notes {
			keys[i] = NoteName(n)
		}
		rows = append(rows, []string{w.Position.String(), name, dist, strings.Join(keys, " ")})
	}
	return p.table([]string{"Position", "Chord", "Distance", "Notes"}, rows)
}

// Library lists the chord templates.
func (p *Printer) Library() string {
	tpls := chord.Templates()
	rows := make([][]string, 0, len(tpls))
	for _, t := range tpls {
		var pcs []string
		for pc, w := range t.Weights {
			if w > 0 {
				pcs = append(pcs, names.PitchClass(pc))
			}
		}
		rows = append(rows, []string{t.Name, t.Quality, strings.Join(pcs, " ")})
	}
	return p.table([]string{"Chord", "Quality", "Pitch classes"}, rows)
}

// Transcript renders every section of the report.
func (p *Printer) Transcript(r *analysis.Report) string {
	sections := []struct {
		title string
		body  string
	}{
		{"Summary", p.Summary(r)},
		{"Events", p.Events(r)},
		{"Notes", p.Notes(r)},
		{"Chords", p.Chords(r)},
	}
	var b strings.Builder
	for _, sec := range sections {
		b.WriteString(p.heading.Render(sec.title))
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(sec.body, "\n"))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Write prints the full transcript.
func (p *Printer) Write(r *analysis.Report) error {
	_, err := io.WriteString(p.w, p.Transcript(r))
	return err
}
