package api

import (
	"github.com/james-see/midiscope/pkg/analysis"
	"github.com/james-see/midiscope/pkg/chord"
	"github.com/james-see/midiscope/pkg/names"
	"github.com/james-see/midiscope/pkg/transcript"
)

// TrackInfo summarises one track.
type TrackInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Events int    `json:"events"`
}

// NoteInfo is one paired note.
type NoteInfo struct {
	Start    uint64 `json:"start"`
	End      uint64 `json:"end"`
	Position string `json:"position"`
	Channel  uint8  `json:"channel"`
	Key      uint8  `json:"key"`
	Name     string `json:"name"`
	Velocity uint8  `json:"velocity"`
	Track    int    `json:"track"`
}

// WindowInfo is the chord heard in one window.
type WindowInfo struct {
	Start    uint64   `json:"start"`
	End      uint64   `json:"end"`
	Position string   `json:"position"`
	Chord    string   `json:"chord,omitempty"`
	Distance float64  `json:"distance"`
	Notes    []string `json:"notes"`
}

// AnalyzeResponse is the body returned by /analyze.
type AnalyzeResponse struct {
	Format   uint16       `json:"format"`
	Division uint16       `json:"division"`
	Tempo    uint32       `json:"tempo_usec"`
	BPM      float64      `json:"bpm"`
	Length   uint64       `json:"length_ticks"`
	Channels []int        `json:"channels"`
	Unclosed int          `json:"unclosed_notes"`
	Orphans  int          `json:"orphan_note_offs"`
	Tracks   []TrackInfo  `json:"tracks"`
	Notes    []NoteInfo   `json:"notes"`
	Windows  []WindowInfo `json:"windows"`
}

// TemplateInfo describes one chord template.
type TemplateInfo struct {
	Name         string   `json:"name"`
	Root         string   `json:"root"`
	Quality      string   `json:"quality"`
	PitchClasses []string `json:"pitch_classes"`
}

func newAnalyzeResponse(r *analysis.Report) AnalyzeResponse {
	s := r.Song
	resp := AnalyzeResponse{
		Format:   r.Header.Format,
		Division: s.Division,
		Tempo:    r.Tempo,
		BPM:      r.BPM,
		Length:   s.Length,
		Channels: make([]int, 0, len(s.Channels)),
		Unclosed: s.Unclosed,
		Orphans:  s.Orphans,
		Tracks:   make([]TrackInfo, 0, len(s.Tracks)),
		Notes:    make([]NoteInfo, 0, len(s.Notes)),
		Windows:  make([]WindowInfo, 0, len(r.Windows)),
	}
	for _, ch := range s.Channels {
		resp.Channels = append(resp.Channels, int(ch))
	}
	for i, t := range s.Tracks {
		resp.Tracks = append(resp.Tracks, TrackInfo{ID: t.ID, Name: r.TrackNames[i], Events: len(t.Events)})
	}
	for _, n := range s.Notes {
		resp.Notes = append(resp.Notes, NoteInfo{
			Start:    n.StartTick,
			End:      n.EndTick,
			Position: s.Position(n.StartTick).String(),
			Channel:  n.Channel,
			Key:      n.Key,
			Name:     transcript.NoteName(n),
			Velocity: n.Velocity,
			Track:    n.Track,
		})
	}
	for _, w := range r.Windows {
		info := WindowInfo{
			Start:    w.Start,
			End:      w.End,
			Position: w.Position.String(),
			Chord:    w.Chord,
			Distance: w.Distance,
			Notes:    make([]string, 0, len(w.Notes)),
		}
		for _, n := range w.Notes {
			info.Notes = append(info.Notes, transcript.NoteName(n))
		}
		resp.Windows = append(resp.Windows, info)
	}
	return resp
}

func newTemplateInfo(t chord.Template) TemplateInfo {
	info := TemplateInfo{
		Name:    t.Name,
		Root:    names.PitchClass(int(t.Root)),
		Quality: t.Quality,
	}
	for pc, w := range t.Weights {
		if w > 0 {
			info.PitchClasses = append(info.PitchClasses, names.PitchClass(pc))
		}
	}
	return info
}
