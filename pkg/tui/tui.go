// Package tui provides a terminal user interface for midiscope
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/midiscope/pkg/analysis"
	"github.com/james-see/midiscope/pkg/transcript"
)

// Acid-inspired color scheme
var (
	acidGreen  = lipgloss.Color("#39FF14")
	acidYellow = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(acidGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(acidGreen).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(acidYellow).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(acidGreen).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateAnalyzing
	StateResult
)

// View selects what is shown for a file.
type View int

const (
	ViewTranscript View = iota
	ViewEvents
	ViewNotes
	ViewChords
	ViewLibrary
	ViewExit
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	View        View
	NeedsFile   bool
}

var menuItems = []MenuItem{
	{Title: "Transcript", Description: "Summary, events, notes and chords of a MIDI file", View: ViewTranscript, NeedsFile: true},
	{Title: "Events", Description: "Every decoded event with its measure and beat", View: ViewEvents, NeedsFile: true},
	{Title: "Notes", Description: "Paired notes with start, length and velocity", View: ViewNotes, NeedsFile: true},
	{Title: "Chords", Description: "Chord name for each window of the song", View: ViewChords, NeedsFile: true},
	{Title: "Chord Library", Description: "Browse the chord templates", View: ViewLibrary},
	{Title: "Exit", Description: "Exit the application", View: ViewExit},
}

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	filePicker   filepicker.Model
	spinner      spinner.Model
	viewport     viewport.Model
	opts         analysis.Options
	selected     MenuItem
	selectedFile string
	err          error
	width        int
	height       int
}

// analysisDoneMsg carries the rendered view or the error that stopped it
type analysisDoneMsg struct {
	content string
	err     error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New(opts analysis.Options) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".mid", ".midi", ".smf"}
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(acidGreen)

	return Model{
		state:      StateMenu,
		filePicker: fp,
		spinner:    s,
		viewport:   viewport.New(80, 20),
		opts:       opts,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The file picker needs to see every message while it is open
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateAnalyzing
			return m, tea.Batch(m.spinner.Tick, m.performAnalysis())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-8, 5)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analysisDoneMsg:
		m.state = StateResult
		m.err = msg.err
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		m.selected = menuItems[m.menuIndex]
		switch {
		case m.selected.View == ViewExit:
			return m, tea.Quit
		case !m.selected.NeedsFile:
			m.state = StateAnalyzing
			return m, m.performAnalysis()
		}
		m.state = StateFilePicker
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.state = StateMenu
		m.err = nil
		m.selectedFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) performAnalysis() tea.Cmd {
	view, path, opts := m.selected.View, m.selectedFile, m.opts
	return func() tea.Msg {
		content, err := render(view, path, opts)
		return analysisDoneMsg{content: content, err: err}
	}
}

func render(view View, path string, opts analysis.Options) (string, error) {
	p := transcript.NewPrinter(os.Stdout)
	if view == ViewLibrary {
		return p.Library(), nil
	}

	a, err := analysis.New(opts)
	if err != nil {
		return "", err
	}
	report, err := a.AnalyzeFile(path)
	if err != nil {
		return "", err
	}
	switch view {
	case ViewEvents:
		return p.Events(report), nil
	case ViewNotes:
		return p.Notes(report), nil
	case ViewChords:
		return p.Chords(report), nil
	default:
		return p.Transcript(report), nil
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateAnalyzing:
		s.WriteString(m.viewAnalyzing())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • esc: back • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT VIEW "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(acidYellow).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT MIDI FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewAnalyzing() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" ANALYZING "))
	s.WriteString("\n\n")
	name := "chord library"
	if m.selectedFile != "" {
		name = filepath.Base(m.selectedFile)
	}
	s.WriteString(fmt.Sprintf("%s Reading %s...\n", m.spinner.View(), name))
	s.WriteString(statusStyle.Render(fmt.Sprintf("  view: %s", strings.ToLower(m.selected.Title))))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	if m.err != nil {
		var s strings.Builder
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Analysis failed: %s", m.err.Error())))
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("Press esc to continue"))
		return boxStyle.Render(s.String())
	}

	title := strings.ToUpper(m.selected.Title)
	if m.selectedFile != "" {
		title += " · " + filepath.Base(m.selectedFile)
	}
	return fmt.Sprintf("%s\n%s\n%s",
		titleStyle.Render(" "+title+" "),
		m.viewport.View(),
		statusStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)),
	)
}

func asciiLogo() string {
	logo := `
            _     _ _
  _ __ ___ (_) __| (_)___  ___ ___  _ __   ___
 | '_ ' _ \| |/ _' | / __|/ __/ _ \| '_ \ / _ \
 | | | | | | | (_| | \__ \ (_| (_) | |_) |  __/
 |_| |_| |_|_|\__,_|_|___/\___\___/| .__/ \___|
                                   |_|
`
	return lipgloss.NewStyle().Foreground(acidGreen).Render(logo)
}

// Run starts the TUI application
func Run(opts analysis.Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
