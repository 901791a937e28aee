package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/james-see/midiscope/pkg/analysis"
	"github.com/james-see/midiscope/pkg/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestMenuNavigation(t *testing.T) {
	m := New(analysis.DefaultOptions())
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, 0, m.menuIndex)

	for range menuItems {
		m, _ = press(t, m, tea.KeyDown)
	}
	assert.Equal(t, len(menuItems)-1, m.menuIndex)

	_, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestLibraryView(t *testing.T) {
	m := New(analysis.DefaultOptions())
	for m.menuIndex < int(ViewLibrary) {
		m, _ = press(t, m, tea.KeyDown)
	}

	m, cmd := press(t, m, tea.KeyEnter)
	assert.Equal(t, StateAnalyzing, m.state)
	require.NotNil(t, cmd)

	msg, ok := cmd().(analysisDoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Contains(t, msg.content, "Cmaj7")

	next, _ := m.Update(msg)
	m = next.(Model)
	assert.Equal(t, StateResult, m.state)
	assert.Contains(t, m.View(), "CHORD LIBRARY")

	m, _ = press(t, m, tea.KeyEsc)
	assert.Equal(t, StateMenu, m.state)
}

func TestOpeningFilePicker(t *testing.T) {
	m := New(analysis.DefaultOptions())
	m, _ = press(t, m, tea.KeyEnter)
	assert.Equal(t, StateFilePicker, m.state)
	assert.Equal(t, ViewTranscript, m.selected.View)

	m, _ = press(t, m, tea.KeyEsc)
	assert.Equal(t, StateMenu, m.state)
}

func TestResultError(t *testing.T) {
	m := New(analysis.DefaultOptions())
	next, _ := m.Update(analysisDoneMsg{err: errors.New("boom")})
	assert.Contains(t, next.(Model).View(), "Analysis failed: boom")
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.mid")
	require.NoError(t, os.WriteFile(path, fixture.Reference(), 0644))

	tests := []struct {
		view View
		want string
	}{
		{ViewTranscript, "Summary"},
		{ViewEvents, "End of Track"},
		{ViewNotes, "Vel"},
		{ViewChords, "Position"},
	}
	for _, tt := range tests {
		out, err := render(tt.view, path, analysis.DefaultOptions())
		require.NoError(t, err)
		assert.Contains(t, out, tt.want)
	}

	_, err := render(ViewNotes, filepath.Join(t.TempDir(), "missing.mid"), analysis.DefaultOptions())
	assert.Error(t, err)
}
