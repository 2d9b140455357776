package tui

import (
	"strings"
	"testing"
	"time"

	"fsops/internal/logging"
	"fsops/pkg/fileops"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() ConflictInfo {
	mtime := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return ConflictInfo{
		Op:          fileops.OpCopy,
		Source:      FileSummary{Path: "/in/Test1.txt", Size: 1, ModTime: mtime, Exists: true},
		Destination: FileSummary{Path: "/out/Test1.txt", Size: 10, ModTime: mtime, Exists: true},
	}
}

func newTestPrompt(t *testing.T, initial fileops.ConflictPolicy) *ConflictPromptModel {
	t.Helper()
	logger, _ := logging.NewTestLogger()
	return NewConflictPromptModel(testInfo(), initial, logger)
}

func press(m *ConflictPromptModel, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestConflictPromptNavigation(t *testing.T) {
	m := newTestPrompt(t, fileops.FailOnConflict)
	assert.Equal(t, StateChoosing, m.State())

	press(m, runeKey('j'), runeKey('j'), tea.KeyMsg{Type: tea.KeyDown}, runeKey('k'))
	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "choosing quits the program")

	p, ok := m.Choice()
	assert.True(t, ok)
	assert.Equal(t, fileops.Overwrite, p)
	assert.Equal(t, StateChosen, m.State())
}

func TestConflictPromptCursorBounds(t *testing.T) {
	m := newTestPrompt(t, fileops.FailOnConflict)
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	p, _ := m.Choice()
	assert.Equal(t, fileops.FailOnConflict, p)

	m = newTestPrompt(t, fileops.OverwriteIfSourceNewer)
	press(m, runeKey('j'), runeKey('j'))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	p, _ = m.Choice()
	assert.Equal(t, fileops.OverwriteIfSourceNewer, p)
}

func TestConflictPromptQuickPick(t *testing.T) {
	for i, want := range fileops.Policies {
		m := newTestPrompt(t, fileops.FailOnConflict)
		press(m, runeKey(rune('1'+i)))
		p, ok := m.Choice()
		assert.True(t, ok)
		assert.Equal(t, want, p)
	}
}

func TestConflictPromptInitialPolicy(t *testing.T) {
	m := newTestPrompt(t, fileops.RenameWithNumber)
	assert.Contains(t, m.View(), "> 4. rename")
}

func TestConflictPromptCancel(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, runeKey('q'), {Type: tea.KeyCtrlC}} {
		m := newTestPrompt(t, fileops.Overwrite)
		cmd := press(m, key)
		require.NotNil(t, cmd)

		_, ok := m.Choice()
		assert.False(t, ok, key.String())
		assert.Equal(t, StateCancelled, m.State())
		assert.Contains(t, m.View(), "Cancelled")
	}
}

func TestConflictPromptView(t *testing.T) {
	m := newTestPrompt(t, fileops.FailOnConflict)
	view := m.View()

	assert.Contains(t, view, "Destination already exists (copy)")
	assert.Contains(t, view, "/in/Test1.txt")
	assert.Contains(t, view, "/out/Test1.txt")
	assert.Contains(t, view, "10 bytes")
	for _, p := range fileops.Policies {
		assert.Contains(t, view, p.String())
		assert.Contains(t, view, p.Description())
	}
	assert.Equal(t, 1, strings.Count(view, "> "))
}

func TestConflictPromptWindowSize(t *testing.T) {
	m := newTestPrompt(t, fileops.FailOnConflict)
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.width)
}

func TestDescribeConflict(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/a.txt", []byte("hello"), 0o644))

	info := DescribeConflict(fsys, fileops.OpMove, "/a.txt", "/missing.txt")
	assert.Equal(t, fileops.OpMove, info.Op)
	assert.True(t, info.Source.Exists)
	assert.Equal(t, int64(5), info.Source.Size)
	assert.False(t, info.Destination.Exists)
	assert.Equal(t, "/missing.txt", info.Destination.Path)
}
