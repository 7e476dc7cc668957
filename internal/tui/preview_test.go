package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/projects"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newModel(t *testing.T) (*Model, *carousel.Controller) {
	t.Helper()
	ctrl, err := carousel.New(projects.Default(), carousel.WithInterval(time.Hour))
	require.NoError(t, err)
	m := New(ctrl)
	t.Cleanup(func() {
		m.Close()
		ctrl.Stop()
	})
	return m, ctrl
}

func TestModel_Navigation(t *testing.T) {
	m, ctrl := newModel(t)

	m.Update(keyMsg("right"))
	assert.Equal(t, 1, ctrl.Current())
	m.Update(keyMsg("l"))
	assert.Equal(t, 2, ctrl.Current())
	m.Update(keyMsg("h"))
	m.Update(keyMsg("left"))
	m.Update(keyMsg("left"))
	assert.Equal(t, 5, ctrl.Current())
}

func TestModel_ReceivesNotifications(t *testing.T) {
	m, ctrl := newModel(t)

	ctrl.Advance()
	msg := m.waitForChange()
	require.IsType(t, changedMsg{}, msg)

	_, cmd := m.Update(msg)
	assert.Equal(t, carousel.State{Current: 1, Count: 6}, m.state)
	assert.NotNil(t, cmd, "keeps listening after a change")
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m, _ := newModel(t)
		_, cmd := m.Update(keyMsg(key))
		require.NotNil(t, cmd, key)
		assert.Equal(t, tea.Quit(), cmd(), key)
	}
}

func TestModel_ToggleAutoplay(t *testing.T) {
	m, ctrl := newModel(t)
	m.Update(keyMsg(" "))
	assert.True(t, ctrl.Running())
	m.Update(keyMsg(" "))
	assert.False(t, ctrl.Running())
}

func TestModel_View(t *testing.T) {
	m, ctrl := newModel(t)
	ctrl.Focus(4)

	view := m.View()
	assert.Contains(t, view, "5/6")
	assert.Contains(t, view, ctrl.Focused().Title)
	assert.Contains(t, view, "Demo Unavailable", "the right neighbour has no demo")
	assert.NotContains(t, view, projects.Default()[0].Title, "hidden slides are not drawn")
}
