// Package tui is a terminal preview of the project carousel.
package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/projects"
)

const cardWidth = 30

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	centerCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1).
			Width(cardWidth + 6)
	sideCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1).
			Width(cardWidth)
)

// changedMsg is delivered whenever the carousel moves.
type changedMsg carousel.State

// Model renders the carousel and forwards key presses to it. It redraws when
// the controller notifies a change.
type Model struct {
	ctrl    *carousel.Controller
	updates chan carousel.State
	cancel  func()
	state   carousel.State
	width   int
}

// New subscribes to ctrl. Call Close when the program exits.
func New(ctrl *carousel.Controller) *Model {
	m := &Model{
		ctrl:    ctrl,
		updates: make(chan carousel.State, 16),
		state:   ctrl.State(),
	}
	m.cancel = ctrl.Subscribe(func(st carousel.State) {
		select {
		case m.updates <- st:
		default: // View reads live state, a missed wake-up is harmless
		}
	})
	return m
}

// Close unsubscribes from the controller.
func (m *Model) Close() { m.cancel() }

func (m *Model) waitForChange() tea.Msg {
	return changedMsg(<-m.updates)
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case changedMsg:
		m.state = carousel.State(msg)
		return m, m.waitForChange
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.ctrl.Retreat()
		case "right", "l":
			m.ctrl.Advance()
		case " ":
			if m.ctrl.Running() {
				m.ctrl.Stop()
			} else {
				m.ctrl.Start()
			}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var left, center, right string
	for _, s := range m.ctrl.Slides() {
		switch s.Role {
		case carousel.Left:
			left = sideCard.Render(card(s.Entry))
		case carousel.Center:
			center = centerCard.Render(card(s.Entry))
		case carousel.Right:
			right = sideCard.Render(card(s.Entry))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Projects"))
	b.WriteString(helpStyle.Render(" " + position(m.ctrl.State())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, left, center, right))
	b.WriteString("\n\n")
	autoplay := "off"
	if m.ctrl.Running() {
		autoplay = "on"
	}
	b.WriteString(helpStyle.Render("←/h prev · →/l next · space autoplay (" + autoplay + ") · q quit"))
	b.WriteString("\n")
	return b.String()
}

func position(st carousel.State) string {
	return strconv.Itoa(st.Current+1) + "/" + strconv.Itoa(st.Count)
}

func card(e projects.Entry) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(e.Title))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(strings.Join(e.Technologies, ", ")))
	b.WriteString("\n\n")
	b.WriteString(e.Description)
	b.WriteString("\n\n")
	if e.HasDemo() {
		b.WriteString("demo " + e.DemoLink + "\n")
	} else {
		b.WriteString(helpStyle.Render("Demo Unavailable") + "\n")
	}
	b.WriteString("code " + e.CodeLink)
	return b.String()
}
