// Package screens switches between named full-screen models.
package screens

import (
	"github.com/alkime/voicescribe/pkg/collections"
	tea "github.com/charmbracelet/bubbletea"
)

// SwitchMsg asks the container to show the named screen.
type SwitchMsg struct {
	Name string
}

// Switch returns a command that emits SwitchMsg.
func Switch(name string) tea.Cmd {
	return func() tea.Msg { return SwitchMsg{Name: name} }
}

// Screen is a named model.
type Screen struct {
	Name string
	mdl  tea.Model
}

// NewScreen wraps mdl under name.
func NewScreen(name string, mdl tea.Model) Screen {
	return Screen{Name: name, mdl: mdl}
}

// Model shows one screen at a time. Only the current screen receives
// messages unless they are broadcast.
type Model struct {
	screens []Screen
	curr    int
}

// New creates a container showing the first screen.
func New(screens ...Screen) Model {
	return Model{screens: screens}
}

// Init initializes the first screen.
func (m Model) Init() tea.Cmd {
	return m.screens[m.curr].mdl.Init()
}

// Update handles SwitchMsg and forwards everything else to the current screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if sw, ok := msg.(SwitchMsg); ok {
		idx := m.index(sw.Name)
		if idx < 0 || idx == m.curr {
			return m, nil
		}
		m.curr = idx

		return m, m.screens[m.curr].mdl.Init()
	}

	var cmd tea.Cmd
	m.screens[m.curr].mdl, cmd = m.screens[m.curr].mdl.Update(msg)

	return m, cmd
}

// Broadcast delivers msg to every screen.
func (m Model) Broadcast(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.screens))
	for i := range m.screens {
		m.screens[i].mdl, cmds[i] = m.screens[i].mdl.Update(msg)
	}

	return m, tea.Batch(cmds...)
}

// View renders the current screen.
func (m Model) View() string {
	return m.screens[m.curr].mdl.View()
}

// Current returns the current screen's name.
func (m Model) Current() string {
	return m.screens[m.curr].Name
}

// Names lists the screens in order.
func (m Model) Names() []string {
	return collections.Apply(m.screens, func(s Screen) string { return s.Name })
}

func (m Model) index(name string) int {
	for i, s := range m.screens {
		if s.Name == name {
			return i
		}
	}

	return -1
}
