package tui

import (
	"context"
	"strings"

	"github.com/alkime/voicescribe/internal/app"
	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/tui/components/screens"
	"github.com/alkime/voicescribe/internal/tui/style"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

const previewLen = 48

// sessionsScreen lists saved sessions.
type sessionsScreen struct {
	ctrl Controller
	opts Options
	keys sessionsKeyMap
	help help.Model

	list     []session.Session
	cursor   int
	message  app.Message
	palette  style.Palette
	renaming bool
	name     textinput.Model
}

func newSessionsScreen(ctrl Controller, opts Options) *sessionsScreen {
	name := textinput.New()
	name.CharLimit = 120

	return &sessionsScreen{
		ctrl:    ctrl,
		opts:    opts,
		keys:    defaultSessionsKeyMap(),
		help:    help.New(),
		palette: style.Dark,
		name:    name,
	}
}

// Init refreshes the list each time the screen is shown.
func (m *sessionsScreen) Init() tea.Cmd {
	return func() tea.Msg { return StateChangedMsg{} }
}

func (m *sessionsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateChangedMsg:
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.renaming {
			return m, m.updateRename(msg)
		}
		return m, m.updateNormal(msg)
	}

	if m.renaming {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *sessionsScreen) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.list)-1, 0))

	case key.Matches(msg, m.keys.Open):
		sel, ok := m.selected()
		if !ok {
			return nil
		}
		return tea.Batch(
			call(m.opts.Ctx, "load", func(ctx context.Context) error { return m.ctrl.LoadSession(ctx, sel.ID) }),
			screens.Switch(screenRecorder),
		)

	case key.Matches(msg, m.keys.Rename):
		sel, ok := m.selected()
		if !ok {
			return nil
		}
		m.renaming = true
		m.name.SetValue(sel.Name)

		return m.name.Focus()

	case key.Matches(msg, m.keys.Delete):
		sel, ok := m.selected()
		if !ok {
			return nil
		}
		return call(m.opts.Ctx, "delete", func(context.Context) error {
			m.ctrl.DeleteSession(sel.ID)
			return nil
		})

	case key.Matches(msg, m.keys.Back):
		return screens.Switch(screenRecorder)

	case key.Matches(msg, m.keys.Quit):
		return quit
	}

	return nil
}

func (m *sessionsScreen) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.renaming = false
		m.name.Blur()

		sel, ok := m.selected()
		if !ok {
			return nil
		}
		name := m.name.Value()

		return call(m.opts.Ctx, "rename", func(context.Context) error { return m.ctrl.RenameSession(sel.ID, name) })

	case tea.KeyEsc:
		m.renaming = false
		m.name.Blur()

		return nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)

	return cmd
}

func (m *sessionsScreen) refresh() {
	m.list = m.ctrl.Sessions()
	m.cursor = min(m.cursor, max(len(m.list)-1, 0))

	s := m.ctrl.Snapshot()
	m.message = s.Message
	m.palette = style.For(s.Theme)
}

func (m *sessionsScreen) selected() (session.Session, bool) {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return session.Session{}, false
	}

	return m.list[m.cursor], true
}

func (m *sessionsScreen) View() string {
	p := m.palette

	var sb strings.Builder

	sb.WriteString(p.Title.Render("Sessions"))
	sb.WriteString("\n\n")

	if len(m.list) == 0 {
		sb.WriteString(p.Subtitle.Render("No saved sessions yet."))
		sb.WriteString("\n\n")
	}

	for i, s := range m.list {
		marker := "  "
		row := s.Name + "  " + p.Muted.Render(humanize.Time(s.Date))
		if i == m.cursor {
			marker = p.Bullet.Render("> ")
			row = p.Selected.Render(s.Name) + "  " + p.Muted.Render(humanize.Time(s.Date))
		}
		sb.WriteString(marker)
		sb.WriteString(row)
		sb.WriteString("\n")
		sb.WriteString("    ")
		sb.WriteString(p.Muted.Render(preview(s.Text)))
		sb.WriteString("\n")
	}

	if m.renaming {
		sb.WriteString("\n")
		sb.WriteString(p.Label.Render("New name:"))
		sb.WriteString(" ")
		sb.WriteString(m.name.View())
		sb.WriteString("\n")
		sb.WriteString(p.KeyHelp([2]string{"enter", "rename"}, [2]string{"esc", "cancel"}))
		sb.WriteString("\n")
	}

	if !m.message.IsZero() {
		sb.WriteString("\n")
		if m.message.Kind == app.MessageError {
			sb.WriteString(p.Error.Render(m.message.Text))
		} else {
			sb.WriteString(p.Success.Render(m.message.Text))
		}
		sb.WriteString("\n")
	}

	if !m.renaming {
		sb.WriteString("\n")
		sb.WriteString(m.help.View(m.keys))
	}

	return sb.String()
}

// preview returns the first line of text, shortened to previewLen runes.
func preview(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	r := []rune(line)
	if len(r) <= previewLen {
		return line
	}

	return string(r[:previewLen-1]) + "…"
}
