package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alkime/voicescribe/internal/app"
	"github.com/alkime/voicescribe/internal/transcription"
	"github.com/alkime/voicescribe/internal/tui/components/labeledspinner"
	"github.com/alkime/voicescribe/internal/tui/components/screens"
	"github.com/alkime/voicescribe/internal/tui/components/waveform"
	"github.com/alkime/voicescribe/internal/tui/style"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	defaultWidth   = 80
	waveformHeight = 4
	maxWaveWidth   = 60
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeEdit
	modeName
)

// recorderScreen drives one record, transcribe, analyze cycle.
type recorderScreen struct {
	ctrl     Controller
	opts     Options
	keys     recorderKeyMap
	editKeys editKeyMap
	help     help.Model

	state   app.State
	palette style.Palette
	mode    inputMode
	width   int

	stopwatch stopwatch.Model
	wave      waveform.Model
	spinner   labeledspinner.Model
	editor    textarea.Model
	name      textinput.Model
}

func newRecorderScreen(ctrl Controller, opts Options) *recorderScreen {
	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.SetWidth(defaultWidth - 4)
	editor.SetHeight(8)

	name := textinput.New()
	name.Placeholder = "leave empty for a timestamp"
	name.CharLimit = 120

	m := &recorderScreen{
		ctrl:      ctrl,
		opts:      opts,
		keys:      defaultRecorderKeyMap(),
		editKeys:  defaultEditKeyMap(),
		help:      help.New(),
		width:     defaultWidth,
		stopwatch: stopwatch.NewWithInterval(time.Second),
		wave:      waveform.New(opts.Levels, maxWaveWidth, waveformHeight),
		spinner:   labeledspinner.New(spinner.Dot, "Transcribing", "", ""),
		editor:    editor,
		name:      name,
	}
	m.applyState(ctrl.Snapshot())

	return m
}

func (m *recorderScreen) Init() tea.Cmd {
	return tea.Batch(m.wave.Init(), m.spinner.Init())
}

func (m *recorderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case StateChangedMsg:
		return m, m.refresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.wave = m.wave.WithWidth(min(msg.Width-4, maxWaveWidth))
		m.editor.SetWidth(max(msg.Width-4, 20))

		return m, nil

	case waveform.TickMsg:
		m.wave, cmd = m.wave.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stopwatch.TickMsg, stopwatch.StartStopMsg, stopwatch.ResetMsg:
		m.stopwatch, cmd = m.stopwatch.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m, m.updateEdit(msg)
		case modeName:
			return m, m.updateName(msg)
		default:
			return m, m.updateNormal(msg)
		}
	}

	// cursor blink and friends
	switch m.mode {
	case modeEdit:
		m.editor, cmd = m.editor.Update(msg)
	case modeName:
		m.name, cmd = m.name.Update(msg)
	}

	return m, cmd
}

func (m *recorderScreen) updateNormal(msg tea.KeyMsg) tea.Cmd {
	ctx := m.opts.Ctx

	switch {
	case key.Matches(msg, m.keys.Record):
		if m.state.Recording {
			return call(ctx, "stop", m.ctrl.StopRecording)
		}
		return call(ctx, "start", m.ctrl.StartRecording)

	case key.Matches(msg, m.keys.Transcribe):
		return call(ctx, "transcribe", m.ctrl.Transcribe)

	case key.Matches(msg, m.keys.Analyze):
		return call(ctx, "analyze", m.ctrl.Analyze)

	case key.Matches(msg, m.keys.Edit):
		if m.state.Recording || m.state.Transcribing {
			return nil
		}
		m.mode = modeEdit
		m.editor.SetValue(m.state.Transcript)

		return m.editor.Focus()

	case key.Matches(msg, m.keys.Save):
		m.mode = modeName
		m.name.SetValue(m.state.SessionName)

		return m.name.Focus()

	case key.Matches(msg, m.keys.Copy):
		return call(ctx, "copy", func(context.Context) error { return m.ctrl.CopyTranscript() })

	case key.Matches(msg, m.keys.Share):
		return call(ctx, "share transcript", m.ctrl.ShareTranscript)

	case key.Matches(msg, m.keys.Download):
		return call(ctx, "share recording", m.ctrl.ShareRecording)

	case key.Matches(msg, m.keys.Language):
		next := nextLanguage(m.state.Language)
		return call(ctx, "language", func(context.Context) error { return m.ctrl.SetLanguage(next.Name) })

	case key.Matches(msg, m.keys.Theme):
		return call(ctx, "theme", func(context.Context) error {
			m.ctrl.ToggleTheme()
			return nil
		})

	case key.Matches(msg, m.keys.Sessions):
		return screens.Switch(screenSessions)

	case key.Matches(msg, m.keys.Dismiss):
		return call(ctx, "dismiss", func(context.Context) error {
			m.ctrl.DismissMessage()
			return nil
		})

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Quit):
		return quit
	}

	return nil
}

func (m *recorderScreen) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.editKeys.Submit):
		text := m.editor.Value()
		m.mode = modeNormal
		m.editor.Blur()

		return call(m.opts.Ctx, "edit", func(context.Context) error {
			m.ctrl.SetTranscript(text)
			return nil
		})

	case key.Matches(msg, m.editKeys.Cancel):
		m.mode = modeNormal
		m.editor.Blur()

		return nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	return cmd
}

func (m *recorderScreen) updateName(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		name := m.name.Value()
		m.mode = modeNormal
		m.name.Blur()

		return call(m.opts.Ctx, "save", func(context.Context) error {
			_, err := m.ctrl.SaveSession(name)
			return err
		})

	case tea.KeyEsc:
		m.mode = modeNormal
		m.name.Blur()

		return nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)

	return cmd
}

// refresh re-reads controller state and starts or stops the stopwatch when
// capture begins or ends.
func (m *recorderScreen) refresh() tea.Cmd {
	prev := m.state.Recording
	m.applyState(m.ctrl.Snapshot())

	switch {
	case !prev && m.state.Recording:
		return tea.Sequence(m.stopwatch.Reset(), m.stopwatch.Start())
	case prev && !m.state.Recording:
		return m.stopwatch.Stop()
	}

	return nil
}

func (m *recorderScreen) applyState(s app.State) {
	m.state = s
	m.palette = style.For(s.Theme)
	m.spinner.Palette = m.palette
	m.wave = m.wave.WithPalette(m.palette)
}

func (m *recorderScreen) View() string {
	p := m.palette

	var sb strings.Builder

	sb.WriteString(p.Title.Render("VoiceScribe"))
	sb.WriteString("  ")
	sb.WriteString(p.Label.Render("Language:"))
	sb.WriteString(" ")
	sb.WriteString(p.Subtitle.Render(m.state.Language.Name))
	sb.WriteString("\n\n")

	sb.WriteString(m.statusView())
	sb.WriteString("\n\n")

	if body := m.transcriptView(); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}

	if m.state.Metrics != nil && m.mode != modeEdit {
		sb.WriteString(m.metricsView())
		sb.WriteString("\n\n")
	}

	if m.mode == modeName {
		sb.WriteString(p.Label.Render("Session name:"))
		sb.WriteString(" ")
		sb.WriteString(m.name.View())
		sb.WriteString("\n")
		sb.WriteString(p.KeyHelp([2]string{"enter", "save"}, [2]string{"esc", "cancel"}))
		sb.WriteString("\n\n")
	}

	if msg := m.state.Message; !msg.IsZero() {
		if msg.Kind == app.MessageError {
			sb.WriteString(p.Error.Render(msg.Text))
		} else {
			sb.WriteString(p.Success.Render(msg.Text))
		}
		sb.WriteString("\n\n")
	}

	if m.mode == modeNormal {
		sb.WriteString(m.help.View(m.keys))
	}

	return sb.String()
}

func (m *recorderScreen) statusView() string {
	p := m.palette

	switch {
	case m.state.Recording:
		var captured string
		if m.opts.Captured != nil {
			captured = "  " + p.Muted.Render(humanize.Bytes(uint64(max(m.opts.Captured.Read(), 0))))
		}

		return p.Warning.Render("● Recording") + " " +
			p.Subtitle.Render(m.stopwatch.View()) + captured + "\n\n" +
			m.wave.View()

	case m.state.Transcribing:
		ls := m.spinner
		ls.Title = "Transcribing"
		return ls.ViewWithHelp("")

	case m.state.Analyzing:
		ls := m.spinner
		ls.Title = "Analyzing"
		return ls.ViewWithHelp("")

	case m.state.Audio != nil:
		a := m.state.Audio
		return p.Label.Render("Recording:") + " " + a.Filename + " " +
			p.Muted.Render("("+humanize.Bytes(uint64(a.Size))+")") + "\n" +
			p.Muted.Render(a.Path)

	default:
		return p.Subtitle.Render("Press space to start recording")
	}
}

func (m *recorderScreen) transcriptView() string {
	p := m.palette

	if m.mode == modeEdit {
		return p.Title.Render("Edit transcript") + "\n\n" +
			m.editor.View() + "\n" +
			p.KeyHelp(
				[2]string{m.editKeys.Submit.Help().Key, m.editKeys.Submit.Help().Desc},
				[2]string{m.editKeys.Cancel.Help().Key, m.editKeys.Cancel.Help().Desc},
			)
	}

	if m.state.Transcript == "" {
		return ""
	}

	title := "Transcript"
	if m.state.SessionName != "" {
		title = m.state.SessionName
	}

	return p.Title.Render(title) + "\n\n" +
		p.Viewport.Render(wrapText(m.state.Transcript, m.width-4))
}

func (m *recorderScreen) metricsView() string {
	p := m.palette

	fields := m.state.Metrics.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = p.Label.Render(f.Label+":") + " " + fmt.Sprint(f.Value)
	}

	return strings.Join(parts, "  ")
}

// nextLanguage returns the supported language after cur, wrapping around.
func nextLanguage(cur transcription.Language) transcription.Language {
	langs := transcription.SupportedLanguages()
	for i, l := range langs {
		if l.Tag == cur.Tag {
			return langs[(i+1)%len(langs)]
		}
	}

	return langs[0]
}

// wrapText wraps text to width so long lines wrap instead of overflowing.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	return lipgloss.NewStyle().Width(width).Render(text)
}
