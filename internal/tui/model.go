// Package tui is the terminal front end. Screens render controller snapshots
// and dispatch controller calls from commands so the event loop never blocks
// on capture or remote calls.
package tui

import (
	"context"
	"log/slog"

	"github.com/alkime/voicescribe/internal/app"
	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/theme"
	"github.com/alkime/voicescribe/internal/tui/components/screens"
	"github.com/alkime/voicescribe/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	screenRecorder = "recorder"
	screenSessions = "sessions"
)

// Controller is the part of the application controller the TUI drives.
type Controller interface {
	Snapshot() app.State
	StartRecording(ctx context.Context) error
	StopRecording(ctx context.Context) error
	Transcribe(ctx context.Context) error
	Analyze(ctx context.Context) error
	SetTranscript(text string)
	SetLanguage(s string) error
	SaveSession(name string) (session.Session, error)
	LoadSession(ctx context.Context, id string) error
	DeleteSession(id string)
	RenameSession(id, name string) error
	Sessions() []session.Session
	ShareRecording(ctx context.Context) error
	ShareTranscript(ctx context.Context) error
	CopyTranscript() error
	ToggleTheme() theme.Theme
	DismissMessage()
}

// Options carries what the screens need besides the controller.
type Options struct {
	// Ctx is passed to every controller call. Nil means context.Background().
	Ctx context.Context
	// Cancel, when set, is called on quit.
	Cancel context.CancelFunc
	// Levels feeds the live waveform. Nil draws a flat line.
	Levels uictl.Levels[int16]
	// Captured reports bytes captured so far in the current recording.
	Captured uictl.Dial[int64]
	Logger   *slog.Logger
}

type model struct {
	opts    Options
	logger  *slog.Logger
	screens screens.Model
}

// New returns the root model.
func New(ctrl Controller, opts Options) tea.Model {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.Levels == nil {
		opts.Levels = uictl.LevelsFunc[int16](func() []int16 { return nil })
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return model{
		opts:   opts,
		logger: opts.Logger.With("component", "tui"),
		screens: screens.New(
			screens.NewScreen(screenRecorder, newRecorderScreen(ctrl, opts)),
			screens.NewScreen(screenSessions, newSessionsScreen(ctrl, opts)),
		),
	}
}

func (m model) Init() tea.Cmd {
	return m.screens.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

	case quitMsg:
		return m, m.quit()

	case opDoneMsg:
		if msg.err != nil {
			m.logger.Debug("operation failed", "op", msg.op, "error", msg.err)
		}
		m.screens, cmd = m.screens.Broadcast(StateChangedMsg{})

		return m, cmd

	case StateChangedMsg, tea.WindowSizeMsg:
		m.screens, cmd = m.screens.Broadcast(msg)

		return m, cmd
	}

	m.screens, cmd = m.screens.Update(msg)

	return m, cmd
}

func (m model) View() string {
	return m.screens.View()
}

func (m model) quit() tea.Cmd {
	if m.opts.Cancel != nil {
		m.opts.Cancel()
	}

	return tea.Quit
}

// quitMsg asks the root model to cancel outstanding work and exit.
type quitMsg struct{}

func quit() tea.Msg {
	return quitMsg{}
}

// call runs fn against ctx in a command and reports the result as opDoneMsg.
func call(ctx context.Context, op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return done(op, fn(ctx))
	}
}
