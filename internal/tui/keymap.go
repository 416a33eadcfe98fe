package tui

import "github.com/charmbracelet/bubbles/key"

// recorderKeyMap defines the key bindings for the recorder screen.
type recorderKeyMap struct {
	Record     key.Binding
	Transcribe key.Binding
	Analyze    key.Binding
	Edit       key.Binding
	Save       key.Binding
	Copy       key.Binding
	Share      key.Binding
	Download   key.Binding
	Language   key.Binding
	Theme      key.Binding
	Sessions   key.Binding
	Dismiss    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultRecorderKeyMap() recorderKeyMap {
	return recorderKeyMap{
		Record: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "record/stop"),
		),
		Transcribe: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "transcribe"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "analyze"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Share: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "share text"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "share audio"),
		),
		Language: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "language"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Sessions: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "sessions"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k recorderKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Record, k.Transcribe, k.Edit, k.Save, k.Sessions, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped by concern.
func (k recorderKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Record, k.Transcribe, k.Analyze},
		{k.Edit, k.Save, k.Copy},
		{k.Share, k.Download},
		{k.Language, k.Theme, k.Sessions},
		{k.Dismiss, k.Help, k.Quit},
	}
}

// sessionsKeyMap defines the key bindings for the sessions screen.
type sessionsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Rename key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultSessionsKeyMap() sessionsKeyMap {
	return sessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "tab"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k sessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Rename, k.Delete, k.Back, k.Quit}
}

// FullHelp returns every binding.
func (k sessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Rename, k.Delete},
		{k.Back, k.Quit},
	}
}

// editKeyMap is active while a text field has focus.
type editKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

func defaultEditKeyMap() editKeyMap {
	return editKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "keep"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
