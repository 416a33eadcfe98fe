package tui

import tea "github.com/charmbracelet/bubbletea"

// StateChangedMsg tells the UI to re-read controller state. Send it from the
// controller's OnChange hook.
type StateChangedMsg struct{}

// opDoneMsg reports the result of a controller call made from a command.
// The controller has already surfaced any failure in its message slot; err is
// only logged.
type opDoneMsg struct {
	op  string
	err error
}

func done(op string, err error) tea.Msg {
	return opDoneMsg{op: op, err: err}
}
