package labeledspinner_test

import (
	"testing"

	"github.com/alkime/voicescribe/internal/tui/components/labeledspinner"
	"github.com/alkime/voicescribe/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestLabeledSpinner(t *testing.T) {
	m := labeledspinner.New(spinner.Dot, "Transcribing", "Spanish", "please wait")
	t.Run("initial state", func(t *testing.T) {
		assert.Equal(t, "Transcribing", m.Title)
		assert.Equal(t, "Spanish", m.Subtitle)
		assert.Equal(t, "please wait", m.Help)
		assert.Equal(t, spinner.Dot, m.Spinner.Spinner)
	})

	v0 := m.View()
	t.Run("view output", func(t *testing.T) {
		assert.Contains(t, v0, "Transcribing")
		assert.Contains(t, v0, "Spanish")
		assert.Contains(t, v0, "please wait")
		assert.Contains(t, v0, spinner.Dot.Frames[0])
	})

	t.Run("check updates", func(t *testing.T) {
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[1])
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[2])
	})
}

func TestLabeledSpinner_OmitsEmptyLines(t *testing.T) {
	m := labeledspinner.New(spinner.Line, "Analyzing", "", "")
	m.Palette = style.Light

	assert.Equal(t, spinner.Line.Frames[0]+" Analyzing", m.View())
	assert.Contains(t, m.ViewWithHelp("3s elapsed"), "\n\n3s elapsed")
}
