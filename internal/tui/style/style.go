// Package style defines lipgloss styles for the TUI.
package style

import (
	"github.com/alkime/voicescribe/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of styles for one theme.
//
// Field names intentionally omit a "Style" suffix since they're accessed
// via a palette value (e.g., p.Title reads better than p.TitleStyle).
type Palette struct {
	// Title is used for screen titles and headers.
	Title lipgloss.Style
	// Subtitle is used for secondary text.
	Subtitle lipgloss.Style
	// Success is used for notices.
	Success lipgloss.Style
	// Error is used for error messages.
	Error lipgloss.Style
	// Warning is used for in-progress states such as recording.
	Warning lipgloss.Style
	// Viewport is used for the transcript border.
	Viewport lipgloss.Style
	// Help is used for keyboard shortcut hints.
	Help lipgloss.Style
	// Key is used for highlighting keyboard keys.
	Key lipgloss.Style
	// Progress is used for the level meter.
	Progress lipgloss.Style
	// Label is used for inline labels (e.g., "Language:", "Words:").
	Label lipgloss.Style
	// Muted is used for de-emphasized text (e.g., file paths).
	Muted lipgloss.Style
	// Bullet is used for list item markers.
	Bullet lipgloss.Style
	// Selected is used for the highlighted list row.
	Selected lipgloss.Style
}

type colors struct {
	accent, secondary, success, err, warning, border, progress, label, muted lipgloss.Color
}

var (
	darkColors = colors{
		accent:    "205",
		secondary: "241",
		success:   "42",
		err:       "196",
		warning:   "214",
		border:    "62",
		progress:  "63",
		label:     "255",
		muted:     "245",
	}

	lightColors = colors{
		accent:    "163",
		secondary: "240",
		success:   "28",
		err:       "160",
		warning:   "166",
		border:    "69",
		progress:  "27",
		label:     "232",
		muted:     "244",
	}
)

// Dark and Light are the palettes for the two themes.
var (
	Dark  = build(darkColors)
	Light = build(lightColors)
)

// For returns the palette for a theme.
func For(t theme.Theme) Palette {
	if t == theme.Light {
		return Light
	}

	return Dark
}

func build(c colors) Palette {
	return Palette{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.accent),
		Subtitle: lipgloss.NewStyle().
			Foreground(c.secondary),
		Success: lipgloss.NewStyle().
			Foreground(c.success),
		Error: lipgloss.NewStyle().
			Foreground(c.err),
		Warning: lipgloss.NewStyle().
			Foreground(c.warning),
		Viewport: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.border).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(c.secondary),
		Key: lipgloss.NewStyle().
			Foreground(c.accent).
			Bold(true),
		Progress: lipgloss.NewStyle().
			Foreground(c.progress),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.label),
		Muted: lipgloss.NewStyle().
			Foreground(c.muted),
		Bullet: lipgloss.NewStyle().
			Foreground(c.accent),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.accent),
	}
}

// KeyHelp renders "[key] desc" pairs separated by two spaces.
func (p Palette) KeyHelp(pairs ...[2]string) string {
	var s string
	for i, pair := range pairs {
		if i > 0 {
			s += "  "
		}
		s += p.Help.Render("[") + p.Key.Render(pair[0]) + p.Help.Render("] "+pair[1])
	}

	return s
}
