// Package waveform renders live capture levels as a bar meter.
package waveform

import (
	"math"
	"strings"
	"time"

	"github.com/alkime/voicescribe/internal/tui/style"
	"github.com/alkime/voicescribe/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// Block characters, index 0 = empty, 1-8 = increasing fill.
const blockChars = " ▁▂▃▄▅▆▇█"

const maxAmplitude = 32767.0

// TickMsg triggers a redraw.
type TickMsg struct{}

// Model reads samples from a Levels control and renders them as columns,
// oldest on the left.
type Model struct {
	levels  uictl.Levels[int16]
	palette style.Palette
	width   int
	height  int
}

// New creates a waveform of width columns and height rows.
func New(levels uictl.Levels[int16], width, height int) Model {
	return Model{
		levels:  levels,
		palette: style.Dark,
		width:   max(1, width),
		height:  max(1, height),
	}
}

// WithPalette returns a copy rendering with p.
func (m Model) WithPalette(p style.Palette) Model {
	m.palette = p
	return m
}

// WithWidth returns a copy with a new column count.
func (m Model) WithWidth(width int) Model {
	m.width = max(1, width)
	return m
}

// Init returns the initial tick command.
func (m Model) Init() tea.Cmd {
	return Tick()
}

// Update keeps the redraw loop going on each TickMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, Tick()
	}

	return m, nil
}

// Tick schedules a redraw at ~20 FPS.
func Tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the meter.
func (m Model) View() string {
	var samples []int16
	if m.levels != nil {
		samples = m.levels.Read()
	}

	if len(samples) == 0 {
		return m.renderBaseline()
	}

	levels := m.columnLevels(samples)
	runes := []rune(blockChars)

	rows := make([]string, m.height)
	for row := range rows {
		var sb strings.Builder
		for _, level := range levels {
			sb.WriteRune(runes[m.fillForRow(level, row)])
		}
		rows[row] = m.palette.Progress.Render(sb.String())
	}

	return strings.Join(rows, "\n")
}

// columnLevels buckets samples into columns and maps each bucket's peak to
// 0..height*8.
func (m Model) columnLevels(samples []int16) []int {
	levels := make([]int, m.width)
	bucket := max(1, len(samples)/m.width)
	top := m.height * 8

	for col := range levels {
		start := col * bucket
		if start >= len(samples) {
			break
		}

		end := min(start+bucket, len(samples))
		levels[col] = scale(peak(samples[start:end]), top)
	}

	return levels
}

// fillForRow returns the block index for a column at row, row 0 being the top.
func (m Model) fillForRow(level, row int) int {
	base := (m.height - 1 - row) * 8

	return min(max(level-base, 0), 8)
}

func (m Model) renderBaseline() string {
	rows := make([]string, m.height)
	for row := range rows {
		fill := " "
		if row == m.height-1 {
			fill = "▁"
		}
		rows[row] = m.palette.Muted.Render(strings.Repeat(fill, m.width))
	}

	return strings.Join(rows, "\n")
}

// peak returns the largest absolute sample value.
func peak(samples []int16) int {
	best := 0
	for _, s := range samples {
		v := int(s)
		if v < 0 {
			v = -v
		}
		best = max(best, v)
	}

	return min(best, int(maxAmplitude))
}

// scale maps an amplitude onto 0..top with a square-root curve so quiet
// speech stays visible.
func scale(amp, top int) int {
	if amp <= 0 {
		return 0
	}

	return min(int(math.Sqrt(float64(amp)/maxAmplitude)*float64(top)), top)
}
