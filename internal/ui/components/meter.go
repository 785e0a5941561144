package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplace/internal/ui/theme"
)

// Meter is a horizontal bar showing Value out of Max.
type Meter struct {
	Label string
	Value int
	Max   int
	Width int

	// Fill is the bar colour. Defaults to theme.Secondary.
	Fill color.Color

	// ShowCount appends "Value/Max" after the bar.
	ShowCount bool
}

// Fraction returns Value/Max clamped to [0, 1].
func (m Meter) Fraction() float64 {
	if m.Max <= 0 {
		return 0
	}
	f := float64(m.Value) / float64(m.Max)
	return max(0, min(f, 1))
}

// View renders the meter.
func (m Meter) View() string {
	var b strings.Builder
	if m.Label != "" {
		b.WriteString(theme.Label.Render(m.Label))
		b.WriteString("  ")
	}

	count := ""
	if m.ShowCount {
		count = fmt.Sprintf("  %d/%d", m.Value, m.Max)
	}

	barWidth := max(m.Width-lipgloss.Width(b.String())-len(count), 4)
	filled := int(float64(barWidth) * m.Fraction())

	fill := m.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))
	if count != "" {
		b.WriteString(theme.Hint.Render(count))
	}
	return b.String()
}
