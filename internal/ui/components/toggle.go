package components

import (
	"github.com/abhisek/mathplace/internal/ui/theme"
)

// Toggle is a two-state switch with a label.
type Toggle struct {
	Label   string
	On      bool
	Focused bool
}

// View renders the toggle as "[x] Label".
func (t Toggle) View() string {
	box := "[ ]"
	if t.On {
		box = "[x]"
	}
	text := box + " " + t.Label
	if t.Focused {
		return theme.Focused.Render("▸ " + text)
	}
	return theme.Blurred.Render("  " + text)
}
