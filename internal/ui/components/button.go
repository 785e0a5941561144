package components

import (
	"github.com/abhisek/mathplace/internal/ui/theme"
)

// Button is a styled push button. A disabled button renders dimmed.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Focused {
		label = "▸ " + label
	}
	if b.Disabled || !b.Focused {
		return theme.ButtonInactive.Render(label)
	}
	return theme.ButtonActive.Render(label)
}
