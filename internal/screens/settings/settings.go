// Package settings is the placement test setup form.
package settings

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplace/internal/quiz"
	"github.com/abhisek/mathplace/internal/router"
	"github.com/abhisek/mathplace/internal/screen"
	quizscreen "github.com/abhisek/mathplace/internal/screens/quiz"
	"github.com/abhisek/mathplace/internal/ui/components"
	"github.com/abhisek/mathplace/internal/ui/layout"
	"github.com/abhisek/mathplace/internal/ui/theme"
)

type field int

const (
	fieldMode field = iota
	fieldLower
	fieldUpper
	fieldSkills
	fieldStart
)

// SettingsScreen lets the learner choose a difficulty range or a skill list
// and start a test.
type SettingsScreen struct {
	ctrl *quiz.Controller

	mode   components.Toggle
	lower  components.TextInput
	upper  components.TextInput
	skills textarea.Model
	focus  field
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the form pre-filled from defaults.
func New(ctrl *quiz.Controller, defaults quiz.Settings) *SettingsScreen {
	lower := components.NewTextInput("Lower bound", "e.g. single digit addition", 100)
	lower.SetValue(defaults.Lower)
	upper := components.NewTextInput("Upper bound", "e.g. division to 9", 100)
	upper.SetValue(defaults.Upper)

	skills := textarea.New()
	skills.Placeholder = "One skill per line, easiest first"
	skills.ShowLineNumbers = false
	skills.SetWidth(44)
	skills.SetHeight(6)
	list := defaults.Skills
	if len(list) == 0 {
		list = quiz.DefaultSkills
	}
	skills.SetValue(strings.Join(list, "\n"))

	return &SettingsScreen{
		ctrl:   ctrl,
		mode:   components.Toggle{Label: "Use a skill list", On: defaults.UseSkillsList},
		lower:  lower,
		upper:  upper,
		skills: skills,
	}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return s.setFocus(fieldMode)
}

func (s *SettingsScreen) Title() string {
	return "Placement Test"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	switch s.focus {
	case fieldMode:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	case fieldStart:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Generate test"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Settings returns the form values.
func (s *SettingsScreen) Settings() quiz.Settings {
	return quiz.Settings{
		Lower:         strings.TrimSpace(s.lower.Value()),
		Upper:         strings.TrimSpace(s.upper.Value()),
		UseSkillsList: s.mode.On,
		Skills:        quiz.ParseSkills(s.skills.Value()),
	}
}

// CanStart reports whether the required fields are filled in.
func (s *SettingsScreen) CanStart() bool {
	return s.Settings().Validate() == nil
}

func (s *SettingsScreen) fields() []field {
	if s.mode.On {
		return []field{fieldMode, fieldSkills, fieldStart}
	}
	return []field{fieldMode, fieldLower, fieldUpper, fieldStart}
}

func (s *SettingsScreen) moveFocus(delta int) tea.Cmd {
	fields := s.fields()
	idx := 0
	for i, f := range fields {
		if f == s.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	return s.setFocus(fields[idx])
}

func (s *SettingsScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.mode.Focused = f == fieldMode
	s.lower.Blur()
	s.upper.Blur()
	s.skills.Blur()

	switch f {
	case fieldLower:
		return s.lower.Focus()
	case fieldUpper:
		return s.upper.Focus()
	case fieldSkills:
		return s.skills.Focus()
	}
	return nil
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, s.updateFocused(msg)
	}

	switch key.String() {
	case "tab":
		return s, s.moveFocus(1)
	case "shift+tab":
		return s, s.moveFocus(-1)
	}

	switch s.focus {
	case fieldMode:
		switch key.String() {
		case "space", "enter", "x":
			s.mode.On = !s.mode.On
		case "down":
			return s, s.moveFocus(1)
		}
		return s, nil

	case fieldStart:
		switch key.String() {
		case "enter", "space":
			return s, s.start()
		case "up":
			return s, s.moveFocus(-1)
		}
		return s, nil

	case fieldLower, fieldUpper:
		switch key.String() {
		case "enter", "down":
			return s, s.moveFocus(1)
		case "up":
			return s, s.moveFocus(-1)
		}
	}

	return s, s.updateFocused(msg)
}

func (s *SettingsScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldLower:
		s.lower, cmd = s.lower.Update(msg)
	case fieldUpper:
		s.upper, cmd = s.upper.Update(msg)
	case fieldSkills:
		s.skills, cmd = s.skills.Update(msg)
	}
	return cmd
}

func (s *SettingsScreen) start() tea.Cmd {
	if !s.CanStart() {
		return nil
	}
	next := quizscreen.New(s.ctrl, s.Settings())
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Title, "Math Placement Test"))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Hint, "Questions adapt to your answers and how quickly you give them."))
	b.WriteString("\n\n")

	var form strings.Builder
	form.WriteString(s.mode.View())
	form.WriteString("\n\n")

	if s.mode.On {
		form.WriteString(s.label("Skills, easiest first", fieldSkills))
		form.WriteString("\n")
		form.WriteString(s.skills.View())
		form.WriteString("\n")
	} else {
		form.WriteString(s.label(s.lower.Label, fieldLower))
		form.WriteString("\n")
		form.WriteString(s.lower.View())
		form.WriteString("\n\n")
		form.WriteString(s.label(s.upper.Label, fieldUpper))
		form.WriteString("\n")
		form.WriteString(s.upper.View())
		form.WriteString("\n")
	}
	form.WriteString("\n")

	btn := components.Button{Label: "Generate Test", Focused: s.focus == fieldStart, Disabled: !s.CanStart()}
	form.WriteString(btn.View())
	if !s.CanStart() {
		form.WriteString("\n")
		if s.mode.On {
			form.WriteString(theme.Hint.Render("Add at least one skill to start."))
		} else {
			form.WriteString(theme.Hint.Render("Both bounds are required to start."))
		}
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(form.String())))
	return b.String()
}

func (s *SettingsScreen) label(text string, f field) string {
	if s.focus == f {
		return theme.Focused.Render(text)
	}
	return theme.Label.Render(text)
}
