package settings

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathplace/internal/questiongen"
	"github.com/abhisek/mathplace/internal/quiz"
	"github.com/abhisek/mathplace/internal/router"
	quizscreen "github.com/abhisek/mathplace/internal/screens/quiz"
)

type nopGenerator struct{}

func (nopGenerator) Generate(context.Context, questiongen.Request) (*questiongen.Question, error) {
	return nil, questiongen.ErrGenerationFailed
}

var (
	tab      = tea.KeyPressMsg{Code: tea.KeyTab}
	shiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	enter    = tea.KeyPressMsg{Code: tea.KeyEnter}
	space    = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
)

func newForm(t *testing.T, defaults quiz.Settings) *SettingsScreen {
	t.Helper()
	ctrl := quiz.NewController(nopGenerator{})
	t.Cleanup(ctrl.Close)
	s := New(ctrl, defaults)
	s.Init()
	return s
}

func TestSettingsScreen_Defaults(t *testing.T) {
	s := newForm(t, quiz.DefaultSettings())

	got := s.Settings()
	if got.Lower != questiongen.DefaultLower || got.Upper != questiongen.DefaultUpper {
		t.Errorf("bounds = %q..%q", got.Lower, got.Upper)
	}
	if got.UseSkillsList {
		t.Error("bounded mode should be the default")
	}
	if len(got.Skills) != len(quiz.DefaultSkills) {
		t.Errorf("skills = %v, want defaults", got.Skills)
	}
	if !s.CanStart() {
		t.Error("defaults should be startable")
	}
	if view := s.View(80, 30); !strings.Contains(view, "Lower bound") {
		t.Errorf("bounded fields not rendered:\n%s", view)
	}
}

func TestSettingsScreen_FocusCycle(t *testing.T) {
	s := newForm(t, quiz.DefaultSettings())

	want := []field{fieldLower, fieldUpper, fieldStart, fieldMode}
	for _, f := range want {
		s.Update(tab)
		if s.focus != f {
			t.Fatalf("focus = %d, want %d", s.focus, f)
		}
	}
	s.Update(shiftTab)
	if s.focus != fieldStart {
		t.Errorf("shift+tab focus = %d, want start", s.focus)
	}
}

func TestSettingsScreen_ToggleMode(t *testing.T) {
	s := newForm(t, quiz.DefaultSettings())

	s.Update(space)
	if !s.Settings().UseSkillsList {
		t.Fatal("space should toggle skill-list mode")
	}
	view := s.View(80, 30)
	if !strings.Contains(view, "Skills, easiest first") {
		t.Errorf("skills field not rendered:\n%s", view)
	}
	if strings.Contains(view, "Lower bound") {
		t.Error("bounds should be hidden in skill-list mode")
	}

	s.Update(tab)
	if s.focus != fieldSkills {
		t.Fatalf("focus = %d, want skills", s.focus)
	}
	s.Update(tab)
	if s.focus != fieldStart {
		t.Fatalf("focus = %d, want start", s.focus)
	}
}

func TestSettingsScreen_StartDisabledWhenIncomplete(t *testing.T) {
	s := newForm(t, quiz.Settings{Lower: "counting to 10"})

	if s.CanStart() {
		t.Fatal("missing upper bound should block start")
	}
	s.setFocus(fieldStart)
	if _, cmd := s.Update(enter); cmd != nil {
		t.Error("start should do nothing while disabled")
	}
	if view := s.View(80, 30); !strings.Contains(view, "Both bounds are required") {
		t.Errorf("hint missing:\n%s", view)
	}

	s.upper.SetValue("fractions")
	if !s.CanStart() {
		t.Fatal("both bounds filled should allow start")
	}
}

func TestSettingsScreen_StartPushesQuiz(t *testing.T) {
	s := newForm(t, quiz.Settings{Lower: " counting to 10 ", Upper: "fractions"})
	s.setFocus(fieldStart)

	_, cmd := s.Update(enter)
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*quizscreen.QuizScreen); !ok {
		t.Errorf("pushed %T, want quiz screen", msg.Screen)
	}
	if got := s.Settings().Lower; got != "counting to 10" {
		t.Errorf("lower = %q, want trimmed", got)
	}
}

func TestSettingsScreen_SkillListParsing(t *testing.T) {
	s := newForm(t, quiz.Settings{UseSkillsList: true})

	s.skills.SetValue("  adding  \n\n subtracting\n")
	got := s.Settings().Skills
	if len(got) != 2 || got[0] != "adding" || got[1] != "subtracting" {
		t.Errorf("skills = %q", got)
	}

	s.skills.SetValue("\n  \n")
	if s.CanStart() {
		t.Error("empty skill list should block start")
	}
}
