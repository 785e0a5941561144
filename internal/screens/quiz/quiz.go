// Package quiz is the question screen of a placement test.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathplace/internal/quiz"
	"github.com/abhisek/mathplace/internal/router"
	"github.com/abhisek/mathplace/internal/screen"
	"github.com/abhisek/mathplace/internal/ui/components"
	"github.com/abhisek/mathplace/internal/ui/layout"
)

const tickInterval = 200 * time.Millisecond

// QuizScreen presents questions, evaluates answers and shows feedback.
type QuizScreen struct {
	ctrl     *quiz.Controller
	settings quiz.Settings

	ctx    context.Context
	cancel context.CancelFunc

	input  components.TextInput
	errMsg string
	closed bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen that starts a test with settings when pushed.
func New(ctrl *quiz.Controller, settings quiz.Settings) *QuizScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &QuizScreen{
		ctrl:     ctrl,
		settings: settings,
		ctx:      ctx,
		cancel:   cancel,
		input:    components.NewTextInput("Answer", "Type your answer", 64),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	t, err := s.ctrl.Start(s.settings)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return tea.Batch(s.fetch(t), tickCmd())
}

func (s *QuizScreen) Title() string {
	return "Placement Test"
}

// Status shows the streak and score in the header.
func (s *QuizScreen) Status() string {
	sess := s.ctrl.Session()
	if sess == nil {
		return ""
	}
	return fmt.Sprintf("Streak %d  Score %d/%d", sess.Streak, sess.Correct, sess.Answered)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	sess := s.ctrl.Session()
	back := layout.KeyHint{Key: "Esc", Description: "Settings"}
	if sess == nil {
		return []layout.KeyHint{back}
	}

	var hints []layout.KeyHint
	switch sess.State {
	case quiz.StatePresenting:
		hints = []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+D", Description: "I don't know"},
		}
	case quiz.StateEvaluating:
		if sess.Ready() {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next question"})
		}
		if len(sess.Question.Steps) > 0 {
			label := "Show steps"
			if sess.StepsShown {
				label = "Hide steps"
			}
			hints = append(hints, layout.KeyHint{Key: "S", Description: label})
		}
	}
	if sess.Err != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, back)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionMsg:
		return s.handleQuestion(msg)

	case tickMsg:
		if s.closed {
			return s, nil
		}
		return s, tickCmd()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.ctrl.State() == quiz.StatePresenting {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleQuestion(msg questionMsg) (screen.Screen, tea.Cmd) {
	before := s.ctrl.State()
	if !s.ctrl.Deliver(msg.Ticket, msg.Question, msg.Err) {
		return s, nil
	}
	if before != quiz.StatePresenting && s.ctrl.State() == quiz.StatePresenting {
		return s, s.resetInput()
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		return s, s.leave()
	}
	if s.errMsg != "" {
		return s, nil
	}

	sess := s.ctrl.Session()
	if sess == nil {
		return s, nil
	}

	if key == "r" && sess.Err != nil {
		t, err := s.ctrl.Retry()
		if err != nil {
			return s, nil
		}
		return s, s.fetch(t)
	}

	switch sess.State {
	case quiz.StatePresenting:
		switch key {
		case "enter":
			_, t, err := s.ctrl.Submit(s.input.Value())
			if err != nil {
				return s, nil
			}
			s.input.Blur()
			return s, s.fetch(t)
		case "ctrl+d":
			_, t, err := s.ctrl.DontKnow()
			if err != nil {
				return s, nil
			}
			s.input.Blur()
			return s, s.fetch(t)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case quiz.StateEvaluating:
		switch key {
		case "s":
			_ = s.ctrl.ToggleSteps()
		case "enter", "n":
			if err := s.ctrl.Advance(); err != nil {
				return s, nil
			}
			return s, s.resetInput()
		}
	}
	return s, nil
}

// leave ends the test and returns to the settings form. Any request still in
// flight is cancelled and its result ignored.
func (s *QuizScreen) leave() tea.Cmd {
	s.ctrl.ReturnToSettings()
	s.cancel()
	s.closed = true
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) resetInput() tea.Cmd {
	s.input.SetValue("")
	return s.input.Focus()
}

func (s *QuizScreen) fetch(t quiz.Ticket) tea.Cmd {
	ctrl, ctx := s.ctrl, s.ctx
	return func() tea.Msg {
		q, err := ctrl.Fetch(ctx, t)
		return questionMsg{Ticket: t, Question: q, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	sess := s.ctrl.Session()
	if sess == nil {
		return renderLoading(width, "Starting...")
	}

	switch sess.State {
	case quiz.StateAwaitingFirstQuestion:
		if sess.Err != nil {
			return renderFailure(width, sess.Err)
		}
		return renderLoading(width, "Generating your first question...")
	case quiz.StatePresenting:
		return s.renderQuestion(width, sess)
	case quiz.StateEvaluating:
		return s.renderFeedback(width, sess)
	}
	return ""
}

func failureText(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "The question took too long to generate."
	}
	return "Couldn't generate a question."
}
