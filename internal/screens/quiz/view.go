package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplace/internal/adaptive"
	"github.com/abhisek/mathplace/internal/quiz"
	"github.com/abhisek/mathplace/internal/ui/components"
	"github.com/abhisek/mathplace/internal/ui/layout"
	"github.com/abhisek/mathplace/internal/ui/theme"
)

const textWidth = 72

func (s *QuizScreen) renderQuestion(width int, sess *quiz.Session) string {
	var b strings.Builder
	b.WriteString(infoLine(width, sess.Difficulty, fmt.Sprintf("Streak %d   %s", sess.Streak, clock(s.ctrl.Elapsed()))))
	b.WriteString("\n\n")

	b.WriteString(layout.Wrap(width, textWidth, theme.Question.Align(lipgloss.Center), sess.Question.Question))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle(), "Answer: "+s.input.View()))
	b.WriteString("\n\n")

	window := components.Meter{
		Label: "Bonus",
		Value: max(adaptive.SlowResponseSeconds-s.ctrl.Elapsed(), 0),
		Max:   adaptive.SlowResponseSeconds,
		Width: 40,
		Fill:  theme.Accent,
	}
	b.WriteString(layout.Center(width, lipgloss.NewStyle(), window.View()))
	b.WriteString("\n")
	if ladder, ok := skillLadder(sess); ok {
		b.WriteString(layout.Center(width, lipgloss.NewStyle(), ladder.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Hint, "Not sure? Press Ctrl+D to say you don't know."))
	return b.String()
}

func (s *QuizScreen) renderFeedback(width int, sess *quiz.Session) string {
	var b strings.Builder
	b.WriteString(infoLine(width, sess.Difficulty, fmt.Sprintf("Streak %d   %s", sess.Streak, clock(sess.ResponseSeconds))))
	b.WriteString("\n\n")

	b.WriteString(layout.Wrap(width, textWidth, theme.Body.Align(lipgloss.Center), sess.Question.Question))
	b.WriteString("\n\n")

	switch sess.Outcome {
	case adaptive.OutcomeCorrect:
		b.WriteString(layout.Center(width, theme.Correct, "Correct!"))
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Bonus, fmt.Sprintf("Answered in %s, %s", clock(sess.ResponseSeconds), sess.StreakResult().Label())))
	case adaptive.OutcomeIncorrect:
		b.WriteString(layout.Center(width, theme.Incorrect, "Not quite."))
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Body, fmt.Sprintf("You answered %s. The answer is %s.", sess.Answer, sess.Question.Answer)))
	default:
		b.WriteString(layout.Center(width, theme.DontKnow, "That's okay."))
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Body, "The answer is "+sess.Question.Answer+"."))
	}
	b.WriteString("\n\n")

	if sess.ExplanationShown && sess.Question.Explanation != "" {
		b.WriteString(layout.Wrap(width, textWidth, theme.Body, sess.Question.Explanation))
		b.WriteString("\n\n")
	}

	if sess.StepsShown && len(sess.Question.Steps) > 0 {
		var steps strings.Builder
		for i, step := range sess.Question.Steps {
			if i > 0 {
				steps.WriteString("\n")
			}
			fmt.Fprintf(&steps, "%d. %s", i+1, step)
		}
		b.WriteString(layout.Wrap(width, textWidth, theme.Body, steps.String()))
		b.WriteString("\n\n")
	}

	switch {
	case sess.Err != nil:
		b.WriteString(layout.Center(width, theme.Incorrect, failureText(sess.Err)+" Press R to retry."))
	case sess.Ready():
		b.WriteString(layout.Center(width, theme.Label, "Press Enter for the next question."))
	default:
		b.WriteString(layout.Center(width, theme.Hint, "Loading the next question..."))
	}
	return b.String()
}

// skillLadder shows the position of the current skill in skill-list mode.
func skillLadder(sess *quiz.Session) (components.Meter, bool) {
	list, ok := sess.Descriptor.(adaptive.SkillList)
	if !ok || len(list.Skills) == 0 {
		return components.Meter{}, false
	}
	return components.Meter{
		Label:     "Level",
		Value:     list.ResolveIndex(sess.Difficulty) + 1,
		Max:       len(list.Skills),
		Width:     40,
		ShowCount: true,
	}, true
}

func infoLine(width int, left, right string) string {
	l := theme.Label.Render("  " + left)
	r := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right + "  ")
	line := l
	if pad := width - lipgloss.Width(l) - lipgloss.Width(r); pad > 0 {
		line += strings.Repeat(" ", pad) + r
	}
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
	return line + "\n  " + rule
}

func clock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func renderLoading(width int, text string) string {
	return "\n\n\n" + layout.Center(width, theme.Hint, text)
}

func renderFailure(width int, err error) string {
	return "\n\n\n" + layout.Center(width, theme.Incorrect, failureText(err)) + "\n\n" +
		layout.Center(width, theme.Hint, "Press R to retry or Esc to change settings.")
}

func renderError(width int, msg string) string {
	return "\n\n\n" + layout.Center(width, theme.Incorrect, "Error: "+msg) + "\n\n" +
		layout.Center(width, theme.Hint, "Press Esc to go back.")
}
