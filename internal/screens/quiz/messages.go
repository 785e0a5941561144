package quiz

import (
	"time"

	"github.com/abhisek/mathplace/internal/questiongen"
	"github.com/abhisek/mathplace/internal/quiz"
)

// questionMsg carries the result of one generation request.
type questionMsg struct {
	Ticket   quiz.Ticket
	Question *questiongen.Question
	Err      error
}

// tickMsg refreshes the elapsed time display.
type tickMsg time.Time
