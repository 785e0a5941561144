package quiz

import (
	"github.com/abhisek/mathplace/internal/adaptive"
	"github.com/abhisek/mathplace/internal/questiongen"
)

// State is the phase of the question session.
type State int

const (
	StateIdle                  State = iota // Settings form, no session
	StateAwaitingFirstQuestion              // Test started, first question loading
	StatePresenting                         // Question shown, timer running
	StateEvaluating                         // Feedback shown, next question loading or ready
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingFirstQuestion:
		return "awaiting-first-question"
	case StatePresenting:
		return "presenting"
	case StateEvaluating:
		return "evaluating"
	default:
		return "unknown"
	}
}

// Session is the runtime state of one placement test. It is owned by a
// Controller and must only be read on the goroutine that drives it.
type Session struct {
	// ID identifies the test in logs.
	ID string

	Settings   Settings
	Descriptor adaptive.Descriptor
	State      State

	// Difficulty is the label of the current question, sent as
	// currentDifficulty with the next request.
	Difficulty string

	// Streak is never negative.
	Streak int

	// Multiplier is the last speed multiplier; 0 marks a slow reset.
	Multiplier float64

	// Outcome of the most recent answer.
	Outcome adaptive.Outcome

	// Answer is the learner's last submitted text.
	Answer string

	// Question is the question on screen (nil before the first arrives).
	Question *questiongen.Question

	// Pending is the next question, prefetched during feedback.
	Pending *questiongen.Question

	// ResponseSeconds is the stopped timer reading for the last answer.
	ResponseSeconds int

	// Loading is true while a request is outstanding.
	Loading bool

	// Err holds the last generation failure until Retry.
	Err error

	ExplanationShown bool
	StepsShown       bool

	Answered int
	Correct  int

	// Selection is the difficulty decision for the outstanding request.
	Selection adaptive.Selection

	request questiongen.Request
}

// StreakResult returns the last streak evaluation for display.
func (s *Session) StreakResult() adaptive.StreakResult {
	return adaptive.StreakResult{Streak: s.Streak, Multiplier: s.Multiplier}
}

// Ready reports whether the next question has arrived.
func (s *Session) Ready() bool {
	return s.State == StateEvaluating && s.Pending != nil
}

// Evaluation summarises a submitted answer.
type Evaluation struct {
	Outcome         adaptive.Outcome
	Answer          string
	Expected        string
	ResponseSeconds int
	Result          adaptive.StreakResult
	Selection       adaptive.Selection
}

// Correct reports whether the answer matched.
func (e Evaluation) Correct() bool { return e.Outcome == adaptive.OutcomeCorrect }

// Ticket identifies one generation request. Deliveries carrying a ticket
// from an earlier session are discarded.
type Ticket struct {
	epoch   uint64
	Request questiongen.Request
}
