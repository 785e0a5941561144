package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mathplace/internal/adaptive"
	"github.com/abhisek/mathplace/internal/questiongen"
	"github.com/abhisek/mathplace/internal/timer"
)

// DefaultTimeout bounds one generation request, including any retries the
// generator performs internally.
const DefaultTimeout = 30 * time.Second

var (
	// ErrInvalidTransition is returned when an action is not allowed in the
	// current state.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrBusy is returned when an action needs the outstanding request to
	// finish first.
	ErrBusy = errors.New("a question is still loading")

	// ErrEmptyAnswer is returned by Submit for a blank answer.
	ErrEmptyAnswer = errors.New("answer is empty")
)

// Controller drives the question session state machine. Its methods are not
// safe for concurrent use; call them from a single goroutine. Fetch is the
// exception and may run anywhere since it touches no session state.
type Controller struct {
	gen     questiongen.Generator
	timer   *timer.Timer
	timeout time.Duration
	log     *zap.Logger

	session *Session

	// seq numbers tickets; only the outstanding one may deliver.
	seq         uint64
	outstanding uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimer replaces the default response timer.
func WithTimer(t *timer.Timer) Option {
	return func(c *Controller) { c.timer = t }
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// NewController returns an idle Controller that asks gen for questions.
func NewController(gen questiongen.Generator, opts ...Option) *Controller {
	c := &Controller{
		gen:     gen,
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timer == nil {
		c.timer = timer.New()
	}
	return c
}

// Session returns the active session, or nil when idle.
func (c *Controller) Session() *Session { return c.session }

// State returns the current state.
func (c *Controller) State() State {
	if c.session == nil {
		return StateIdle
	}
	return c.session.State
}

// Elapsed returns the live timer reading in whole seconds.
func (c *Controller) Elapsed() int { return c.timer.Elapsed() }

// Start discards any existing session and begins a new test. The returned
// ticket fetches the first question.
func (c *Controller) Start(settings Settings) (Ticket, error) {
	if err := settings.Validate(); err != nil {
		return Ticket{}, err
	}

	c.timer.Stop()
	desc := settings.Descriptor()
	initial := settings.InitialDifficulty()

	s := &Session{
		ID:         uuid.NewString(),
		Settings:   settings,
		Descriptor: desc,
		State:      StateAwaitingFirstQuestion,
		Difficulty: initial,
		Multiplier: 1,
		Outcome:    adaptive.OutcomeNone,
		Selection:  desc.Select(initial, adaptive.OutcomeNone, 0),
		request:    questiongen.NewRequest(desc, initial, adaptive.OutcomeNone, 0),
	}
	c.session = s

	c.log.Info("placement test started",
		zap.String("session_id", s.ID),
		zap.String("mode", string(desc.Mode())),
		zap.String("difficulty", initial))

	return c.issue(), nil
}

// Submit evaluates a typed answer against the current question. The answer
// is correct when it equals the expected answer after trimming whitespace.
func (c *Controller) Submit(answer string) (Evaluation, Ticket, error) {
	if strings.TrimSpace(answer) == "" {
		return Evaluation{}, Ticket{}, ErrEmptyAnswer
	}
	return c.answer(answer, false)
}

// DontKnow records an explicit "I don't know" for the current question.
func (c *Controller) DontKnow() (Evaluation, Ticket, error) {
	return c.answer("", true)
}

func (c *Controller) answer(text string, dontKnow bool) (Evaluation, Ticket, error) {
	s := c.session
	if s == nil {
		return Evaluation{}, Ticket{}, ErrInvalidTransition
	}
	if s.State == StateAwaitingFirstQuestion && s.Loading {
		return Evaluation{}, Ticket{}, ErrBusy
	}
	if s.State != StatePresenting || s.Question == nil {
		return Evaluation{}, Ticket{}, fmt.Errorf("%w: answer while %s", ErrInvalidTransition, s.State)
	}
	if s.Loading {
		return Evaluation{}, Ticket{}, ErrBusy
	}

	seconds := c.timer.Stop()

	outcome := adaptive.OutcomeUnknown
	if !dontKnow {
		outcome = adaptive.OutcomeIncorrect
		if strings.TrimSpace(text) == strings.TrimSpace(s.Question.Answer) {
			outcome = adaptive.OutcomeCorrect
		}
	}

	result := adaptive.EvaluateStreak(outcome, seconds, s.Streak)
	sel := s.Descriptor.Select(s.Difficulty, outcome, result.Streak)

	s.Answer = text
	s.Outcome = outcome
	s.ResponseSeconds = seconds
	s.Streak = result.Streak
	s.Multiplier = result.Multiplier
	s.Selection = sel
	s.Answered++
	if outcome == adaptive.OutcomeCorrect {
		s.Correct++
	}
	s.ExplanationShown = true
	s.StepsShown = false
	s.Pending = nil
	s.State = StateEvaluating
	s.request = questiongen.NewRequest(s.Descriptor, s.Difficulty, outcome, result.Streak)

	c.log.Debug("answer evaluated",
		zap.String("session_id", s.ID),
		zap.Stringer("outcome", outcome),
		zap.Int("seconds", seconds),
		zap.Int("streak", result.Streak),
		zap.Float64("multiplier", result.Multiplier))

	eval := Evaluation{
		Outcome:         outcome,
		Answer:          text,
		Expected:        s.Question.Answer,
		ResponseSeconds: seconds,
		Result:          result,
		Selection:       sel,
	}
	return eval, c.issue(), nil
}

// Retry re-issues the last request after a failure. It never happens
// automatically.
func (c *Controller) Retry() (Ticket, error) {
	s := c.session
	if s == nil {
		return Ticket{}, ErrInvalidTransition
	}
	if s.Loading {
		return Ticket{}, ErrBusy
	}
	if s.Err == nil || (s.State != StateAwaitingFirstQuestion && s.State != StateEvaluating) {
		return Ticket{}, fmt.Errorf("%w: nothing to retry while %s", ErrInvalidTransition, s.State)
	}
	return c.issue(), nil
}

// Advance moves the prefetched question on screen and restarts the timer.
func (c *Controller) Advance() error {
	s := c.session
	if s == nil || s.State != StateEvaluating {
		return ErrInvalidTransition
	}
	if s.Pending == nil {
		if s.Loading {
			return ErrBusy
		}
		return fmt.Errorf("%w: no question to advance to", ErrInvalidTransition)
	}

	c.present(s, s.Pending)
	s.Pending = nil
	return nil
}

// ToggleSteps shows or hides the worked steps during feedback.
func (c *Controller) ToggleSteps() error {
	s := c.session
	if s == nil || s.State != StateEvaluating {
		return ErrInvalidTransition
	}
	s.StepsShown = !s.StepsShown
	return nil
}

// ReturnToSettings ends the test. Results of requests still in flight are
// ignored when they arrive.
func (c *Controller) ReturnToSettings() {
	c.timer.Stop()
	if c.session != nil {
		c.log.Info("placement test ended",
			zap.String("session_id", c.session.ID),
			zap.Int("answered", c.session.Answered),
			zap.Int("correct", c.session.Correct))
	}
	c.session = nil
	c.outstanding = 0
}

// Close stops the timer.
func (c *Controller) Close() {
	c.timer.Close()
}

// Fetch performs the generator call for t, bounded by the request timeout.
func (c *Controller) Fetch(ctx context.Context, t Ticket) (*questiongen.Question, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	q, err := c.gen.Generate(ctx, t.Request)
	if err != nil {
		if !errors.Is(err, questiongen.ErrGenerationFailed) {
			err = fmt.Errorf("%w: %w", questiongen.ErrGenerationFailed, err)
		}
		return nil, err
	}
	return q, nil
}

// Deliver applies the result of t. It returns false when t is stale.
func (c *Controller) Deliver(t Ticket, q *questiongen.Question, err error) bool {
	s := c.session
	if s == nil || t.epoch == 0 || t.epoch != c.outstanding {
		return false
	}
	c.outstanding = 0
	s.Loading = false

	if err == nil && q == nil {
		err = questiongen.ErrGenerationFailed
	}
	if err != nil {
		s.Err = err
		c.log.Warn("question generation failed",
			zap.String("session_id", s.ID),
			zap.Stringer("state", s.State),
			zap.Error(err))
		return true
	}

	switch s.State {
	case StateAwaitingFirstQuestion:
		c.present(s, q)
	case StateEvaluating:
		s.Pending = q
	default:
		return false
	}
	return true
}

// Run fetches and delivers t synchronously.
func (c *Controller) Run(ctx context.Context, t Ticket) error {
	q, err := c.Fetch(ctx, t)
	c.Deliver(t, q, err)
	return err
}

func (c *Controller) issue() Ticket {
	c.seq++
	c.outstanding = c.seq
	s := c.session
	s.Loading = true
	s.Err = nil
	return Ticket{epoch: c.seq, Request: s.request}
}

func (c *Controller) present(s *Session, q *questiongen.Question) {
	s.Question = q
	if label := strings.TrimSpace(q.Difficulty); label != "" {
		s.Difficulty = q.Difficulty
	}
	s.Answer = ""
	s.ExplanationShown = false
	s.StepsShown = false
	s.State = StatePresenting
	c.timer.Start()
}
