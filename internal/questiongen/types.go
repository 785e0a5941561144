package questiongen

import (
	"context"
	"errors"

	"github.com/abhisek/mathplace/internal/adaptive"
)

// Defaults applied to request fields the caller leaves empty.
const (
	DefaultDifficulty = "single digit addition"
	DefaultLower      = "single digit addition"
	DefaultUpper      = "division to 9"
)

// ErrGenerationFailed is the single error learners see when a question could
// not be produced, whatever the cause. The cause stays in the error chain.
var ErrGenerationFailed = errors.New("failed to generate question")

// Question is one generated question. Values are replaced wholesale, never
// edited in place.
type Question struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
	Steps       []string `json:"steps"`
}

// Request asks for the next question. It is the JSON body of
// POST /api/generate-question.
type Request struct {
	// PreviousAnswer is "correct", "incorrect", "dontknow" or nil for the
	// first question of a test.
	PreviousAnswer    *string  `json:"previousAnswer"`
	CorrectStreak     int      `json:"correctStreak"`
	CurrentDifficulty string   `json:"currentDifficulty"`
	LowerBound        string   `json:"lowerBoundDifficulty"`
	UpperBound        string   `json:"upperBoundDifficulty"`
	UseSkillsList     bool     `json:"useSkillsList"`
	SkillsList        []string `json:"skillsList"`
}

// NewRequest builds the request that follows an answer with outcome o.
func NewRequest(d adaptive.Descriptor, current string, o adaptive.Outcome, streak int) Request {
	r := Request{
		CorrectStreak:     streak,
		CurrentDifficulty: current,
		SkillsList:        []string{},
	}
	if wire, ok := o.Wire(); ok {
		r.PreviousAnswer = &wire
	}
	switch d := d.(type) {
	case adaptive.Bounded:
		r.LowerBound, r.UpperBound = d.Lower, d.Upper
	case adaptive.SkillList:
		r.UseSkillsList = true
		r.SkillsList = append(r.SkillsList, d.Skills...)
	}
	return r
}

// ApplyDefaults fills empty fields with the service defaults and clamps a
// negative streak to zero.
func (r *Request) ApplyDefaults() {
	if r.CurrentDifficulty == "" {
		r.CurrentDifficulty = DefaultDifficulty
	}
	if r.LowerBound == "" {
		r.LowerBound = DefaultLower
	}
	if r.UpperBound == "" {
		r.UpperBound = DefaultUpper
	}
	if r.SkillsList == nil {
		r.SkillsList = []string{}
	}
	if r.CorrectStreak < 0 {
		r.CorrectStreak = 0
	}
}

// Outcome decodes PreviousAnswer.
func (r Request) Outcome() (adaptive.Outcome, error) {
	if r.PreviousAnswer == nil {
		return adaptive.OutcomeNone, nil
	}
	return adaptive.ParseOutcome(*r.PreviousAnswer)
}

// Descriptor returns the skill list when skill-list mode is requested with a
// non-empty list, otherwise the bounded range.
func (r Request) Descriptor() adaptive.Descriptor {
	if r.UseSkillsList && len(r.SkillsList) > 0 {
		return adaptive.SkillList{Skills: r.SkillsList}
	}
	return adaptive.Bounded{Lower: r.LowerBound, Upper: r.UpperBound}
}

// Selection runs the difficulty selector for this request.
func (r Request) Selection() (adaptive.Selection, error) {
	o, err := r.Outcome()
	if err != nil {
		return adaptive.Selection{}, err
	}
	return r.Descriptor().Select(r.CurrentDifficulty, o, r.CorrectStreak), nil
}

// Generator produces questions.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Question, error)
}
