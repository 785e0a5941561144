package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathplace/internal/adaptive"
)

// Length limits enforced by StructuralValidator.
const (
	MaxQuestionLen    = 500
	MaxAnswerLen      = 64
	MaxExplanationLen = 1000
	MaxSteps          = 10
)

// StructuralValidator rejects questions with empty or oversized fields.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ adaptive.Selection) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"question", q.Question, MaxQuestionLen},
		{"answer", q.Answer, MaxAnswerLen},
		{"explanation", q.Explanation, MaxExplanationLen},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fail("%s is empty", f.name)
		}
		if len(f.value) > f.max {
			return fail("%s exceeds %d characters", f.name, f.max)
		}
	}

	if len(q.Steps) > MaxSteps {
		return fail("%d steps, at most %d allowed", len(q.Steps), MaxSteps)
	}
	for i, s := range q.Steps {
		if strings.TrimSpace(s) == "" {
			return fail("step %d is empty", i+1)
		}
	}
	return nil
}
