package questiongen

import (
	"fmt"

	"github.com/abhisek/mathplace/internal/adaptive"
)

// Validator checks a generated question before it is returned.
// Implementations must be safe for concurrent use.
type Validator interface {
	Name() string
	Validate(q *Question, sel adaptive.Selection) *ValidationError
}

// ValidationError describes a rejected question.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // whether asking the model again may help
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
