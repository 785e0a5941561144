package adaptive

import "fmt"

// Outcome classifies the learner's response to a question.
type Outcome int

const (
	// OutcomeNone means no answer has been given yet (start of a test).
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
	// OutcomeUnknown is an explicit "I don't know".
	OutcomeUnknown
)

// Wire values used by the question-generation service.
const (
	WireCorrect   = "correct"
	WireIncorrect = "incorrect"
	WireDontKnow  = "dontknow"
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// Wire returns the service representation of the outcome. The second value is
// false for OutcomeNone, which is sent as JSON null.
func (o Outcome) Wire() (string, bool) {
	switch o {
	case OutcomeCorrect:
		return WireCorrect, true
	case OutcomeIncorrect:
		return WireIncorrect, true
	case OutcomeUnknown:
		return WireDontKnow, true
	default:
		return "", false
	}
}

// ParseOutcome maps a wire value back to an Outcome. Matching is exact. The
// empty string maps to OutcomeNone.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "":
		return OutcomeNone, nil
	case WireCorrect:
		return OutcomeCorrect, nil
	case WireIncorrect:
		return OutcomeIncorrect, nil
	case WireDontKnow:
		return OutcomeUnknown, nil
	default:
		return OutcomeNone, fmt.Errorf("unknown previous answer %q", s)
	}
}
