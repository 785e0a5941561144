package questiongen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abhisek/mathplace/internal/adaptive"
)

// ArithmeticValidator recomputes simple binary expressions such as
// "What is 7 + 5?" and rejects questions whose answer disagrees. Word
// problems and anything else it cannot parse pass untouched.
type ArithmeticValidator struct{}

func (v *ArithmeticValidator) Name() string { return "arithmetic" }

// Both patterns only match a lone expression that ends the sentence, so
// "10 - 4 + 2" or "7 + 5 apples" are skipped rather than misread.
var (
	binaryOpRe = regexp.MustCompile(`(?:^|[^\d.,/+\-*×÷\s])\s*(-?\d+(?:\.\d+)?)\s*([+\-*×xX])\s*(\d+(?:\.\d+)?)\s*(?:[?=]|\.?\s*$)`)
	// Division needs spaces or ÷ so that "3/4" stays a fraction.
	divisionRe = regexp.MustCompile(`(?:^|[^\d.,/+\-*×÷\s])\s*(-?\d+(?:\.\d+)?)\s*(?:÷|\s/\s)\s*(\d+(?:\.\d+)?)\s*(?:[?=]|\.?\s*$)`)
)

func (v *ArithmeticValidator) Validate(q *Question, _ adaptive.Selection) *ValidationError {
	want, ok := evaluate(q.Question)
	if !ok {
		return nil
	}
	got, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(q.Answer), ",", ""))
	if err != nil {
		// "3 R 1" and similar are left to the learner-facing text.
		return nil
	}
	if !got.Equal(want) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %s but the answer says %q", want, q.Answer),
			Retryable: true,
		}
	}
	return nil
}

// evaluate finds the first binary expression in text and computes it.
// Divisions with a remainder are reported as not computable since the
// expected answer format is ambiguous.
func evaluate(text string) (decimal.Decimal, bool) {
	if m := divisionRe.FindStringSubmatch(text); m != nil {
		a, b, ok := parsePair(m[1], m[2])
		if !ok || b.IsZero() || !a.Mod(b).IsZero() {
			return decimal.Zero, false
		}
		return a.Div(b), true
	}

	m := binaryOpRe.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	a, b, ok := parsePair(m[1], m[3])
	if !ok {
		return decimal.Zero, false
	}
	switch m[2] {
	case "+":
		return a.Add(b), true
	case "-":
		return a.Sub(b), true
	default:
		return a.Mul(b), true
	}
}

func parsePair(as, bs string) (decimal.Decimal, decimal.Decimal, bool) {
	a, err := decimal.NewFromString(as)
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	b, err := decimal.NewFromString(bs)
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	return a, b, true
}
