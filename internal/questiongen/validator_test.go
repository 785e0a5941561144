package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/mathplace/internal/adaptive"
)

func validQuestion() *Question {
	return &Question{
		Question:    "What is 7 + 5?",
		Answer:      "12",
		Difficulty:  "single digit addition",
		Explanation: "Seven plus five is twelve.",
		Steps:       []string{"Start at 7", "Count up 5"},
	}
}

func TestStructural_Valid(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion(), adaptive.Selection{}); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	q := validQuestion()
	q.Steps = []string{}
	if err := v.Validate(q, adaptive.Selection{}); err != nil {
		t.Fatalf("empty steps should pass: %v", err)
	}
}

func TestStructural_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
	}{
		{"empty question", func(q *Question) { q.Question = "  " }},
		{"empty answer", func(q *Question) { q.Answer = "" }},
		{"empty explanation", func(q *Question) { q.Explanation = "" }},
		{"long question", func(q *Question) { q.Question = strings.Repeat("a", MaxQuestionLen+1) }},
		{"long answer", func(q *Question) { q.Answer = strings.Repeat("1", MaxAnswerLen+1) }},
		{"too many steps", func(q *Question) { q.Steps = make([]string, MaxSteps+1) }},
		{"blank step", func(q *Question) { q.Steps = []string{"one", " "} }},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q, adaptive.Selection{})
			if err == nil {
				t.Fatal("expected rejection")
			}
			if !err.Retryable || err.Validator != "structural" {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		question string
		answer   string
		wantErr  bool
	}{
		{"What is 7 + 5?", "12", false},
		{"What is 7 + 5?", "13", true},
		{"567 - 289 = ?", "278", false},
		{"What is 23 * 45?", "1,035", false},
		{"What is 6 x 7?", "42", false},
		{"What is 6 × 7?", "43", true},
		{"What is 144 ÷ 12?", "12", false},
		{"What is 144 / 12?", "11", true},
		{"What is -3 + 5?", "2", false},
		{"What is 0.1 + 0.2?", "0.3", false},
		{"What is 9 + 3?", "12.0", false},
		// Not checked: remainders, fractions, chains, word problems.
		{"What is 7 ÷ 2?", "3 R 1", false},
		{"What is 7 ÷ 2?", "3", false},
		{"What is 3/4 of 8?", "6", false},
		{"What is 10 - 4 + 2?", "8", false},
		{"Sam has 7 apples and gets 5 more. How many apples now?", "12", false},
		{"What is 7 + 5?", "twelve", false},
	}

	v := &ArithmeticValidator{}
	for _, tt := range tests {
		q := validQuestion()
		q.Question = tt.question
		q.Answer = tt.answer
		err := v.Validate(q, adaptive.Selection{})
		if (err != nil) != tt.wantErr {
			t.Errorf("%q answer %q: err = %v, wantErr %v", tt.question, tt.answer, err, tt.wantErr)
		}
	}
}

func TestBuildSystemPrompt_Bounded(t *testing.T) {
	sel := adaptive.Bounded{Lower: "single digit addition", Upper: "division to 9"}.
		Select("two digit addition", adaptive.OutcomeIncorrect, 0)
	p := buildSystemPrompt(sel)

	for _, want := range []string{
		"between single digit addition and division to 9",
		"half a level easier",
		"Current difficulty level: two digit addition",
		`"difficulty": "The current difficulty level as a string"`,
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildSystemPrompt_SkillList(t *testing.T) {
	sel := adaptive.SkillList{Skills: []string{"add", "subtract", "multiply"}}.
		Select("multiply", adaptive.OutcomeUnknown, 0)
	p := buildSystemPrompt(sel)

	for _, want := range []string{
		"1. add\n2. subtract\n3. multiply\n",
		"Next skill to test: add",
		`"difficulty": "add"`,
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}
