package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mathplace/internal/adaptive"
	"github.com/abhisek/mathplace/internal/llm"
)

func questionJSON(question, answer, difficulty string, steps ...string) llm.MockResponse {
	q := Question{
		Question:    question,
		Answer:      answer,
		Difficulty:  difficulty,
		Explanation: "Add the two numbers together.",
		Steps:       steps,
	}
	raw, _ := json.Marshal(q)
	return llm.MockResponse{Content: raw}
}

func strPtr(s string) *string { return &s }

func TestLLMGenerator_Bounded(t *testing.T) {
	mock := llm.NewMockProvider(questionJSON("What is 7 + 5?", "12", "single digit addition", "Start at 7", "Count up 5"))
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Answer != "12" || q.Difficulty != "single digit addition" || len(q.Steps) != 2 {
		t.Fatalf("unexpected question: %+v", q)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	req := calls[0]
	if req.Schema == nil || req.Schema.Name != "math-question" {
		t.Fatalf("expected math-question schema, got %+v", req.Schema)
	}
	if !strings.Contains(req.System, "between single digit addition and division to 9") {
		t.Errorf("system prompt missing default bounds:\n%s", req.System)
	}
	if !strings.Contains(req.System, "Start with single digit addition.") {
		t.Errorf("system prompt missing start instruction:\n%s", req.System)
	}
	if req.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d, want 1024", req.MaxTokens)
	}
}

func TestLLMGenerator_RegeneratesOnWrongArithmetic(t *testing.T) {
	mock := llm.NewMockProvider(
		questionJSON("What is 7 + 5?", "13", "single digit addition"),
		questionJSON("What is 7 + 6?", "13", "single digit addition"),
	)
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Question != "What is 7 + 6?" {
		t.Fatalf("expected regenerated question, got %q", q.Question)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestLLMGenerator_GivesUpAfterRegenerations(t *testing.T) {
	mock := llm.NewMockProvider()
	bad := questionJSON("What is 7 + 5?", "13", "single digit addition")
	mock.Fallback = &bad
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), Request{})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "arithmetic" {
		t.Fatalf("expected arithmetic ValidationError in chain, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestLLMGenerator_ProviderErrorNotRegenerated(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), Request{})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error in chain, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestLLMGenerator_UndecodableContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	gen := New(mock, DefaultConfig(), nil)

	if _, err := gen.Generate(context.Background(), Request{}); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestLLMGenerator_InvalidPreviousAnswer(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), Request{PreviousAnswer: strPtr("maybe")})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("provider should not be called, got %d calls", mock.CallCount())
	}
}

func TestLLMGenerator_SkillListPinsDifficulty(t *testing.T) {
	mock := llm.NewMockProvider(
		questionJSON("What is 3 * 4?", "12", "times tables"),
		questionJSON("What is 3 + 4?", "7", "addition"),
	)
	gen := New(mock, DefaultConfig(), nil)

	req := Request{
		PreviousAnswer:    strPtr("correct"),
		CorrectStreak:     2,
		CurrentDifficulty: "addition",
		UseSkillsList:     true,
		SkillsList:        []string{"addition", "subtraction", "multiplication"},
	}

	q, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Difficulty != "multiplication" {
		t.Fatalf("expected difficulty pinned to multiplication, got %q", q.Difficulty)
	}

	q, err = gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Difficulty != "multiplication" {
		t.Fatalf("a different skill from the list should be overwritten, got %q", q.Difficulty)
	}

	system := mock.Calls()[0].System
	for _, want := range []string{"1. addition", "3. multiplication", "Next skill to test: multiplication"} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q:\n%s", want, system)
		}
	}
}

func TestLLMGenerator_MissingStepsDecodeEmpty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"question":"What is 2 + 2?","answer":"4","difficulty":"","explanation":"Two and two."}`)})
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Steps == nil || len(q.Steps) != 0 {
		t.Fatalf("expected empty steps, got %#v", q.Steps)
	}
	if q.Difficulty != DefaultLower {
		t.Fatalf("blank difficulty should fall back to %q, got %q", DefaultLower, q.Difficulty)
	}
}

func TestRequest_Defaults(t *testing.T) {
	r := Request{CorrectStreak: -3}
	r.ApplyDefaults()

	if r.CurrentDifficulty != DefaultDifficulty || r.LowerBound != DefaultLower || r.UpperBound != DefaultUpper {
		t.Fatalf("defaults not applied: %+v", r)
	}
	if r.CorrectStreak != 0 {
		t.Fatalf("negative streak should clamp to 0, got %d", r.CorrectStreak)
	}
	if r.SkillsList == nil {
		t.Fatal("SkillsList should be non-nil")
	}
}

func TestRequest_Descriptor(t *testing.T) {
	r := Request{UseSkillsList: true, LowerBound: "a", UpperBound: "b"}
	if _, ok := r.Descriptor().(adaptive.Bounded); !ok {
		t.Fatal("skill-list mode with an empty list should fall back to bounded")
	}

	r.SkillsList = []string{"x"}
	if _, ok := r.Descriptor().(adaptive.SkillList); !ok {
		t.Fatal("expected SkillList descriptor")
	}
}

func TestNewRequest_Wire(t *testing.T) {
	first := NewRequest(adaptive.Bounded{Lower: "a", Upper: "b"}, "a", adaptive.OutcomeNone, 0)
	raw, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"previousAnswer":null`, `"lowerBoundDifficulty":"a"`, `"skillsList":[]`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("request JSON missing %s: %s", want, raw)
		}
	}

	next := NewRequest(adaptive.SkillList{Skills: []string{"x", "y"}}, "x", adaptive.OutcomeUnknown, 0)
	if next.PreviousAnswer == nil || *next.PreviousAnswer != "dontknow" {
		t.Fatalf("expected dontknow, got %v", next.PreviousAnswer)
	}
	if !next.UseSkillsList || len(next.SkillsList) != 2 {
		t.Fatalf("unexpected skill-list request: %+v", next)
	}
}
