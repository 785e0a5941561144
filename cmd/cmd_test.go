package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/mathplace/internal/config"
	"github.com/abhisek/mathplace/internal/questiongen"
	"github.com/abhisek/mathplace/internal/quiz"
	"github.com/abhisek/mathplace/internal/store"
)

type scriptedGenerator struct {
	questions []*questiongen.Question
	requests  []questiongen.Request
}

func (g *scriptedGenerator) Generate(_ context.Context, req questiongen.Request) (*questiongen.Question, error) {
	g.requests = append(g.requests, req)
	q := g.questions[0]
	g.questions = g.questions[1:]
	return q, nil
}

func TestPreviewLoop(t *testing.T) {
	gen := &scriptedGenerator{questions: []*questiongen.Question{
		{Question: "What is 2 + 2?", Answer: "4", Difficulty: "single digit addition", Explanation: "Two and two."},
		{Question: "What is 9 - 3?", Answer: "6", Difficulty: "single digit subtraction"},
		{Question: "What is 3 x 3?", Answer: "9", Difficulty: "multiplication to 5"},
	}}
	ctrl := quiz.NewController(gen)
	defer ctrl.Close()

	var out bytes.Buffer
	err := previewLoop(context.Background(), ctrl, quiz.DefaultSettings(), 3, strings.NewReader("4\n?\n10\n"), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "What is 2 + 2?")
	assert.Contains(t, text, "Correct in")
	assert.Contains(t, text, "Explanation: Two and two.")
	assert.Contains(t, text, "Answer: 6")
	assert.Contains(t, text, "Wrong. Answer: 9")
	assert.Contains(t, text, "Summary: 1/3 correct")

	require.Len(t, gen.requests, 3, "no request after the last question")
	assert.Nil(t, gen.requests[0].PreviousAnswer)
	assert.Equal(t, "correct", *gen.requests[1].PreviousAnswer)
	assert.Equal(t, "dontknow", *gen.requests[2].PreviousAnswer)
	assert.Equal(t, quiz.StateIdle, ctrl.State())
}

func TestPreviewLoop_InputClosed(t *testing.T) {
	gen := &scriptedGenerator{questions: []*questiongen.Question{
		{Question: "What is 1 + 1?", Answer: "2", Difficulty: "x"},
	}}
	ctrl := quiz.NewController(gen)
	defer ctrl.Close()

	var out bytes.Buffer
	require.NoError(t, previewLoop(context.Background(), ctrl, quiz.DefaultSettings(), 5, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "(input closed)")
	assert.Contains(t, out.String(), "Summary: 0/0 correct")
}

func TestQuizSettings(t *testing.T) {
	cfg := &config.Config{Quiz: config.QuizConfig{
		LowerBound:    "counting",
		UseSkillsList: true,
		Skills:        []string{"a", "b"},
	}}

	s := quizSettings(cfg)
	assert.Equal(t, "counting", s.Lower)
	assert.Equal(t, questiongen.DefaultUpper, s.Upper, "missing values keep defaults")
	assert.True(t, s.UseSkillsList)
	assert.Equal(t, []string{"a", "b"}, s.Skills)
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	fromConfig := filepath.Join(dir, "cfg", "audit.db")
	fromFlag := filepath.Join(dir, "flag", "audit.db")

	c := &cobra.Command{}
	c.Flags().String("db", "", "")

	got, err := resolveDBPath(c, &config.Config{DB: fromConfig})
	require.NoError(t, err)
	assert.Equal(t, fromConfig, got)

	require.NoError(t, c.Flags().Set("db", fromFlag))
	got, err = resolveDBPath(c, &config.Config{DB: fromConfig})
	require.NoError(t, err)
	assert.Equal(t, fromFlag, got)
	assert.DirExists(t, filepath.Dir(fromFlag))
}

func TestBuildGenerator_RemoteEndpoint(t *testing.T) {
	cfg := &config.Config{Generation: config.GenerationConfig{Endpoint: "http://localhost:9999", Timeout: time.Second}}

	deps, err := buildGenerator(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &questiongen.Client{}, deps.Generator)
	assert.Equal(t, "http://localhost:9999", deps.ModelID)
}

func TestPrintEventTable(t *testing.T) {
	var out bytes.Buffer
	printEventTable(&out, nil)
	assert.Contains(t, out.String(), "No LLM events found.")

	out.Reset()
	printEventTable(&out, []store.LLMRequestEventRecord{{
		ID:        7,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Model: "claude-sonnet-4-5", Purpose: "question-gen", InputTokens: 120, OutputTokens: 80, Success: false,
		},
	}})
	assert.Contains(t, out.String(), "question-gen")
	assert.Contains(t, out.String(), "claude-sonnet-4-5")
	assert.Contains(t, out.String(), " no")
}

func TestPrintModelCost_Unpriced(t *testing.T) {
	var out bytes.Buffer
	printModelCost(&out, []store.ModelUsage{{Model: "made-up-model", Calls: 1, InputTokens: 10, OutputTokens: 10}})
	assert.Contains(t, out.String(), "TOTAL (partial)")
	assert.Contains(t, out.String(), "Pricing unavailable for: made-up-model")
}
