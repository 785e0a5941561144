package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/mathplace/internal/adaptive"
	"github.com/abhisek/mathplace/internal/llm"
)

// Config controls an LLMGenerator.
type Config struct {
	// Validators run in order; the first failure rejects the question.
	Validators []Validator

	// Regenerations is how many extra attempts a retryable validation
	// failure earns.
	Regenerations int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ArithmeticValidator{},
		},
		Regenerations: 1,
		MaxTokens:     1024,
		Temperature:   0.7,
	}
}

// LLMGenerator produces questions by prompting an llm.Provider. It is the
// core of the question service and can also be used in-process.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New returns an LLMGenerator. log may be nil.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *LLMGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

// ModelID reports the model behind the generator.
func (g *LLMGenerator) ModelID() string { return g.provider.ModelID() }

// Generate applies defaults to req, selects the next difficulty and asks the
// model for a question. Every failure wraps ErrGenerationFailed.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Question, error) {
	req.ApplyDefaults()
	sel, err := req.Selection()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestion)
	prompt := llm.UserPrompt(buildSystemPrompt(sel), userMessage)
	prompt.Schema = QuestionSchema
	prompt.MaxTokens = g.config.MaxTokens
	prompt.Temperature = g.config.Temperature

	for attempt := 0; ; attempt++ {
		q, err := g.generateOnce(ctx, prompt, sel)
		if err == nil {
			return q, nil
		}

		var verr *ValidationError
		if errors.As(err, &verr) && verr.Retryable && attempt < g.config.Regenerations {
			g.log.Info("regenerating rejected question",
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message),
				zap.Int("attempt", attempt+1))
			continue
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
}

func (g *LLMGenerator) generateOnce(ctx context.Context, prompt llm.Request, sel adaptive.Selection) (*Question, error) {
	resp, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}

	var q Question
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	if q.Steps == nil {
		q.Steps = []string{}
	}
	pinDifficulty(&q, sel)

	for _, v := range g.config.Validators {
		if verr := v.Validate(&q, sel); verr != nil {
			return nil, verr
		}
	}
	return &q, nil
}

// pinDifficulty labels a skill-list question with the selected skill, whatever
// the model returned, since the next selection resolves from it. Bounded
// questions keep the model's label, falling back to the selected one when it
// is blank.
func pinDifficulty(q *Question, sel adaptive.Selection) {
	if sel.Mode == adaptive.ModeSkillList && len(sel.Skills) > 0 {
		q.Difficulty = sel.Next
		return
	}
	if strings.TrimSpace(q.Difficulty) == "" {
		q.Difficulty = sel.Next
	}
}
