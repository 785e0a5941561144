package questiongen

import "github.com/abhisek/mathplace/internal/llm"

// QuestionSchema is the structured output requested from the model.
var QuestionSchema = &llm.Schema{
	Name:        "math-question",
	Description: "One arithmetic placement question with its answer and a worked solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The math question text",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer, just the number",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"description": "The difficulty level or skill this question targets",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A brief explanation of how to solve this problem",
			},
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-5 step-by-step instructions for solving the problem",
			},
		},
		"required":             []string{"question", "answer", "difficulty", "explanation", "steps"},
		"additionalProperties": false,
	},
}
