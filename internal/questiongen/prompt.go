package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathplace/internal/adaptive"
)

const userMessage = "Generate a math question based on the criteria above."

const responseFormat = `Respond with a JSON object in this exact format:
{
  "question": "The math question text",
  "answer": "The correct answer (just the number)",
  "difficulty": %q,
  "explanation": "A brief explanation of how to solve this problem",
  "steps": [
    "Step 1: Description of first step in solving",
    "Step 2: Description of second step in solving",
    "..."
  ]
}

The "steps" array should contain 3-5 clear step-by-step instructions showing exactly how to solve the problem, broken into manageable chunks suitable for the difficulty level. Make the steps detailed enough for a student to follow along and learn from.

Do not include any other text in your response, only the JSON object.`

// buildSystemPrompt renders the generation instructions for sel.
func buildSystemPrompt(sel adaptive.Selection) string {
	var b strings.Builder
	b.WriteString("You are a math question generator for an adaptive placement test. Generate one question at a time.\n\n")

	if sel.Mode == adaptive.ModeSkillList && len(sel.Skills) > 0 {
		b.WriteString("These skills are listed in order of increasing difficulty:\n")
		for i, s := range sel.Skills {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
		fmt.Fprintf(&b, "\n%s\n\n", sel.Instruction)
		fmt.Fprintf(&b, "Current skill: %s\n", sel.Current)
		fmt.Fprintf(&b, "Next skill to test: %s\n\n", sel.Next)
		fmt.Fprintf(&b, "Generate a question that tests the skill: %s\n\n", sel.Next)
		fmt.Fprintf(&b, responseFormat, sel.Next)
		return b.String()
	}

	fmt.Fprintf(&b, "All generated questions are between %s and %s.\n\n", sel.Lower, sel.Upper)
	fmt.Fprintf(&b, "%s\n\n", sel.Instruction)
	fmt.Fprintf(&b, "Current difficulty level: %s\n\n", sel.Current)
	fmt.Fprintf(&b, "Do not generate questions below %s difficulty or above %s difficulty, even if the adaptive rules would suggest doing so.\n\n",
		sel.Lower, sel.Upper)
	fmt.Fprintf(&b, responseFormat, "The current difficulty level as a string")
	return b.String()
}
