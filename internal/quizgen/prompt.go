package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a tutor writing multiple-choice quizzes for an adult self-learner.

Rules:
- Generate exactly the requested number of questions on the given topic at the given difficulty.
- Use plain ASCII text. No markdown, no LaTeX, no Unicode symbols.
- Each question must be clear, self-contained, and answerable without external material.
- Provide exactly 4 options per question where exactly one is correct. Distractors should reflect plausible misconceptions, not random values.
- The answer field is the zero-based index of the correct option.
- The explanation should state why the correct option is right in one or two sentences.
- Cover distinct aspects of the topic; no two questions in the quiz may test the same fact.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", input.NumQuestions)

	b.WriteString("\nAlready asked on this topic:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}
