package quizgen

import (
	"fmt"
	"strings"
)

// DuplicateValidator checks that no two questions in the quiz share a
// prompt, and that no question repeats one from the prior-questions list.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *Quiz, input GenerateInput) *ValidationError {
	prior := make(map[string]bool, len(input.PriorQuestions))
	for _, p := range input.PriorQuestions {
		prior[normalizePrompt(p)] = true
	}

	seen := make(map[string]bool, len(q.Questions))
	for i, question := range q.Questions {
		key := normalizePrompt(question.Prompt)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d repeats an earlier question in this quiz", i+1),
				Retryable: true,
			}
		}
		if prior[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d repeats a previously asked question", i+1),
				Retryable: true,
			}
		}
		seen[key] = true
	}
	return nil
}

func normalizePrompt(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
