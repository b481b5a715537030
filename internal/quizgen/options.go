package quizgen

import (
	"fmt"
	"strings"
)

// OptionsValidator checks that every question's options are non-empty
// and pairwise distinct.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Quiz, _ GenerateInput) *ValidationError {
	for i, question := range q.Questions {
		seen := make(map[string]bool, len(question.Options))
		for j, opt := range question.Options {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d: option %d is empty", i+1, j+1),
					Retryable: true,
				}
			}
			key := strings.ToLower(opt)
			if seen[key] {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d: duplicate option %q", i+1, opt),
					Retryable: true,
				}
			}
			seen[key] = true
		}
	}
	return nil
}
