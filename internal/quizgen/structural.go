package quizgen

import "fmt"

// StructuralValidator checks that the quiz has the requested question count
// and that every question has its required fields within limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz, input GenerateInput) *ValidationError {
	if len(q.Questions) != input.NumQuestions {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d questions, got %d", input.NumQuestions, len(q.Questions)),
			Retryable: true,
		}
	}
	for i, question := range q.Questions {
		if question.Prompt == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: prompt is empty", i+1),
				Retryable: true,
			}
		}
		if len(question.Prompt) > 500 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: prompt exceeds 500 characters", i+1),
				Retryable: true,
			}
		}
		if len(question.Options) != 4 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: must have exactly 4 options, got %d", i+1, len(question.Options)),
				Retryable: true,
			}
		}
		if question.Answer < 0 || question.Answer > 3 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: answer index %d out of range [0, 3]", i+1, question.Answer),
				Retryable: true,
			}
		}
		if question.Explanation == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: explanation is empty", i+1),
				Retryable: true,
			}
		}
		if len(question.Explanation) > 1000 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: explanation exceeds 1000 characters", i+1),
				Retryable: true,
			}
		}
	}
	return nil
}
