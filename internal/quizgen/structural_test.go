package quizgen

import (
	"strings"
	"testing"
)

func validQuiz() *Quiz {
	return &Quiz{
		Topic:      "fractions",
		Difficulty: DifficultyBeginner,
		Questions: []Question{
			{
				Prompt:      "Which fraction is equivalent to 1/2?",
				Options:     []string{"2/4", "1/3", "3/5", "2/3"},
				Answer:      0,
				Explanation: "Multiplying top and bottom by 2 gives 2/4.",
			},
			{
				Prompt:      "What is 1/4 + 1/4?",
				Options:     []string{"1/8", "1/2", "2/16", "3/4"},
				Answer:      1,
				Explanation: "Add the numerators: 2/4 = 1/2.",
			},
			{
				Prompt:      "What is 2/3 of 18?",
				Options:     []string{"6", "9", "12", "15"},
				Answer:      2,
				Explanation: "A third of 18 is 6, so two thirds is 12.",
			},
		},
	}
}

func validInput() GenerateInput {
	return GenerateInput{Topic: "fractions", Difficulty: DifficultyBeginner, NumQuestions: 3}
}

func TestStructural_Valid(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuiz(), validInput()); err != nil {
		t.Fatalf("expected valid quiz to pass, got: %v", err)
	}
}

func TestStructural_Violations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Quiz)
		wantMsg string
	}{
		{
			name:    "wrong question count",
			mutate:  func(q *Quiz) { q.Questions = q.Questions[:2] },
			wantMsg: "expected 3 questions",
		},
		{
			name:    "empty prompt",
			mutate:  func(q *Quiz) { q.Questions[1].Prompt = "" },
			wantMsg: "prompt is empty",
		},
		{
			name:    "prompt too long",
			mutate:  func(q *Quiz) { q.Questions[0].Prompt = strings.Repeat("x", 501) },
			wantMsg: "exceeds 500",
		},
		{
			name:    "wrong option count",
			mutate:  func(q *Quiz) { q.Questions[2].Options = q.Questions[2].Options[:3] },
			wantMsg: "exactly 4 options",
		},
		{
			name:    "answer index negative",
			mutate:  func(q *Quiz) { q.Questions[0].Answer = -1 },
			wantMsg: "out of range",
		},
		{
			name:    "answer index too high",
			mutate:  func(q *Quiz) { q.Questions[0].Answer = 4 },
			wantMsg: "out of range",
		},
		{
			name:    "empty explanation",
			mutate:  func(q *Quiz) { q.Questions[1].Explanation = "" },
			wantMsg: "explanation is empty",
		},
		{
			name:    "explanation too long",
			mutate:  func(q *Quiz) { q.Questions[1].Explanation = strings.Repeat("x", 1001) },
			wantMsg: "exceeds 1000",
		},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := validQuiz()
			tt.mutate(quiz)
			err := v.Validate(quiz, validInput())
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Message, tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, err.Message)
			}
			if !err.Retryable {
				t.Error("structural failures should be retryable")
			}
		})
	}
}
