package quizgen

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func newStatic(t *testing.T) *StaticGenerator {
	t.Helper()
	gen, err := NewStatic()
	if err != nil {
		t.Fatalf("failed to load embedded bank: %v", err)
	}
	return gen
}

func TestStatic_KnownTopic(t *testing.T) {
	gen := newStatic(t)

	quiz, err := gen.Generate(context.Background(), GenerateInput{
		Topic:        "fractions",
		Difficulty:   DifficultyBeginner,
		NumQuestions: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.Topic != "fractions" {
		t.Errorf("unexpected topic: %q", quiz.Topic)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(quiz.Questions))
	}
	for i, q := range quiz.Questions {
		if q.Prompt == "" || len(q.Options) != 4 || q.Answer < 0 || q.Answer > 3 || q.Explanation == "" {
			t.Errorf("question %d is malformed: %+v", i+1, q)
		}
	}
}

func TestStatic_BankPassesValidators(t *testing.T) {
	gen := newStatic(t)

	for _, topic := range gen.Topics() {
		quiz, err := gen.Generate(context.Background(), GenerateInput{
			Topic:        topic,
			NumQuestions: MaxQuestions,
		})
		if err != nil {
			t.Fatalf("topic %q: unexpected error: %v", topic, err)
		}
		input := GenerateInput{Topic: topic, NumQuestions: len(quiz.Questions)}
		for _, v := range DefaultConfig().Validators {
			if verr := v.Validate(quiz, input); verr != nil {
				t.Errorf("topic %q fails validator %q: %s", topic, verr.Validator, verr.Message)
			}
		}
	}
}

func TestStatic_AliasMatching(t *testing.T) {
	gen := newStatic(t)

	quiz, err := gen.Generate(context.Background(), GenerateInput{
		Topic:        "GoLang",
		NumQuestions: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.Topic != "go basics" {
		t.Errorf("expected canonical topic 'go basics', got %q", quiz.Topic)
	}
}

func TestStatic_UnknownTopic(t *testing.T) {
	gen := newStatic(t)

	_, err := gen.Generate(context.Background(), GenerateInput{
		Topic:        "quantum chromodynamics",
		NumQuestions: 3,
	})
	if err == nil {
		t.Fatal("expected error for unknown topic")
	}
	if !strings.Contains(err.Error(), "no offline question bank") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStatic_Deterministic(t *testing.T) {
	gen := newStatic(t)
	input := GenerateInput{Topic: "algebra", NumQuestions: 4}

	q1, err := gen.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q2, err := gen.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(q1, q2) {
		t.Error("expected identical quizzes for identical input")
	}
}

func TestStatic_CountCappedAtBankSize(t *testing.T) {
	gen := newStatic(t)

	quiz, err := gen.Generate(context.Background(), GenerateInput{
		Topic:        "world capitals",
		NumQuestions: MaxQuestions,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The bank holds 6 questions per topic.
	if len(quiz.Questions) != 6 {
		t.Errorf("expected 6 questions, got %d", len(quiz.Questions))
	}
}

func TestStatic_TopicsSorted(t *testing.T) {
	gen := newStatic(t)
	topics := gen.Topics()
	if len(topics) < 4 {
		t.Fatalf("expected at least 4 bank topics, got %d", len(topics))
	}
	for i := 1; i < len(topics); i++ {
		if topics[i-1] > topics[i] {
			t.Errorf("topics not sorted: %v", topics)
		}
	}
}
