package quizgen

import (
	"strings"
	"testing"
)

func TestBuildUserMessage_Fields(t *testing.T) {
	input := GenerateInput{
		Topic:        "go basics",
		Difficulty:   DifficultyIntermediate,
		NumQuestions: 5,
	}
	msg := buildUserMessage(input, DefaultConfig())

	for _, want := range []string{
		"Topic: go basics",
		"Difficulty: intermediate",
		"Number of questions: 5",
		"Already asked on this topic:\nNone",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q, got:\n%s", want, msg)
		}
	}
}

func TestBuildDedup_Empty(t *testing.T) {
	if got := buildDedup(nil, 10); got != "None" {
		t.Errorf("expected 'None', got %q", got)
	}
}

func TestBuildDedup_Numbered(t *testing.T) {
	got := buildDedup([]string{"Q one", "Q two"}, 10)
	want := "1. Q one\n2. Q two"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildDedup_KeepsMostRecent(t *testing.T) {
	questions := []string{"old 1", "old 2", "recent 1", "recent 2"}
	got := buildDedup(questions, 2)
	if strings.Contains(got, "old") {
		t.Errorf("expected only recent questions, got %q", got)
	}
	if !strings.Contains(got, "recent 1") || !strings.Contains(got, "recent 2") {
		t.Errorf("expected recent questions, got %q", got)
	}
}
