package profile

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestUpdateScore(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		accuracy float64
		want     float64
	}{
		{"fresh user partial credit", 0, 0.6, 0.18},
		{"second attempt improves", 0.18, 0.9, 0.396},
		{"perfect stays perfect", 1, 1, 1},
		{"zero stays zero", 0, 0, 0},
		{"moves toward accuracy", 0.5, 1.0, 0.65},
		{"moves down toward accuracy", 0.8, 0.0, 0.56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateScore(tt.score, tt.accuracy)
			if !approx(got, tt.want) {
				t.Errorf("UpdateScore(%v, %v) = %v, want %v", tt.score, tt.accuracy, got, tt.want)
			}
		})
	}
}

func TestUpdateScoreStaysBounded(t *testing.T) {
	score := 0.0
	for i := 0; i < 50; i++ {
		score = UpdateScore(score, 1.0)
		if score < 0 || score > 1 {
			t.Fatalf("score out of bounds after %d updates: %v", i+1, score)
		}
	}
	if score < 0.95 {
		t.Errorf("score = %v after 50 perfect attempts, want near 1", score)
	}

	for i := 0; i < 50; i++ {
		score = UpdateScore(score, 0.0)
		if score < 0 || score > 1 {
			t.Fatalf("score out of bounds after failure %d: %v", i+1, score)
		}
	}
	if score > 0.05 {
		t.Errorf("score = %v after 50 failed attempts, want near 0", score)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.1, 0, 1, 0},
		{1.2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestAttemptAccuracy(t *testing.T) {
	a := QuizAttempt{NumQuestions: 10, NumCorrect: 6}
	if got := a.Accuracy(); !approx(got, 0.6) {
		t.Errorf("accuracy = %v, want 0.6", got)
	}

	empty := QuizAttempt{}
	if got := empty.Accuracy(); got != 0 {
		t.Errorf("empty accuracy = %v, want 0", got)
	}
}
