// Package quiz scores answered quizzes and maps scores to feedback.
package quiz

import (
	"fmt"

	"github.com/mentora/mentora/internal/quizgen"
)

// QuestionResult is the outcome of a single answered question.
type QuestionResult struct {
	// Index is the question's position in the quiz, zero-based.
	Index int `json:"index"`

	// Given is the learner's chosen option index, or -1 if unanswered.
	Given int `json:"given"`

	// Want is the correct option index.
	Want int `json:"want"`

	Correct bool `json:"correct"`
}

// Result is the outcome of a completed quiz.
type Result struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
	NumCorrect   int    `json:"num_correct"`

	// Percent is the score in [0, 100].
	Percent float64 `json:"percent"`

	// Feedback is the encouragement band for the score.
	Feedback string `json:"feedback"`

	Questions []QuestionResult `json:"questions"`
}

// Evaluate scores the given answers against the quiz. answers must have
// one entry per question; use -1 for unanswered questions.
func Evaluate(q *quizgen.Quiz, answers []int) (*Result, error) {
	if len(answers) != len(q.Questions) {
		return nil, fmt.Errorf("quiz has %d questions but %d answers were given",
			len(q.Questions), len(answers))
	}

	result := &Result{
		Topic:        q.Topic,
		NumQuestions: len(q.Questions),
		Questions:    make([]QuestionResult, len(q.Questions)),
	}

	for i, question := range q.Questions {
		correct := answers[i] == question.Answer
		if correct {
			result.NumCorrect++
		}
		result.Questions[i] = QuestionResult{
			Index:   i,
			Given:   answers[i],
			Want:    question.Answer,
			Correct: correct,
		}
	}

	if result.NumQuestions > 0 {
		result.Percent = 100 * float64(result.NumCorrect) / float64(result.NumQuestions)
	}
	result.Feedback = Feedback(result.Percent)

	return result, nil
}

// Feedback maps a percent score to an encouragement band.
func Feedback(percent float64) string {
	switch {
	case percent >= 90:
		return "Outstanding! You have mastered this topic."
	case percent >= 80:
		return "Great work! You know this topic well."
	case percent >= 70:
		return "Good job! A little more practice will lock it in."
	case percent >= 60:
		return "Getting there. Review the explanations and try again."
	default:
		return "Keep practicing. Revisit the material before your next attempt."
	}
}
