package tools

import (
	"context"
	"encoding/json"

	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/profile"
)

// ProfileService is the slice of profile.Service the profile tools use.
type ProfileService interface {
	Summary(ctx context.Context, userID string) (*profile.Summary, error)
	TopicMastery(ctx context.Context, userID, topic string) (*profile.TopicMastery, error)
	RecordQuizAttempt(ctx context.Context, userID, topic string, numQuestions, numCorrect int) (*profile.TopicMastery, error)
}

// RegisterProfileTools adds get_learner_profile and record_quiz_result.
func RegisterProfileTools(r *Registry, svc ProfileService) error {
	getDef := llm.ToolDef{
		Name: "get_learner_profile",
		Description: "Look up a learner's knowledge profile. Without a topic it returns " +
			"the full summary (topics studied, quiz count, strongest and weakest topics); " +
			"with a topic it returns that topic's mastery score and attempt count. " +
			"Use it before recommending material or picking a quiz difficulty.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_id": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "Learner identifier",
				},
				"topic": map[string]any{
					"type":        "string",
					"description": "Optional topic to narrow the lookup to",
				},
			},
			"required":             []any{"user_id"},
			"additionalProperties": false,
		},
	}
	err := r.Register(getDef, func(ctx context.Context, input json.RawMessage) (string, error) {
		var in struct {
			UserID string `json:"user_id"`
			Topic  string `json:"topic"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		if in.Topic != "" {
			m, err := svc.TopicMastery(ctx, in.UserID, in.Topic)
			if err != nil {
				return "", err
			}
			return marshalContent(m)
		}
		s, err := svc.Summary(ctx, in.UserID)
		if err != nil {
			return "", err
		}
		return marshalContent(s)
	})
	if err != nil {
		return err
	}

	recordDef := llm.ToolDef{
		Name: "record_quiz_result",
		Description: "Record a finished quiz in the learner's knowledge profile. " +
			"Updates the topic's mastery score and attempt count. Call it once per " +
			"completed quiz, never for partial progress.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_id": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "Learner identifier",
				},
				"topic": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "Topic the quiz covered",
				},
				"num_questions": map[string]any{
					"type":        "integer",
					"minimum":     1,
					"description": "How many questions the quiz had",
				},
				"num_correct": map[string]any{
					"type":        "integer",
					"minimum":     0,
					"description": "How many the learner answered correctly",
				},
			},
			"required":             []any{"user_id", "topic", "num_questions", "num_correct"},
			"additionalProperties": false,
		},
	}
	return r.Register(recordDef, func(ctx context.Context, input json.RawMessage) (string, error) {
		var in struct {
			UserID       string `json:"user_id"`
			Topic        string `json:"topic"`
			NumQuestions int    `json:"num_questions"`
			NumCorrect   int    `json:"num_correct"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		m, err := svc.RecordQuizAttempt(ctx, in.UserID, in.Topic, in.NumQuestions, in.NumCorrect)
		if err != nil {
			return "", err
		}
		return marshalContent(struct {
			Topic    string  `json:"topic"`
			Score    float64 `json:"score"`
			Attempts int     `json:"attempts"`
		}{m.Topic, m.Score, m.Attempts})
	})
}
