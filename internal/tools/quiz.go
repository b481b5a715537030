package tools

import (
	"context"
	"encoding/json"

	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/quizgen"
)

// RegisterQuizTool adds generate_quiz backed by the given generator.
func RegisterQuizTool(r *Registry, gen quizgen.Generator) error {
	def := llm.ToolDef{
		Name: "generate_quiz",
		Description: "Generate a multiple-choice quiz on a topic. Returns the questions " +
			"with four options each, the correct answer index, and an explanation per " +
			"question. Present the questions one at a time and keep track of the " +
			"learner's answers; use record_quiz_result once the quiz is finished.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "Subject of the quiz",
				},
				"difficulty": map[string]any{
					"type":        "string",
					"enum":        []any{"beginner", "intermediate", "expert"},
					"description": "Target difficulty; defaults to beginner",
				},
				"num_questions": map[string]any{
					"type":        "integer",
					"minimum":     quizgen.MinQuestions,
					"maximum":     quizgen.MaxQuestions,
					"description": "Question count, 3 to 10; defaults to 5",
				},
			},
			"required":             []any{"topic"},
			"additionalProperties": false,
		},
	}
	return r.Register(def, func(ctx context.Context, input json.RawMessage) (string, error) {
		var in struct {
			Topic        string `json:"topic"`
			Difficulty   string `json:"difficulty"`
			NumQuestions int    `json:"num_questions"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		if in.Difficulty == "" {
			in.Difficulty = string(quizgen.DifficultyBeginner)
		}
		if in.NumQuestions == 0 {
			in.NumQuestions = 5
		}

		q, err := gen.Generate(ctx, quizgen.GenerateInput{
			Topic:        in.Topic,
			Difficulty:   quizgen.Difficulty(in.Difficulty),
			NumQuestions: in.NumQuestions,
		})
		if err != nil {
			return "", err
		}
		return marshalContent(q)
	})
}
