package quizgen

import "context"

// Generator produces quizzes for a topic.
type Generator interface {
	// Generate produces a quiz for the given input context.
	// Returns a validated Quiz or an error.
	// All configured validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (*Quiz, error)
}
