// Package mcp exposes Mentora's learner tools over the Model Context
// Protocol so external agents and editors can drive the same store the
// built-in tutor uses.
package mcp

import (
	"context"
	"fmt"
	"strings"

	mcp "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/server"

	"github.com/mentora/mentora/internal/metrics"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/resources"
	"github.com/mentora/mentora/internal/tools"
)

// Server wraps the MCP server with Mentora's tool surface.
type Server struct {
	mcpServer *server.Server
	profiles  tools.ProfileService
	quizzes   quizgen.Generator
	search    tools.ResourceSearcher
	metrics   *metrics.Metrics
}

// Config contains the services the MCP tools call into.
type Config struct {
	Profiles tools.ProfileService
	Quizzes  quizgen.Generator
	Search   tools.ResourceSearcher

	// Version is reported in the MCP handshake. Defaults to "dev".
	Version string
}

// NewServer creates an MCP server exposing the Mentora tools.
func NewServer(cfg Config) *Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		profiles: cfg.Profiles,
		quizzes:  cfg.Quizzes,
		search:   cfg.Search,
		metrics:  metrics.New(),
	}

	s.mcpServer = server.New(server.Info{
		Name:    "mentora",
		Version: version,
	}, server.WithInstructions(`
Mentora is an adaptive learning assistant. It tracks per-topic mastery
for each learner and updates it from quiz results.

Available tools:
- get_learner_profile: Read a learner's mastery summary, or one topic's mastery
- generate_quiz: Produce a multiple-choice quiz on a topic
- record_quiz_result: Record a finished quiz and update mastery
- search_resources: Find learning resources for a query

Mastery scores range from 0 to 1 and move by an exponential moving
average, so recent quizzes weigh more than old ones. Record every quiz
you administer, even poor results; the profile is only as good as the
attempts it has seen.
`))

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("get_learner_profile").
		Description("Read a learner's profile summary, or one topic's mastery when topic is given.").
		Handler(s.handleGetProfile)

	s.mcpServer.Tool("generate_quiz").
		Description("Generate a multiple-choice quiz on a topic. Each question has four options, a correct answer index, and an explanation.").
		Handler(s.handleGenerateQuiz)

	s.mcpServer.Tool("record_quiz_result").
		Description("Record a finished quiz attempt and update the learner's mastery for the topic.").
		Handler(s.handleRecordResult)

	s.mcpServer.Tool("search_resources").
		Description("Search for learning resources (tutorials, docs, courses) on a query.").
		Handler(s.handleSearchResources)
}

// Input/Output types for tools

type ProfileInput struct {
	UserID string `json:"user_id" jsonschema:"description=Learner identifier"`
	Topic  string `json:"topic,omitempty" jsonschema:"description=Limit the lookup to one topic"`
}

type ProfileOutput struct {
	UserID       string                `json:"user_id"`
	Summary      *profile.Summary      `json:"summary,omitempty"`
	TopicMastery *profile.TopicMastery `json:"topic_mastery,omitempty"`
}

type QuizInput struct {
	Topic        string `json:"topic" jsonschema:"description=Subject of the quiz"`
	Difficulty   string `json:"difficulty,omitempty" jsonschema:"description=Target difficulty; defaults to beginner,enum=beginner,enum=intermediate,enum=expert"`
	NumQuestions int    `json:"num_questions,omitempty" jsonschema:"description=Question count from 3 to 10; defaults to 5"`
}

type RecordInput struct {
	UserID       string `json:"user_id" jsonschema:"description=Learner identifier"`
	Topic        string `json:"topic" jsonschema:"description=Topic the quiz covered"`
	NumQuestions int    `json:"num_questions" jsonschema:"description=Number of questions asked"`
	NumCorrect   int    `json:"num_correct" jsonschema:"description=Number answered correctly"`
}

type RecordOutput struct {
	Topic    string  `json:"topic"`
	Score    float64 `json:"score"`
	Attempts int     `json:"attempts"`
}

type SearchInput struct {
	Query      string `json:"query" jsonschema:"description=What to find resources for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"description=Maximum resources to return (1-10); defaults to 5"`
}

type SearchOutput struct {
	Query     string               `json:"query"`
	Resources []resources.Resource `json:"resources"`
}

// Tool handlers

func (s *Server) handleGetProfile(ctx context.Context, input ProfileInput) (ProfileOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return ProfileOutput{}, fmt.Errorf("user_id must not be empty")
	}

	out := ProfileOutput{UserID: input.UserID}
	if input.Topic != "" {
		mastery, err := s.profiles.TopicMastery(ctx, input.UserID, input.Topic)
		if err != nil {
			return ProfileOutput{}, err
		}
		out.TopicMastery = mastery
		return out, nil
	}

	summary, err := s.profiles.Summary(ctx, input.UserID)
	if err != nil {
		return ProfileOutput{}, err
	}
	out.Summary = summary
	return out, nil
}

func (s *Server) handleGenerateQuiz(ctx context.Context, input QuizInput) (quizgen.Quiz, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return quizgen.Quiz{}, fmt.Errorf("topic must not be empty")
	}

	difficulty := quizgen.Difficulty(input.Difficulty)
	if difficulty == "" {
		difficulty = quizgen.DifficultyBeginner
	}
	n := input.NumQuestions
	if n == 0 {
		n = 5
	}

	quiz, err := s.quizzes.Generate(ctx, quizgen.GenerateInput{
		Topic:        input.Topic,
		Difficulty:   difficulty,
		NumQuestions: n,
	})
	if err != nil {
		return quizgen.Quiz{}, fmt.Errorf("generate quiz: %w", err)
	}
	return *quiz, nil
}

func (s *Server) handleRecordResult(ctx context.Context, input RecordInput) (RecordOutput, error) {
	mastery, err := s.profiles.RecordQuizAttempt(ctx, input.UserID, input.Topic, input.NumQuestions, input.NumCorrect)
	if err != nil {
		return RecordOutput{}, err
	}
	s.metrics.RecordQuizAttempt("mcp")

	return RecordOutput{
		Topic:    mastery.Topic,
		Score:    mastery.Score,
		Attempts: mastery.Attempts,
	}, nil
}

func (s *Server) handleSearchResources(ctx context.Context, input SearchInput) (SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return SearchOutput{}, fmt.Errorf("query must not be empty")
	}

	max := input.MaxResults
	if max <= 0 {
		max = resources.DefaultMaxResults
	}
	if max > resources.DefaultMaxResults*2 {
		max = resources.DefaultMaxResults * 2
	}

	found, err := s.search.Search(ctx, input.Query, max)
	if err != nil {
		return SearchOutput{}, fmt.Errorf("search resources: %w", err)
	}
	return SearchOutput{Query: input.Query, Resources: found}, nil
}

// ServeStdio serves MCP over stdin/stdout for editor integration.
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}
