package store

import (
	"context"
	"time"

	entschema "github.com/mentora/mentora/ent/schema"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter by purpose label
}

// ProfileRecord is the root row for one learner.
type ProfileRecord struct {
	ID        int
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MasteryRecord is the stored mastery estimate for one (learner, topic) pair.
type MasteryRecord struct {
	Topic     string
	Score     float64
	Attempts  int
	UpdatedAt time.Time
}

// AttemptRecord is one quiz history entry.
type AttemptRecord struct {
	Topic        string
	NumQuestions int
	NumCorrect   int
	Timestamp    time.Time
}

// ApplyAttemptParams carries one validated quiz attempt plus the mastery
// score computed for it. The repo persists all of it in a single
// transaction.
type ApplyAttemptParams struct {
	UserID       string
	Topic        string
	NumQuestions int
	NumCorrect   int
	Score        float64
	Now          time.Time
}

// ProfileRepo persists learner profiles, topic mastery, and quiz history.
// Lookup methods return (nil, nil) when no row exists.
type ProfileRepo interface {
	// Profile returns the root row for userID.
	Profile(ctx context.Context, userID string) (*ProfileRecord, error)

	// CreateProfile inserts an empty profile for userID.
	CreateProfile(ctx context.Context, userID string) (*ProfileRecord, error)

	// Mastery returns the mastery row for (userID, topic).
	Mastery(ctx context.Context, userID, topic string) (*MasteryRecord, error)

	// Masteries returns all mastery rows for userID, ordered by topic.
	Masteries(ctx context.Context, userID string) ([]MasteryRecord, error)

	// Attempts returns the quiz history for userID in insertion order.
	// limit of 0 means unlimited.
	Attempts(ctx context.Context, userID string, limit int) ([]AttemptRecord, error)

	// ApplyAttempt commits one attempt as a single transaction:
	// the profile row is created if missing and its updated_at bumped,
	// the mastery row is created or updated with params.Score and one
	// more attempt, and the history row is appended. On error nothing
	// is committed.
	ApplyAttempt(ctx context.Context, params ApplyAttemptParams) (*MasteryRecord, error)
}

// PlanRecord is a learner's stored module ladder for one skill.
type PlanRecord struct {
	ID        int
	UserID    string
	Skill     string
	Level     string
	Modules   []entschema.PlanModule
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanRepo persists learning plans.
type PlanRepo interface {
	// ActivePlan returns the most recently created plan for userID,
	// or nil if the learner has none.
	ActivePlan(ctx context.Context, userID string) (*PlanRecord, error)

	// CreatePlan inserts a new plan and returns it.
	CreatePlan(ctx context.Context, userID, skill, level string, modules []entschema.PlanModule) (*PlanRecord, error)

	// UpdateModules replaces a plan's module ladder.
	UpdateModules(ctx context.Context, planID int, modules []entschema.PlanModule) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// ToolCallEventData captures one tool execution by the tutor agent.
// TurnID groups the calls made during a single chat turn.
type ToolCallEventData struct {
	Tool         string
	TurnID       string
	UserID       string
	Input        string
	Output       string
	DurationMs   int64
	Success      bool
	ErrorMessage string
}

// ToolCallEventRecord is a stored tool call event.
type ToolCallEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ToolCallEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to observability events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendToolCall records a tool execution event.
	AppendToolCall(ctx context.Context, data ToolCallEventData) error

	// QueryLLMEvents returns recent LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// QueryToolCalls returns recent tool call events, newest first.
	QueryToolCalls(ctx context.Context, opts QueryOpts) ([]ToolCallEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
