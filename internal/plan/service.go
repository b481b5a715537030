package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mentora/mentora/internal/store"
)

// ErrNoPlan reports that a learner has no plan yet.
var ErrNoPlan = errors.New("no learning plan")

// ErrAllCompleted reports that every module is already completed.
var ErrAllCompleted = errors.New("all plan modules are completed")

// Service creates plans and advances them as quizzes are passed.
type Service struct {
	repo store.PlanRepo

	// mu serializes read-modify-write updates of the module ladder.
	mu sync.Mutex
}

// NewService creates a plan service backed by repo.
func NewService(repo store.PlanRepo) *Service {
	return &Service{repo: repo}
}

// Create builds a fresh ladder for skill at level and stores it. A new
// plan supersedes any earlier one for the same learner.
func (s *Service) Create(ctx context.Context, userID, skill string, level Level) (*store.PlanRecord, error) {
	userID = strings.TrimSpace(userID)
	skill = strings.TrimSpace(skill)
	if userID == "" {
		return nil, fmt.Errorf("user id must not be empty")
	}
	if skill == "" {
		return nil, fmt.Errorf("skill must not be empty")
	}
	if _, err := ParseLevel(string(level)); err != nil {
		return nil, err
	}

	rec, err := s.repo.CreatePlan(ctx, userID, skill, string(level), BuildLadder(skill, level))
	if err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return rec, nil
}

// Get returns the learner's current plan, or ErrNoPlan.
func (s *Service) Get(ctx context.Context, userID string) (*store.PlanRecord, error) {
	rec, err := s.repo.ActivePlan(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	if rec == nil {
		return nil, ErrNoPlan
	}
	return rec, nil
}

// CompletionResult describes what a quiz score did to the plan.
type CompletionResult struct {
	Plan *store.PlanRecord

	// ModuleName is the module the score applied to.
	ModuleName string

	// Completed is true when the score crossed the threshold and the
	// module was marked completed in this call.
	Completed bool

	// Unlocked names the module opened by this completion, if any.
	Unlocked string

	// PlanDone is true when no modules remain.
	PlanDone bool
}

// CompleteModule applies a quiz score (percent) to the active module.
// At or above CompletionThreshold the module completes and the next one
// unlocks; below it the module stays active and the score is kept as
// best-so-far.
func (s *Service) CompleteModule(ctx context.Context, userID string, score float64) (*CompletionResult, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("score %.1f out of range [0,100]", score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := ActiveIndex(rec.Modules)
	if idx < 0 {
		return nil, ErrAllCompleted
	}

	mod := &rec.Modules[idx]
	if score > mod.QuizScore {
		mod.QuizScore = score
	}

	result := &CompletionResult{Plan: rec, ModuleName: mod.Name}
	if score >= CompletionThreshold {
		mod.Status = StatusCompleted
		result.Completed = true
		if idx+1 < len(rec.Modules) {
			rec.Modules[idx+1].Status = StatusActive
			result.Unlocked = rec.Modules[idx+1].Name
		} else {
			result.PlanDone = true
		}
	}

	if err := s.repo.UpdateModules(ctx, rec.ID, rec.Modules); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}
	return result, nil
}
