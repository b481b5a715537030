package plan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	entschema "github.com/mentora/mentora/ent/schema"
	"github.com/mentora/mentora/internal/store"
)

// fakePlanRepo is an in-memory store.PlanRepo.
type fakePlanRepo struct {
	nextID int
	plans  []*store.PlanRecord
}

func (f *fakePlanRepo) ActivePlan(ctx context.Context, userID string) (*store.PlanRecord, error) {
	for i := len(f.plans) - 1; i >= 0; i-- {
		if f.plans[i].UserID == userID {
			return f.plans[i], nil
		}
	}
	return nil, nil
}

func (f *fakePlanRepo) CreatePlan(ctx context.Context, userID, skill, level string, modules []entschema.PlanModule) (*store.PlanRecord, error) {
	f.nextID++
	rec := &store.PlanRecord{
		ID:        f.nextID,
		UserID:    userID,
		Skill:     skill,
		Level:     level,
		Modules:   modules,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.plans = append(f.plans, rec)
	return rec, nil
}

func (f *fakePlanRepo) UpdateModules(ctx context.Context, planID int, modules []entschema.PlanModule) error {
	for _, p := range f.plans {
		if p.ID == planID {
			p.Modules = modules
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return errors.New("plan not found")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"beginner", LevelBeginner, false},
		{"Intermediate", LevelIntermediate, false},
		{"  EXPERT  ", LevelExpert, false},
		{"wizard", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildLadder(t *testing.T) {
	modules := BuildLadder("Machine Learning", LevelBeginner)
	if len(modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(modules))
	}
	if modules[0].Name != "Foundations of Machine Learning" {
		t.Errorf("first module = %q", modules[0].Name)
	}
	if modules[0].Status != StatusActive {
		t.Errorf("first module status = %q, want active", modules[0].Status)
	}
	for i, m := range modules[1:] {
		if m.Status != StatusLocked {
			t.Errorf("module %d status = %q, want locked", i+1, m.Status)
		}
	}
	if modules[0].Topic != "foundations of machine learning" {
		t.Errorf("topic should be the lowercased name, got %q", modules[0].Topic)
	}

	expert := BuildLadder("Go", LevelExpert)
	if expert[2].Name != "Go Innovation & Leadership" {
		t.Errorf("expert ladder final module = %q", expert[2].Name)
	}
}

func TestService_CreateAndGet(t *testing.T) {
	svc := NewService(&fakePlanRepo{})
	ctx := context.Background()

	if _, err := svc.Get(ctx, "alice"); !errors.Is(err, ErrNoPlan) {
		t.Fatalf("expected ErrNoPlan, got %v", err)
	}

	rec, err := svc.Create(ctx, "alice", "Python", LevelIntermediate)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Skill != "Python" || rec.Level != "intermediate" {
		t.Errorf("unexpected record: %+v", rec)
	}

	got, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("Get returned plan %d, want %d", got.ID, rec.ID)
	}
	if idx := ActiveIndex(got.Modules); idx != 0 {
		t.Errorf("active index = %d, want 0", idx)
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(&fakePlanRepo{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", "Go", LevelBeginner); err == nil {
		t.Error("expected error for empty user")
	}
	if _, err := svc.Create(ctx, "alice", "   ", LevelBeginner); err == nil {
		t.Error("expected error for empty skill")
	}
	if _, err := svc.Create(ctx, "alice", "Go", Level("wizard")); err == nil {
		t.Error("expected error for bad level")
	}
}

func TestService_CompleteModule_Passes(t *testing.T) {
	svc := NewService(&fakePlanRepo{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", "Go", LevelBeginner); err != nil {
		t.Fatal(err)
	}

	res, err := svc.CompleteModule(ctx, "alice", 85)
	if err != nil {
		t.Fatalf("CompleteModule: %v", err)
	}
	if !res.Completed {
		t.Error("score 85 should complete the module")
	}
	if res.ModuleName != "Foundations of Go" {
		t.Errorf("ModuleName = %q", res.ModuleName)
	}
	if res.Unlocked != "Core Concepts in Go" {
		t.Errorf("Unlocked = %q", res.Unlocked)
	}
	if res.PlanDone {
		t.Error("plan should not be done after one module")
	}

	plan, _ := svc.Get(ctx, "alice")
	if plan.Modules[0].Status != StatusCompleted {
		t.Errorf("module 0 status = %q", plan.Modules[0].Status)
	}
	if plan.Modules[0].QuizScore != 85 {
		t.Errorf("module 0 score = %v", plan.Modules[0].QuizScore)
	}
	if plan.Modules[1].Status != StatusActive {
		t.Errorf("module 1 status = %q", plan.Modules[1].Status)
	}
}

func TestService_CompleteModule_BelowThreshold(t *testing.T) {
	svc := NewService(&fakePlanRepo{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", "Go", LevelBeginner); err != nil {
		t.Fatal(err)
	}

	res, err := svc.CompleteModule(ctx, "alice", 60)
	if err != nil {
		t.Fatalf("CompleteModule: %v", err)
	}
	if res.Completed {
		t.Error("score 60 should not complete the module")
	}

	plan, _ := svc.Get(ctx, "alice")
	if plan.Modules[0].Status != StatusActive {
		t.Errorf("module 0 status = %q, want active", plan.Modules[0].Status)
	}
	if plan.Modules[0].QuizScore != 60 {
		t.Errorf("best score should be recorded, got %v", plan.Modules[0].QuizScore)
	}

	// A worse retry must not lower the best score.
	if _, err := svc.CompleteModule(ctx, "alice", 40); err != nil {
		t.Fatal(err)
	}
	plan, _ = svc.Get(ctx, "alice")
	if plan.Modules[0].QuizScore != 60 {
		t.Errorf("best score should stay at 60, got %v", plan.Modules[0].QuizScore)
	}
}

func TestService_CompleteModule_ExactThreshold(t *testing.T) {
	svc := NewService(&fakePlanRepo{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", "Go", LevelBeginner); err != nil {
		t.Fatal(err)
	}

	res, err := svc.CompleteModule(ctx, "alice", CompletionThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Completed {
		t.Error("a score equal to the threshold completes the module")
	}
}

func TestService_CompleteModule_FinishesPlan(t *testing.T) {
	svc := NewService(&fakePlanRepo{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", "Go", LevelBeginner); err != nil {
		t.Fatal(err)
	}

	var last *CompletionResult
	for i := 0; i < 3; i++ {
		res, err := svc.CompleteModule(ctx, "alice", 90)
		if err != nil {
			t.Fatalf("module %d: %v", i, err)
		}
		last = res
	}
	if !last.PlanDone {
		t.Error("plan should be done after three completions")
	}

	plan, _ := svc.Get(ctx, "alice")
	completed, total := Progress(plan.Modules)
	if completed != 3 || total != 3 {
		t.Errorf("progress = %d/%d, want 3/3", completed, total)
	}
	if idx := ActiveIndex(plan.Modules); idx != -1 {
		t.Errorf("no module should be active, got index %d", idx)
	}

	if _, err := svc.CompleteModule(ctx, "alice", 90); !errors.Is(err, ErrAllCompleted) {
		t.Errorf("expected ErrAllCompleted, got %v", err)
	}
}

func TestService_CompleteModule_ScoreRange(t *testing.T) {
	svc := NewService(&fakePlanRepo{})
	ctx := context.Background()
	if _, err := svc.Create(ctx, "alice", "Go", LevelBeginner); err != nil {
		t.Fatal(err)
	}

	for _, score := range []float64{-1, 101} {
		if _, err := svc.CompleteModule(ctx, "alice", score); err == nil {
			t.Errorf("expected error for score %v", score)
		} else if !strings.Contains(err.Error(), "out of range") {
			t.Errorf("unexpected error for score %v: %v", score, err)
		}
	}
}
