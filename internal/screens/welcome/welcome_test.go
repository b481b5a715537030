package welcome

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	entschema "github.com/mentora/mentora/ent/schema"
	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/router"
	"github.com/mentora/mentora/internal/screen"
	"github.com/mentora/mentora/internal/store"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

// fakePlanRepo keeps plans in memory.
type fakePlanRepo struct {
	plans  []*store.PlanRecord
	nextID int
}

func (f *fakePlanRepo) ActivePlan(_ context.Context, userID string) (*store.PlanRecord, error) {
	for i := len(f.plans) - 1; i >= 0; i-- {
		if f.plans[i].UserID == userID {
			return f.plans[i], nil
		}
	}
	return nil, nil
}

func (f *fakePlanRepo) CreatePlan(_ context.Context, userID, skill, level string, modules []entschema.PlanModule) (*store.PlanRecord, error) {
	f.nextID++
	rec := &store.PlanRecord{
		ID: f.nextID, UserID: userID, Skill: skill, Level: level, Modules: modules,
	}
	f.plans = append(f.plans, rec)
	return rec, nil
}

func (f *fakePlanRepo) UpdateModules(_ context.Context, planID int, modules []entschema.PlanModule) error {
	for _, p := range f.plans {
		if p.ID == planID {
			p.Modules = modules
		}
	}
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestWelcome() (*WelcomeScreen, *fakePlanRepo, *int) {
	repo := &fakePlanRepo{}
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(plan.NewService(repo), "alice", factory), repo, &callCount
}

func typeSkill(w *WelcomeScreen, skill string) {
	w.input.Model.SetValue(skill)
}

func TestSkillStepRequiresInput(t *testing.T) {
	w, _, _ := newTestWelcome()

	w.Update(specialKey(tea.KeyEnter))
	if w.step != stepSkill {
		t.Errorf("empty skill should stay on skill step, got step %d", w.step)
	}

	typeSkill(w, "Go")
	w.Update(specialKey(tea.KeyEnter))
	if w.step != stepLevel {
		t.Errorf("expected level step after skill entry, got step %d", w.step)
	}
	if w.skill != "Go" {
		t.Errorf("skill = %q, want %q", w.skill, "Go")
	}
}

func TestLevelSelection(t *testing.T) {
	w, _, _ := newTestWelcome()
	typeSkill(w, "Go")
	w.Update(specialKey(tea.KeyEnter))

	// Down twice lands on expert.
	w.Update(keyPress('j'))
	w.Update(keyPress('j'))
	if w.selected != 2 {
		t.Errorf("selected = %d, want 2", w.selected)
	}

	// Down at the bottom stays put.
	w.Update(keyPress('j'))
	if w.selected != 2 {
		t.Errorf("selected = %d after extra down, want 2", w.selected)
	}
}

func TestEnterCreatesPlan(t *testing.T) {
	w, repo, _ := newTestWelcome()
	typeSkill(w, "Go")
	w.Update(specialKey(tea.KeyEnter))

	_, cmd := w.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command to create the plan")
	}
	if w.step != stepCreating {
		t.Errorf("expected creating step, got %d", w.step)
	}

	msg := cmd()
	created, ok := msg.(planCreatedMsg)
	if !ok {
		t.Fatalf("expected planCreatedMsg, got %T", msg)
	}
	if created.err != nil {
		t.Fatalf("unexpected create error: %v", created.err)
	}
	if len(repo.plans) != 1 {
		t.Fatalf("plans stored = %d, want 1", len(repo.plans))
	}
	if repo.plans[0].Skill != "Go" {
		t.Errorf("stored skill = %q, want %q", repo.plans[0].Skill, "Go")
	}
	if repo.plans[0].Level != string(plan.LevelBeginner) {
		t.Errorf("stored level = %q, want beginner", repo.plans[0].Level)
	}
}

func TestNumberKeySelectsLevelAndCreates(t *testing.T) {
	w, repo, _ := newTestWelcome()
	typeSkill(w, "SQL")
	w.Update(specialKey(tea.KeyEnter))

	_, cmd := w.Update(keyPress('3'))
	if cmd == nil {
		t.Fatal("expected a command after number key")
	}
	cmd()

	if repo.plans[0].Level != string(plan.LevelExpert) {
		t.Errorf("stored level = %q, want expert", repo.plans[0].Level)
	}
}

func TestPlanCreatedTransitionsHome(t *testing.T) {
	w, _, callCount := newTestWelcome()
	typeSkill(w, "Go")
	w.Update(specialKey(tea.KeyEnter))
	_, createCmd := w.Update(specialKey(tea.KeyEnter))

	_, cmd := w.Update(createCmd())
	if cmd == nil {
		t.Fatal("expected transition command after plan creation")
	}
	msg := cmd()
	replaceMsg, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replaceMsg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestCreateErrorShowsRetry(t *testing.T) {
	w, _, callCount := newTestWelcome()
	typeSkill(w, "Go")
	w.Update(specialKey(tea.KeyEnter))
	w.Update(specialKey(tea.KeyEnter))

	_, cmd := w.Update(planCreatedMsg{err: context.DeadlineExceeded})
	if cmd != nil {
		t.Error("error should not produce a transition command")
	}
	if w.step != stepError {
		t.Errorf("expected error step, got %d", w.step)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called on error, got %d", *callCount)
	}

	// Retry fires another create command.
	_, retryCmd := w.Update(specialKey(tea.KeyEnter))
	if retryCmd == nil {
		t.Fatal("expected retry command")
	}
}

func TestEscReturnsToSkillStep(t *testing.T) {
	w, _, _ := newTestWelcome()
	typeSkill(w, "Go")
	w.Update(specialKey(tea.KeyEnter))

	w.Update(specialKey(tea.KeyEscape))
	if w.step != stepSkill {
		t.Errorf("expected skill step after esc, got %d", w.step)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestViewShowsPrompt(t *testing.T) {
	w, _, _ := newTestWelcome()
	view := w.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	if !contains(view, "What do you want to learn?") {
		t.Error("skill prompt should be visible on the first step")
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
