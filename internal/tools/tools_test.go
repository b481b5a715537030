package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/resources"
)

type fakeProfiles struct {
	recorded []string
}

func (f *fakeProfiles) Summary(ctx context.Context, userID string) (*profile.Summary, error) {
	if userID == "missing" {
		return nil, errors.New("storage unavailable")
	}
	return &profile.Summary{
		UserID:        userID,
		TopicsStudied: 2,
		TotalQuizzes:  5,
		Strongest:     "fractions",
		Weakest:       "algebra",
	}, nil
}

func (f *fakeProfiles) TopicMastery(ctx context.Context, userID, topic string) (*profile.TopicMastery, error) {
	return &profile.TopicMastery{Topic: topic, Score: 0.42, Attempts: 3}, nil
}

func (f *fakeProfiles) RecordQuizAttempt(ctx context.Context, userID, topic string, numQuestions, numCorrect int) (*profile.TopicMastery, error) {
	f.recorded = append(f.recorded, topic)
	return &profile.TopicMastery{Topic: topic, Score: 0.18, Attempts: 1}, nil
}

type fakeSearcher struct{}

func (fakeSearcher) Search(ctx context.Context, query string, max int) ([]resources.Resource, error) {
	return []resources.Resource{{Title: "A Tour of Go", URL: "https://go.dev/tour/", Source: "curated"}}, nil
}

func newTestRegistry(t *testing.T) (*Registry, *fakeProfiles) {
	t.Helper()
	gen, err := quizgen.NewStatic()
	if err != nil {
		t.Fatalf("static generator: %v", err)
	}
	profiles := &fakeProfiles{}
	r, err := NewDefault(profiles, gen, fakeSearcher{})
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	return r, profiles
}

func TestNewDefault_RegistersAllTools(t *testing.T) {
	r, _ := newTestRegistry(t)

	want := []string{"get_learner_profile", "record_quiz_result", "generate_quiz", "search_resources"}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("tool names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tool %d = %q, want %q", i, got[i], want[i])
		}
	}

	defs := r.Defs()
	for _, d := range defs {
		if d.Description == "" {
			t.Errorf("tool %q has no description", d.Name)
		}
		if d.InputSchema == nil {
			t.Errorf("tool %q has no input schema", d.Name)
		}
	}
}

func TestExecute_UnknownTool(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Execute(context.Background(), "launch_rocket", json.RawMessage(`{}`))
	if err == nil || !strings.Contains(err.Error(), "unknown tool") {
		t.Fatalf("expected unknown tool error, got %v", err)
	}
}

func TestExecute_SchemaRejectsBadInput(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		tool  string
		input string
	}{
		{"missing required field", "get_learner_profile", `{}`},
		{"empty user id", "get_learner_profile", `{"user_id": ""}`},
		{"wrong type", "record_quiz_result", `{"user_id":"u","topic":"t","num_questions":"five","num_correct":3}`},
		{"negative correct count", "record_quiz_result", `{"user_id":"u","topic":"t","num_questions":5,"num_correct":-1}`},
		{"unexpected property", "search_resources", `{"query":"go","limit":3}`},
		{"bad difficulty", "generate_quiz", `{"topic":"go","difficulty":"impossible"}`},
		{"not json", "generate_quiz", `{"topic":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Execute(ctx, tt.tool, json.RawMessage(tt.input)); err == nil {
				t.Errorf("input %s should have been rejected", tt.input)
			}
		})
	}
}

func TestGetLearnerProfile(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	out, err := r.Execute(ctx, "get_learner_profile", json.RawMessage(`{"user_id":"alice"}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	var summary profile.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("output is not a summary: %v", err)
	}
	if summary.UserID != "alice" || summary.TotalQuizzes != 5 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	out, err = r.Execute(ctx, "get_learner_profile", json.RawMessage(`{"user_id":"alice","topic":"algebra"}`))
	if err != nil {
		t.Fatalf("Execute with topic: %v", err)
	}
	var mastery profile.TopicMastery
	if err := json.Unmarshal([]byte(out), &mastery); err != nil {
		t.Fatalf("output is not a mastery: %v", err)
	}
	if mastery.Topic != "algebra" || mastery.Score != 0.42 {
		t.Errorf("unexpected mastery: %+v", mastery)
	}
}

func TestGetLearnerProfile_ServiceError(t *testing.T) {
	r, _ := newTestRegistry(t)

	if _, err := r.Execute(context.Background(), "get_learner_profile", json.RawMessage(`{"user_id":"missing"}`)); err == nil {
		t.Fatal("expected service error to propagate")
	}
}

func TestRecordQuizResult(t *testing.T) {
	r, profiles := newTestRegistry(t)

	out, err := r.Execute(context.Background(), "record_quiz_result",
		json.RawMessage(`{"user_id":"u1","topic":"fractions","num_questions":10,"num_correct":6}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var got struct {
		Topic    string  `json:"topic"`
		Score    float64 `json:"score"`
		Attempts int     `json:"attempts"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad output: %v", err)
	}
	if got.Topic != "fractions" || got.Score != 0.18 || got.Attempts != 1 {
		t.Errorf("unexpected output: %+v", got)
	}
	if len(profiles.recorded) != 1 || profiles.recorded[0] != "fractions" {
		t.Errorf("attempt not recorded: %v", profiles.recorded)
	}
}

func TestGenerateQuiz(t *testing.T) {
	r, _ := newTestRegistry(t)

	out, err := r.Execute(context.Background(), "generate_quiz",
		json.RawMessage(`{"topic":"fractions","num_questions":3}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var q quizgen.Quiz
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("output is not a quiz: %v", err)
	}
	if len(q.Questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(q.Questions))
	}
	for i, question := range q.Questions {
		if len(question.Options) != 4 {
			t.Errorf("question %d has %d options", i, len(question.Options))
		}
		if question.Answer < 0 || question.Answer > 3 {
			t.Errorf("question %d answer out of range: %d", i, question.Answer)
		}
	}
}

func TestSearchResources(t *testing.T) {
	r, _ := newTestRegistry(t)

	out, err := r.Execute(context.Background(), "search_resources", json.RawMessage(`{"query":"go basics"}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var got struct {
		Query     string               `json:"query"`
		Resources []resources.Resource `json:"resources"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad output: %v", err)
	}
	if got.Query != "go basics" || len(got.Resources) != 1 {
		t.Errorf("unexpected output: %+v", got)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	r := NewRegistry()
	def := llm.ToolDef{
		Name:        "noop",
		InputSchema: map[string]any{"type": "object"},
	}
	h := func(ctx context.Context, input json.RawMessage) (string, error) { return "", nil }

	if err := r.Register(def, h); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(def, h); err == nil {
		t.Fatal("duplicate registration should fail")
	}
}

func TestExecute_EmptyInputIsEmptyObject(t *testing.T) {
	r := NewRegistry()
	def := llm.ToolDef{
		Name:        "noop",
		InputSchema: map[string]any{"type": "object"},
	}
	err := r.Register(def, func(ctx context.Context, input json.RawMessage) (string, error) {
		return "ran", nil
	})
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Execute(context.Background(), "noop", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "ran" {
		t.Errorf("out = %q", out)
	}
}
