package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/resources"
)

type fakeProfiles struct {
	attempts int
}

func (f *fakeProfiles) Summary(ctx context.Context, userID string) (*profile.Summary, error) {
	return &profile.Summary{UserID: userID, TopicsStudied: 1, TotalQuizzes: 2}, nil
}

func (f *fakeProfiles) TopicMastery(ctx context.Context, userID, topic string) (*profile.TopicMastery, error) {
	return &profile.TopicMastery{Topic: topic, Score: 0.42, Attempts: 3, UpdatedAt: time.Now()}, nil
}

func (f *fakeProfiles) RecordQuizAttempt(ctx context.Context, userID, topic string, numQuestions, numCorrect int) (*profile.TopicMastery, error) {
	if numCorrect > numQuestions {
		return nil, &profile.ErrInvalidAttempt{Field: "num_correct", Reason: "exceeds num_questions"}
	}
	f.attempts++
	return &profile.TopicMastery{Topic: topic, Score: 0.18, Attempts: f.attempts}, nil
}

type fakeSearcher struct{}

func (fakeSearcher) Search(ctx context.Context, query string, max int) ([]resources.Resource, error) {
	return []resources.Resource{{Title: "A Tour of Go", URL: "https://go.dev/tour/", Source: "curated"}}, nil
}

func setupTestServer(t *testing.T) (*Server, *fakeProfiles) {
	t.Helper()

	gen, err := quizgen.NewStatic()
	if err != nil {
		t.Fatalf("create static generator: %v", err)
	}
	profiles := &fakeProfiles{}
	srv := NewServer(Config{
		Profiles: profiles,
		Quizzes:  gen,
		Search:   fakeSearcher{},
	})
	return srv, profiles
}

func TestNewServer(t *testing.T) {
	srv, _ := setupTestServer(t)

	if srv == nil {
		t.Fatal("expected non-nil server")
	}
	if srv.mcpServer == nil {
		t.Fatal("expected non-nil MCP server")
	}
	if srv.profiles == nil || srv.quizzes == nil || srv.search == nil {
		t.Fatal("expected all services wired")
	}
}

func TestHandleGetProfile_Summary(t *testing.T) {
	srv, _ := setupTestServer(t)

	out, err := srv.handleGetProfile(context.Background(), ProfileInput{UserID: "alice"})
	if err != nil {
		t.Fatalf("handleGetProfile: %v", err)
	}
	if out.Summary == nil || out.TopicMastery != nil {
		t.Fatalf("expected summary branch, got %+v", out)
	}
	if out.Summary.UserID != "alice" {
		t.Errorf("summary user = %q", out.Summary.UserID)
	}
}

func TestHandleGetProfile_Topic(t *testing.T) {
	srv, _ := setupTestServer(t)

	out, err := srv.handleGetProfile(context.Background(), ProfileInput{UserID: "alice", Topic: "fractions"})
	if err != nil {
		t.Fatalf("handleGetProfile: %v", err)
	}
	if out.TopicMastery == nil || out.Summary != nil {
		t.Fatalf("expected topic branch, got %+v", out)
	}
	if out.TopicMastery.Topic != "fractions" || out.TopicMastery.Score != 0.42 {
		t.Errorf("mastery = %+v", out.TopicMastery)
	}
}

func TestHandleGetProfile_EmptyUser(t *testing.T) {
	srv, _ := setupTestServer(t)

	if _, err := srv.handleGetProfile(context.Background(), ProfileInput{UserID: "  "}); err == nil {
		t.Fatal("expected error for blank user_id")
	}
}

func TestHandleGenerateQuiz(t *testing.T) {
	srv, _ := setupTestServer(t)

	quiz, err := srv.handleGenerateQuiz(context.Background(), QuizInput{Topic: "fractions"})
	if err != nil {
		t.Fatalf("handleGenerateQuiz: %v", err)
	}
	if quiz.Topic != "fractions" {
		t.Errorf("topic = %q", quiz.Topic)
	}
	if quiz.Difficulty != quizgen.DifficultyBeginner {
		t.Errorf("difficulty = %q, want beginner default", quiz.Difficulty)
	}
	if len(quiz.Questions) == 0 {
		t.Error("expected questions")
	}
}

func TestHandleGenerateQuiz_UnknownTopic(t *testing.T) {
	srv, _ := setupTestServer(t)

	_, err := srv.handleGenerateQuiz(context.Background(), QuizInput{Topic: "underwater basket weaving"})
	if err == nil {
		t.Fatal("expected error for topic outside the bank")
	}
	if !strings.Contains(err.Error(), "generate quiz") {
		t.Errorf("error = %v, want wrapped generate error", err)
	}
}

func TestHandleRecordResult(t *testing.T) {
	srv, profiles := setupTestServer(t)

	out, err := srv.handleRecordResult(context.Background(), RecordInput{
		UserID: "u1", Topic: "fractions", NumQuestions: 10, NumCorrect: 6,
	})
	if err != nil {
		t.Fatalf("handleRecordResult: %v", err)
	}
	if out.Topic != "fractions" || out.Score != 0.18 || out.Attempts != 1 {
		t.Errorf("output = %+v", out)
	}
	if profiles.attempts != 1 {
		t.Errorf("service attempts = %d", profiles.attempts)
	}
}

func TestHandleRecordResult_Invalid(t *testing.T) {
	srv, _ := setupTestServer(t)

	_, err := srv.handleRecordResult(context.Background(), RecordInput{
		UserID: "u1", Topic: "fractions", NumQuestions: 5, NumCorrect: 7,
	})
	if !profile.IsInvalidAttempt(err) {
		t.Fatalf("err = %v, want invalid attempt", err)
	}
}

func TestHandleSearchResources(t *testing.T) {
	srv, _ := setupTestServer(t)

	out, err := srv.handleSearchResources(context.Background(), SearchInput{Query: "go basics"})
	if err != nil {
		t.Fatalf("handleSearchResources: %v", err)
	}
	if out.Query != "go basics" || len(out.Resources) != 1 {
		t.Errorf("output = %+v", out)
	}
	if out.Resources[0].URL != "https://go.dev/tour/" {
		t.Errorf("resource = %+v", out.Resources[0])
	}
}

func TestHandleSearchResources_EmptyQuery(t *testing.T) {
	srv, _ := setupTestServer(t)

	if _, err := srv.handleSearchResources(context.Background(), SearchInput{}); err == nil {
		t.Fatal("expected error for empty query")
	}
}
