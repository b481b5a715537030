package progress

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/store"
)

// fakeProfileRepo is an in-memory store.ProfileRepo seeded directly by tests.
type fakeProfileRepo struct {
	profiles map[string]*store.ProfileRecord
	mastery  map[string]map[string]*store.MasteryRecord
	attempts map[string][]store.AttemptRecord
	err      error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: make(map[string]*store.ProfileRecord),
		mastery:  make(map[string]map[string]*store.MasteryRecord),
		attempts: make(map[string][]store.AttemptRecord),
	}
}

func (f *fakeProfileRepo) Profile(_ context.Context, userID string) (*store.ProfileRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[userID], nil
}

func (f *fakeProfileRepo) CreateProfile(_ context.Context, userID string) (*store.ProfileRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec := &store.ProfileRecord{ID: len(f.profiles) + 1, UserID: userID}
	f.profiles[userID] = rec
	return rec, nil
}

func (f *fakeProfileRepo) Mastery(_ context.Context, userID, topic string) (*store.MasteryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.mastery[userID][topic], nil
}

func (f *fakeProfileRepo) Masteries(_ context.Context, userID string) ([]store.MasteryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]store.MasteryRecord, 0, len(f.mastery[userID]))
	for _, m := range f.mastery[userID] {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeProfileRepo) Attempts(_ context.Context, userID string, limit int) ([]store.AttemptRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	all := f.attempts[userID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (f *fakeProfileRepo) ApplyAttempt(_ context.Context, params store.ApplyAttemptParams) (*store.MasteryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.profiles[params.UserID] == nil {
		f.profiles[params.UserID] = &store.ProfileRecord{ID: len(f.profiles) + 1, UserID: params.UserID}
	}
	byTopic := f.mastery[params.UserID]
	if byTopic == nil {
		byTopic = make(map[string]*store.MasteryRecord)
		f.mastery[params.UserID] = byTopic
	}
	m := byTopic[params.Topic]
	if m == nil {
		m = &store.MasteryRecord{Topic: params.Topic}
		byTopic[params.Topic] = m
	}
	m.Score = params.Score
	m.Attempts++
	m.UpdatedAt = params.Now
	f.attempts[params.UserID] = append(f.attempts[params.UserID], store.AttemptRecord{
		Topic:        params.Topic,
		NumQuestions: params.NumQuestions,
		NumCorrect:   params.NumCorrect,
		Timestamp:    params.Now,
	})
	return m, nil
}

func (f *fakeProfileRepo) seed(userID string) {
	f.profiles[userID] = &store.ProfileRecord{ID: 1, UserID: userID}
	f.mastery[userID] = map[string]*store.MasteryRecord{
		"algebra": {Topic: "algebra", Score: 0.72, Attempts: 4, UpdatedAt: time.Now()},
		"go basics": {
			Topic: "go basics", Score: 0.3, Attempts: 1, UpdatedAt: time.Now(),
		},
	}
	f.attempts[userID] = []store.AttemptRecord{
		{Topic: "algebra", NumQuestions: 5, NumCorrect: 2, Timestamp: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		{Topic: "algebra", NumQuestions: 5, NumCorrect: 4, Timestamp: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)},
		{Topic: "go basics", NumQuestions: 4, NumCorrect: 1, Timestamp: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)},
	}
}

func loadProgress(t *testing.T, s *ProgressScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init returned nil cmd")
	}
	msg := cmd()
	if _, ok := msg.(profileLoadedMsg); !ok {
		t.Fatalf("Init cmd returned %T, want profileLoadedMsg", msg)
	}
	s.Update(msg)
}

func TestLoadsProfileOnInit(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.seed("alice")
	s := New(profile.NewService(repo), "alice")

	loadProgress(t, s)

	if !s.loaded {
		t.Error("screen not marked loaded")
	}
	if s.prof == nil {
		t.Fatal("profile not stored")
	}
	if len(s.prof.Topics) != 2 {
		t.Errorf("got %d topics, want 2", len(s.prof.Topics))
	}
	if len(s.prof.QuizHistory) != 3 {
		t.Errorf("got %d history entries, want 3", len(s.prof.QuizHistory))
	}
}

func TestEmptyProfileShowsHint(t *testing.T) {
	repo := newFakeProfileRepo()
	s := New(profile.NewService(repo), "newbie")

	loadProgress(t, s)

	view := s.View(100, 30)
	if !strings.Contains(view, "No quizzes yet") {
		t.Errorf("empty view missing hint:\n%s", view)
	}
}

func TestLoadErrorShown(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.err = context.DeadlineExceeded
	s := New(profile.NewService(repo), "alice")

	loadProgress(t, s)

	view := s.View(100, 30)
	if !strings.Contains(view, "Could not load progress") {
		t.Errorf("error view missing message:\n%s", view)
	}
}

func TestViewShowsMasteryAndHistory(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.seed("alice")
	s := New(profile.NewService(repo), "alice")

	loadProgress(t, s)
	view := s.View(100, 40)

	for _, want := range []string{
		"2 topics studied",
		"3 quizzes taken",
		"Mastery",
		"algebra",
		"go basics",
		"Recent quizzes",
		"4/5 (80%)",
		"1/4 (25%)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.seed("alice")
	s := New(profile.NewService(repo), "alice")

	loadProgress(t, s)
	view := s.View(100, 40)

	newest := strings.Index(view, "1/4 (25%)")
	oldest := strings.Index(view, "2/5 (40%)")
	if newest == -1 || oldest == -1 {
		t.Fatalf("history lines missing:\n%s", view)
	}
	if newest > oldest {
		t.Error("newest attempt rendered after oldest")
	}
}

func TestTitle(t *testing.T) {
	s := New(nil, "alice")
	if s.Title() != "My Progress" {
		t.Errorf("got title %q", s.Title())
	}
}
