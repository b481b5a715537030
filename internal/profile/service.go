package profile

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mentora/mentora/internal/store"
)

// Service is the knowledge profile store. It owns all learner state and
// exposes the read/update operations consumed by the tutor agent, the TUI,
// and the serving surfaces. Writes for one user are serialized; different
// users never contend.
type Service struct {
	repo store.ProfileRepo

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a profile service over the given repository.
func NewService(repo store.ProfileRepo) *Service {
	return &Service{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

// userLock returns the write lock for userID, creating it on first use.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Get returns the profile for userID, creating and persisting an empty one
// on first reference.
func (s *Service) Get(ctx context.Context, userID string) (*LearnerProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, &ErrInvalidAttempt{Field: "user_id", Reason: "must not be empty"}
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.repo.Profile(ctx, userID)
	if err != nil {
		return nil, &ErrStorageUnavailable{Op: "get profile", Err: err}
	}
	if record == nil {
		record, err = s.repo.CreateProfile(ctx, userID)
		if err != nil {
			return nil, &ErrStorageUnavailable{Op: "create profile", Err: err}
		}
	}

	return s.assemble(ctx, record)
}

// RecordQuizAttempt validates and commits one quiz attempt: the attempt is
// appended to history, the topic's mastery score moves by the smoothing
// rule, and the attempt count increments, all in a single transaction.
// The updated mastery is returned so callers can report progress.
func (s *Service) RecordQuizAttempt(ctx context.Context, userID, topic string, numQuestions, numCorrect int) (*TopicMastery, error) {
	userID = strings.TrimSpace(userID)
	topic = strings.TrimSpace(topic)

	switch {
	case userID == "":
		return nil, &ErrInvalidAttempt{Field: "user_id", Reason: "must not be empty"}
	case topic == "":
		return nil, &ErrInvalidAttempt{Field: "topic", Reason: "must not be empty"}
	case numQuestions <= 0:
		return nil, &ErrInvalidAttempt{Field: "num_questions", Reason: "must be positive"}
	case numCorrect < 0:
		return nil, &ErrInvalidAttempt{Field: "num_correct", Reason: "must not be negative"}
	case numCorrect > numQuestions:
		return nil, &ErrInvalidAttempt{Field: "num_correct", Reason: "must not exceed num_questions"}
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.repo.Mastery(ctx, userID, topic)
	if err != nil {
		return nil, &ErrStorageUnavailable{Op: "read mastery", Err: err}
	}
	score := 0.0
	if current != nil {
		score = current.Score
	}

	accuracy := float64(numCorrect) / float64(numQuestions)
	updated, err := s.repo.ApplyAttempt(ctx, store.ApplyAttemptParams{
		UserID:       userID,
		Topic:        topic,
		NumQuestions: numQuestions,
		NumCorrect:   numCorrect,
		Score:        UpdateScore(score, accuracy),
		Now:          time.Now().UTC(),
	})
	if err != nil {
		return nil, &ErrStorageUnavailable{Op: "record attempt", Err: err}
	}

	return masteryFromRecord(updated), nil
}

// TopicMastery returns the mastery record for (userID, topic). Topics never
// attempted yield a zero-value record; nothing is created or persisted.
func (s *Service) TopicMastery(ctx context.Context, userID, topic string) (*TopicMastery, error) {
	userID = strings.TrimSpace(userID)
	topic = strings.TrimSpace(topic)
	if userID == "" {
		return nil, &ErrInvalidAttempt{Field: "user_id", Reason: "must not be empty"}
	}
	if topic == "" {
		return nil, &ErrInvalidAttempt{Field: "topic", Reason: "must not be empty"}
	}

	record, err := s.repo.Mastery(ctx, userID, topic)
	if err != nil {
		return nil, &ErrStorageUnavailable{Op: "read mastery", Err: err}
	}
	if record == nil {
		return &TopicMastery{Topic: topic}, nil
	}
	return masteryFromRecord(record), nil
}

// Summary returns a condensed view of the learner's progress, creating the
// profile on first reference like Get.
func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		UserID:        p.UserID,
		TopicsStudied: len(p.Topics),
		TotalQuizzes:  len(p.QuizHistory),
		Topics:        make([]TopicMastery, 0, len(p.Topics)),
	}

	best, worst := -1.0, 2.0
	for _, m := range p.Topics {
		sum.Topics = append(sum.Topics, m)
		if m.Score > best {
			best = m.Score
			sum.Strongest = m.Topic
		}
		if m.Score < worst {
			worst = m.Score
			sum.Weakest = m.Topic
		}
	}
	sortMasteries(sum.Topics)
	return sum, nil
}

// assemble builds the full profile snapshot from its rows. Callers hold the
// user lock, so the three reads observe a consistent state.
func (s *Service) assemble(ctx context.Context, record *store.ProfileRecord) (*LearnerProfile, error) {
	masteries, err := s.repo.Masteries(ctx, record.UserID)
	if err != nil {
		return nil, &ErrStorageUnavailable{Op: "read masteries", Err: err}
	}
	attempts, err := s.repo.Attempts(ctx, record.UserID, 0)
	if err != nil {
		return nil, &ErrStorageUnavailable{Op: "read history", Err: err}
	}

	p := &LearnerProfile{
		UserID:      record.UserID,
		Topics:      make(map[string]TopicMastery, len(masteries)),
		QuizHistory: make([]QuizAttempt, 0, len(attempts)),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
	for _, m := range masteries {
		p.Topics[m.Topic] = *masteryFromRecord(&m)
	}
	for _, a := range attempts {
		p.QuizHistory = append(p.QuizHistory, QuizAttempt{
			Topic:        a.Topic,
			NumQuestions: a.NumQuestions,
			NumCorrect:   a.NumCorrect,
			Timestamp:    a.Timestamp,
		})
	}
	return p, nil
}

func masteryFromRecord(m *store.MasteryRecord) *TopicMastery {
	return &TopicMastery{
		Topic:     m.Topic,
		Score:     m.Score,
		Attempts:  m.Attempts,
		UpdatedAt: m.UpdatedAt,
	}
}

func sortMasteries(ms []TopicMastery) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].Topic < ms[j].Topic })
}
