package store

import (
	"context"
	"fmt"

	"github.com/mentora/mentora/ent"
	"github.com/mentora/mentora/ent/learnerprofile"
	"github.com/mentora/mentora/ent/quizattempt"
	"github.com/mentora/mentora/ent/topicmastery"
)

// profileRepo implements ProfileRepo using the ent client.
type profileRepo struct {
	client *ent.Client
}

func (r *profileRepo) Profile(ctx context.Context, userID string) (*ProfileRecord, error) {
	p, err := r.client.LearnerProfile.Query().
		Where(learnerprofile.UserID(userID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return entProfileToRecord(p), nil
}

func (r *profileRepo) CreateProfile(ctx context.Context, userID string) (*ProfileRecord, error) {
	p, err := r.client.LearnerProfile.Create().
		SetUserID(userID).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return entProfileToRecord(p), nil
}

func (r *profileRepo) Mastery(ctx context.Context, userID, topic string) (*MasteryRecord, error) {
	m, err := r.client.TopicMastery.Query().
		Where(
			topicmastery.UserID(userID),
			topicmastery.Topic(topic),
		).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	return entMasteryToRecord(m), nil
}

func (r *profileRepo) Masteries(ctx context.Context, userID string) ([]MasteryRecord, error) {
	rows, err := r.client.TopicMastery.Query().
		Where(topicmastery.UserID(userID)).
		Order(ent.Asc(topicmastery.FieldTopic)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query masteries: %w", err)
	}

	records := make([]MasteryRecord, 0, len(rows))
	for _, m := range rows {
		records = append(records, *entMasteryToRecord(m))
	}
	return records, nil
}

func (r *profileRepo) Attempts(ctx context.Context, userID string, limit int) ([]AttemptRecord, error) {
	q := r.client.QuizAttempt.Query().
		Where(quizattempt.UserID(userID)).
		Order(ent.Asc(quizattempt.FieldID))
	if limit > 0 {
		q = q.Limit(limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	records := make([]AttemptRecord, 0, len(rows))
	for _, a := range rows {
		records = append(records, AttemptRecord{
			Topic:        a.Topic,
			NumQuestions: a.NumQuestions,
			NumCorrect:   a.NumCorrect,
			Timestamp:    a.Timestamp,
		})
	}
	return records, nil
}

func (r *profileRepo) ApplyAttempt(ctx context.Context, params ApplyAttemptParams) (*MasteryRecord, error) {
	tx, err := r.client.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	record, err := applyAttemptTx(ctx, tx, params)
	if err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return nil, fmt.Errorf("%w: rollback: %v", err, rerr)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit attempt: %w", err)
	}
	return record, nil
}

// applyAttemptTx performs the three writes of one attempt inside tx.
func applyAttemptTx(ctx context.Context, tx *ent.Tx, params ApplyAttemptParams) (*MasteryRecord, error) {
	profile, err := tx.LearnerProfile.Query().
		Where(learnerprofile.UserID(params.UserID)).
		Only(ctx)
	switch {
	case ent.IsNotFound(err):
		profile, err = tx.LearnerProfile.Create().
			SetUserID(params.UserID).
			SetCreatedAt(params.Now).
			SetUpdatedAt(params.Now).
			Save(ctx)
		if err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("query profile: %w", err)
	default:
		_, err = tx.LearnerProfile.UpdateOne(profile).
			SetUpdatedAt(params.Now).
			Save(ctx)
		if err != nil {
			return nil, fmt.Errorf("touch profile: %w", err)
		}
	}

	var mastery *ent.TopicMastery
	existing, err := tx.TopicMastery.Query().
		Where(
			topicmastery.UserID(params.UserID),
			topicmastery.Topic(params.Topic),
		).
		Only(ctx)
	switch {
	case ent.IsNotFound(err):
		mastery, err = tx.TopicMastery.Create().
			SetUserID(params.UserID).
			SetTopic(params.Topic).
			SetScore(params.Score).
			SetAttempts(1).
			SetUpdatedAt(params.Now).
			Save(ctx)
		if err != nil {
			return nil, fmt.Errorf("create mastery: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("query mastery: %w", err)
	default:
		mastery, err = tx.TopicMastery.UpdateOne(existing).
			SetScore(params.Score).
			AddAttempts(1).
			SetUpdatedAt(params.Now).
			Save(ctx)
		if err != nil {
			return nil, fmt.Errorf("update mastery: %w", err)
		}
	}

	_, err = tx.QuizAttempt.Create().
		SetUserID(params.UserID).
		SetTopic(params.Topic).
		SetNumQuestions(params.NumQuestions).
		SetNumCorrect(params.NumCorrect).
		SetTimestamp(params.Now).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("append attempt: %w", err)
	}

	return entMasteryToRecord(mastery), nil
}

func entProfileToRecord(p *ent.LearnerProfile) *ProfileRecord {
	return &ProfileRecord{
		ID:        p.ID,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func entMasteryToRecord(m *ent.TopicMastery) *MasteryRecord {
	return &MasteryRecord{
		Topic:     m.Topic,
		Score:     m.Score,
		Attempts:  m.Attempts,
		UpdatedAt: m.UpdatedAt,
	}
}
