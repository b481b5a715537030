package store

import (
	"context"
	"fmt"
	"time"

	"github.com/mentora/mentora/ent"
	"github.com/mentora/mentora/ent/learningplan"
	entschema "github.com/mentora/mentora/ent/schema"
)

// planRepo implements PlanRepo using the ent client.
type planRepo struct {
	client *ent.Client
}

func (r *planRepo) ActivePlan(ctx context.Context, userID string) (*PlanRecord, error) {
	p, err := r.client.LearningPlan.Query().
		Where(learningplan.UserID(userID)).
		Order(ent.Desc(learningplan.FieldCreatedAt)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query plan: %w", err)
	}
	return entPlanToRecord(p), nil
}

func (r *planRepo) CreatePlan(ctx context.Context, userID, skill, level string, modules []entschema.PlanModule) (*PlanRecord, error) {
	p, err := r.client.LearningPlan.Create().
		SetUserID(userID).
		SetSkill(skill).
		SetLevel(level).
		SetModules(modules).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return entPlanToRecord(p), nil
}

func (r *planRepo) UpdateModules(ctx context.Context, planID int, modules []entschema.PlanModule) error {
	_, err := r.client.LearningPlan.UpdateOneID(planID).
		SetModules(modules).
		SetUpdatedAt(time.Now()).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update plan modules: %w", err)
	}
	return nil
}

func entPlanToRecord(p *ent.LearningPlan) *PlanRecord {
	return &PlanRecord{
		ID:        p.ID,
		UserID:    p.UserID,
		Skill:     p.Skill,
		Level:     p.Level,
		Modules:   p.Modules,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
