package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// PlanModule is one step of a learning plan, stored as JSON on the plan row.
type PlanModule struct {
	Name        string  `json:"name"`
	Topic       string  `json:"topic"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	QuizScore   float64 `json:"quiz_score"`
}

// LearningPlan is a learner's module ladder for one skill. Modules unlock
// strictly in order; the full ladder is stored as a JSON column because it
// is always read and written as a unit.
type LearningPlan struct {
	ent.Schema
}

func (LearningPlan) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty().
			Immutable(),
		field.String("skill").
			NotEmpty().
			Immutable(),
		field.String("level").
			NotEmpty().
			Immutable().
			Comment("beginner, intermediate, or expert"),
		field.JSON("modules", []PlanModule{}),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now),
	}
}

func (LearningPlan) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}
