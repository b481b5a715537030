package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizAttempt is one append-only quiz history entry. Row IDs give insertion
// order; per-user writes are serialized by the profile service, so insertion
// order is chronological order.
type QuizAttempt struct {
	ent.Schema
}

func (QuizAttempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty().
			Immutable(),
		field.String("topic").
			NotEmpty().
			Immutable(),
		field.Int("num_questions").
			Positive(),
		field.Int("num_correct").
			NonNegative().
			Comment("Validated against num_questions before insert"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable(),
	}
}

func (QuizAttempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
		index.Fields("user_id", "topic"),
	}
}
