package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TopicMastery holds the running mastery estimate for one (learner, topic)
// pair. The score moves only through the profile service's smoothing rule
// and always stays within [0, 1].
type TopicMastery struct {
	ent.Schema
}

func (TopicMastery) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty().
			Immutable(),
		field.String("topic").
			NotEmpty().
			Immutable(),
		field.Float("score").
			Default(0).
			Comment("Mastery estimate in [0, 1]"),
		field.Int("attempts").
			Default(0).
			Comment("Quiz attempts contributing to the score"),
		field.Time("updated_at").
			Default(time.Now),
	}
}

func (TopicMastery) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "topic").Unique(),
	}
}
