package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// LearnerProfile is the root record for one learner, keyed by an opaque
// user identifier. Topic mastery and quiz history rows reference it by
// user_id rather than edges so each table stays independently queryable.
type LearnerProfile struct {
	ent.Schema
}

func (LearnerProfile) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			Unique().
			NotEmpty().
			Immutable().
			Comment("Opaque unique learner key"),
		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Comment("When the profile was first created"),
		field.Time("updated_at").
			Default(time.Now).
			Comment("Bumped on every mutation of the learner's state"),
	}
}
