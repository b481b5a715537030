package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ToolCallEvent records one tool execution requested by the tutor agent.
// Together with LLMRequestEvent rows it reconstructs the full trace of a
// chat turn.
type ToolCallEvent struct {
	ent.Schema
}

func (ToolCallEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ToolCallEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("tool").
			NotEmpty().
			Comment("Registered tool name"),
		field.String("turn_id").
			Default("").
			Comment("Groups the tool calls of one chat turn"),
		field.String("user_id").
			Default("").
			Comment("Learner the call acted on, when known"),
		field.String("input").
			Default("").
			Comment("Tool input JSON, truncated for storage"),
		field.String("output").
			Default("").
			Comment("Tool output, truncated for storage"),
		field.Int64("duration_ms").
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
	}
}

func (ToolCallEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("tool"),
		index.Fields("turn_id"),
		index.Fields("success"),
	}
}
