package store

import (
	"context"
	"fmt"

	"github.com/mentora/mentora/ent"
	"github.com/mentora/mentora/ent/toolcallevent"
)

func (r *eventRepo) AppendToolCall(ctx context.Context, data ToolCallEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.ToolCallEvent.Create().
		SetSequence(seqNum).
		SetTool(data.Tool).
		SetTurnID(data.TurnID).
		SetInput(data.Input).
		SetOutput(data.Output).
		SetDurationMs(data.DurationMs).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage)

	if data.UserID != "" {
		builder = builder.SetUserID(data.UserID)
	}

	_, err = builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save tool call event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryToolCalls(ctx context.Context, opts QueryOpts) ([]ToolCallEventRecord, error) {
	q := r.client.ToolCallEvent.Query().
		Order(ent.Desc(toolcallevent.FieldSequence))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query tool call events: %w", err)
	}

	records := make([]ToolCallEventRecord, 0, len(rows))
	for _, e := range rows {
		records = append(records, ToolCallEventRecord{
			ID:        e.ID,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			ToolCallEventData: ToolCallEventData{
				Tool:         e.Tool,
				TurnID:       e.TurnID,
				UserID:       e.UserID,
				Input:        e.Input,
				Output:       e.Output,
				DurationMs:   e.DurationMs,
				Success:      e.Success,
				ErrorMessage: e.ErrorMessage,
			},
		})
	}
	return records, nil
}
