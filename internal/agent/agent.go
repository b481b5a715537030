// Package agent drives the tutor: a bounded tool-calling loop over the
// provider-agnostic LLM layer. The agent owns no conversation state;
// callers pass history in and carry the updated history out.
package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/store"
	"github.com/mentora/mentora/internal/tools"
)

// DefaultMaxTurns bounds the tool loop. A turn is one Generate call;
// the model gets this many chances to finish with a text reply.
const DefaultMaxTurns = 6

const defaultMaxTokens = 2048

// ErrTurnsExhausted reports that the model kept calling tools until the
// turn budget ran out.
var ErrTurnsExhausted = errors.New("tool loop exhausted its turn budget")

// Agent is the tutor. Safe for concurrent use.
type Agent struct {
	provider llm.Provider
	registry *tools.Registry
	events   store.EventRepo
	maxTurns int
}

// Option configures an Agent.
type Option func(*Agent)

// WithEventLog persists every tool execution to the event log.
func WithEventLog(events store.EventRepo) Option {
	return func(a *Agent) { a.events = events }
}

// WithMaxTurns overrides the tool loop turn budget.
func WithMaxTurns(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxTurns = n
		}
	}
}

// New creates a tutor agent over the given provider and tools.
func New(provider llm.Provider, registry *tools.Registry, opts ...Option) *Agent {
	a := &Agent{
		provider: provider,
		registry: registry,
		maxTurns: DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ChatInput is one user turn.
type ChatInput struct {
	// UserID identifies the learner; injected into the system prompt
	// so the model can pass it to tools.
	UserID string

	// Skill and Level personalize the system prompt. Usually taken
	// from the learner's plan; both may be empty.
	Skill string
	Level string

	// Message is the user's new message.
	Message string

	// History holds the prior conversation, oldest first. The caller
	// owns it; Chat does not mutate it.
	History []llm.Message
}

// ChatResult is the tutor's reply for one turn.
type ChatResult struct {
	// Reply is the assistant's final text.
	Reply string

	// Trace lists the tool executions this turn, in order.
	Trace []TraceEvent

	// History is the full updated conversation including this turn's
	// user message, intermediate tool traffic, and the reply.
	History []llm.Message
}

// Chat runs one conversation turn. The model may call tools; each batch
// is executed (in parallel when more than one), results are appended,
// and the loop continues until the model answers in text or the turn
// budget is exhausted.
func (a *Agent) Chat(ctx context.Context, input ChatInput) (*ChatResult, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("user id must not be empty")
	}
	if input.Message == "" {
		return nil, fmt.Errorf("message must not be empty")
	}

	ctx = llm.WithPurpose(ctx, "tutor-chat")

	msgs := make([]llm.Message, 0, len(input.History)+4)
	msgs = append(msgs, input.History...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: input.Message})

	system := buildSystemPrompt(input.UserID, input.Skill, input.Level)
	turnID := uuid.NewString()
	var trace []TraceEvent

	for turn := 0; turn < a.maxTurns; turn++ {
		resp, err := a.provider.Generate(ctx, llm.Request{
			System:      system,
			Messages:    msgs,
			Tools:       a.registry.Defs(),
			MaxTokens:   defaultMaxTokens,
			Temperature: 0.7,
		})
		if err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			reply := string(resp.Content)
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: reply})
			return &ChatResult{Reply: reply, Trace: trace, History: msgs}, nil
		}

		msgs = append(msgs, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   string(resp.Content),
			ToolCalls: resp.ToolCalls,
		})

		results, events, err := a.runTools(ctx, turnID, input.UserID, resp.ToolCalls)
		if err != nil {
			return nil, err
		}
		trace = append(trace, events...)
		msgs = append(msgs, llm.Message{Role: llm.RoleTool, ToolResults: results})
	}

	return nil, fmt.Errorf("%w (%d turns)", ErrTurnsExhausted, a.maxTurns)
}

// runTools executes one batch of tool calls. A single call runs inline;
// larger batches run in parallel. Tool failures become error results
// for the model, not Go errors; only context cancellation aborts.
func (a *Agent) runTools(ctx context.Context, turnID, userID string, calls []llm.ToolCall) ([]llm.ToolResult, []TraceEvent, error) {
	results := make([]llm.ToolResult, len(calls))
	events := make([]TraceEvent, len(calls))

	if len(calls) == 1 {
		results[0], events[0] = a.runTool(ctx, turnID, userID, calls[0])
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for i, call := range calls {
			g.Go(func() error {
				results[i], events[i] = a.runTool(gctx, turnID, userID, call)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return results, events, nil
}

func (a *Agent) runTool(ctx context.Context, turnID, userID string, call llm.ToolCall) (llm.ToolResult, TraceEvent) {
	start := time.Now()
	output, err := a.registry.Execute(ctx, call.Name, call.Input)
	elapsed := time.Since(start)

	event := TraceEvent{
		Tool:     call.Name,
		Input:    truncate(string(call.Input), traceLimit),
		Duration: elapsed,
	}
	result := llm.ToolResult{ID: call.ID, Name: call.Name}

	if err != nil {
		result.Content = err.Error()
		result.IsError = true
		event.Output = truncate(err.Error(), traceLimit)
		event.IsError = true
	} else {
		result.Content = output
		event.Output = truncate(output, traceLimit)
	}

	a.logToolCall(ctx, turnID, userID, call, output, err, elapsed)
	return result, event
}

// logToolCall appends the execution to the event log. Never fails the
// tool call.
func (a *Agent) logToolCall(ctx context.Context, turnID, userID string, call llm.ToolCall, output string, execErr error, elapsed time.Duration) {
	if a.events == nil {
		return
	}

	data := store.ToolCallEventData{
		Tool:       call.Name,
		TurnID:     turnID,
		UserID:     userID,
		Input:      string(call.Input),
		Output:     output,
		DurationMs: elapsed.Milliseconds(),
		Success:    execErr == nil,
	}
	if execErr != nil {
		data.ErrorMessage = execErr.Error()
	}

	if err := a.events.AppendToolCall(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log tool call event: %v\n", err)
	}
}
