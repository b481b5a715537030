// Package tools defines the tutor agent's callable tools. Every tool
// declares a JSON schema for its input; the registry validates calls
// against it before dispatch so handlers only ever see well-formed
// arguments.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/mentora/mentora/internal/llm"
)

// Handler executes one validated tool call and returns the content to
// hand back to the model.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

type registered struct {
	def    llm.ToolDef
	schema *jsonschema.Schema
	run    Handler
}

// Registry holds the agent's tools in registration order.
type Registry struct {
	order []string
	tools map[string]*registered
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*registered)}
}

// Register adds a tool. The definition's input schema is compiled
// eagerly so a malformed schema fails at startup, not on first call.
func (r *Registry) Register(def llm.ToolDef, h Handler) error {
	if def.Name == "" {
		return fmt.Errorf("tool name must not be empty")
	}
	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("tool %q already registered", def.Name)
	}

	schema, err := compileSchema(def.Name, def.InputSchema)
	if err != nil {
		return fmt.Errorf("tool %q: %w", def.Name, err)
	}

	r.order = append(r.order, def.Name)
	r.tools[def.Name] = &registered{def: def, schema: schema, run: h}
	return nil
}

// Defs returns the tool definitions in registration order, ready to
// attach to an LLM request.
func (r *Registry) Defs() []llm.ToolDef {
	defs := make([]llm.ToolDef, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Execute validates input against the tool's schema and runs it. An
// empty input is treated as an empty object.
func (r *Registry) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	tool, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	if len(input) == 0 {
		input = json.RawMessage("{}")
	}

	var parsed any
	if err := json.Unmarshal(input, &parsed); err != nil {
		return "", fmt.Errorf("tool %q: input is not valid JSON: %w", name, err)
	}
	if err := tool.schema.Validate(parsed); err != nil {
		return "", fmt.Errorf("tool %q: invalid input: %w", name, err)
	}

	return tool.run(ctx, input)
}

// compileSchema compiles a JSON schema given as a plain map. The map is
// round-tripped through encoding/json because the compiler wants the
// parsed-any representation.
func compileSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("tool://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return c.Compile(url)
}

// marshalContent renders a tool result payload as compact JSON.
func marshalContent(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal tool result: %w", err)
	}
	return string(raw), nil
}

// NewDefault assembles the standard registry: profile lookup, quiz
// result recording, quiz generation, and resource search.
func NewDefault(profiles ProfileService, gen quizgen.Generator, searcher ResourceSearcher) (*Registry, error) {
	r := NewRegistry()
	if err := RegisterProfileTools(r, profiles); err != nil {
		return nil, err
	}
	if err := RegisterQuizTool(r, gen); err != nil {
		return nil, err
	}
	if err := RegisterSearchTool(r, searcher); err != nil {
		return nil, err
	}
	return r, nil
}
