package llm

import (
	"encoding/json"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer"},
			"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"name", "age"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["age"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for age, got %s", schema.Properties["age"].Type)
	}
	if len(schema.Properties["grade"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["grade"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_RequiredStringSlice(t *testing.T) {
	// Tool schemas built in Go carry required as []string, not []any.
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"user_id": map[string]any{"type": "string"},
		},
		"required": []string{"user_id"},
	}

	schema := buildGeminiSchema(def)
	if len(schema.Required) != 1 || schema.Required[0] != "user_id" {
		t.Fatalf("expected required [user_id], got %v", schema.Required)
	}
}

func TestBuildGeminiContents_ToolRoundTrip(t *testing.T) {
	msgs := []Message{
		{Role: RoleUser, Content: "look it up"},
		{Role: RoleAssistant, ToolCalls: []ToolCall{
			{ID: "get_topic_mastery", Name: "get_topic_mastery", Input: json.RawMessage(`{"topic":"maps"}`)},
		}},
		{Role: RoleTool, ToolResults: []ToolResult{
			{ID: "get_topic_mastery", Name: "get_topic_mastery", Content: `{"score":0.5}`},
		}},
	}

	contents := buildGeminiContents(msgs)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	if contents[1].Role != "model" {
		t.Fatalf("expected model role, got %q", contents[1].Role)
	}
	fc := contents[1].Parts[0].FunctionCall
	if fc == nil || fc.Name != "get_topic_mastery" {
		t.Fatalf("expected function call part, got %+v", contents[1].Parts[0])
	}
	if fc.Args["topic"] != "maps" {
		t.Fatalf("expected topic arg 'maps', got %v", fc.Args)
	}
	fr := contents[2].Parts[0].FunctionResponse
	if fr == nil || fr.Name != "get_topic_mastery" {
		t.Fatalf("expected function response part, got %+v", contents[2].Parts[0])
	}
	if fr.Response["output"] != `{"score":0.5}` {
		t.Fatalf("unexpected response payload: %v", fr.Response)
	}
}
