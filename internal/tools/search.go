package tools

import (
	"context"
	"encoding/json"

	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/resources"
)

// ResourceSearcher is the slice of the resource chain the search tool
// uses.
type ResourceSearcher interface {
	Search(ctx context.Context, query string, max int) ([]resources.Resource, error)
}

// RegisterSearchTool adds search_resources backed by the given chain.
func RegisterSearchTool(r *Registry, searcher ResourceSearcher) error {
	def := llm.ToolDef{
		Name: "search_resources",
		Description: "Search the web for tutorials, documentation, and courses on a " +
			"topic. Use it when the learner asks where to learn more or wants " +
			"external material. Returns titles, links, and snippets.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "Search query, e.g. \"Python decorators tutorial\"",
				},
				"max_results": map[string]any{
					"type":        "integer",
					"minimum":     1,
					"maximum":     10,
					"description": "Result cap; defaults to 5",
				},
			},
			"required":             []any{"query"},
			"additionalProperties": false,
		},
	}
	return r.Register(def, func(ctx context.Context, input json.RawMessage) (string, error) {
		var in struct {
			Query      string `json:"query"`
			MaxResults int    `json:"max_results"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		if in.MaxResults == 0 {
			in.MaxResults = resources.DefaultMaxResults
		}

		found, err := searcher.Search(ctx, in.Query, in.MaxResults)
		if err != nil {
			return "", err
		}
		return marshalContent(struct {
			Query     string               `json:"query"`
			Resources []resources.Resource `json:"resources"`
		}{in.Query, found})
	})
}
