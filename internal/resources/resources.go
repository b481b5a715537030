// Package resources finds study material for a topic. Searchers are
// tried in order; the curated fallback always answers, so a full chain
// never comes back empty-handed.
package resources

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Resource is a single study resource.
type Resource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`

	// Source names the searcher that produced this result
	// ("tavily", "duckduckgo", "curated").
	Source string `json:"source"`
}

// Searcher finds resources for a query.
type Searcher interface {
	// Name returns a short identifier for this searcher.
	Name() string

	// Search returns up to max resources for the query.
	Search(ctx context.Context, query string, max int) ([]Resource, error)
}

// DefaultMaxResults caps result counts when the caller passes 0.
const DefaultMaxResults = 5

// searchTimeout bounds a single searcher attempt within a chain.
const searchTimeout = 10 * time.Second

// Chain tries searchers in order and returns the first non-empty result.
type Chain struct {
	searchers []Searcher
}

// NewChain creates a Chain over the given searchers.
func NewChain(searchers ...Searcher) *Chain {
	return &Chain{searchers: searchers}
}

// NewDefaultChain assembles the standard chain: Tavily when an API key
// is configured, then DuckDuckGo, then the curated fallback.
func NewDefaultChain(tavilyAPIKey string) *Chain {
	var searchers []Searcher
	if tavilyAPIKey != "" {
		searchers = append(searchers, NewTavily(TavilyConfig{APIKey: tavilyAPIKey}))
	}
	searchers = append(searchers, NewDuckDuckGo(), NewCurated())
	return &Chain{searchers: searchers}
}

// Search runs the chain. Each searcher gets its own timeout; a failure
// or empty result falls through to the next searcher.
func (c *Chain) Search(ctx context.Context, query string, max int) ([]Resource, error) {
	if max <= 0 {
		max = DefaultMaxResults
	}

	var errs []error
	for _, s := range c.searchers {
		attemptCtx, cancel := context.WithTimeout(ctx, searchTimeout)
		results, err := s.Search(attemptCtx, query, max)
		cancel()

		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("all searchers failed: %w", errors.Join(errs...))
	}
	return nil, fmt.Errorf("no resources found for %q", query)
}
