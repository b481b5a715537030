package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTavilyBaseURL = "https://api.tavily.com"

// educationDomains restricts Tavily results to sources that are
// useful for self-study.
var educationDomains = []string{
	"github.com",
	"stackoverflow.com",
	"medium.com",
	"dev.to",
	"youtube.com",
	"coursera.org",
	"udemy.com",
	"khanacademy.org",
	"freecodecamp.org",
	"developer.mozilla.org",
	"docs.python.org",
	"go.dev",
	"wikipedia.org",
}

// TavilyConfig holds Tavily searcher configuration.
type TavilyConfig struct {
	APIKey  string
	BaseURL string // Default: "https://api.tavily.com"
}

// TavilySearcher finds resources via the Tavily search API.
type TavilySearcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTavily creates a Tavily searcher.
func NewTavily(cfg TavilyConfig) *TavilySearcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultTavilyBaseURL
	}
	return &TavilySearcher{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *TavilySearcher) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search posts a query to the Tavily search endpoint.
func (s *TavilySearcher) Search(ctx context.Context, query string, max int) ([]Resource, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("tavily API key is required")
	}
	if max <= 0 {
		max = DefaultMaxResults
	}

	payload, err := json.Marshal(tavilyRequest{
		APIKey:         s.apiKey,
		Query:          query,
		SearchDepth:    "advanced",
		MaxResults:     max,
		IncludeDomains: educationDomains,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	results := make([]Resource, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if len(results) >= max {
			break
		}
		snippet := r.Content
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		results = append(results, Resource{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: snippet,
			Source:  s.Name(),
		})
	}
	return results, nil
}
