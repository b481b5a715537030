package resources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubSearcher struct {
	name    string
	results []Resource
	err     error
	calls   int
}

func (s *stubSearcher) Name() string { return s.name }

func (s *stubSearcher) Search(ctx context.Context, query string, max int) ([]Resource, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func TestChain_FirstNonEmptyWins(t *testing.T) {
	first := &stubSearcher{name: "first", results: []Resource{{Title: "a", URL: "https://a", Source: "first"}}}
	second := &stubSearcher{name: "second", results: []Resource{{Title: "b", URL: "https://b", Source: "second"}}}
	chain := NewChain(first, second)

	results, err := chain.Search(context.Background(), "go", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Source != "first" {
		t.Fatalf("expected result from first searcher, got %+v", results)
	}
	if second.calls != 0 {
		t.Fatalf("second searcher should not have been called")
	}
}

func TestChain_FallsThroughOnErrorAndEmpty(t *testing.T) {
	failing := &stubSearcher{name: "failing", err: errors.New("network down")}
	empty := &stubSearcher{name: "empty"}
	last := &stubSearcher{name: "last", results: []Resource{{Title: "c", URL: "https://c", Source: "last"}}}
	chain := NewChain(failing, empty, last)

	results, err := chain.Search(context.Background(), "go", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Source != "last" {
		t.Fatalf("expected result from last searcher, got %+v", results)
	}
	if failing.calls != 1 || empty.calls != 1 {
		t.Fatalf("expected both earlier searchers to be tried")
	}
}

func TestChain_AllFail(t *testing.T) {
	chain := NewChain(
		&stubSearcher{name: "one", err: errors.New("boom")},
		&stubSearcher{name: "two", err: errors.New("bang")},
	)

	_, err := chain.Search(context.Background(), "go", 5)
	if err == nil {
		t.Fatal("expected error when all searchers fail")
	}
	for _, name := range []string{"one", "two"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should mention searcher %q: %v", name, err)
		}
	}
}

func TestDefaultChain_CuratedIsLast(t *testing.T) {
	chain := NewDefaultChain("")
	if n := len(chain.searchers); n != 2 {
		t.Fatalf("expected 2 searchers without a Tavily key, got %d", n)
	}
	if chain.searchers[1].Name() != "curated" {
		t.Fatalf("expected curated last, got %q", chain.searchers[1].Name())
	}

	withKey := NewDefaultChain("tvly-test")
	if n := len(withKey.searchers); n != 3 {
		t.Fatalf("expected 3 searchers with a Tavily key, got %d", n)
	}
	if withKey.searchers[0].Name() != "tavily" {
		t.Fatalf("expected tavily first, got %q", withKey.searchers[0].Name())
	}
}

func TestCurated_KnownTopics(t *testing.T) {
	tests := []struct {
		query     string
		wantTitle string
	}{
		{"learn python basics", "Official Python Tutorial"},
		{"intro to machine learning", "Machine Learning Crash Course"},
		{"ml fundamentals", "Machine Learning Crash Course"},
		{"javascript closures", "MDN JavaScript Guide"},
		{"go concurrency patterns", "A Tour of Go"},
		{"golang interfaces", "A Tour of Go"},
	}

	s := NewCurated()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := s.Search(context.Background(), tt.query, 5)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) == 0 {
				t.Fatal("expected curated results")
			}
			if results[0].Title != tt.wantTitle {
				t.Errorf("first result = %q, want %q", results[0].Title, tt.wantTitle)
			}
			for _, r := range results {
				if r.Source != "curated" {
					t.Errorf("source = %q, want curated", r.Source)
				}
			}
		})
	}
}

func TestCurated_ShortKeywordsMatchWholeWordsOnly(t *testing.T) {
	s := NewCurated()

	results, err := s.Search(context.Background(), "django templates", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "django" contains "go" but must not match the Go set.
	for _, r := range results {
		if strings.Contains(r.Title, "Tour of Go") {
			t.Fatalf("django query matched the Go set: %+v", results)
		}
	}
}

func TestCurated_GenericFallback(t *testing.T) {
	s := NewCurated()

	results, err := s.Search(context.Background(), "organic chemistry", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 generic results, got %d", len(results))
	}
	if !strings.Contains(results[0].URL, "khanacademy.org") {
		t.Errorf("first generic result should link Khan Academy: %q", results[0].URL)
	}
	if !strings.Contains(results[0].URL, "organic+chemistry") {
		t.Errorf("query should be escaped into the URL: %q", results[0].URL)
	}
}

func TestCurated_RespectsMax(t *testing.T) {
	s := NewCurated()

	results, err := s.Search(context.Background(), "python", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestTavily_Search(t *testing.T) {
	var gotReq tavilyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "Go Tour", "url": "https://go.dev/tour/", "content": strings.Repeat("x", 300), "score": 0.9},
				{"title": "Go Blog", "url": "https://go.dev/blog/", "content": "posts", "score": 0.8},
			},
		})
	}))
	defer srv.Close()

	s := NewTavily(TavilyConfig{APIKey: "tvly-test", BaseURL: srv.URL})
	results, err := s.Search(context.Background(), "go tutorials", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotReq.APIKey != "tvly-test" {
		t.Errorf("api_key = %q", gotReq.APIKey)
	}
	if gotReq.SearchDepth != "advanced" {
		t.Errorf("search_depth = %q, want advanced", gotReq.SearchDepth)
	}
	if len(gotReq.IncludeDomains) == 0 {
		t.Error("include_domains should be populated")
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Source != "tavily" {
		t.Errorf("source = %q, want tavily", results[0].Source)
	}
	if len(results[0].Snippet) != 200 {
		t.Errorf("snippet should be truncated to 200 chars, got %d", len(results[0].Snippet))
	}
}

func TestTavily_RequiresAPIKey(t *testing.T) {
	s := NewTavily(TavilyConfig{})
	if _, err := s.Search(context.Background(), "go", 5); err == nil {
		t.Fatal("expected error without an API key")
	}
}

func TestTavily_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewTavily(TavilyConfig{APIKey: "tvly-test", BaseURL: srv.URL})
	if _, err := s.Search(context.Background(), "go", 5); err == nil {
		t.Fatal("expected error on HTTP 429")
	}
}

const duckHTML = `<html><body>
<div class="result results_links results_links_deep web-result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Ftour%2F&amp;rut=abc">A Tour of Go</a>
  <a class="result__snippet" href="https://go.dev/tour/">Interactive <b>Go</b> introduction</a>
</div>
<div class="result results_links results_links_deep web-result">
  <a class="result__a" href="https://gobyexample.com/">Go by Example</a>
  <a class="result__snippet" href="https://gobyexample.com/">Annotated example programs</a>
</div>
</body></html>`

func TestDuckDuckGo_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "go tutorials" {
			t.Errorf("query = %q", got)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		w.Write([]byte(duckHTML))
	}))
	defer srv.Close()

	s := NewDuckDuckGo()
	s.baseURL = srv.URL

	results, err := s.Search(context.Background(), "go tutorials", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://go.dev/tour/" {
		t.Errorf("redirect URL should be unwrapped, got %q", results[0].URL)
	}
	if results[0].Title != "A Tour of Go" {
		t.Errorf("title = %q", results[0].Title)
	}
	if results[0].Source != "duckduckgo" {
		t.Errorf("source = %q, want duckduckgo", results[0].Source)
	}
	if !strings.Contains(results[0].Snippet, "Go introduction") {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
}

func TestDuckDuckGo_MaxLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(duckHTML))
	}))
	defer srv.Close()

	s := NewDuckDuckGo()
	s.baseURL = srv.URL

	results, err := s.Search(context.Background(), "go", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}
