package resources

import (
	"context"
	"net/url"
	"strings"
)

// CuratedSearcher serves hand-picked resources when no live search
// backend is reachable. It never fails and needs no network access.
type CuratedSearcher struct{}

// NewCurated creates a curated searcher.
func NewCurated() *CuratedSearcher {
	return &CuratedSearcher{}
}

func (s *CuratedSearcher) Name() string { return "curated" }

// curatedSets maps topic keywords to known-good starting points.
// Checked in order; the first matching set wins.
var curatedSets = []struct {
	keywords  []string
	resources []Resource
}{
	{
		keywords: []string{"python"},
		resources: []Resource{
			{Title: "Official Python Tutorial", URL: "https://docs.python.org/3/tutorial/", Snippet: "Comprehensive guide to Python from python.org"},
			{Title: "Real Python Tutorials", URL: "https://realpython.com/", Snippet: "In-depth Python tutorials and articles"},
			{Title: "Python on W3Schools", URL: "https://www.w3schools.com/python/", Snippet: "Interactive Python tutorial with examples"},
		},
	},
	{
		keywords: []string{"machine learning", "ml", "deep learning"},
		resources: []Resource{
			{Title: "Machine Learning Crash Course", URL: "https://developers.google.com/machine-learning/crash-course", Snippet: "Google's fast-paced, practical introduction to ML"},
			{Title: "Scikit-learn Documentation", URL: "https://scikit-learn.org/stable/", Snippet: "Official scikit-learn user guide and tutorials"},
			{Title: "Towards Data Science", URL: "https://towardsdatascience.com/", Snippet: "Publication with ML articles and tutorials"},
		},
	},
	{
		keywords: []string{"javascript", "js"},
		resources: []Resource{
			{Title: "MDN JavaScript Guide", URL: "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide", Snippet: "Comprehensive JavaScript documentation"},
			{Title: "JavaScript.info", URL: "https://javascript.info/", Snippet: "Modern JavaScript tutorial from basics to advanced"},
			{Title: "freeCodeCamp JavaScript", URL: "https://www.freecodecamp.org/learn/javascript-algorithms-and-data-structures/", Snippet: "Interactive JavaScript curriculum"},
		},
	},
	{
		keywords: []string{"go", "golang"},
		resources: []Resource{
			{Title: "A Tour of Go", URL: "https://go.dev/tour/", Snippet: "Interactive introduction to the Go language"},
			{Title: "Effective Go", URL: "https://go.dev/doc/effective_go", Snippet: "Tips for writing clear, idiomatic Go code"},
			{Title: "Go by Example", URL: "https://gobyexample.com/", Snippet: "Hands-on introduction using annotated programs"},
		},
	},
}

// Search matches the query against the curated sets and falls back to
// course-search links for unknown topics.
func (s *CuratedSearcher) Search(ctx context.Context, query string, max int) ([]Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if max <= 0 {
		max = DefaultMaxResults
	}

	results := s.matchSet(query)
	if results == nil {
		results = genericResources(query)
	}
	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

func (s *CuratedSearcher) matchSet(query string) []Resource {
	q := strings.ToLower(query)
	words := strings.Fields(q)
	for _, set := range curatedSets {
		for _, kw := range set.keywords {
			if !matchesKeyword(q, words, kw) {
				continue
			}
			results := make([]Resource, len(set.resources))
			copy(results, set.resources)
			for i := range results {
				results[i].Source = s.Name()
			}
			return results
		}
	}
	return nil
}

// matchesKeyword matches multi-word keywords as substrings and short
// single-word ones ("go", "ml") only as whole words, so "django" does
// not match "go".
func matchesKeyword(q string, words []string, kw string) bool {
	if strings.Contains(kw, " ") || len(kw) > 3 {
		return strings.Contains(q, kw)
	}
	for _, w := range words {
		if w == kw {
			return true
		}
	}
	return false
}

// genericResources builds search links on well-known learning sites.
func genericResources(query string) []Resource {
	return []Resource{
		{
			Title:   query + " - Khan Academy",
			URL:     "https://www.khanacademy.org/search?page_search_query=" + url.QueryEscape(query),
			Snippet: "Free online courses and lessons",
			Source:  "curated",
		},
		{
			Title:   query + " - Coursera",
			URL:     "https://www.coursera.org/search?query=" + url.QueryEscape(query),
			Snippet: "Online courses from top universities",
			Source:  "curated",
		},
		{
			Title:   query + " - YouTube",
			URL:     "https://www.youtube.com/results?search_query=" + url.QueryEscape(query+" tutorial"),
			Snippet: "Video tutorials and explanations",
			Source:  "curated",
		},
	}
}
