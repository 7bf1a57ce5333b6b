package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ArxivSource queries the arXiv API across a set of subject categories and
// returns the most recent submissions, newest first.
type ArxivSource struct {
	categories []string
	maxResults int
	client     *http.Client
	baseURL    string
}

func NewArxivSource(categories []string, maxResults int, client *http.Client) *ArxivSource {
	return &ArxivSource{
		categories: categories,
		maxResults: maxResults,
		client:     client,
		baseURL:    "http://export.arxiv.org/api/query",
	}
}

func (f *ArxivSource) Fetch(ctx context.Context) ([]Item, error) {
	terms := make([]string, len(f.categories))
	for i, c := range f.categories {
		terms[i] = fmt.Sprintf("cat:%s", c)
	}

	query := url.Values{}
	query.Set("search_query", strings.Join(terms, " OR "))
	query.Set("start", "0")
	query.Set("max_results", fmt.Sprintf("%d", f.maxResults))
	query.Set("sortBy", "submittedDate")
	query.Set("sortOrder", "descending")

	reqURL := fmt.Sprintf("%s?%s", f.baseURL, query.Encode())

	items, err := fetchFeed(ctx, f.client, reqURL, f.maxResults)
	if err != nil {
		return nil, fmt.Errorf("arxiv: %w", err)
	}
	return items, nil
}
