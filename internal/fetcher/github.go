package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

type githubSearchResult struct {
	Items []githubRepo `json:"items"`
}

type githubRepo struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// GitHubSource searches repositories per topic, most starred first.
// Topics are independent; a failing topic search contributes zero items.
type GitHubSource struct {
	topics   []string
	perTopic int
	client   *http.Client
	log      *slog.Logger
	baseURL  string
}

func NewGitHubSource(topics []string, perTopic int, client *http.Client, log *slog.Logger) *GitHubSource {
	return &GitHubSource{
		topics:   topics,
		perTopic: perTopic,
		client:   client,
		log:      log,
		baseURL:  "https://api.github.com/search/repositories",
	}
}

func (f *GitHubSource) Fetch(ctx context.Context) ([]Item, error) {
	var items []Item
	for _, topic := range f.topics {
		got, err := f.searchTopic(ctx, topic)
		if err != nil {
			f.log.Warn("github topic skipped", "topic", topic, "error", err)
			continue
		}
		items = append(items, got...)
	}
	return items, nil
}

func (f *GitHubSource) searchTopic(ctx context.Context, topic string) ([]Item, error) {
	query := url.Values{}
	query.Set("q", "topic:"+topic)
	query.Set("sort", "stars")
	query.Set("order", "desc")
	query.Set("per_page", fmt.Sprintf("%d", f.perTopic))

	reqURL := fmt.Sprintf("%s?%s", f.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("github: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: unexpected status %d", resp.StatusCode)
	}

	var result githubSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("github: failed to parse response: %w", err)
	}

	items := make([]Item, 0, len(result.Items))
	for _, repo := range result.Items {
		items = append(items, Item{
			Title: repo.FullName,
			Link:  repo.HTMLURL,
		})
	}
	return truncate(items, f.perTopic), nil
}
