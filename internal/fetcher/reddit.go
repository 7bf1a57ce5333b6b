package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/avoronov/ai-digest/internal/config"
)

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

// RedditSource reads the "top of day" listing of each configured subreddit.
// Subreddits are independent; a blocked or failing one contributes zero items.
type RedditSource struct {
	subreddits []config.Subreddit
	client     *http.Client
	log        *slog.Logger
	baseURL    string
}

func NewRedditSource(subreddits []config.Subreddit, client *http.Client, log *slog.Logger) *RedditSource {
	return &RedditSource{
		subreddits: subreddits,
		client:     client,
		log:        log,
		baseURL:    "https://www.reddit.com",
	}
}

func (f *RedditSource) Fetch(ctx context.Context) ([]Item, error) {
	var items []Item
	for _, sub := range f.subreddits {
		got, err := f.fetchSubreddit(ctx, sub)
		if err != nil {
			f.log.Warn("subreddit skipped", "subreddit", sub.Name, "error", err)
			continue
		}
		items = append(items, got...)
	}
	return items, nil
}

func (f *RedditSource) fetchSubreddit(ctx context.Context, sub config.Subreddit) ([]Item, error) {
	reqURL := fmt.Sprintf("%s/r/%s/top/.json?t=day&limit=%d", f.baseURL, sub.Name, sub.Limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("reddit: failed to create request: %w", err)
	}
	// Reddit blocks the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit: unexpected status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("reddit: failed to parse response: %w", err)
	}

	items := make([]Item, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		items = append(items, Item{
			Title: child.Data.Title,
			Link:  "https://reddit.com" + child.Data.Permalink,
		})
	}
	return truncate(items, sub.Limit), nil
}
