package fetcher

import (
	"context"
	"net/http"
	"time"
)

// Item is one piece of content pulled from a source.
type Item struct {
	Title string
	Link  string
}

// Source fetches a bounded list of items from one content source.
// Implementations isolate failures to the smallest unit they can (one feed,
// one subreddit, one topic); an error return means the whole source was
// unusable.
type Source interface {
	Fetch(ctx context.Context) ([]Item, error)
}

// NewHTTPClient builds the client every source uses. Timeout is mandatory;
// no outbound call may block indefinitely.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// truncate bounds a raw result list to the configured per-source limit,
// preserving source order.
func truncate(items []Item, limit int) []Item {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
