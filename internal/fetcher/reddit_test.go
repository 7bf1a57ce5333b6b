package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avoronov/ai-digest/internal/config"
)

func redditListingBody(n int) string {
	var sb strings.Builder
	sb.WriteString(`{"data":{"children":[`)
	for i := 1; i <= n; i++ {
		if i > 1 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"data":{"title":"Post %d","permalink":"/r/test/comments/%d/post_%d/"}}`, i, i, i)
	}
	sb.WriteString(`]}}`)
	return sb.String()
}

func TestRedditSourceBuildsPermalinks(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, redditListingBody(2))
	}))
	t.Cleanup(srv.Close)

	f := NewRedditSource([]config.Subreddit{{Name: "MachineLearning", Limit: 2}}, testClient(), discardLogger())
	f.baseURL = srv.URL

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)

	require.Equal(t, "/r/MachineLearning/top/.json", gotPath)
	require.Contains(t, gotUA, "Mozilla/5.0", "default Go user agent gets blocked")

	require.Len(t, items, 2)
	require.Equal(t, "Post 1", items[0].Title)
	require.Equal(t, "https://reddit.com/r/test/comments/1/post_1/", items[0].Link)
}

func TestRedditSourceTruncatesToLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The API may return more than asked for.
		io.WriteString(w, redditListingBody(5))
	}))
	t.Cleanup(srv.Close)

	f := NewRedditSource([]config.Subreddit{{Name: "Artificial", Limit: 3}}, testClient(), discardLogger())
	f.baseURL = srv.URL

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestRedditSourceIsolatesFailingSubreddit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "Blocked") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		io.WriteString(w, redditListingBody(1))
	}))
	t.Cleanup(srv.Close)

	subs := []config.Subreddit{
		{Name: "Blocked", Limit: 3},
		{Name: "MLMemes", Limit: 3},
	}
	f := NewRedditSource(subs, testClient(), discardLogger())
	f.baseURL = srv.URL

	items, err := f.Fetch(context.Background())
	require.NoError(t, err, "one blocked subreddit must not abort the rest")
	require.Len(t, items, 1)
	require.Equal(t, "Post 1", items[0].Title)
}

func TestRedditSourceIsolatesMalformedJSON(t *testing.T) {
	srv := serveBody(t, "<html>rate limited</html>")

	f := NewRedditSource([]config.Subreddit{{Name: "Artificial", Limit: 3}}, testClient(), discardLogger())
	f.baseURL = srv.URL

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}
