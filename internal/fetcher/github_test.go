package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const githubSearchBody = `{
  "items": [
    {"full_name": "huggingface/transformers", "html_url": "https://github.com/huggingface/transformers"},
    {"full_name": "pytorch/pytorch", "html_url": "https://github.com/pytorch/pytorch"},
    {"full_name": "ggml-org/llama.cpp", "html_url": "https://github.com/ggml-org/llama.cpp"}
  ]
}`

func TestGitHubSourceQueryAndItems(t *testing.T) {
	var gotQuery map[string][]string
	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAccept = r.Header.Get("Accept")
		io.WriteString(w, githubSearchBody)
	}))
	t.Cleanup(srv.Close)

	f := NewGitHubSource([]string{"transformers"}, 2, testClient(), discardLogger())
	f.baseURL = srv.URL

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)

	require.Equal(t, "topic:transformers", gotQuery["q"][0])
	require.Equal(t, "stars", gotQuery["sort"][0])
	require.Equal(t, "desc", gotQuery["order"][0])
	require.Equal(t, "2", gotQuery["per_page"][0])
	require.Equal(t, "application/vnd.github.v3+json", gotAccept)

	require.Len(t, items, 2, "per_page is also enforced locally")
	require.Equal(t, Item{Title: "huggingface/transformers", Link: "https://github.com/huggingface/transformers"}, items[0])
}

func TestGitHubSourceIsolatesFailingTopic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "topic:ratelimited" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		io.WriteString(w, githubSearchBody)
	}))
	t.Cleanup(srv.Close)

	f := NewGitHubSource([]string{"ratelimited", "llm"}, 3, testClient(), discardLogger())
	f.baseURL = srv.URL

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestGitHubSourceEmptyOnAllFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	f := NewGitHubSource([]string{"llm", "transformers"}, 2, testClient(), discardLogger())
	f.baseURL = srv.URL

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}
