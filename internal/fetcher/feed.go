package fetcher

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Syndication feed XML structures. Both RSS 2.0 and Atom appear among the
// configured sources, so both are decoded.

type rssDoc struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type atomDoc struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title string     `xml:"title"`
	Links []atomLink `xml:"link"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
	Rel  string `xml:"rel,attr"`
}

// FeedSource reads one or more syndication feeds and emits the first N
// entries of each, in feed order. Feeds are independent: a malformed or
// unreachable feed contributes zero items and never aborts the others.
type FeedSource struct {
	urls   []string
	limit  int
	client *http.Client
	log    *slog.Logger
}

func NewFeedSource(urls []string, limit int, client *http.Client, log *slog.Logger) *FeedSource {
	return &FeedSource{
		urls:   urls,
		limit:  limit,
		client: client,
		log:    log,
	}
}

// NewSingleFeedSource wraps one fixed feed URL with its own item limit.
func NewSingleFeedSource(url string, limit int, client *http.Client, log *slog.Logger) *FeedSource {
	return NewFeedSource([]string{url}, limit, client, log)
}

func (f *FeedSource) Fetch(ctx context.Context) ([]Item, error) {
	var items []Item
	for _, u := range f.urls {
		got, err := fetchFeed(ctx, f.client, u, f.limit)
		if err != nil {
			f.log.Warn("feed skipped", "url", u, "error", err)
			continue
		}
		items = append(items, got...)
	}
	return items, nil
}

// fetchFeed retrieves one feed URL and returns at most limit entries in
// feed order.
func fetchFeed(ctx context.Context, client *http.Client, url string, limit int) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed: failed to read response: %w", err)
	}

	items, err := parseFeed(body)
	if err != nil {
		return nil, err
	}
	return truncate(items, limit), nil
}

// parseFeed decodes body as RSS 2.0 first, then as Atom.
func parseFeed(body []byte) ([]Item, error) {
	var rss rssDoc
	if err := xml.Unmarshal(body, &rss); err == nil {
		items := make([]Item, 0, len(rss.Channel.Items))
		for _, it := range rss.Channel.Items {
			items = append(items, Item{
				Title: strings.TrimSpace(it.Title),
				Link:  strings.TrimSpace(it.Link),
			})
		}
		return items, nil
	}

	var atom atomDoc
	if err := xml.Unmarshal(body, &atom); err != nil {
		return nil, fmt.Errorf("feed: failed to parse XML: %w", err)
	}

	items := make([]Item, 0, len(atom.Entries))
	for _, entry := range atom.Entries {
		items = append(items, Item{
			Title: strings.TrimSpace(entry.Title),
			Link:  entryLink(entry.Links),
		})
	}
	return items, nil
}

// entryLink picks the alternate link of an Atom entry, falling back to the
// first link present.
func entryLink(links []atomLink) string {
	var href string
	for _, link := range links {
		if link.Rel == "alternate" || (link.Type == "text/html" && href == "") {
			href = link.Href
		}
	}
	if href == "" && len(links) > 0 {
		href = links[0].Href
	}
	return href
}
