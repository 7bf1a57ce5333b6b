package aggregator

import (
	"context"
	"log/slog"

	"github.com/avoronov/ai-digest/internal/fetcher"
)

// Bucket names one editorial category of the digest.
type Bucket string

const (
	BucketNews           Bucket = "news"
	BucketTools          Bucket = "tools"
	BucketMemes          Bucket = "memes"
	BucketPapers         Bucket = "papers"
	BucketHackerNews     Bucket = "hackernews"
	BucketGitHub         Bucket = "github"
	BucketPapersWithCode Bucket = "pwc"
)

// Result is the outcome of one source: either its items or the reason it
// produced none. A failed source never fails the aggregation.
type Result struct {
	Bucket Bucket
	Items  []fetcher.Item
	Err    error
}

// BucketSource pairs a source with the bucket its items land in.
type BucketSource struct {
	Bucket Bucket
	Source fetcher.Source
}

// Aggregator invokes every configured source in a fixed order and collects
// the outputs into named buckets. Order is stable so prompts are
// reproducible for the same source responses.
type Aggregator struct {
	sources []BucketSource
	log     *slog.Logger
}

func New(sources []BucketSource, log *slog.Logger) *Aggregator {
	return &Aggregator{sources: sources, log: log}
}

// Collect runs all sources sequentially and returns one Result per source,
// in registration order. No cross-source merging or deduplication happens.
func (a *Aggregator) Collect(ctx context.Context) []Result {
	results := make([]Result, 0, len(a.sources))
	for _, bs := range a.sources {
		items, err := bs.Source.Fetch(ctx)
		if err != nil {
			a.log.Warn("source failed", "bucket", string(bs.Bucket), "error", err)
			results = append(results, Result{Bucket: bs.Bucket, Err: err})
			continue
		}
		a.log.Info("source fetched", "bucket", string(bs.Bucket), "items", len(items))
		results = append(results, Result{Bucket: bs.Bucket, Items: items})
	}
	return results
}
