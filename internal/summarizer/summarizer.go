package summarizer

import (
	"context"

	"github.com/avoronov/ai-digest/internal/aggregator"
)

// Summarizer turns the aggregated buckets into the digest text.
type Summarizer interface {
	Summarize(ctx context.Context, results []aggregator.Result) (string, error)
}
