package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avoronov/ai-digest/internal/aggregator"
	"github.com/avoronov/ai-digest/internal/publisher"
	"github.com/avoronov/ai-digest/internal/summarizer"
)

// header opens every digest message, followed by the invocation timestamp.
const header = "🧠 AI UPDATE"

// Collector produces the aggregated bucket results.
type Collector interface {
	Collect(ctx context.Context) []aggregator.Result
}

// Runner orchestrates the collect -> summarize -> publish pipeline. One call
// to Run is one complete digest; no state survives between runs.
type Runner struct {
	collector  Collector
	summarizer summarizer.Summarizer
	publisher  publisher.Publisher
	log        *slog.Logger
	now        func() time.Time
}

func New(c Collector, s summarizer.Summarizer, p publisher.Publisher, log *slog.Logger) *Runner {
	return &Runner{
		collector:  c,
		summarizer: s,
		publisher:  p,
		log:        log,
		now:        time.Now,
	}
}

// Run executes the full pipeline once. Per-source failures were already
// absorbed by the collector; a summarize or publish failure aborts the run.
func (r *Runner) Run(ctx context.Context) error {
	started := r.now()

	results := r.collector.Collect(ctx)

	total, failed := 0, 0
	for _, res := range results {
		total += len(res.Items)
		if res.Err != nil {
			failed++
		}
	}
	r.log.Info("sources collected", "buckets", len(results), "items", total, "failed_sources", failed)

	summary, err := r.summarizer.Summarize(ctx, results)
	if err != nil {
		return fmt.Errorf("runner: summarize failed: %w", err)
	}
	r.log.Info("digest generated", "chars", len(summary))

	message := fmt.Sprintf("%s (%s)\n\n%s", header, started.Format("2006-01-02 15:04"), summary)

	if err := r.publisher.Publish(ctx, message); err != nil {
		return fmt.Errorf("runner: publish failed: %w", err)
	}
	r.log.Info("digest published")

	return nil
}
