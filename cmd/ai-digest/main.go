package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/avoronov/ai-digest/internal/aggregator"
	"github.com/avoronov/ai-digest/internal/config"
	"github.com/avoronov/ai-digest/internal/fetcher"
	"github.com/avoronov/ai-digest/internal/logger"
	"github.com/avoronov/ai-digest/internal/publisher"
	"github.com/avoronov/ai-digest/internal/runner"
	"github.com/avoronov/ai-digest/internal/summarizer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// A local .env is optional; deployments supply real environment.
	_ = godotenv.Load()

	log := logger.New("ai-digest")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client := fetcher.NewHTTPClient(cfg.HTTPTimeout())

	agg := aggregator.New(buildSources(cfg, client, log), log)

	sum := summarizer.NewGeminiSummarizer(
		cfg.Summarizer.APIKey,
		cfg.Summarizer.Model,
		fetcher.NewHTTPClient(cfg.ModelTimeout()),
	)

	pub := buildPublisher(cfg, client)

	r := runner.New(agg, sum, pub, log)

	if err := r.Run(context.Background()); err != nil {
		log.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
	log.Info("done")
}

// buildSources assembles every configured source in the fixed bucket order
// the prompt template expects.
func buildSources(cfg *config.Config, client *http.Client, log *slog.Logger) []aggregator.BucketSource {
	return []aggregator.BucketSource{
		{
			Bucket: aggregator.BucketNews,
			Source: fetcher.NewFeedSource(cfg.Sources.NewsFeeds, cfg.Sources.FeedLimit, client, log),
		},
		{
			Bucket: aggregator.BucketTools,
			Source: fetcher.NewSingleFeedSource(cfg.Sources.ProductHuntFeed, cfg.Sources.ProductHuntLimit, client, log),
		},
		{
			Bucket: aggregator.BucketMemes,
			Source: fetcher.NewRedditSource(cfg.Sources.Subreddits, client, log),
		},
		{
			Bucket: aggregator.BucketPapers,
			Source: fetcher.NewArxivSource(cfg.Sources.ArxivCategories, cfg.Sources.ArxivMaxResults, client),
		},
		{
			Bucket: aggregator.BucketHackerNews,
			Source: fetcher.NewSingleFeedSource(cfg.Sources.HackerNewsFeed, cfg.Sources.HackerNewsLimit, client, log),
		},
		{
			Bucket: aggregator.BucketGitHub,
			Source: fetcher.NewGitHubSource(cfg.Sources.GitHubTopics, cfg.Sources.GitHubPerTopic, client, log),
		},
		{
			Bucket: aggregator.BucketPapersWithCode,
			Source: fetcher.NewSingleFeedSource(cfg.Sources.PapersWithCodeFeed, cfg.Sources.PapersWithCodeLimit, client, log),
		},
	}
}

func buildPublisher(cfg *config.Config, client *http.Client) publisher.Publisher {
	switch cfg.Publisher.Type {
	case "stdout":
		return publisher.NewStdoutPublisher()
	default:
		return publisher.NewTelegramPublisher(cfg.Publisher.Telegram.Token, cfg.Publisher.Telegram.ChatID, client)
	}
}
