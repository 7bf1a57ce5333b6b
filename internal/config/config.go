package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPTimeoutSeconds  int              `yaml:"http_timeout_seconds"`
	ModelTimeoutSeconds int              `yaml:"model_timeout_seconds"`
	Sources             SourcesConfig    `yaml:"sources"`
	Summarizer          SummarizerConfig `yaml:"summarizer"`
	Publisher           PublisherConfig  `yaml:"publisher"`
}

// SourcesConfig holds every content source as data, so swapping feed lists
// or categories never requires a code change.
type SourcesConfig struct {
	NewsFeeds           []string    `yaml:"news_feeds"`
	FeedLimit           int         `yaml:"feed_limit"`
	Subreddits          []Subreddit `yaml:"subreddits"`
	ArxivCategories     []string    `yaml:"arxiv_categories"`
	ArxivMaxResults     int         `yaml:"arxiv_max_results"`
	ProductHuntFeed     string      `yaml:"product_hunt_feed"`
	ProductHuntLimit    int         `yaml:"product_hunt_limit"`
	HackerNewsFeed      string      `yaml:"hacker_news_feed"`
	HackerNewsLimit     int         `yaml:"hacker_news_limit"`
	PapersWithCodeFeed  string      `yaml:"papers_with_code_feed"`
	PapersWithCodeLimit int         `yaml:"papers_with_code_limit"`
	GitHubTopics        []string    `yaml:"github_topics"`
	GitHubPerTopic      int         `yaml:"github_per_topic"`
}

type Subreddit struct {
	Name  string `yaml:"name"`
	Limit int    `yaml:"limit"`
}

type SummarizerConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
}

type PublisherConfig struct {
	Type     string         `yaml:"type"`
	Telegram TelegramConfig `yaml:"telegram"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID string `yaml:"chat_id"`
}

// HTTPTimeout is the per-request timeout for every source and publisher call.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// ModelTimeout is the timeout for the generation call, which dominates latency.
func (c *Config) ModelTimeout() time.Duration {
	return time.Duration(c.ModelTimeoutSeconds) * time.Second
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
// Unset variables are left as-is so validation can report them by name.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.HTTPTimeoutSeconds == 0 {
		cfg.HTTPTimeoutSeconds = 10
	}
	if cfg.ModelTimeoutSeconds == 0 {
		cfg.ModelTimeoutSeconds = 120
	}
	if cfg.Sources.FeedLimit == 0 {
		cfg.Sources.FeedLimit = 2
	}
	if cfg.Sources.ArxivMaxResults == 0 {
		cfg.Sources.ArxivMaxResults = 3
	}
	if cfg.Sources.ProductHuntFeed == "" {
		cfg.Sources.ProductHuntFeed = "https://www.producthunt.com/feed"
	}
	if cfg.Sources.ProductHuntLimit == 0 {
		cfg.Sources.ProductHuntLimit = 3
	}
	if cfg.Sources.HackerNewsFeed == "" {
		cfg.Sources.HackerNewsFeed = "https://hnrss.org/newest?q=AI"
	}
	if cfg.Sources.HackerNewsLimit == 0 {
		cfg.Sources.HackerNewsLimit = 5
	}
	if cfg.Sources.PapersWithCodeFeed == "" {
		cfg.Sources.PapersWithCodeFeed = "https://paperswithcode.com/feeds/recent-releases"
	}
	if cfg.Sources.PapersWithCodeLimit == 0 {
		cfg.Sources.PapersWithCodeLimit = 3
	}
	if cfg.Sources.GitHubPerTopic == 0 {
		cfg.Sources.GitHubPerTopic = 2
	}
	for i := range cfg.Sources.Subreddits {
		if cfg.Sources.Subreddits[i].Limit == 0 {
			cfg.Sources.Subreddits[i].Limit = 3
		}
	}
	if cfg.Summarizer.Model == "" {
		cfg.Summarizer.Model = "gemini-2.5-flash"
	}
	if cfg.Publisher.Type == "" {
		cfg.Publisher.Type = "telegram"
	}
}

// requireSecret rejects empty values and values whose ${VAR} reference was
// never resolved, so a missing credential fails here instead of as an opaque
// authentication error downstream.
func requireSecret(field, value, envHint string) error {
	if value == "" {
		return fmt.Errorf("config: %s is required (set %s env var)", field, envHint)
	}
	if strings.HasPrefix(value, "${") {
		return fmt.Errorf("config: %s references unset environment variable %s", field, value)
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("config: http_timeout_seconds must be positive, got %d", cfg.HTTPTimeoutSeconds)
	}
	if cfg.ModelTimeoutSeconds < 0 {
		return fmt.Errorf("config: model_timeout_seconds must be positive, got %d", cfg.ModelTimeoutSeconds)
	}
	if err := requireSecret("summarizer.api_key", cfg.Summarizer.APIKey, "GEMINI_API_KEY"); err != nil {
		return err
	}
	switch cfg.Publisher.Type {
	case "telegram":
		if err := requireSecret("publisher.telegram.token", cfg.Publisher.Telegram.Token, "TELEGRAM_TOKEN"); err != nil {
			return err
		}
		if err := requireSecret("publisher.telegram.chat_id", cfg.Publisher.Telegram.ChatID, "TELEGRAM_CHAT_ID"); err != nil {
			return err
		}
	case "stdout":
	default:
		return fmt.Errorf("config: unsupported publisher type %q (supported: telegram, stdout)", cfg.Publisher.Type)
	}
	for _, sub := range cfg.Sources.Subreddits {
		if sub.Name == "" {
			return fmt.Errorf("config: sources.subreddits entries need a name")
		}
		if sub.Limit < 0 {
			return fmt.Errorf("config: subreddit %s limit must be positive, got %d", sub.Name, sub.Limit)
		}
	}
	return nil
}

// Load reads the config file, expands environment variables, applies defaults,
// and validates the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
