package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	// Credentials. All optional: collectors needing one report themselves
	// unavailable when it is absent.
	GitHubToken        string `mapstructure:"github_token"`
	TwitterBearerToken string `mapstructure:"twitter_bearer_token"`
	RedditClientID     string `mapstructure:"reddit_client_id"`
	RedditClientSecret string `mapstructure:"reddit_client_secret"`
	RedditUserAgent    string `mapstructure:"reddit_user_agent"`
	NewsAPIKey         string `mapstructure:"newsapi_key"`
	DiscordBotToken    string `mapstructure:"discord_bot_token"`
	DiscordGuildID     string `mapstructure:"discord_guild_id"`
	MoltbookToken      string `mapstructure:"moltbook_token"`
	YouTubeAPIKey      string `mapstructure:"youtube_api_key"`
	EventbriteToken    string `mapstructure:"eventbrite_token"`
	AnthropicAPIKey    string `mapstructure:"anthropic_api_key"`
	ButtondownAPIKey   string `mapstructure:"buttondown_api_key"`

	ClaudeModel string `mapstructure:"claude_model"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout"`
	MaxRetries            int           `mapstructure:"max_retries"`
	RetryBackoffSeconds   int64         `mapstructure:"retry_backoff"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	RetryBackoff          time.Duration `mapstructure:"-"`

	StateType       string `mapstructure:"state_type"`
	StateFile       string `mapstructure:"state_file"`
	MaxStateEntries int    `mapstructure:"max_state_entries"`

	SectionsFile   string `mapstructure:"sections_file"`
	PublishersFile string `mapstructure:"publishers_file"`

	TrendingThreshold int `mapstructure:"trending_threshold"`
	HotThreshold      int `mapstructure:"hot_threshold"`

	SiteURL      string `mapstructure:"site_url"`
	DocsDir      string `mapstructure:"docs_dir"`
	IssuesDir    string `mapstructure:"issues_dir"`
	TemplatesDir string `mapstructure:"templates_dir"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "claw-digest")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("reddit_user_agent", "ClawDigest/1.0")
	v.SetDefault("discord_guild_id", "")
	v.SetDefault("claude_model", "claude-sonnet-4-20250514")
	v.SetDefault("request_timeout", 30) // seconds
	v.SetDefault("max_retries", 3)
	v.SetDefault("retry_backoff", 2) // seconds, doubled per attempt
	v.SetDefault("state_type", "json")
	v.SetDefault("state_file", "./data/state.json")
	v.SetDefault("max_state_entries", 500)
	v.SetDefault("sections_file", "")
	v.SetDefault("publishers_file", "")
	v.SetDefault("trending_threshold", 100)
	v.SetDefault("hot_threshold", 30)
	v.SetDefault("site_url", "")
	v.SetDefault("docs_dir", "./docs")
	v.SetDefault("issues_dir", "./docs/issues")
	v.SetDefault("templates_dir", "./templates")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout (must be positive seconds)")
	}
	if cfg.MaxRetries <= 0 {
		return nil, fmt.Errorf("invalid max_retries (must be positive)")
	}
	if cfg.RetryBackoffSeconds <= 0 {
		return nil, fmt.Errorf("invalid retry_backoff (must be positive seconds)")
	}
	if cfg.MaxStateEntries <= 0 {
		return nil, fmt.Errorf("invalid max_state_entries (must be positive)")
	}
	if cfg.HotThreshold <= 0 || cfg.TrendingThreshold <= cfg.HotThreshold {
		return nil, fmt.Errorf("invalid tier thresholds (need trending_threshold > hot_threshold > 0)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	cfg.RetryBackoff = time.Duration(cfg.RetryBackoffSeconds) * time.Second

	return &cfg, nil
}
