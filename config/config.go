package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Completion CompletionConfig `mapstructure:"completion"`
	Search     SearchConfig     `mapstructure:"search"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Lexicon    LexiconConfig    `mapstructure:"lexicon"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Agent      AgentConfig      `mapstructure:"agent"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// CompletionConfig holds the language-completion service configuration.
// An empty API key runs the agent on its deterministic fallbacks.
type CompletionConfig struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// SearchConfig holds web search configuration
type SearchConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	EngineID    string        `mapstructure:"engine_id"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ResultCount int           `mapstructure:"result_count"`
}

// CatalogConfig holds catalog source configuration
type CatalogConfig struct {
	Type string `mapstructure:"type"` // "json" or "sqlite"
	Path string `mapstructure:"path"`
}

// LexiconConfig points at an optional brand lexicon file
type LexiconConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP  int `mapstructure:"per_ip"` // requests per minute per client IP
	Search int `mapstructure:"search"` // outgoing search requests per minute
}

// AgentConfig holds the request pipeline configuration
type AgentConfig struct {
	MaxQueryLength   int           `mapstructure:"max_query_length"`
	HistoryLimit     int           `mapstructure:"history_limit"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	ClassifyTimeout  time.Duration `mapstructure:"classify_timeout"`
	MatchTimeout     time.Duration `mapstructure:"match_timeout"`
	SearchTimeout    time.Duration `mapstructure:"search_timeout"`
	SynthesisTimeout time.Duration `mapstructure:"synthesis_timeout"`
	DisableIndex     bool          `mapstructure:"disable_index"`
	IntroKeywords    []string      `mapstructure:"intro_keywords"`
	IntroMessage     string        `mapstructure:"intro_message"`
}

// Load loads configuration from the .env file, environment variables and
// config files, in increasing order of precedence: defaults, file, env.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricelens/")

	// PRICELENS_SERVER_PORT overrides server.port
	v.SetEnvPrefix("PRICELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	config.Server.AllowedOrigins = splitList(config.Server.AllowedOrigins)
	config.Agent.IntroKeywords = splitList(config.Agent.IntroKeywords)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory when present. Variables
// already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values. Every key gets a default so
// that AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Completion defaults
	v.SetDefault("completion.provider", "deepseek")
	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.model", "")
	v.SetDefault("completion.timeout", "30s")

	// Search defaults
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.engine_id", "")
	v.SetDefault("search.base_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("search.timeout", "10s")
	v.SetDefault("search.result_count", 10)

	// Catalog defaults
	v.SetDefault("catalog.type", "json")
	v.SetDefault("catalog.path", "data/products.json")

	v.SetDefault("lexicon.path", "")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "6h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.search", 100)

	// Agent defaults
	v.SetDefault("agent.max_query_length", 300)
	v.SetDefault("agent.history_limit", 12)
	v.SetDefault("agent.request_timeout", "60s")
	v.SetDefault("agent.classify_timeout", "15s")
	v.SetDefault("agent.match_timeout", "2s")
	v.SetDefault("agent.search_timeout", "10s")
	v.SetDefault("agent.synthesis_timeout", "30s")
	v.SetDefault("agent.disable_index", false)
	v.SetDefault("agent.intro_keywords", []string{})
	v.SetDefault("agent.intro_message", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log format must be 'console' or 'json', got: %s", config.Log.Format)
	}

	if config.Catalog.Type != "json" && config.Catalog.Type != "sqlite" {
		return fmt.Errorf("catalog type must be 'json' or 'sqlite', got: %s", config.Catalog.Type)
	}
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set PRICELENS_CATALOG_PATH)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}
	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if (config.Search.APIKey == "") != (config.Search.EngineID == "") {
		return fmt.Errorf("search api key and engine id must be set together")
	}
	if config.Search.ResultCount < 1 || config.Search.ResultCount > 10 {
		return fmt.Errorf("search result count must be between 1 and 10, got: %d", config.Search.ResultCount)
	}

	if config.Agent.MaxQueryLength <= 0 {
		return fmt.Errorf("agent max query length must be positive, got: %d", config.Agent.MaxQueryLength)
	}
	if config.Agent.HistoryLimit < 0 {
		return fmt.Errorf("agent history limit must not be negative, got: %d", config.Agent.HistoryLimit)
	}

	return nil
}

// splitList expands comma-separated entries, which is how list values arrive
// from environment variables.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// SearchConfigured reports whether online search credentials are present.
func (c *Config) SearchConfigured() bool {
	return c.Search.APIKey != "" && c.Search.EngineID != ""
}

// CompletionConfigured reports whether a completion API key is present.
func (c *Config) CompletionConfigured() bool {
	return c.Completion.APIKey != ""
}
