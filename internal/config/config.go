package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type FetcherConfig struct {
	UserAgent string `yaml:"userAgent"`
	TimeoutMs int    `yaml:"timeoutMs"`
}

type RobotsConfig struct {
	Respect bool `yaml:"respect"`
}

type RodConfig struct {
	Enabled bool `yaml:"enabled"`
}

// AnalysisConfig bounds the entity extraction stage. Zero values fall
// back to the defaults in the entity package.
type AnalysisConfig struct {
	EntityTextLimit  int `yaml:"entityTextLimit"`
	EntitiesPerType  int `yaml:"entitiesPerType"`
	EntityDisplayCap int `yaml:"entityDisplayCap"`
	EntityMergedCap  int `yaml:"entityMergedCap"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"perMinute"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
	Model   string `yaml:"model"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

type GoogleLLMConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// InsightsConfig controls the optional LLM insights collaborator. When
// Enabled is false the analyze pipeline never calls out to a provider.
type InsightsConfig struct {
	Enabled         bool            `yaml:"enabled"`
	DefaultProvider string          `yaml:"defaultProvider"`
	OpenAI          OpenAIConfig    `yaml:"openai"`
	Anthropic       AnthropicConfig `yaml:"anthropic"`
	Google          GoogleLLMConfig `yaml:"google"`
}

// RetentionConfig controls TTL deletion of stored reports so the
// database does not grow without bound over time.
type RetentionConfig struct {
	Enabled                bool `yaml:"enabled"`
	CleanupIntervalMinutes int  `yaml:"cleanupIntervalMinutes"`
	ReportDays             int  `yaml:"reportDays"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Robots    RobotsConfig    `yaml:"robots"`
	Rod       RodConfig       `yaml:"rod"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Insights  InsightsConfig  `yaml:"insights"`
	Retention RetentionConfig `yaml:"retention"`
}

func Load(path string) *Config {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open config file: %v", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config: %v", err)
	}

	cfg.applyEnv()
	return &cfg
}

// applyEnv fills secrets from the environment when the YAML leaves them
// empty, so credentials can live in .env instead of the config file.
func (c *Config) applyEnv() {
	if c.Database.DSN == "" {
		c.Database.DSN = os.Getenv("DATABASE_URL")
	}
	if c.Redis.URL == "" {
		c.Redis.URL = os.Getenv("REDIS_URL")
	}
	if c.Insights.OpenAI.APIKey == "" {
		c.Insights.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Insights.Anthropic.APIKey == "" {
		c.Insights.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.Insights.Google.APIKey == "" {
		c.Insights.Google.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
}
