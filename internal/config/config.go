package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// BrowserConfig controls the shared headless browser session.
type BrowserConfig struct {
	// Headful opens a visible browser window; useful when debugging selector
	// breakage against a live site.
	Headful  bool   `mapstructure:"headful"`
	ExecPath string `mapstructure:"exec_path"`
}

// SourceConfig controls a single extraction target.
type SourceConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	WaitTimeout string `mapstructure:"wait_timeout"` // duration string
}

// MicroblogConfig controls the microblog source and its mirror fallback.
type MicroblogConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	WaitTimeout       string `mapstructure:"wait_timeout"`
	MirrorURL         string `mapstructure:"mirror_url"`
	MirrorWaitTimeout string `mapstructure:"mirror_wait_timeout"`
}

// SourcesConfig groups the per-platform extraction targets.
type SourcesConfig struct {
	YouTube SourceConfig    `mapstructure:"youtube"`
	Reddit  SourceConfig    `mapstructure:"reddit"`
	Twitter MicroblogConfig `mapstructure:"twitter"`
}

// CacheConfig holds TTLs for the write-through cache.
type CacheConfig struct {
	SearchTTL  string `mapstructure:"search_ttl"`  // full aggregates
	SummaryTTL string `mapstructure:"summary_ttl"` // standalone summaries
}

// OpenAIConfig enables the optional AI trend narrative when APIKey is set.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Browser BrowserConfig `mapstructure:"browser"`
	Sources SourcesConfig `mapstructure:"sources"`
	Cache   CacheConfig   `mapstructure:"cache"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
if c.Sources.YouTube.BaseURL == "" {
		c.Sources.YouTube.BaseURL = "https://www.youtube.com"
	}
	if c.Sources.YouTube.WaitTimeout == "" {
		c.Sources.YouTube.WaitTimeout = "20s"
	}
	if c.Sources.Reddit.BaseURL == "" {
		c.Sources.Reddit.BaseURL = "https://www.reddit.com"
	}
	if c.Sources.Reddit.WaitTimeout == "" {
		c.Sources.Reddit.WaitTimeout = "5s"
	}
	if c.Sources.Twitter.BaseURL == "" {
		c.Sources.Twitter.BaseURL = "https://twitter.com"
	}
	if c.Sources.Twitter.WaitTimeout == "" {
		c.Sources.Twitter.WaitTimeout = "10s"
	}
	if c.Sources.Twitter.MirrorURL == "" {
		c.Sources.Twitter.MirrorURL = "https://nitter.net"
	}
	if c.Sources.Twitter.MirrorWaitTimeout == "" {
		c.Sources.Twitter.MirrorWaitTimeout = "8s"
	}
	if c.Cache.SearchTTL == "" {
		c.Cache.SearchTTL = "1h"
	}
	if c.Cache.SummaryTTL == "" {
		c.Cache.SummaryTTL = "24h"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
}
