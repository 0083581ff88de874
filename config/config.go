package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the bot process.
type Config struct {
	Discord DiscordConfig `mapstructure:"discord"`
	LLM     LLMConfig     `mapstructure:"llm"`
	History HistoryConfig `mapstructure:"history"`
	Journal JournalConfig `mapstructure:"journal"`
	Search  SearchConfig  `mapstructure:"search"`
	Ops     OpsConfig     `mapstructure:"ops"`
}

// DiscordConfig contains gateway authentication settings.
type DiscordConfig struct {
	Token string `mapstructure:"token"`
}

// LLMConfig describes the completion backend.
type LLMConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// HistoryConfig controls the per-user conversation context window.
type HistoryConfig struct {
	Limit int         `mapstructure:"limit"`
	Store string      `mapstructure:"store"` // inmemory or redis
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig is only consulted when history.store is "redis".
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JournalConfig points at the durable conversation log file.
type JournalConfig struct {
	Path string `mapstructure:"path"`
}

// SearchConfig describes the web search backend.
type SearchConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// OpsConfig controls the operational HTTP surface (health, metrics).
type OpsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Discord.Token) == "" {
		return fmt.Errorf("discord.token is required (set YAPPER_DISCORD_TOKEN)")
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history.limit must be > 0")
	}
	switch c.History.Store {
	case "inmemory", "redis":
	default:
		return fmt.Errorf("history.store must be inmemory or redis, got %q", c.History.Store)
	}
	if c.History.Store == "redis" && c.History.Redis.Addr == "" {
		return fmt.Errorf("history.redis.addr is required when history.store is redis")
	}
	if c.Ops.Enabled && strings.TrimSpace(c.Ops.Address) == "" {
		return fmt.Errorf("ops.address is required when ops is enabled")
	}
	return nil
}

// LoadConfig loads config from an optional file, with YAPPER_* environment
// variables taking precedence over file values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Empty default so AutomaticEnv can bind YAPPER_DISCORD_TOKEN without a file.
	v.SetDefault("discord.token", "")
	v.SetDefault("llm.base_url", "http://localhost:11434/api/generate")
	v.SetDefault("llm.model", "llama3.2:3b")
	v.SetDefault("llm.timeout", 120*time.Second)
	v.SetDefault("history.limit", 10)
	v.SetDefault("history.store", "inmemory")
	v.SetDefault("history.redis.addr", "")
	v.SetDefault("history.redis.db", 0)
	v.SetDefault("journal.path", "conversation_history.json")
	v.SetDefault("search.base_url", "https://html.duckduckgo.com/html/")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("ops.enabled", false)
	v.SetDefault("ops.address", ":9090")

	if path == "" {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("YAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; environment plus defaults is a valid setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
