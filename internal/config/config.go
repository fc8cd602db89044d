package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/davidaganov/polyglot-keeper/internal/syncer"
)

// Config is the merged project configuration.
type Config struct {
	SourceLocale string
	Locales      []string
	Tracking     syncer.TrackingMode
	Force        bool
	LockFile     string

	// TreesPath is the directory holding <locale>.json tree files. Empty
	// disables tree sync.
	TreesPath string
	// MarkdownPath is the directory holding per-locale markdown trees.
	// Empty disables markdown sync.
	MarkdownPath    string
	MarkdownExclude []string

	ProviderName  string
	ProviderModel string

	BatchSize  int
	BatchDelay time.Duration
	RetryMax   int
	RetryDelay time.Duration

	CacheEnabled bool
	CachePath    string
}

// SetDefaults registers the configuration defaults with viper. Call it
// before ReadInConfig so file values can override them.
func SetDefaults() {
	viper.SetDefault("tracking", "on")
	viper.SetDefault("lock_file", "polyglot-keeper.lock.json")
	viper.SetDefault("provider.name", "openai")
	viper.SetDefault("batch.size", 50)
	viper.SetDefault("batch.delay", "1s")
	viper.SetDefault("retry.max", 3)
	viper.SetDefault("retry.delay", "10s")
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.path", ".polyglot-keeper.cache.db")
}

// Load builds a Config from the current viper state and validates it.
// Defaults are registered first, so calling SetDefaults beforehand is
// optional.
func Load() (*Config, error) {
	SetDefaults()
	cfg := &Config{
		SourceLocale:    viper.GetString("source_locale"),
		Locales:         viper.GetStringSlice("locales"),
		Force:           viper.GetBool("force"),
		LockFile:        viper.GetString("lock_file"),
		TreesPath:       viper.GetString("trees.path"),
		MarkdownPath:    viper.GetString("markdown.path"),
		MarkdownExclude: viper.GetStringSlice("markdown.exclude"),
		ProviderName:    viper.GetString("provider.name"),
		ProviderModel:   viper.GetString("provider.model"),
		BatchSize:       viper.GetInt("batch.size"),
		BatchDelay:      viper.GetDuration("batch.delay"),
		RetryMax:        viper.GetInt("retry.max"),
		RetryDelay:      viper.GetDuration("retry.delay"),
		CacheEnabled:    viper.GetBool("cache.enabled"),
		CachePath:       viper.GetString("cache.path"),
	}

	mode, err := syncer.ParseTrackingMode(viper.GetString("tracking"))
	if err != nil {
		return nil, err
	}
	cfg.Tracking = mode

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SourceLocale == "" {
		return fmt.Errorf("source_locale is required")
	}
	if len(c.Locales) == 0 {
		return fmt.Errorf("at least one target locale is required")
	}
	for _, locale := range c.Locales {
		if locale == "" {
			return fmt.Errorf("empty locale in locales list")
		}
	}
	if c.TreesPath == "" && c.MarkdownPath == "" {
		return fmt.Errorf("nothing to sync: set trees.path or markdown.path")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch.size must be at least 1")
	}
	if c.RetryMax < 0 {
		return fmt.Errorf("retry.max must not be negative")
	}
	return nil
}
