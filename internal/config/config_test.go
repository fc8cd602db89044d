package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/davidaganov/polyglot-keeper/internal/syncer"
)

func setupViper(t *testing.T, values map[string]interface{}) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	for key, value := range values {
		viper.Set(key, value)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setupViper(t, map[string]interface{}{
		"source_locale": "en",
		"locales":       []string{"en", "de"},
		"trees.path":    "locales",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Tracking", cfg.Tracking, syncer.TrackingOn},
		{"LockFile", cfg.LockFile, "polyglot-keeper.lock.json"},
		{"ProviderName", cfg.ProviderName, "openai"},
		{"BatchSize", cfg.BatchSize, 50},
		{"BatchDelay", cfg.BatchDelay, time.Second},
		{"RetryMax", cfg.RetryMax, 3},
		{"RetryDelay", cfg.RetryDelay, 10 * time.Second},
		{"CacheEnabled", cfg.CacheEnabled, true},
		{"CachePath", cfg.CachePath, ".polyglot-keeper.cache.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setupViper(t, map[string]interface{}{
		"source_locale":    "en",
		"locales":          []string{"en", "fr"},
		"markdown.path":    "docs",
		"markdown.exclude": []string{"drafts/**"},
		"tracking":         "carefully",
		"force":            true,
		"provider.name":    "gemini",
		"provider.model":   "gemini-2.0-flash",
		"batch.size":       10,
		"batch.delay":      "500ms",
		"retry.max":        1,
		"cache.enabled":    false,
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Tracking != syncer.TrackingCarefully {
		t.Errorf("Tracking = %v, want carefully", cfg.Tracking)
	}
	if !cfg.Force {
		t.Error("Force should be set")
	}
	if cfg.ProviderName != "gemini" || cfg.ProviderModel != "gemini-2.0-flash" {
		t.Errorf("provider = %s/%s", cfg.ProviderName, cfg.ProviderModel)
	}
	if cfg.BatchSize != 10 || cfg.BatchDelay != 500*time.Millisecond {
		t.Errorf("batch = %d/%v", cfg.BatchSize, cfg.BatchDelay)
	}
	if cfg.CacheEnabled {
		t.Error("cache should be disabled")
	}
	if len(cfg.MarkdownExclude) != 1 || cfg.MarkdownExclude[0] != "drafts/**" {
		t.Errorf("MarkdownExclude = %v", cfg.MarkdownExclude)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]interface{}
	}{
		{
			"missing source locale",
			map[string]interface{}{
				"locales":    []string{"de"},
				"trees.path": "locales",
			},
		},
		{
			"no target locales",
			map[string]interface{}{
				"source_locale": "en",
				"trees.path":    "locales",
			},
		},
		{
			"nothing to sync",
			map[string]interface{}{
				"source_locale": "en",
				"locales":       []string{"de"},
			},
		},
		{
			"invalid tracking mode",
			map[string]interface{}{
				"source_locale": "en",
				"locales":       []string{"de"},
				"trees.path":    "locales",
				"tracking":      "sometimes",
			},
		},
		{
			"zero batch size",
			map[string]interface{}{
				"source_locale": "en",
				"locales":       []string{"de"},
				"trees.path":    "locales",
				"batch.size":    0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupViper(t, tt.values)
			if _, err := Load(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
