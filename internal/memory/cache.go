package memory

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/davidaganov/polyglot-keeper/internal/translate"
)

// Cache is a translation memory keyed by (source text, target locale).
type Cache struct {
	db *sql.DB
}

// Open opens or creates the translation memory at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation memory: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS translations (
		source_text TEXT NOT NULL,
		locale      TEXT NOT NULL,
		translated  TEXT NOT NULL,
		updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (source_text, locale)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create translations table: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get looks up a cached translation.
func (c *Cache) Get(sourceText, locale string) (string, bool) {
	var translated string
	err := c.db.QueryRow(
		"SELECT translated FROM translations WHERE source_text = ? AND locale = ?",
		sourceText, locale,
	).Scan(&translated)
	if err != nil {
		return "", false
	}
	return translated, true
}

// Put stores a translation, replacing any previous entry.
func (c *Cache) Put(sourceText, locale, translated string) error {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO translations (source_text, locale, translated) VALUES (?, ?, ?)",
		sourceText, locale, translated,
	)
	if err != nil {
		return fmt.Errorf("failed to store translation: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// WithCache wraps a provider so that cached units never reach the oracle.
// Only cache misses are forwarded; fresh results are stored on the way
// back. Cache write failures are ignored.
func WithCache(inner translate.Provider, cache *Cache) translate.Provider {
	return &cachingProvider{inner: inner, cache: cache}
}

type cachingProvider struct {
	inner translate.Provider
	cache *Cache
}

func (p *cachingProvider) TranslateBatch(ctx context.Context, batch map[string]string, targetLocale string) (map[string]string, error) {
	out := make(map[string]string, len(batch))
	misses := make(map[string]string)

	for key, value := range batch {
		if translated, ok := p.cache.Get(value, targetLocale); ok {
			out[key] = translated
		} else {
			misses[key] = value
		}
	}

	if len(misses) == 0 {
		return out, nil
	}

	fresh, err := p.inner.TranslateBatch(ctx, misses, targetLocale)
	if err != nil {
		return nil, err
	}
	for key, translated := range fresh {
		out[key] = translated
		if source, requested := misses[key]; requested {
			_ = p.cache.Put(source, targetLocale, translated)
		}
	}
	return out, nil
}
