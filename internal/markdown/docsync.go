package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davidaganov/polyglot-keeper/internal/lockfile"
	"github.com/davidaganov/polyglot-keeper/internal/syncer"
)

// DocSyncer synchronizes per-locale markdown directories against the
// primary locale's directory. Each document is one unit, identified by its
// path relative to the locale directory and tracked by content hash.
type DocSyncer struct {
	Dir          string
	SourceLocale string
	Locales      []string
	Exclude      []string
	Mode         syncer.TrackingMode
	Force        bool
	DryRun       bool
	Engine       *syncer.Engine
	Decisions    syncer.DecisionProvider
}

// Run syncs every target locale and returns the per-locale stats plus the
// snapshot to persist.
func (s *DocSyncer) Run(ctx context.Context, snap lockfile.Snapshot) (map[string]*syncer.Stats, lockfile.Snapshot, error) {
	sourceDir := filepath.Join(s.Dir, s.SourceLocale)
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return nil, snap, fmt.Errorf("primary content directory not found: %s", sourceDir)
	}

	exclude, err := newExcluder(s.Exclude)
	if err != nil {
		return nil, snap, err
	}

	units, err := enumerateDocs(sourceDir, exclude)
	if err != nil {
		return nil, snap, fmt.Errorf("failed to enumerate %s: %w", sourceDir, err)
	}

	contents := make(map[string]string, len(units))
	hashes := make(map[string]string, len(units))
	sourceSet := make(map[string]bool, len(units))
	for _, unit := range units {
		data, err := os.ReadFile(filepath.Join(sourceDir, filepath.FromSlash(unit)))
		if err != nil {
			return nil, snap, fmt.Errorf("failed to read %s: %w", unit, err)
		}
		contents[unit] = string(data)
		hashes[unit] = contentHash(data)
		sourceSet[unit] = true
	}

	var changed []string
	if !s.Force && s.Mode != syncer.TrackingOff && !snap.Empty() {
		changed = syncer.Changed(units, hashes, snap)
	}

	resolution, err := syncer.Resolve(s.Mode, "file", changed, snap.Values, hashes, s.Decisions)
	if err != nil {
		return nil, snap, err
	}
	retranslateSet := make(map[string]bool, len(resolution.Retranslate))
	for _, unit := range resolution.Retranslate {
		retranslateSet[unit] = true
	}

	report := make(map[string]*syncer.Stats)
	failed := make(map[string]bool)
	for _, locale := range s.Locales {
		if locale == s.SourceLocale {
			continue
		}
		stats := &syncer.Stats{}
		report[locale] = stats
		for unit := range s.syncLocale(ctx, locale, units, contents, sourceSet, retranslateSet, exclude, stats) {
			failed[unit] = true
		}
	}

	return report, syncer.NextSnapshot(snap, units, hashes, resolution, failed, s.Force), nil
}

// syncLocale reconciles one locale directory. It returns the units that
// were owed a translation but did not make it onto disk this run; the
// caller keeps their previous snapshot values so they are retried.
func (s *DocSyncer) syncLocale(ctx context.Context, locale string, units []string, contents map[string]string, sourceSet, retranslateSet map[string]bool, exclude *excluder, stats *syncer.Stats) map[string]bool {
	failed := make(map[string]bool)
	targetDir := filepath.Join(s.Dir, locale)

	targetUnits, err := enumerateDocs(targetDir, exclude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing %s: %v\n", targetDir, err)
	}
	for _, unit := range syncer.Obsolete(targetUnits, sourceSet) {
		path := filepath.Join(targetDir, filepath.FromSlash(unit))
		if s.DryRun {
			fmt.Printf("%s: would remove %s\n", locale, unit)
			stats.Removed++
			continue
		}
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", path, err)
			continue
		}
		stats.Removed++
	}

	called := false
	for _, unit := range units {
		targetPath := filepath.Join(targetDir, filepath.FromSlash(unit))
		_, statErr := os.Stat(targetPath)
		exists := statErr == nil

		if exists && !s.Force && !retranslateSet[unit] {
			continue
		}
		if !exists {
			stats.Missing++
		}
		if s.DryRun {
			fmt.Printf("%s: would translate %s\n", locale, unit)
			continue
		}

		if called {
			s.pause(s.Engine.BatchDelay)
		}
		called = true

		fmt.Printf("Translating %s -> %s\n", unit, locale)
		translated, err := s.translateDoc(ctx, contents[unit], locale)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error translating %s for %s: %v\n", unit, locale, err)
			stats.Failed++
			failed[unit] = true
			continue
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", targetPath, err)
			stats.Failed++
			failed[unit] = true
			continue
		}
		if err := os.WriteFile(targetPath, []byte(translated), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", targetPath, err)
			stats.Failed++
			failed[unit] = true
			continue
		}
		if exists {
			stats.Updated++
		} else {
			stats.Translated++
		}
	}
	return failed
}

// translateDoc sends one whole document through the engine's retry loop,
// with fenced code blocks shielded behind placeholder tokens.
func (s *DocSyncer) translateDoc(ctx context.Context, content, locale string) (string, error) {
	protected, blocks := protectFences(content)

	out, err := s.Engine.Call(ctx, map[string]string{"content": protected}, locale)
	if err != nil {
		return "", err
	}

	text, ok := out["content"]
	if !ok {
		// Lenient about providers that rename the single key.
		for _, value := range out {
			text, ok = value, true
			break
		}
	}
	if !ok {
		return "", fmt.Errorf("empty translation response")
	}

	return restoreFences(text, blocks), nil
}

func (s *DocSyncer) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	if s.Engine.Sleep != nil {
		s.Engine.Sleep(d)
		return
	}
	time.Sleep(d)
}

// enumerateDocs lists the markdown files under dir as sorted slash-relative
// paths, skipping excluded ones. A missing dir yields no files.
func enumerateDocs(dir string, exclude *excluder) ([]string, error) {
	var units []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		unit := filepath.ToSlash(rel)
		if exclude.Match(unit) {
			return nil
		}
		units = append(units, unit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
