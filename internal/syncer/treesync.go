package syncer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidaganov/polyglot-keeper/internal/lockfile"
	"github.com/davidaganov/polyglot-keeper/internal/tree"
)

// TreeSyncer synchronizes per-locale JSON tree files against the primary
// locale's file.
type TreeSyncer struct {
	Dir          string
	SourceLocale string
	Locales      []string
	Mode         TrackingMode
	Force        bool
	DryRun       bool
	Engine       *Engine
	Decisions    DecisionProvider
}

// Run syncs every target locale and returns the per-locale stats plus the
// snapshot to persist. The caller writes the snapshot; on a dry run it
// must not.
func (s *TreeSyncer) Run(ctx context.Context, snap lockfile.Snapshot) (map[string]*Stats, lockfile.Snapshot, error) {
	sourcePath := filepath.Join(s.Dir, s.SourceLocale+".json")
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, snap, fmt.Errorf("failed to read primary translation file %s: %w", sourcePath, err)
	}
	source, err := tree.Parse(data)
	if err != nil {
		return nil, snap, fmt.Errorf("failed to parse %s: %w", sourcePath, err)
	}

	allLeaves := source.Flatten()
	sourceSet := make(map[string]bool, len(allLeaves))
	for _, path := range allLeaves {
		sourceSet[path] = true
	}

	// Only string leaves are translatable units; opaque leaves pass
	// through untouched.
	var units []string
	values := make(map[string]string)
	for _, path := range allLeaves {
		if value, ok := source.Get(path); ok {
			units = append(units, path)
			values[path] = value
		}
	}

	var changed []string
	if !s.Force && s.Mode != TrackingOff && !snap.Empty() {
		changed = Changed(units, values, snap)
	}

	resolution, err := Resolve(s.Mode, "key", changed, snap.Values, values, s.Decisions)
	if err != nil {
		return nil, snap, err
	}
	retranslateSet := make(map[string]bool, len(resolution.Retranslate))
	for _, unit := range resolution.Retranslate {
		retranslateSet[unit] = true
	}

	report := make(map[string]*Stats)
	failed := make(map[string]bool)
	for _, locale := range s.Locales {
		if locale == s.SourceLocale {
			continue
		}
		stats := &Stats{}
		report[locale] = stats
		localeFailed, err := s.syncLocale(ctx, locale, source, units, values, sourceSet, retranslateSet, stats)
		for unit := range localeFailed {
			failed[unit] = true
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error syncing %s: %v\n", locale, err)
			stats.Failed += len(units)
		}
	}

	return report, NextSnapshot(snap, units, values, resolution, failed, s.Force), nil
}

// syncLocale reconciles one target file. It returns the units that were
// owed a translation but did not make it into the target this run; the
// caller keeps their previous snapshot values so they are retried.
func (s *TreeSyncer) syncLocale(ctx context.Context, locale string, source *tree.Node, units []string, values map[string]string, sourceSet, retranslateSet map[string]bool, stats *Stats) (map[string]bool, error) {
	targetPath := filepath.Join(s.Dir, locale+".json")

	target := tree.NewObject()
	existing, readErr := os.ReadFile(targetPath)
	if readErr == nil {
		var err error
		target, err = tree.Parse(existing)
		if err != nil {
			return setOf(units), fmt.Errorf("failed to parse %s: %w", targetPath, err)
		}
		// A valid but non-object root has no keys to reconcile; rebuild
		// the file from scratch.
		if target.Kind() != tree.KindObject {
			target = tree.NewObject()
		}
	} else if !os.IsNotExist(readErr) {
		return setOf(units), fmt.Errorf("failed to read %s: %w", targetPath, readErr)
	}

	for _, unit := range Obsolete(target.Flatten(), sourceSet) {
		target.Delete(unit)
		stats.Removed++
	}

	exists := func(unit string) bool {
		_, ok := target.Get(unit)
		return ok
	}
	missing := Missing(units, exists)
	missingSet := make(map[string]bool, len(missing))
	for _, unit := range missing {
		missingSet[unit] = true
	}
	stats.Missing = len(missing)

	var toTranslate []string
	for _, unit := range units {
		switch {
		case missingSet[unit]:
			toTranslate = append(toTranslate, unit)
		case s.Force, retranslateSet[unit]:
			toTranslate = append(toTranslate, unit)
		}
	}

	if s.DryRun {
		fmt.Printf("%s: would translate %d new and %d existing unit(s), remove %d\n",
			locale, len(missing), len(toTranslate)-len(missing), stats.Removed)
		return nil, nil
	}

	if len(toTranslate) > 0 {
		fmt.Printf("\nTranslating %d unit(s) -> %s\n", len(toTranslate), locale)
	}
	result := s.Engine.Translate(ctx, toTranslate, values, locale)
	for unit, translated := range result.Translated {
		target.Set(unit, translated)
		if missingSet[unit] {
			stats.Translated++
		} else {
			stats.Updated++
		}
	}
	stats.Failed += result.Failed

	failed := make(map[string]bool)
	for _, unit := range toTranslate {
		if _, ok := result.Translated[unit]; !ok {
			failed[unit] = true
		}
	}

	reordered := tree.ReorderToMatchSource(source, target)
	encoded, err := reordered.Encode()
	if err != nil {
		return setOf(toTranslate), fmt.Errorf("failed to encode %s: %w", targetPath, err)
	}
	if readErr == nil && bytes.Equal(encoded, existing) {
		return failed, nil
	}
	if err := os.WriteFile(targetPath, encoded, 0644); err != nil {
		return setOf(toTranslate), fmt.Errorf("failed to write %s: %w", targetPath, err)
	}
	return failed, nil
}

func setOf(units []string) map[string]bool {
	set := make(map[string]bool, len(units))
	for _, unit := range units {
		set[unit] = true
	}
	return set
}
