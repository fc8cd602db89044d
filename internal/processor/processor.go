package processor

import (
	"context"
	"fmt"
	"os"

	"github.com/davidaganov/polyglot-keeper/internal/cli"
	"github.com/davidaganov/polyglot-keeper/internal/config"
	"github.com/davidaganov/polyglot-keeper/internal/lockfile"
	"github.com/davidaganov/polyglot-keeper/internal/markdown"
	"github.com/davidaganov/polyglot-keeper/internal/memory"
	"github.com/davidaganov/polyglot-keeper/internal/review"
	"github.com/davidaganov/polyglot-keeper/internal/syncer"
	"github.com/davidaganov/polyglot-keeper/internal/translate"
)

// Processor runs one full synchronization pass
type Processor struct {
	flags *cli.Flags
	cfg   *config.Config
}

// NewProcessor creates a new sync processor from the merged configuration
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if len(flags.Locales) > 0 {
		cfg.Locales, err = restrictLocales(cfg.Locales, flags.Locales)
		if err != nil {
			return nil, err
		}
	}
	if flags.NoCache {
		cfg.CacheEnabled = false
	}
	if flags.Force {
		cfg.Force = true
	}

	return &Processor{flags: flags, cfg: cfg}, nil
}

// Run synchronizes all configured content kinds and persists the updated
// lock file. Per-unit translation failures are reported in the summary,
// not via the error return; failed units stay missing and are retried on
// the next run.
func (p *Processor) Run(ctx context.Context) error {
	oracle, cache, err := p.buildOracle()
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	engine := &syncer.Engine{
		Oracle:     oracle,
		BatchSize:  p.cfg.BatchSize,
		BatchDelay: p.cfg.BatchDelay,
		RetryDelay: p.cfg.RetryDelay,
		MaxRetries: p.cfg.RetryMax,
	}
	decisions := review.NewPrompter()
	lock := lockfile.NewStore(p.cfg.LockFile)
	pending := make(map[string]lockfile.Snapshot)

	if p.cfg.TreesPath != "" && !p.flags.SkipTrees {
		snap, err := lock.Load(lockfile.KindTree)
		if err != nil {
			return err
		}
		s := &syncer.TreeSyncer{
			Dir:          p.cfg.TreesPath,
			SourceLocale: p.cfg.SourceLocale,
			Locales:      p.cfg.Locales,
			Mode:         p.cfg.Tracking,
			Force:        p.cfg.Force,
			DryRun:       p.flags.DryRun,
			Engine:       engine,
			Decisions:    decisions,
		}
		report, next, err := s.Run(ctx, snap)
		if err != nil {
			return err
		}
		syncer.PrintSummary("Tree Sync Summary", p.cfg.Locales, report)
		pending[lockfile.KindTree] = next
	}

	if p.cfg.MarkdownPath != "" && !p.flags.SkipMarkdown {
		snap, err := lock.Load(lockfile.KindMarkdown)
		if err != nil {
			return err
		}
		s := &markdown.DocSyncer{
			Dir:          p.cfg.MarkdownPath,
			SourceLocale: p.cfg.SourceLocale,
			Locales:      p.cfg.Locales,
			Exclude:      p.cfg.MarkdownExclude,
			Mode:         p.cfg.Tracking,
			Force:        p.cfg.Force,
			DryRun:       p.flags.DryRun,
			Engine:       engine,
			Decisions:    decisions,
		}
		report, next, err := s.Run(ctx, snap)
		if err != nil {
			return err
		}
		syncer.PrintSummary("Markdown Sync Summary", p.cfg.Locales, report)
		pending[lockfile.KindMarkdown] = next
	}

	// One lock write per run, after all locales and both kinds.
	if !p.flags.DryRun && len(pending) > 0 {
		if err := lock.SaveAll(pending); err != nil {
			return err
		}
	}

	return nil
}

// buildOracle assembles the provider chain: base provider, circuit
// breaker, then the local cache. A cache that fails to open degrades to a
// warning rather than aborting the run. A dry run never calls the oracle,
// so it gets the noop provider and needs no credentials.
func (p *Processor) buildOracle() (translate.Provider, *memory.Cache, error) {
	name := p.cfg.ProviderName
	if p.flags.DryRun {
		name = "noop"
	}
	provider, err := translate.New(translate.Config{
		Name:         name,
		Model:        p.cfg.ProviderModel,
		SourceLocale: p.cfg.SourceLocale,
		OpenAIKey:    cli.GetOpenAIKey(),
		GeminiKey:    cli.GetGeminiKey(),
	})
	if err != nil {
		return nil, nil, err
	}
	provider = translate.WithBreaker(provider)

	if !p.cfg.CacheEnabled || p.flags.DryRun {
		return provider, nil, nil
	}

	cache, err := memory.Open(p.cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: translation cache unavailable: %v\n", err)
		return provider, nil, nil
	}
	return memory.WithCache(provider, cache), cache, nil
}

func restrictLocales(configured, requested []string) ([]string, error) {
	known := make(map[string]bool, len(configured))
	for _, locale := range configured {
		known[locale] = true
	}
	var locales []string
	for _, locale := range requested {
		if !known[locale] {
			return nil, fmt.Errorf("locale %q is not in the configured locales list", locale)
		}
		locales = append(locales, locale)
	}
	return locales, nil
}

