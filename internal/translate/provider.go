package translate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRateLimited marks failures caused by provider rate limiting. Callers
// check it with errors.Is and may retry after a delay; any other provider
// error is fatal for the batch that triggered it.
var ErrRateLimited = errors.New("translation provider rate limited")

// IsRateLimited reports whether err was caused by provider rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// Provider translates batches of keyed strings into a target locale. The
// returned map uses the request's keys verbatim; keys the provider omits
// are simply absent from the result.
type Provider interface {
	TranslateBatch(ctx context.Context, batch map[string]string, targetLocale string) (map[string]string, error)
}

// Config carries everything a provider constructor needs.
type Config struct {
	Name         string
	Model        string
	SourceLocale string
	OpenAIKey    string
	GeminiKey    string
}

var factories = map[string]func(Config) (Provider, error){
	"openai": newOpenAIProvider,
	"gemini": newGeminiProvider,
	"noop":   newNoopProvider,
}

// New resolves a provider by its configured name.
func New(cfg Config) (Provider, error) {
	factory, ok := factories[cfg.Name]
	if !ok {
		names := make([]string, 0, len(factories))
		for name := range factories {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown translation provider %q (valid: %s)", cfg.Name, strings.Join(names, ", "))
	}
	return factory(cfg)
}

// noopProvider returns every value unchanged. Useful for dry runs and as a
// deterministic stand-in during development.
type noopProvider struct{}

func newNoopProvider(Config) (Provider, error) {
	return noopProvider{}, nil
}

func (noopProvider) TranslateBatch(_ context.Context, batch map[string]string, _ string) (map[string]string, error) {
	out := make(map[string]string, len(batch))
	for key, value := range batch {
		out[key] = value
	}
	return out, nil
}
