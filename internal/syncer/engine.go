package syncer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/davidaganov/polyglot-keeper/internal/translate"
)

// Engine drives batched oracle calls with rate-limit-aware retry. Chunks
// are sent one at a time with a cooperative delay in between; a chunk that
// exhausts its retries fails as a whole.
type Engine struct {
	Oracle     translate.Provider
	BatchSize  int
	BatchDelay time.Duration
	RetryDelay time.Duration
	MaxRetries int

	// Sleep is swapped out by tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// BatchResult aggregates one locale's translation outcome.
type BatchResult struct {
	// Translated maps each merged unit to its translation. Units the
	// oracle omitted are absent and count as not translated.
	Translated map[string]string
	// Failed counts the units of chunks that failed outright.
	Failed int
}

func (e *Engine) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if e.Sleep != nil {
		e.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Translate sends the units to the oracle in fixed-size chunks, preserving
// order, and returns the merged results.
func (e *Engine) Translate(ctx context.Context, units []string, values map[string]string, targetLocale string) BatchResult {
	result := BatchResult{Translated: make(map[string]string)}
	if len(units) == 0 {
		return result
	}

	size := e.BatchSize
	if size <= 0 {
		size = len(units)
	}

	var chunks [][]string
	for start := 0; start < len(units); start += size {
		end := start + size
		if end > len(units) {
			end = len(units)
		}
		chunks = append(chunks, units[start:end])
	}

	for i, chunk := range chunks {
		if len(chunks) > 1 {
			fmt.Printf("  Translating batch %d/%d (%d units) -> %s\n", i+1, len(chunks), len(chunk), targetLocale)
		}

		payload := make(map[string]string, len(chunk))
		for _, unit := range chunk {
			payload[unit] = values[unit]
		}

		out, err := e.Call(ctx, payload, targetLocale)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  Batch %d/%d failed for %s: %v\n", i+1, len(chunks), targetLocale, err)
			result.Failed += len(chunk)
		} else {
			for unit := range payload {
				if translated, ok := out[unit]; ok {
					result.Translated[unit] = translated
				}
			}
		}

		if i < len(chunks)-1 {
			e.sleep(e.BatchDelay)
		}
	}
	return result
}

// Call sends one payload through the retry loop. Rate-limit failures are
// retried up to MaxRetries times with a fixed delay; any other failure, or
// an exhausted budget, fails the call.
func (e *Engine) Call(ctx context.Context, payload map[string]string, targetLocale string) (map[string]string, error) {
	retries := e.MaxRetries
	for {
		out, err := e.Oracle.TranslateBatch(ctx, payload, targetLocale)
		if err == nil {
			return out, nil
		}
		if translate.IsRateLimited(err) && retries > 0 {
			fmt.Printf("  Rate limited, retrying in %s (%d retries left)\n", e.RetryDelay, retries)
			retries--
			e.sleep(e.RetryDelay)
			continue
		}
		return nil, err
	}
}
