package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/davidaganov/polyglot-keeper/internal/syncer"
)

// FakeOracle scripts TranslateBatch behavior for tests. Each call pops the
// next error from Errs (nil entries succeed); successful calls translate
// with Transform, which defaults to appending the target locale.
type FakeOracle struct {
	Errs      []error
	Transform func(value, locale string) string
	// Omit lists unit keys the oracle silently drops from its responses.
	Omit  []string
	Calls []string
}

// TranslateBatch implements translate.Provider.
func (f *FakeOracle) TranslateBatch(_ context.Context, batch map[string]string, targetLocale string) (map[string]string, error) {
	keys := make([]string, 0, len(batch))
	for key := range batch {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	f.Calls = append(f.Calls, fmt.Sprintf("%s: %s", targetLocale, strings.Join(keys, ",")))

	if len(f.Errs) > 0 {
		err := f.Errs[0]
		f.Errs = f.Errs[1:]
		if err != nil {
			return nil, err
		}
	}

	transform := f.Transform
	if transform == nil {
		transform = func(value, locale string) string {
			return value + " [" + locale + "]"
		}
	}

	omitted := make(map[string]bool, len(f.Omit))
	for _, key := range f.Omit {
		omitted[key] = true
	}

	out := make(map[string]string, len(batch))
	for key, value := range batch {
		if omitted[key] {
			continue
		}
		out[key] = transform(value, targetLocale)
	}
	return out, nil
}

// ScriptedDecisions answers policy escalations without a terminal.
type ScriptedDecisions struct {
	Global syncer.GlobalAction
	// Units overrides the per-unit answer; anything else gets Default.
	Units   map[string]syncer.UnitAction
	Default syncer.UnitAction
	Calls   []string
}

// GlobalAction implements syncer.DecisionProvider.
func (s *ScriptedDecisions) GlobalAction(kind string, changed []string) (syncer.GlobalAction, error) {
	s.Calls = append(s.Calls, fmt.Sprintf("global %s: %s", kind, strings.Join(changed, ",")))
	return s.Global, nil
}

// UnitAction implements syncer.DecisionProvider.
func (s *ScriptedDecisions) UnitAction(kind, unit, oldValue, newValue string) (syncer.UnitAction, error) {
	s.Calls = append(s.Calls, fmt.Sprintf("unit %s: %s", kind, unit))
	if action, ok := s.Units[unit]; ok {
		return action, nil
	}
	return s.Default, nil
}
