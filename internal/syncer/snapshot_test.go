package syncer_test

import (
	"reflect"
	"testing"

	"github.com/davidaganov/polyglot-keeper/internal/lockfile"
	"github.com/davidaganov/polyglot-keeper/internal/syncer"
)

func TestNextSnapshot(t *testing.T) {
	prev := lockfile.NewSnapshot()
	prev.Values["a"] = "old-a"
	prev.Values["b"] = "old-b"
	prev.Values["c"] = "old-c"
	prev.Frozen["c"] = true

	units := []string{"a", "b", "c", "d"}
	current := map[string]string{"a": "new-a", "b": "new-b", "c": "new-c", "d": "new-d"}

	tests := []struct {
		name       string
		resolution syncer.Resolution
		failed     map[string]bool
		force      bool
		wantValues map[string]string
		wantFrozen map[string]bool
	}{
		{
			name:       "clean run records current values",
			wantValues: map[string]string{"a": "new-a", "b": "new-b", "c": "new-c", "d": "new-d"},
			wantFrozen: map[string]bool{"c": true},
		},
		{
			name:       "skipped unit keeps previous value",
			resolution: syncer.Resolution{Skip: []string{"a"}},
			wantValues: map[string]string{"a": "old-a", "b": "new-b", "c": "new-c", "d": "new-d"},
			wantFrozen: map[string]bool{"c": true},
		},
		{
			name:       "failed unit keeps previous value",
			failed:     map[string]bool{"b": true},
			wantValues: map[string]string{"a": "new-a", "b": "old-b", "c": "new-c", "d": "new-d"},
			wantFrozen: map[string]bool{"c": true},
		},
		{
			name:       "failed unit without history stays untracked",
			failed:     map[string]bool{"d": true},
			wantValues: map[string]string{"a": "new-a", "b": "new-b", "c": "new-c"},
			wantFrozen: map[string]bool{"c": true},
		},
		{
			name:       "newly frozen unit joins the frozen set",
			resolution: syncer.Resolution{Freeze: []string{"b"}},
			wantValues: map[string]string{"a": "new-a", "b": "old-b", "c": "new-c", "d": "new-d"},
			wantFrozen: map[string]bool{"b": true, "c": true},
		},
		{
			name:       "force clears the frozen set",
			force:      true,
			wantValues: map[string]string{"a": "new-a", "b": "new-b", "c": "new-c", "d": "new-d"},
			wantFrozen: map[string]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := syncer.NextSnapshot(prev, units, current, tt.resolution, tt.failed, tt.force)
			if !reflect.DeepEqual(next.Values, tt.wantValues) {
				t.Errorf("Values = %v, want %v", next.Values, tt.wantValues)
			}
			if !reflect.DeepEqual(next.Frozen, tt.wantFrozen) {
				t.Errorf("Frozen = %v, want %v", next.Frozen, tt.wantFrozen)
			}
		})
	}
}
