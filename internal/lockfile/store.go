package lockfile

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Content kinds stored in the lock file.
const (
	KindTree     = "json"
	KindMarkdown = "md"
)

// Snapshot is one kind's section of the lock file: the last synchronized
// source value per unit and the units excluded from change detection.
type Snapshot struct {
	Values map[string]string
	Frozen map[string]bool
}

// NewSnapshot returns an empty snapshot, the valid "no history" state.
func NewSnapshot() Snapshot {
	return Snapshot{
		Values: make(map[string]string),
		Frozen: make(map[string]bool),
	}
}

// Empty reports whether the snapshot has no recorded values. An empty
// snapshot means first run: no change detection applies.
func (s Snapshot) Empty() bool { return len(s.Values) == 0 }

type section struct {
	Frozen []string          `json:"__frozen,omitempty"`
	Values map[string]string `json:"values"`
}

// Store reads and writes the shared lock file.
type Store struct {
	path string
}

// NewStore creates a store for the lock file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the lock file location.
func (s *Store) Path() string { return s.path }

// Load reads the snapshot for one content kind. A missing file or missing
// section is a first run and yields an empty snapshot, not an error.
func (s *Store) Load(kind string) (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewSnapshot(), nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read lock file: %w", err)
	}

	var sections map[string]section
	if err := json.Unmarshal(data, &sections); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse lock file %s: %w", s.path, err)
	}

	sec, ok := sections[kind]
	if !ok {
		return NewSnapshot(), nil
	}

	snap := NewSnapshot()
	for unit, value := range sec.Values {
		snap.Values[unit] = value
	}
	for _, unit := range sec.Frozen {
		snap.Frozen[unit] = true
	}
	return snap, nil
}

// Save merges one kind's snapshot into the lock file, leaving other kinds'
// sections untouched, and writes the whole file.
func (s *Store) Save(kind string, snap Snapshot) error {
	return s.SaveAll(map[string]Snapshot{kind: snap})
}

// SaveAll merges several kinds' snapshots into the lock file in a single
// write. Kinds not present in snaps keep their persisted sections.
func (s *Store) SaveAll(snaps map[string]Snapshot) error {
	sections := make(map[string]section)
	if data, err := os.ReadFile(s.path); err == nil {
		if err := json.Unmarshal(data, &sections); err != nil {
			return fmt.Errorf("failed to parse existing lock file %s: %w", s.path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	for kind, snap := range snaps {
		frozen := make([]string, 0, len(snap.Frozen))
		for unit := range snap.Frozen {
			frozen = append(frozen, unit)
		}
		sort.Strings(frozen)

		values := snap.Values
		if values == nil {
			values = make(map[string]string)
		}
		sections[kind] = section{Frozen: frozen, Values: values}
	}

	data, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode lock file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	return nil
}
