package syncer

import "github.com/davidaganov/polyglot-keeper/internal/lockfile"

// Missing returns the units, in order, for which exists reports false.
func Missing(units []string, exists func(string) bool) []string {
	var missing []string
	for _, unit := range units {
		if !exists(unit) {
			missing = append(missing, unit)
		}
	}
	return missing
}

// Obsolete returns the target units that are no longer present in the
// source. These get removed before any further detection so they never
// show up in target-presence checks.
func Obsolete(targetUnits []string, sourceSet map[string]bool) []string {
	var obsolete []string
	for _, unit := range targetUnits {
		if !sourceSet[unit] {
			obsolete = append(obsolete, unit)
		}
	}
	return obsolete
}

// Changed returns the units whose current value differs from the snapshot
// value. Units without a snapshot entry are never changed (they are new,
// and show up as missing instead) and frozen units are always excluded.
func Changed(units []string, current map[string]string, snap lockfile.Snapshot) []string {
	var changed []string
	for _, unit := range units {
		if snap.Frozen[unit] {
			continue
		}
		previous, tracked := snap.Values[unit]
		if !tracked {
			continue
		}
		if current[unit] != previous {
			changed = append(changed, unit)
		}
	}
	return changed
}
