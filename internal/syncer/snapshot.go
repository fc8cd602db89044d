package syncer

import "github.com/davidaganov/polyglot-keeper/internal/lockfile"

// NextSnapshot applies the snapshot update contract shared by both content
// kinds. Units that were skipped this run, and units that were owed a
// translation but did not receive one, keep their previous snapshot value
// so they surface again next run; a failed unit with no history gets no
// entry at all and stays a first-run unit. Every other source unit records
// its current value. Force clears the frozen set; otherwise newly frozen
// units join the carried-over set.
func NextSnapshot(prev lockfile.Snapshot, units []string, current map[string]string, resolution Resolution, failed map[string]bool, force bool) lockfile.Snapshot {
	next := lockfile.NewSnapshot()
	for _, unit := range units {
		if resolution.InSkip(unit) || failed[unit] {
			if previous, ok := prev.Values[unit]; ok {
				next.Values[unit] = previous
			}
			continue
		}
		next.Values[unit] = current[unit]
	}
	if !force {
		for unit := range prev.Frozen {
			next.Frozen[unit] = true
		}
		for _, unit := range resolution.Freeze {
			next.Frozen[unit] = true
		}
	}
	return next
}
