package syncer

import "fmt"

// Stats holds one locale's sync counters. They are reported at the end of
// a run and never persisted.
type Stats struct {
	Missing    int
	Translated int
	Updated    int
	Failed     int
	Removed    int
}

// PrintSummary writes the per-locale summary block for one content kind.
func PrintSummary(title string, locales []string, report map[string]*Stats) {
	fmt.Printf("\n=== %s ===\n", title)
	for _, locale := range locales {
		stats := report[locale]
		if stats == nil {
			stats = &Stats{}
		}
		line := fmt.Sprintf("%-8s translated: %-4d updated: %-4d removed: %-4d", locale, stats.Translated, stats.Updated, stats.Removed)
		if stats.Failed > 0 {
			line += fmt.Sprintf(" failed: %d", stats.Failed)
		}
		fmt.Println(line)
	}
	fmt.Println("================================")
}
