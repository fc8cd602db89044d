package review

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/davidaganov/polyglot-keeper/internal/syncer"
)

// maxPreview bounds how much of a value the review prompt shows.
const maxPreview = 120

// Prompter asks the operator what to do with changed units. It implements
// syncer.DecisionProvider on top of terminal forms.
type Prompter struct{}

// NewPrompter returns a terminal-backed decision provider.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// GlobalAction asks what to do with the whole set of changed units.
func (p *Prompter) GlobalAction(kind string, changed []string) (syncer.GlobalAction, error) {
	fmt.Printf("\n%d changed %s(s) detected:\n", len(changed), kind)
	for _, unit := range changed {
		fmt.Printf("  - %s\n", unit)
	}

	action := syncer.RetranslateAll
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[syncer.GlobalAction]().
			Title(fmt.Sprintf("How should the changed %ss be handled?", kind)).
			Options(
				huh.NewOption("Retranslate all", syncer.RetranslateAll),
				huh.NewOption("Skip all for now", syncer.SkipAll),
				huh.NewOption("Review one by one", syncer.Review),
			).
			Value(&action),
	))
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("failed to read decision: %w", err)
	}
	return action, nil
}

// UnitAction asks what to do with a single changed unit, showing the old
// and new source values.
func (p *Prompter) UnitAction(kind, unit, oldValue, newValue string) (syncer.UnitAction, error) {
	fmt.Printf("\n%s %q changed:\n  old: %s\n  new: %s\n", kind, unit, preview(oldValue), preview(newValue))

	action := syncer.UnitRetranslate
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[syncer.UnitAction]().
			Title(fmt.Sprintf("What should happen to %q?", unit)).
			Options(
				huh.NewOption("Retranslate", syncer.UnitRetranslate),
				huh.NewOption("Skip for now", syncer.UnitSkip),
				huh.NewOption("Freeze (stop tracking changes)", syncer.UnitFreeze),
			).
			Value(&action),
	))
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("failed to read decision: %w", err)
	}
	return action, nil
}

func preview(value string) string {
	if len(value) > maxPreview {
		return value[:maxPreview] + "..."
	}
	return value
}
