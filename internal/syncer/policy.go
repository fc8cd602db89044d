package syncer

import "fmt"

// TrackingMode governs whether and how source-value changes trigger
// retranslation.
type TrackingMode string

const (
	// TrackingOff ignores changed units entirely; only missing units are
	// translated.
	TrackingOff TrackingMode = "off"
	// TrackingOn retranslates every changed unit without asking.
	TrackingOn TrackingMode = "on"
	// TrackingCarefully escalates changed units to an interactive review.
	TrackingCarefully TrackingMode = "carefully"
)

// ParseTrackingMode validates a configured tracking mode string.
func ParseTrackingMode(s string) (TrackingMode, error) {
	switch TrackingMode(s) {
	case TrackingOff, TrackingOn, TrackingCarefully:
		return TrackingMode(s), nil
	}
	return "", fmt.Errorf("invalid tracking mode %q (valid: off, on, carefully)", s)
}

// GlobalAction is the whole-set decision for changed units in carefully
// mode.
type GlobalAction int

const (
	// RetranslateAll sends every changed unit back to the oracle.
	RetranslateAll GlobalAction = iota
	// SkipAll keeps every current translation; snapshot values stay at
	// their previous value so the units surface as changed again next run.
	SkipAll
	// Review decides unit by unit.
	Review
)

// UnitAction is the per-unit decision during review.
type UnitAction int

const (
	// UnitRetranslate sends the unit back to the oracle.
	UnitRetranslate UnitAction = iota
	// UnitSkip keeps the current translation for this run.
	UnitSkip
	// UnitFreeze skips the unit and excludes it from change detection on
	// all future runs until a force reset.
	UnitFreeze
)

// DecisionProvider supplies the interactive decisions carefully mode
// needs. Implementations prompt an operator; tests script the answers.
type DecisionProvider interface {
	GlobalAction(kind string, changed []string) (GlobalAction, error)
	UnitAction(kind, unit, oldValue, newValue string) (UnitAction, error)
}

// Resolution is the policy outcome: three disjoint unit sets. Frozen units
// are also skipped for the current run.
type Resolution struct {
	Retranslate []string
	Skip        []string
	Freeze      []string
}

// InSkip reports whether the unit was skipped this run (including newly
// frozen units).
func (r Resolution) InSkip(unit string) bool {
	for _, u := range r.Skip {
		if u == unit {
			return true
		}
	}
	for _, u := range r.Freeze {
		if u == unit {
			return true
		}
	}
	return false
}

// Resolve partitions the changed units according to the tracking mode.
// The decision provider is consulted only in carefully mode with a
// non-empty changed set. kind names the content kind for prompts;
// previous and current supply the values shown during review.
func Resolve(mode TrackingMode, kind string, changed []string, previous, current map[string]string, decisions DecisionProvider) (Resolution, error) {
	var res Resolution
	if mode == TrackingOff || len(changed) == 0 {
		return res, nil
	}
	if mode == TrackingOn {
		res.Retranslate = append(res.Retranslate, changed...)
		return res, nil
	}

	global, err := decisions.GlobalAction(kind, changed)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to resolve changed units: %w", err)
	}

	switch global {
	case RetranslateAll:
		res.Retranslate = append(res.Retranslate, changed...)
	case SkipAll:
		res.Skip = append(res.Skip, changed...)
	case Review:
		for _, unit := range changed {
			action, err := decisions.UnitAction(kind, unit, previous[unit], current[unit])
			if err != nil {
				return Resolution{}, fmt.Errorf("failed to review %s: %w", unit, err)
			}
			switch action {
			case UnitRetranslate:
				res.Retranslate = append(res.Retranslate, unit)
			case UnitSkip:
				res.Skip = append(res.Skip, unit)
			case UnitFreeze:
				res.Freeze = append(res.Freeze, unit)
			}
		}
	}
	return res, nil
}
