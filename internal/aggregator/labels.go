package aggregator

import "github.com/pacman-ghost/vasl-templates-sub000/internal/model"

// Labeler builds the x-axis labels for a series. Turn-track and custom-label
// events set a pending label that is attached to the next emitted point; a
// later label event before that point replaces it. Labels stays index-aligned
// with Series.Points.
type Labeler struct {
	Labels []string
	// LogFileIndexes holds, for each log-file marker, the label index at
	// which that source's points start.
	LogFileIndexes []int
	// Kind is the roll kind of the first emitted point, "" if none.
	Kind model.Kind

	pending string
}

// NewLabeler returns an empty labeler.
func NewLabeler() *Labeler {
	return &Labeler{}
}

// Hooks returns a visitor that labels points and asks roll for each roll
// event (nil includes every roll).
func (l *Labeler) Hooks(roll func(ev model.Event) Verdict) Hooks {
	return Hooks{
		Roll: roll,
		TurnTrack: func(ev model.Event) {
			l.pending = ev.PhaseLabel()
		},
		CustomLabel: func(ev model.Event) {
			l.pending = ev.Caption
		},
		LogFile: func(model.Event) {
			l.LogFileIndexes = append(l.LogFileIndexes, len(l.Labels))
		},
		Emit: func(p Point) {
			if l.Kind == "" {
				l.Kind = p.RollValue.Kind()
			}
			l.Labels = append(l.Labels, l.pending)
			l.pending = ""
		},
	}
}

// SeriesRollFilter is the roll hook for a roll-type selection: "" (all
// rolls) keeps only DRs, "Other" keeps DRs of type Other, and any other
// roll type keeps both kinds of that exact type.
func SeriesRollFilter(rollType string) func(ev model.Event) Verdict {
	return func(ev model.Event) Verdict {
		switch rollType {
		case "":
			if ev.RollValue.IsSingleDie() {
				return Skip
			}
		case model.RollTypeOther:
			if ev.RollType != rollType || ev.RollValue.IsSingleDie() {
				return Skip
			}
		default:
			if ev.RollType != rollType {
				return Skip
			}
		}
		return Include
	}
}

// LabeledSeries runs ExtractEvents with a fresh Labeler and the roll-type
// selection's filter.
func LabeledSeries(src EventSource, windowSize int, rollType string) (Series, *Labeler) {
	l := NewLabeler()
	s := ExtractEvents(src, windowSize, l.Hooks(SeriesRollFilter(rollType)))
	return s, l
}
