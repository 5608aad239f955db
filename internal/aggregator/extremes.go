package aggregator

import "github.com/pacman-ghost/vasl-templates-sub000/internal/model"

// ExtremeCounts counts a player's snake eyes (DR 2) and boxcars (DR 12).
type ExtremeCounts struct {
	Twos    int
	Twelves int
}

// Extremes is the 2s/12s report, plus Sniper Activation dr's of 1 and 2.
type Extremes struct {
	// Rolls maps player -> roll type -> counts.
	Rolls map[string]map[string]ExtremeCounts
	// Snipers maps player -> SA total (1 or 2) -> count.
	Snipers map[string]map[int]int
	// ShownRollTypes are the roll types with at least one 2 or 12 by any
	// player: known types first, then others in first-seen order.
	ShownRollTypes []string
}

// Count returns a player's 2s and 12s for a roll type.
func (e Extremes) Count(playerID, rollType string) ExtremeCounts {
	return e.Rolls[playerID][rollType]
}

// ExtractExtremes counts extreme rolls for every roster player.
func ExtractExtremes(src EventSource) Extremes {
	out := Extremes{
		Rolls:   make(map[string]map[string]ExtremeCounts),
		Snipers: make(map[string]map[int]int),
	}
	for _, id := range src.PlayerIDs() {
		out.Rolls[id] = make(map[string]ExtremeCounts)
		out.Snipers[id] = map[int]int{1: 0, 2: 0}
	}

	var seenOrder []string
	shown := make(map[string]bool)
	ExtractEvents(src, 1, Hooks{
		Roll: func(ev model.Event) Verdict {
			rolls, ok := out.Rolls[ev.PlayerID]
			if !ok {
				return Skip
			}
			total := ev.RollValue.Total()
			switch {
			case ev.RollType == model.RollTypeSniper && (total == 1 || total == 2):
				out.Snipers[ev.PlayerID][total]++
			case !ev.RollValue.IsSingleDie() && (total == 2 || total == 12):
				c := rolls[ev.RollType]
				if total == 2 {
					c.Twos++
				} else {
					c.Twelves++
				}
				rolls[ev.RollType] = c
				if !shown[ev.RollType] {
					shown[ev.RollType] = true
					seenOrder = append(seenOrder, ev.RollType)
				}
			}
			return Skip
		},
	})

	for _, rt := range model.OrderRollTypes(seenOrder) {
		if shown[rt] {
			out.ShownRollTypes = append(out.ShownRollTypes, rt)
		}
	}
	return out
}

// HasSnipers reports whether any player had an SA of 1 or 2.
func (e Extremes) HasSnipers() bool {
	for _, counts := range e.Snipers {
		for _, n := range counts {
			if n > 0 {
				return true
			}
		}
	}
	return false
}
