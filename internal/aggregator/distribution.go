package aggregator

import (
	"math"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// EventSource is the read side of an analysis the extractors scan.
type EventSource interface {
	Events() []model.Event
	PlayerIDs() []string
}

// Filter selects the roll events a statistic is computed over.
type Filter func(ev model.Event) bool

// KindStats is the roll distribution for one player and one roll kind.
type KindStats struct {
	NRolls  int
	Distrib map[int]int // total -> number of rolls
	// RollAverage is NaN when NRolls is 0; check HasRolls first.
	RollAverage float64
}

// HasRolls reports whether the sample is non-empty.
func (s KindStats) HasRolls() bool { return s.NRolls > 0 }

// Percent returns the share of rolls that totalled v, in percent rounded to
// one decimal place. It is 0 for an empty sample.
func (s KindStats) Percent(v int) float64 {
	if s.NRolls == 0 {
		return 0
	}
	pct := 100 * float64(s.Distrib[v]) / float64(s.NRolls)
	return math.Round(10*pct) / 10
}

// PlayerRolls holds a player's DR and dr distributions.
type PlayerRolls struct {
	DR KindStats
	Dr KindStats
}

// Kind returns the distribution for k.
func (p PlayerRolls) Kind(k model.Kind) KindStats {
	if k == model.KindDr {
		return p.Dr
	}
	return p.DR
}

// Stats is the result of ExtractStats.
type Stats struct {
	Players map[string]PlayerRolls
	// TotalRolls sums NRolls across all players, per kind.
	TotalRolls map[model.Kind]int
}

// Player returns a player's distributions; unknown players get empty samples.
func (s Stats) Player(id string) PlayerRolls {
	if p, ok := s.Players[id]; ok {
		return p
	}
	return PlayerRolls{DR: emptyKindStats(), Dr: emptyKindStats()}
}

// Share returns "n of total" for a player's rolls of kind k.
func (s Stats) Share(id string, k model.Kind) (n, total int) {
	return s.Player(id).Kind(k).NRolls, s.TotalRolls[k]
}

// ExtractStats computes every roster player's DR and dr distributions over
// the roll events accepted by filter (nil accepts all). Rolls by players not
// on the roster are ignored.
func ExtractStats(src EventSource, filter Filter) Stats {
	type acc struct {
		stats [2]KindStats
		sum   [2]int
	}
	accs := make(map[string]*acc)
	for _, id := range src.PlayerIDs() {
		accs[id] = &acc{stats: [2]KindStats{emptyKindStats(), emptyKindStats()}}
	}

	for _, ev := range src.Events() {
		if ev.Type != model.EventRoll {
			continue
		}
		a, ok := accs[ev.PlayerID]
		if !ok {
			continue
		}
		if filter != nil && !filter(ev) {
			continue
		}
		i := kindIndex(ev.RollValue.Kind())
		total := ev.RollValue.Total()
		a.stats[i].NRolls++
		a.stats[i].Distrib[total]++
		a.sum[i] += total
	}

	out := Stats{
		Players:    make(map[string]PlayerRolls, len(accs)),
		TotalRolls: map[model.Kind]int{model.KindDR: 0, model.KindDr: 0},
	}
	for id, a := range accs {
		for i := range a.stats {
			// 0/0 gives NaN for an empty sample.
			a.stats[i].RollAverage = float64(a.sum[i]) / float64(a.stats[i].NRolls)
		}
		out.Players[id] = PlayerRolls{DR: a.stats[0], Dr: a.stats[1]}
		out.TotalRolls[model.KindDR] += a.stats[0].NRolls
		out.TotalRolls[model.KindDr] += a.stats[1].NRolls
	}
	return out
}

// RollTypeFilter matches roll events of exactly rollType; "" matches every roll.
func RollTypeFilter(rollType string) Filter {
	if rollType == "" {
		return nil
	}
	return func(ev model.Event) bool { return ev.RollType == rollType }
}

func emptyKindStats() KindStats {
	return KindStats{Distrib: make(map[int]int), RollAverage: math.NaN()}
}

func kindIndex(k model.Kind) int {
	if k == model.KindDr {
		return 1
	}
	return 0
}

// RollTypeRolls is one row of a player's per-roll-type breakdown.
type RollTypeRolls struct {
	RollType string
	Rolls    PlayerRolls
}

// BreakdownByRollType computes playerID's distributions separately for every
// roll type present in src, known types first. Roll types the player never
// rolled are left out.
func BreakdownByRollType(src EventSource, playerID string) []RollTypeRolls {
	var seenOrder []string
	seen := make(map[string]bool)
	for _, ev := range src.Events() {
		if ev.Type == model.EventRoll && ev.PlayerID == playerID && !seen[ev.RollType] {
			seen[ev.RollType] = true
			seenOrder = append(seenOrder, ev.RollType)
		}
	}
	var out []RollTypeRolls
	for _, rt := range model.OrderRollTypes(seenOrder) {
		if !seen[rt] {
			continue
		}
		stats := ExtractStats(src, RollTypeFilter(rt))
		out = append(out, RollTypeRolls{RollType: rt, Rolls: stats.Player(playerID)})
	}
	return out
}
