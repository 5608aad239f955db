package aggregator

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// Hotness is a player's dice hotness.
//
// The score is a modified chi-squared: the squared difference between the
// observed and expected share of each total keeps the sign of the difference
// and is multiplied by that total's weight. With the default weights, more
// low DRs than expected push the score up (2s and 3s more than 5s and 6s) and
// more high DRs push it down.
type Hotness struct {
	// Score is the DR hotness, nil if the player made no DRs. dr scores are
	// not surfaced: with few dr's they are too noisy to compare across
	// players fairly.
	Score *float64
	// RollRatio is DR count / DR threshold. Below 1 the score is based on
	// fewer rolls than the threshold and should be shown de-emphasised.
	RollRatio float64
	// ByKind holds the score for every kind, nil where there were no rolls.
	ByKind map[model.Kind]*float64
}

// Confident reports whether the sample reached the threshold.
func (h Hotness) Confident() bool { return h.RollRatio >= 1 }

// CalcHotness scores every player in stats using cfg's expected distribution,
// weights and DR threshold.
func CalcHotness(stats Stats, cfg *config.Config) map[string]Hotness {
	out := make(map[string]Hotness, len(stats.Players))
	for id, p := range stats.Players {
		h := Hotness{ByKind: make(map[model.Kind]*float64, len(model.Kinds))}
		for _, k := range model.Kinds {
			h.ByKind[k] = KindHotness(p.Kind(k), cfg.ExpectedDistrib[k], cfg.HotnessWeights[k])
		}
		h.Score = h.ByKind[model.KindDR]
		if th := cfg.HotnessThresholds[model.KindDR]; th > 0 {
			h.RollRatio = float64(p.DR.NRolls) / float64(th)
		}
		out[id] = h
	}
	return out
}

// KindHotness scores one distribution. expected is in percent; the sum runs
// over the totals that have a weight. It returns nil for an empty sample.
func KindHotness(s KindStats, expected, weights map[int]float64) *float64 {
	if s.NRolls == 0 {
		return nil
	}
	total := 0.0
	for _, v := range config.SortedValues(weights) {
		observed := float64(s.Distrib[v]) / float64(s.NRolls)
		exp := expected[v] / 100
		diff := observed - exp
		sign := 1.0
		if diff < 0 {
			sign = -1
		}
		total += sign * diff * diff * weights[v] / exp
	}
	return &total
}

// ChiSquare is a standard goodness-of-fit test of a distribution against the
// expected one.
type ChiSquare struct {
	Statistic float64
	DF        int
	PValue    float64
}

// ChiSquared tests s against expected (in percent). ok is false for an empty
// sample or a table with fewer than two totals.
func ChiSquared(s KindStats, expected map[int]float64) (cs ChiSquare, ok bool) {
	if s.NRolls == 0 || len(expected) < 2 {
		return ChiSquare{}, false
	}
	n := float64(s.NRolls)
	for _, v := range config.SortedValues(expected) {
		e := n * expected[v] / 100
		if e <= 0 {
			continue
		}
		d := float64(s.Distrib[v]) - e
		cs.Statistic += d * d / e
	}
	cs.DF = len(expected) - 1
	cs.PValue = distuv.ChiSquared{K: float64(cs.DF)}.Survival(cs.Statistic)
	if math.IsNaN(cs.PValue) {
		return ChiSquare{}, false
	}
	return cs, true
}
