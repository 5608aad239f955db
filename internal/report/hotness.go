package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// sampleFlag grades a hotness score by how close its DR count came to the
// threshold.
func sampleFlag(h aggregator.Hotness) string {
	switch {
	case h.Confident():
		return "OK"
	case h.RollRatio >= 0.5:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}

// PrintHotness prints every player's hotness scores with a goodness-of-fit
// test of their DR distribution alongside.
func PrintHotness(w io.Writer, a *analysis.Analysis, stats aggregator.Stats, hot map[string]aggregator.Hotness, cfg *config.Config) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "DR_N", "HOTNESS", "DIE_N", "DIE_HOT", "RATIO", "SAMPLE", "CHI2", "DF", "P")

	a.ForEachPlayer(func(id string, _ int) {
		name := a.PlayerName(id)
		p := stats.Player(id)
		h := hot[id]

		chi, df, pv := absent, absent, absent
		if cs, ok := aggregator.ChiSquared(p.DR, cfg.ExpectedDistrib[model.KindDR]); ok {
			chi = fmt.Sprintf("%.2f", cs.Statistic)
			df = strconv.Itoa(cs.DF)
			pv = fmt.Sprintf("%.3f", cs.PValue)
		}
		flag := absent
		if h.Score != nil {
			flag = sampleFlag(h)
		}

		table.Append(
			marker(a, id),
			name,
			strconv.Itoa(p.DR.NRolls),
			formatScore(h.Score),
			strconv.Itoa(p.Dr.NRolls),
			formatScore(h.ByKind[model.KindDr]),
			fmt.Sprintf("%.2f", h.RollRatio),
			flag,
			chi,
			df,
			pv,
		)
	})
	table.Render()
	fmt.Fprintf(w, "\nScores from fewer than %d DR's are marked LOW or VERY_LOW.\n", cfg.HotnessThresholds[model.KindDR])
}
