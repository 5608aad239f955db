package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
)

// PrintExtremes prints each player's 2s and 12s per roll type, plus sniper
// activations of 1 and 2 when there were any.
func PrintExtremes(w io.Writer, a *analysis.Analysis, ex aggregator.Extremes) {
	if len(ex.ShownRollTypes) == 0 && !ex.HasSnipers() {
		fmt.Fprintln(w, "No 2's or 12's.")
		return
	}

	header := []string{"PLAYER"}
	for _, rt := range ex.ShownRollTypes {
		header = append(header, rt+" 2", rt+" 12")
	}
	if ex.HasSnipers() {
		header = append(header, "SA 1", "SA 2")
	}

	table := newTable(w)
	table.Header(toAny(header)...)
	a.ForEachPlayer(func(id string, _ int) {
		row := []string{a.PlayerName(id)}
		for _, rt := range ex.ShownRollTypes {
			c := ex.Count(id, rt)
			row = append(row, strconv.Itoa(c.Twos), strconv.Itoa(c.Twelves))
		}
		if ex.HasSnipers() {
			row = append(row, strconv.Itoa(ex.Snipers[id][1]), strconv.Itoa(ex.Snipers[id][2]))
		}
		table.Append(toAny(row)...)
	})
	table.Render()
}
