// Package report prints analysis results as terminal tables.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// absent is shown for values that have no sample behind them.
const absent = "—"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// marker flags the local user's row.
func marker(a *analysis.Analysis, id string) string {
	if a.IsLocalUser(id) {
		return ">"
	}
	return " "
}

func formatAvg(v float64) string {
	if math.IsNaN(v) {
		return absent
	}
	return fmt.Sprintf("%.2f", v)
}

func formatScore(v *float64) string {
	if v == nil {
		return absent
	}
	return fmt.Sprintf("%+.2f", *v)
}

// PrintBanner prints a one-line header describing the analysed sources.
func PrintBanner(w io.Writer, a *analysis.Analysis) {
	files := strconv.Itoa(len(a.LogFiles()))
	if c := a.FileCaption(); c != "" {
		files = "file " + c
	}
	fmt.Fprintf(w, "\nScenario: %s  |  Files: %s  |  Players: %d  |  Rolls: %d\n\n",
		a.FullTitle(), files, a.Roster().Len(), countRolls(a))
}

func countRolls(a *analysis.Analysis) int {
	n := 0
	for _, ev := range a.Events() {
		if ev.Type == model.EventRoll {
			n++
		}
	}
	return n
}

// PrintDistribution prints, for one roll kind, each player's share of every
// total in percent, followed by the expected distribution.
func PrintDistribution(w io.Writer, a *analysis.Analysis, stats aggregator.Stats, k model.Kind, cfg *config.Config) {
	values := k.Values()
	header := []string{" ", "PLAYER"}
	for _, v := range values {
		header = append(header, strconv.Itoa(v))
	}
	header = append(header, "N", "SHARE", "AVG")

	table := newTable(w)
	table.Header(toAny(header)...)

	a.ForEachPlayer(func(id string, _ int) {
		s := stats.Player(id).Kind(k)
		name := a.PlayerName(id)
		row := []string{marker(a, id), name}
		for _, v := range values {
			if !s.HasRolls() {
				row = append(row, absent)
				continue
			}
			row = append(row, fmt.Sprintf("%.1f", s.Percent(v)))
		}
		n, total := stats.Share(id, k)
		share := absent
		if total > 0 {
			share = fmt.Sprintf("%.0f%%", 100*float64(n)/float64(total))
		}
		row = append(row, strconv.Itoa(n), share, formatAvg(s.RollAverage))
		table.Append(toAny(row)...)
	})

	expected := cfg.ExpectedDistrib[k]
	row := []string{" ", "EXPECTED"}
	mean := 0.0
	for _, v := range values {
		row = append(row, fmt.Sprintf("%.1f", expected[v]))
		mean += float64(v) * expected[v] / 100
	}
	row = append(row, "", "", fmt.Sprintf("%.2f", mean))
	table.Append(toAny(row)...)
	table.Render()
}

// PrintRollCounts prints the raw roll counts per total for one kind.
func PrintRollCounts(w io.Writer, a *analysis.Analysis, stats aggregator.Stats, k model.Kind) {
	values := k.Values()
	header := []string{"PLAYER"}
	for _, v := range values {
		header = append(header, strconv.Itoa(v))
	}
	header = append(header, "TOTAL")

	table := newTable(w)
	table.Header(toAny(header)...)
	a.ForEachPlayer(func(id string, _ int) {
		s := stats.Player(id).Kind(k)
		row := []string{a.PlayerName(id)}
		for _, v := range values {
			row = append(row, strconv.Itoa(s.Distrib[v]))
		}
		row = append(row, strconv.Itoa(s.NRolls))
		table.Append(toAny(row)...)
	})
	table.Render()
}

// PrintRollTypes lists the roll types in the analysis with their DR and dr
// counts, known types first.
func PrintRollTypes(w io.Writer, a *analysis.Analysis) {
	present := a.RollTypes()
	seen := make(map[string]bool, len(present))
	for _, rt := range present {
		seen[rt] = true
	}

	table := newTable(w)
	table.Header("TYPE", "DESCRIPTION", "DR", "SINGLE_DIE")
	for _, rt := range model.OrderRollTypes(present) {
		if !seen[rt] {
			continue
		}
		desc, ok := model.RollTypeDescription(rt)
		if !ok {
			desc = absent
		}
		stats := aggregator.ExtractStats(a, aggregator.RollTypeFilter(rt))
		table.Append(
			rt,
			desc,
			strconv.Itoa(stats.TotalRolls[model.KindDR]),
			strconv.Itoa(stats.TotalRolls[model.KindDr]),
		)
	}
	table.Render()
}

// PrintPlayerBreakdown prints one player's rolls split by roll type.
func PrintPlayerBreakdown(w io.Writer, name string, rows []aggregator.RollTypeRolls, cfg *config.Config) {
	fmt.Fprintf(w, "\nPlayer: %s\n\n", name)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No rolls.")
		return
	}
	table := newTable(w)
	table.Header("TYPE", "DR_N", "DR_AVG", "DR_HOT", "DIE_N", "DIE_AVG", "DIE_HOT")
	for _, r := range rows {
		table.Append(
			r.RollType,
			strconv.Itoa(r.Rolls.DR.NRolls),
			formatAvg(r.Rolls.DR.RollAverage),
			formatScore(aggregator.KindHotness(r.Rolls.DR, cfg.ExpectedDistrib[model.KindDR], cfg.HotnessWeights[model.KindDR])),
			strconv.Itoa(r.Rolls.Dr.NRolls),
			formatAvg(r.Rolls.Dr.RollAverage),
			formatScore(aggregator.KindHotness(r.Rolls.Dr, cfg.ExpectedDistrib[model.KindDr], cfg.HotnessWeights[model.KindDr])),
		)
	}
	table.Render()
}

// PrintRows prints a raw query result.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	table.Header(toAny(cols)...)
	for _, row := range rows {
		table.Append(toAny(row)...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
