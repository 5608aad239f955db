package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
)

// PrintWindowSizes prints the chosen moving-average window and the sizes the
// data supports.
func PrintWindowSizes(w io.Writer, chosen int, usable []int) {
	sizes := make([]string, len(usable))
	for i, s := range usable {
		if s == chosen {
			sizes[i] = "[" + strconv.Itoa(s) + "]"
		} else {
			sizes[i] = strconv.Itoa(s)
		}
	}
	fmt.Fprintf(w, "\nWindow: %s\n\n", strings.Join(sizes, " "))
}

// PrintSeries prints the points of a series with their labels. The FILE
// column changes at each source boundary the labeler recorded.
func PrintSeries(w io.Writer, a *analysis.Analysis, s aggregator.Series, l *aggregator.Labeler) {
	if len(s.Points) == 0 {
		fmt.Fprintln(w, "No rolls.")
		return
	}
	files := a.LogFiles()

	table := newTable(w)
	table.Header("#", "FILE", "LABEL", "PLAYER", "TYPE", "ROLL", "AVG", "ROLL_NO")

	fileNo := -1
	for i, p := range s.Points {
		for fileNo+1 < len(l.LogFileIndexes) && l.LogFileIndexes[fileNo+1] <= i {
			fileNo++
		}
		file := ""
		if fileNo >= 0 && fileNo < len(files) {
			file = files[fileNo]
		}
		label := ""
		if i < len(l.Labels) {
			label = l.Labels[i]
		}
		table.Append(
			strconv.Itoa(i+1),
			file,
			label,
			a.PlayerName(p.PlayerID),
			p.RollType,
			p.RollValue.String(),
			fmt.Sprintf("%.2f", p.MovingAverage),
			strconv.Itoa(p.RollNo),
		)
	}
	table.Render()
}

// PrintSeriesSummary prints each player's included roll count and final
// moving average.
func PrintSeriesSummary(w io.Writer, a *analysis.Analysis, s aggregator.Series) {
	table := newTable(w)
	table.Header("PLAYER", "ROLLS", "POINTS", "LAST_AVG")
	a.ForEachPlayer(func(id string, _ int) {
		pts := s.PlayerPoints(id)
		last := absent
		if len(pts) > 0 {
			last = fmt.Sprintf("%.2f", pts[len(pts)-1].MovingAverage)
		}
		table.Append(a.PlayerName(id), strconv.Itoa(s.NRolls[id]), strconv.Itoa(len(pts)), last)
	})
	table.Render()
}
