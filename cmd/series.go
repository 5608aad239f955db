package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/report"
)

var (
	seriesWindow   int
	seriesRollType string
	seriesPoints   bool
)

var seriesCmd = &cobra.Command{
	Use:   "series <report>...",
	Short: "Moving average of each player's rolls over the game",
	Long: `Walk the events in order and print each player's moving average roll.
With no --roll-type only DRs are included. The window is clamped to the
largest size the busiest player has enough rolls for.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSeries,
}

func init() {
	seriesCmd.Flags().IntVarP(&seriesWindow, "window", "w", 0, "moving average window (default from config)")
	seriesCmd.Flags().StringVar(&seriesRollType, "roll-type", "", "only include rolls of this type")
	seriesCmd.Flags().BoolVar(&seriesPoints, "points", true, "print every point, not just the per-player summary")
}

func runSeries(cmd *cobra.Command, args []string) error {
	s, a, err := loadAnalysis(args)
	if err != nil {
		return err
	}
	window, usable := aggregator.ChooseWindowSize(a, seriesRollType, seriesWindow, s.cfg.PreferredWindowSize, s.cfg.WindowSizes)
	if seriesWindow > 0 && window != seriesWindow {
		fmt.Fprintf(os.Stderr, "window %d is too large for this data, using %d\n", seriesWindow, window)
	}
	series, labels := aggregator.LabeledSeries(a, window, seriesRollType)

	report.PrintBanner(os.Stdout, a)
	fmt.Fprintf(os.Stdout, "--- %s ---\n", rollTypeLabel(seriesRollType))
	report.PrintWindowSizes(os.Stdout, window, usable)
	report.PrintSeriesSummary(os.Stdout, a, series)
	if seriesPoints {
		fmt.Fprintln(os.Stdout)
		report.PrintSeries(os.Stdout, a, series, labels)
	}
	return nil
}
