package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/report"
)

// summaryCmd prints the overview shown when a report is first opened.
var summaryCmd = &cobra.Command{
	Use:   "summary <report>...",
	Short: "Show sources, distributions and hotness in one go",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, a, err := loadAnalysis(args)
	if err != nil {
		return err
	}

	report.PrintBanner(os.Stdout, a)
	fmt.Fprintln(os.Stdout, "--- Sources ---")
	for i, name := range a.LogFiles() {
		fmt.Fprintf(os.Stdout, "  %2d  %s\n", i+1, name)
	}
	fmt.Fprintln(os.Stdout)

	stats := aggregator.ExtractStats(a, nil)
	for _, k := range model.Kinds {
		if stats.TotalRolls[k] == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "--- %s distribution (%%) ---\n", k)
		report.PrintDistribution(os.Stdout, a, stats, k, s.cfg)
		fmt.Fprintln(os.Stdout)
	}

	fmt.Fprintln(os.Stdout, "--- Hotness ---")
	report.PrintHotness(os.Stdout, a, stats, aggregator.CalcHotness(stats, s.cfg), s.cfg)
	return nil
}
