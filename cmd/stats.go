package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/report"
)

var (
	statsRollType string
	statsCounts   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <report>...",
	Short: "Show each player's DR and dr distributions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsRollType, "roll-type", "", "only count rolls of this type (e.g. IFT, MC)")
	statsCmd.Flags().BoolVar(&statsCounts, "counts", false, "also print raw roll counts")
}

func runStats(cmd *cobra.Command, args []string) error {
	s, a, err := loadAnalysis(args)
	if err != nil {
		return err
	}
	stats := aggregator.ExtractStats(a, aggregator.RollTypeFilter(statsRollType))

	report.PrintBanner(os.Stdout, a)
	for _, k := range model.Kinds {
		if stats.TotalRolls[k] == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "--- %s distribution, %s (%%) ---\n", k, rollTypeLabel(statsRollType))
		report.PrintDistribution(os.Stdout, a, stats, k, s.cfg)
		if statsCounts {
			report.PrintRollCounts(os.Stdout, a, stats, k)
		}
		fmt.Fprintln(os.Stdout)
	}
	if stats.TotalRolls[model.KindDR] == 0 && stats.TotalRolls[model.KindDr] == 0 {
		fmt.Fprintln(os.Stdout, "No rolls.")
	}
	return nil
}
