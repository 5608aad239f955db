package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/report"
)

var hotnessRollType string

var hotnessCmd = &cobra.Command{
	Use:   "hotness <report>...",
	Short: "Score how hot or cold each player's dice ran",
	Long: `Score each player's DR distribution against the expected one. Positive
scores mean more low DRs than expected (good for the roller), negative
scores more high ones. Scores from small samples are flagged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHotness,
}

func init() {
	hotnessCmd.Flags().StringVar(&hotnessRollType, "roll-type", "", "only score rolls of this type")
}

func runHotness(cmd *cobra.Command, args []string) error {
	s, a, err := loadAnalysis(args)
	if err != nil {
		return err
	}
	stats := aggregator.ExtractStats(a, aggregator.RollTypeFilter(hotnessRollType))
	hot := aggregator.CalcHotness(stats, s.cfg)

	report.PrintBanner(os.Stdout, a)
	report.PrintHotness(os.Stdout, a, stats, hot, s.cfg)
	return nil
}
