package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/report"
)

var extremesCmd = &cobra.Command{
	Use:   "extremes <report>...",
	Short: "Count snake eyes, boxcars and sniper activations",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtremes,
}

func runExtremes(cmd *cobra.Command, args []string) error {
	_, a, err := loadAnalysis(args)
	if err != nil {
		return err
	}
	report.PrintBanner(os.Stdout, a)
	report.PrintExtremes(os.Stdout, a, aggregator.ExtractExtremes(a))
	return nil
}
