package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/report"
)

var rollTypesCmd = &cobra.Command{
	Use:   "rolltypes <report>...",
	Short: "List the roll types in the reports",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRollTypes,
}

func runRollTypes(cmd *cobra.Command, args []string) error {
	_, a, err := loadAnalysis(args)
	if err != nil {
		return err
	}
	if len(a.RollTypes()) == 0 {
		fmt.Fprintln(os.Stdout, "No rolls.")
		return nil
	}
	report.PrintRollTypes(os.Stdout, a)
	return nil
}
