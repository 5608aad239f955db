package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/report"
)

var playerCmd = &cobra.Command{
	Use:   "player <id|name> <report>...",
	Short: "Break down one player's rolls by roll type",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	s, a, err := loadAnalysis(args[1:])
	if err != nil {
		return err
	}
	id, err := findPlayer(a, args[0])
	if err != nil {
		return err
	}
	report.PrintBanner(os.Stdout, a)
	report.PrintPlayerBreakdown(os.Stdout, a.PlayerName(id), aggregator.BreakdownByRollType(a, id), s.cfg)
	return nil
}

// findPlayer matches a player ID exactly, then a display name
// case-insensitively.
func findPlayer(a *analysis.Analysis, query string) (string, error) {
	if a.Roster().Contains(query) {
		return query, nil
	}
	for _, id := range a.PlayerIDs() {
		if strings.EqualFold(a.PlayerName(id), query) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no player %q in the selected sources", query)
}
