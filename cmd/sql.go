package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/report"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <file.db> <query>",
	Short: "Run a raw SQL query against an export file",
	Long: `Run an arbitrary SQL query against a file written by 'vlogstats export'
and print the results as a table.

Tables: reports, sources, report_players, runs, players, kind_stats,
distributions, hotness, series_points.

Example:
  vlogstats sql stats.db "SELECT p.name, h.score, h.p_value FROM hotness h
    JOIN players p USING (run_key, player_id) WHERE h.kind = 'DR'"`,
	Args: cobra.ExactArgs(2),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	path, query := args[0], args[1]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	db, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRows(os.Stdout, cols, rows)
	return nil
}
