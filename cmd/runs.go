package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/storage"
)

var runsCmd = &cobra.Command{
	Use:   "runs <file.db>",
	Short: "List the runs stored in an export file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	db, err := storage.Open(args[0])
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	printRuns(os.Stdout, runs)
	return nil
}

func printRuns(w io.Writer, runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored yet. Run 'vlogstats export <report> --out <file.db>' to add one.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-30s  %-6s  %-8s  %6s  %s\n",
		"KEY", "TITLE", "FILE", "TYPE", "WINDOW", "REPORTS")
	fmt.Fprintf(w, "%-16s  %-30s  %-6s  %-8s  %6s  %s\n",
		"────────────────", "──────────────────────────────", "──────", "────────", "──────", "───────")
	for _, r := range runs {
		file := "all"
		if r.LogFileNo >= 0 {
			file = fmt.Sprintf("%d", r.LogFileNo+1)
		}
		rt := r.RollType
		if rt == "" {
			rt = "DR"
		}
		title := strings.TrimSpace(r.Title + " " + r.Title2)
		fmt.Fprintf(w, "%-16s  %-30s  %-6s  %-8s  %6d  %d\n",
			r.Key(), title, file, rt, r.WindowSize, len(r.ReportKeys))
	}
}
