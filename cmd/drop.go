package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

// dropCmd deletes an export file.
var dropCmd = &cobra.Command{
	Use:   "drop <file.db>",
	Short: "Delete an export file",
	Long:  "Permanently delete a SQLite file written by 'vlogstats export', along with its WAL files. Re-run export to rebuild it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", path)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Export file does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove export: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(path + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path+suffix, err)
		}
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", path)
	return nil
}
