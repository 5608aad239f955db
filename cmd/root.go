package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	localUser  string
	fileNo     int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "vlogstats",
	Short: "VASL log file dice statistics",
	Long: `Compute per-player dice statistics, hotness scores and moving-average
series from the analysis reports written by the VASL log file analyser.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML engine config")
	rootCmd.PersistentFlags().StringVar(&localUser, "local-user", "", "your player name (shown as \"Me\", listed first)")
	rootCmd.PersistentFlags().IntVar(&fileNo, "file", 0, "only analyse source n (1-based); 0 for all")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(hotnessCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(rollTypesCmd)
	rootCmd.AddCommand(extremesCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(shellCmd)
}

func setupLogging(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
