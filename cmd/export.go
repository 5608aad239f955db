package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/loader"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/storage"
)

var (
	exportOut      string
	exportRollType string
	exportWindow   int
)

var exportCmd = &cobra.Command{
	Use:   "export <report>... --out <file.db>",
	Short: "Write computed statistics to a SQLite file",
	Long: `Compute the distributions, hotness scores and moving-average series for
the selected sources and write them to a SQLite file for ad-hoc queries
(see 'vlogstats sql'). Exporting the same view again replaces its rows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "SQLite file to write (required)")
	exportCmd.Flags().StringVar(&exportRollType, "roll-type", "", "roll type for the distributions and series")
	exportCmd.Flags().IntVarP(&exportWindow, "window", "w", 0, "moving average window (default from config)")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, a, err := loadAnalysis(args)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(exportOut); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(exportOut)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := storeReports(db, s.files); err != nil {
		return err
	}

	e := buildExport(s, a, exportRollType, exportWindow)
	n, err := db.SaveExport(e)
	if err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	log.Info().
		Str("out", exportOut).
		Str("run", e.Run.Key()).
		Int("rows", n).
		Int("window", e.Run.WindowSize).
		Msg("export written")
	fmt.Fprintf(os.Stdout, "Exported %d rows to %s (run %s)\n", n, exportOut, e.Run.Key())
	return nil
}

// storeReports writes the input reports, skipping any whose hash is already
// in the file.
func storeReports(db *storage.DB, files []*loader.File) error {
	for _, f := range files {
		exists, err := db.ReportExists(f.Hash)
		if err != nil {
			return fmt.Errorf("check report %s: %w", f.Path, err)
		}
		if exists {
			log.Debug().Str("path", f.Path).Str("hash", f.Hash[:min(12, len(f.Hash))]).Msg("report already stored")
			continue
		}
		if err := db.InsertReport(f.Hash, f.Path, f.Report); err != nil {
			return fmt.Errorf("store report %s: %w", f.Path, err)
		}
	}
	return nil
}

// buildExport runs every engine query for one view of the data.
func buildExport(s *session, a *analysis.Analysis, rollType string, requestedWindow int) storage.Export {
	window, _ := aggregator.ChooseWindowSize(a, rollType, requestedWindow, s.cfg.PreferredWindowSize, s.cfg.WindowSizes)
	stats := aggregator.ExtractStats(a, aggregator.RollTypeFilter(rollType))
	series, labels := aggregator.LabeledSeries(a, window, rollType)

	var players []storage.Player
	a.ForEachPlayer(func(id string, _ int) {
		players = append(players, storage.Player{ID: id, Name: a.PlayerName(id)})
	})

	return storage.Export{
		Run: storage.Run{
			ReportKeys: s.reportKeys(),
			LogFileNo:  a.LogFileNo(),
			RollType:   rollType,
			WindowSize: window,
			LocalUser:  s.cfg.LocalUser,
			Title:      a.Title,
			Title2:     a.Title2,
		},
		Players:  players,
		Stats:    stats,
		Hotness:  aggregator.CalcHotness(stats, s.cfg),
		Expected: s.cfg.ExpectedDistrib[model.KindDR],
		Series:   series,
		Labels:   labels.Labels,
	}
}
