package storage

import (
	"testing"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleReport() *model.Report {
	return &model.Report{
		Players: model.NewPlayerMap("p:1", "Alice", "p:2", "Bob"),
		LogFiles: []model.LogSource{{
			Filename: "game.vlog",
			Scenario: model.Scenario{ScenarioName: "Hill 621", ScenarioID: "ASL 12"},
			Events: []model.Event{
				model.RollEvent("p:1", "IFT", model.MustRoll(3, 4)),
				model.RollEvent("p:1", "IFT", model.MustRoll(1, 1)),
				model.RollEvent("p:2", "MC", model.MustRoll(6, 5)),
				model.RollEvent("p:2", "RS", model.MustRoll(4)),
			},
		}},
	}
}

func sampleExport(t *testing.T, r *model.Report) Export {
	t.Helper()
	cfg := config.Default()
	a := analysis.New(r, analysis.AllFiles, cfg)
	stats := aggregator.ExtractStats(a, nil)
	series, labels := aggregator.LabeledSeries(a, 1, "")

	var players []Player
	a.ForEachPlayer(func(id string, _ int) {
		players = append(players, Player{ID: id, Name: a.PlayerName(id)})
	})
	return Export{
		Run: Run{
			ReportKeys: []string{"h1"},
			LogFileNo:  analysis.AllFiles,
			WindowSize: 1,
			Title:      a.Title,
			Title2:     a.Title2,
		},
		Players:  players,
		Stats:    stats,
		Hotness:  aggregator.CalcHotness(stats, cfg),
		Expected: cfg.ExpectedDistrib[model.KindDR],
		Series:   series,
		Labels:   labels.Labels,
	}
}

func queryOne(t *testing.T, db *DB, query string) string {
	t.Helper()
	_, rows, err := db.QueryRaw(query)
	if err != nil {
		t.Fatalf("QueryRaw(%s): %v", query, err)
	}
	if len(rows) != 1 || len(rows[0]) != 1 {
		t.Fatalf("QueryRaw(%s): want 1x1 result, got %v", query, rows)
	}
	return rows[0][0]
}

func TestInsertReportAndExists(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertReport("h1", "game.json", sampleReport()); err != nil {
		t.Fatalf("InsertReport: %v", err)
	}
	exists, err := db.ReportExists("h1")
	if err != nil {
		t.Fatalf("ReportExists: %v", err)
	}
	if !exists {
		t.Error("expected report to exist after insert")
	}
	exists2, _ := db.ReportExists("nonexistent")
	if exists2 {
		t.Error("expected non-existent report to not exist")
	}

	if got := queryOne(t, db, "SELECT n_rolls FROM reports WHERE hash = 'h1'"); got != "4" {
		t.Errorf("n_rolls = %s, want 4", got)
	}
	if got := queryOne(t, db, "SELECT scenario_name FROM sources WHERE report_hash = 'h1'"); got != "Hill 621" {
		t.Errorf("scenario_name = %s", got)
	}
	if got := queryOne(t, db, "SELECT name FROM report_players WHERE position = 1"); got != "Bob" {
		t.Errorf("second player = %s, want Bob", got)
	}

	// Re-inserting the same report is idempotent.
	if err := db.InsertReport("h1", "game.json", sampleReport()); err != nil {
		t.Fatalf("InsertReport again: %v", err)
	}
	if got := queryOne(t, db, "SELECT COUNT(*) FROM sources"); got != "1" {
		t.Errorf("sources = %s, want 1", got)
	}
}

func TestSaveExport(t *testing.T) {
	db := openMemDB(t)
	e := sampleExport(t, sampleReport())

	n, err := db.SaveExport(e)
	if err != nil {
		t.Fatalf("SaveExport: %v", err)
	}
	// 1 run + 2 players + 4 kind_stats + 2*(11+6) distributions + 4 hotness + 3 series points
	if want := 1 + 2 + 4 + 34 + 4 + 3; n != want {
		t.Errorf("rows written = %d, want %d", n, want)
	}

	if got := queryOne(t, db, "SELECT roll_average FROM kind_stats WHERE player_id = 'p:1' AND kind = 'DR'"); got != "4.5" {
		t.Errorf("Alice DR average = %s, want 4.5", got)
	}
	if got := queryOne(t, db, "SELECT roll_average FROM kind_stats WHERE player_id = 'p:1' AND kind = 'dr'"); got != "NULL" {
		t.Errorf("empty sample average = %s, want NULL", got)
	}
	if got := queryOne(t, db, "SELECT score IS NULL FROM hotness WHERE player_id = 'p:1' AND kind = 'dr'"); got != "1" {
		t.Errorf("empty sample hotness should be NULL")
	}
	if got := queryOne(t, db, "SELECT df FROM hotness WHERE player_id = 'p:1' AND kind = 'DR'"); got != "10" {
		t.Errorf("df = %s, want 10", got)
	}
	if got := queryOne(t, db, "SELECT n FROM distributions WHERE player_id = 'p:2' AND kind = 'DR' AND total = 11"); got != "1" {
		t.Errorf("Bob's 11s = %s, want 1", got)
	}
	if got := queryOne(t, db, "SELECT COUNT(*) FROM series_points"); got != "3" {
		t.Errorf("series points = %s, want 3", got)
	}
}

func TestSaveExportReplacesRun(t *testing.T) {
	db := openMemDB(t)
	e := sampleExport(t, sampleReport())

	for i := 0; i < 2; i++ {
		if _, err := db.SaveExport(e); err != nil {
			t.Fatalf("SaveExport #%d: %v", i+1, err)
		}
	}
	if got := queryOne(t, db, "SELECT COUNT(*) FROM runs"); got != "1" {
		t.Errorf("runs = %s, want 1", got)
	}
	if got := queryOne(t, db, "SELECT COUNT(*) FROM series_points"); got != "3" {
		t.Errorf("series points = %s, want 3 after re-export", got)
	}

	// A different window is a different run.
	e.Run.WindowSize = 2
	if _, err := db.SaveExport(e); err != nil {
		t.Fatalf("SaveExport window 2: %v", err)
	}
	runs, err := db.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Title != "Hill 621" || len(runs[0].ReportKeys) != 1 {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestRunKey(t *testing.T) {
	a := Run{ReportKeys: []string{"x"}, LogFileNo: -1, WindowSize: 5}
	b := a
	b.Title = "ignored"
	if a.Key() != b.Key() {
		t.Error("title should not change the key")
	}
	b.RollType = "IFT"
	if a.Key() == b.Key() {
		t.Error("roll type should change the key")
	}
}

func TestQueryRaw_Error(t *testing.T) {
	db := openMemDB(t)
	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}
