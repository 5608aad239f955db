package storage

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// Run identifies one exported analysis.
type Run struct {
	ReportKeys []string // hashes of the loaded report files, in load order
	LogFileNo  int
	RollType   string
	WindowSize int
	LocalUser  string
	Title      string
	Title2     string
}

// Key is derived from everything that changes the computed results, so
// exporting the same view twice replaces the earlier rows.
func (r Run) Key() string {
	s := fmt.Sprintf("%s|%d|%s|%d|%s", strings.Join(r.ReportKeys, ","), r.LogFileNo, r.RollType, r.WindowSize, r.LocalUser)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(s)))[:16]
}

// Player is a roster entry in display order.
type Player struct {
	ID   string
	Name string
}

// Export is everything computed for one run.
type Export struct {
	Run     Run
	Players []Player
	Stats   aggregator.Stats
	Hotness map[string]aggregator.Hotness
	// Expected is the DR distribution the chi-squared test compares against.
	Expected map[int]float64
	Series   aggregator.Series
	Labels   []string
}

// ReportExists returns true if a report with the given hash is already stored.
func (db *DB) ReportExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM reports WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertReport stores a loaded report's sources and player map. Uses INSERT
// OR REPLACE for idempotency.
func (db *DB) InsertReport(hash, path string, r *model.Report) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO reports(hash, path, n_sources, n_rolls)
		VALUES (?, ?, ?, ?)`,
		hash, path, len(r.LogFiles), r.RollCount(),
	); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	srcStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO sources(report_hash, idx, filename, scenario_name, scenario_id, n_events)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer srcStmt.Close()
	for i, lf := range r.LogFiles {
		if _, err := srcStmt.Exec(hash, i, lf.Filename, lf.Scenario.ScenarioName, lf.Scenario.ScenarioID, len(lf.Events)); err != nil {
			return fmt.Errorf("insert source %d: %w", i, err)
		}
	}

	plStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO report_players(report_hash, player_id, name, position)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer plStmt.Close()
	for i, id := range r.Players.IDs() {
		name, _ := r.Players.Name(id)
		if _, err := plStmt.Exec(hash, id, name, i); err != nil {
			return fmt.Errorf("insert player %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// runTables are cleared before a run is rewritten.
var runTables = []string{"players", "kind_stats", "distributions", "hotness", "series_points"}

// SaveExport writes a run's results in a single transaction, replacing any
// earlier export of the same run. It returns the number of rows written.
func (db *DB) SaveExport(e Export) (int, error) {
	key := e.Run.Key()
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, table := range runTables {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE run_key = ?", key); err != nil {
			return 0, fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO runs(key, report_keys, log_file_no, roll_type, window_size, local_user, title, title2)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key, strings.Join(e.Run.ReportKeys, ","), e.Run.LogFileNo, e.Run.RollType,
		e.Run.WindowSize, e.Run.LocalUser, e.Run.Title, e.Run.Title2,
	); err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	n := 1
	w := &txWriter{tx: tx}
	steps := []func(*txWriter, string, Export) (int, error){
		insertPlayers,
		insertKindStats,
		insertDistributions,
		insertHotness,
		insertSeries,
	}
	for _, step := range steps {
		rows, err := step(w, key, e)
		if err != nil {
			return 0, err
		}
		n += rows
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

type txWriter struct {
	tx *sql.Tx
}

// bulk prepares query once and runs it for every argument list.
func (w *txWriter) bulk(table, query string, args [][]any) (int, error) {
	stmt, err := w.tx.Prepare(query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, a := range args {
		if _, err := stmt.Exec(a...); err != nil {
			return 0, fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return len(args), nil
}

func insertPlayers(w *txWriter, key string, e Export) (int, error) {
	var args [][]any
	for i, p := range e.Players {
		args = append(args, []any{key, p.ID, p.Name, i})
	}
	return w.bulk("players", `
		INSERT INTO players(run_key, player_id, name, position) VALUES (?, ?, ?, ?)`, args)
}

func insertKindStats(w *txWriter, key string, e Export) (int, error) {
	var args [][]any
	for _, p := range e.Players {
		rolls := e.Stats.Player(p.ID)
		for _, k := range model.Kinds {
			s := rolls.Kind(k)
			args = append(args, []any{key, p.ID, string(k), s.NRolls, nullFloat(s.RollAverage), e.Stats.TotalRolls[k]})
		}
	}
	return w.bulk("kind_stats", `
		INSERT INTO kind_stats(run_key, player_id, kind, n_rolls, roll_average, total_rolls)
		VALUES (?, ?, ?, ?, ?, ?)`, args)
}

func insertDistributions(w *txWriter, key string, e Export) (int, error) {
	var args [][]any
	for _, p := range e.Players {
		rolls := e.Stats.Player(p.ID)
		for _, k := range model.Kinds {
			s := rolls.Kind(k)
			for _, v := range k.Values() {
				args = append(args, []any{key, p.ID, string(k), v, s.Distrib[v], s.Percent(v)})
			}
		}
	}
	return w.bulk("distributions", `
		INSERT INTO distributions(run_key, player_id, kind, total, n, pct)
		VALUES (?, ?, ?, ?, ?, ?)`, args)
}

func insertHotness(w *txWriter, key string, e Export) (int, error) {
	var args [][]any
	for _, p := range e.Players {
		h, ok := e.Hotness[p.ID]
		if !ok {
			continue
		}
		for _, k := range model.Kinds {
			var chi, df, pv any
			if k == model.KindDR {
				if cs, ok := aggregator.ChiSquared(e.Stats.Player(p.ID).DR, e.Expected); ok {
					chi, df, pv = cs.Statistic, cs.DF, cs.PValue
				}
			}
			ratio := 0.0
			if k == model.KindDR {
				ratio = h.RollRatio
			}
			args = append(args, []any{key, p.ID, string(k), nullScore(h.ByKind[k]), ratio, chi, df, pv})
		}
	}
	return w.bulk("hotness", `
		INSERT INTO hotness(run_key, player_id, kind, score, roll_ratio, chi2, df, p_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, args)
}

func insertSeries(w *txWriter, key string, e Export) (int, error) {
	var args [][]any
	for i, pt := range e.Series.Points {
		label := ""
		if i < len(e.Labels) {
			label = e.Labels[i]
		}
		args = append(args, []any{key, i, pt.PlayerID, pt.RollType, pt.RollValue.String(), pt.MovingAverage, pt.RollNo, label})
	}
	return w.bulk("series_points", `
		INSERT INTO series_points(run_key, seq, player_id, roll_type, roll_value, moving_average, roll_no, label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, args)
}

func nullFloat(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func nullScore(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// ListRuns returns every exported run, ordered by title.
func (db *DB) ListRuns() ([]Run, error) {
	rows, err := db.conn.Query(`
		SELECT report_keys, log_file_no, roll_type, window_size, local_user, title, title2
		FROM runs ORDER BY title, key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r    Run
			keys string
		)
		if err := rows.Scan(&keys, &r.LogFileNo, &r.RollType, &r.WindowSize, &r.LocalUser, &r.Title, &r.Title2); err != nil {
			return nil, err
		}
		if keys != "" {
			r.ReportKeys = strings.Split(keys, ",")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
