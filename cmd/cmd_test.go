package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/loader"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/storage"
)

func testSession(t *testing.T) *session {
	t.Helper()
	r := &model.Report{
		Players: model.NewPlayerMap("p:1", "Alice", "p:2", "Bob"),
		LogFiles: []model.LogSource{
			{Filename: "a.vlog", Events: []model.Event{
				model.RollEvent("p:1", "IFT", model.MustRoll(1, 1)),
				model.RollEvent("p:2", "MC", model.MustRoll(6, 6)),
			}},
			{Filename: "b.vlog", Events: []model.Event{
				model.RollEvent("p:2", "SA", model.MustRoll(1)),
			}},
		},
	}
	return &session{
		cfg:    config.Default(),
		report: r,
		files:  []*loader.File{{Path: "x.json", Hash: "abc", Report: r}},
	}
}

func TestSessionAnalysisRange(t *testing.T) {
	s := testSession(t)
	if _, err := s.analysis(analysis.AllFiles); err != nil {
		t.Errorf("all files: %v", err)
	}
	a, err := s.analysis(1)
	if err != nil {
		t.Fatalf("file 1: %v", err)
	}
	if a.FileCaption() != "2/2" {
		t.Errorf("caption = %q, want 2/2", a.FileCaption())
	}
	if _, err := s.analysis(2); err == nil {
		t.Error("expected out-of-range error")
	}
	if _, err := s.analysis(-2); err == nil {
		t.Error("expected error for -2")
	}
}

func TestFindPlayer(t *testing.T) {
	a, _ := testSession(t).analysis(analysis.AllFiles)
	if id, err := findPlayer(a, "p:2"); err != nil || id != "p:2" {
		t.Errorf("by id: %q, %v", id, err)
	}
	if id, err := findPlayer(a, "alice"); err != nil || id != "p:1" {
		t.Errorf("by name: %q, %v", id, err)
	}
	if _, err := findPlayer(a, "Carol"); err == nil {
		t.Error("expected error for unknown player")
	}
}

func TestBuildExplainDoc(t *testing.T) {
	s := testSession(t)
	a, _ := s.analysis(analysis.AllFiles)
	doc, err := buildExplainDoc(a, s.cfg, "")
	if err != nil {
		t.Fatalf("buildExplainDoc: %v", err)
	}
	var parsed struct {
		Players []struct {
			Name  string `json:"name"`
			Kinds map[string]struct {
				NRolls  int      `json:"n_rolls"`
				Average *float64 `json:"average"`
			} `json:"kinds"`
			Extremes map[string][2]int `json:"twos_and_twelves"`
		} `json:"players"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("doc is not JSON: %v\n%s", err, doc)
	}
	if len(parsed.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(parsed.Players))
	}
	alice := parsed.Players[0]
	if alice.Name != "Alice" || alice.Kinds["DR"].NRolls != 1 {
		t.Errorf("alice = %+v", alice)
	}
	if alice.Kinds["dr"].Average != nil {
		t.Error("empty dr sample should have a null average")
	}
	if got := alice.Extremes["IFT"]; got != [2]int{1, 0} {
		t.Errorf("alice IFT extremes = %v", got)
	}
}

func TestBuildExport(t *testing.T) {
	s := testSession(t)
	a, _ := s.analysis(analysis.AllFiles)
	e := buildExport(s, a, "", 0)
	if e.Run.WindowSize != 1 {
		t.Errorf("window = %d, want 1 for two DRs", e.Run.WindowSize)
	}
	if len(e.Players) != 2 || e.Players[0].Name != "Alice" {
		t.Errorf("players = %+v", e.Players)
	}
	if len(e.Series.Points) != 2 || len(e.Labels) != 2 {
		t.Errorf("points %d, labels %d", len(e.Series.Points), len(e.Labels))
	}
	if len(e.Run.ReportKeys) != 1 || e.Run.ReportKeys[0] != "abc" {
		t.Errorf("report keys = %v", e.Run.ReportKeys)
	}
}

func openMemDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStoreReportsSkipsKnownHashes(t *testing.T) {
	s := testSession(t)
	db := openMemDB(t)
	if err := db.InsertReport("abc", "first.json", s.report); err != nil {
		t.Fatalf("InsertReport: %v", err)
	}
	if err := storeReports(db, s.files); err != nil {
		t.Fatalf("storeReports: %v", err)
	}
	_, rows, err := db.QueryRaw("SELECT path FROM reports")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "first.json" {
		t.Errorf("reports = %v, want the first insert kept", rows)
	}

	more := append(s.files, &loader.File{Path: "y.json", Hash: "def", Report: s.report})
	if err := storeReports(db, more); err != nil {
		t.Fatalf("storeReports: %v", err)
	}
	if ok, _ := db.ReportExists("def"); !ok {
		t.Error("new report was not stored")
	}
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	printRuns(&buf, nil)
	if !strings.Contains(buf.String(), "No runs stored yet") {
		t.Errorf("empty listing: %q", buf.String())
	}

	s := testSession(t)
	a, _ := s.analysis(analysis.AllFiles)
	e := buildExport(s, a, "", 0)
	db := openMemDB(t)
	if _, err := db.SaveExport(e); err != nil {
		t.Fatalf("SaveExport: %v", err)
	}
	runs, err := db.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}

	buf.Reset()
	printRuns(&buf, runs)
	out := buf.String()
	for _, want := range []string{e.Run.Key(), "a.vlog", "all", "DR"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestExplainAPIKeyFrom(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	if key, err := explainAPIKeyFrom("flag-key"); err != nil || key != "flag-key" {
		t.Errorf("flag: %q, %v", key, err)
	}
	if key, err := explainAPIKeyFrom(""); err != nil || key != "env-key" {
		t.Errorf("env: %q, %v", key, err)
	}
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := explainAPIKeyFrom(""); err == nil {
		t.Error("expected an error with no key")
	}
}

func TestExplainRequest(t *testing.T) {
	req := explainRequest("some-model", "be brief", `{"players":[]}`, "who is hot?")
	if string(req.Model) != "some-model" || req.MaxTokens != 1024 {
		t.Errorf("model %q, max tokens %d", req.Model, req.MaxTokens)
	}
	if len(req.System) != 1 || req.System[0].Text != "be brief" {
		t.Errorf("system = %+v", req.System)
	}
	if len(req.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(req.Messages))
	}
	b, err := json.Marshal(req.Messages[0])
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}
	for _, want := range []string{"DATA:", "QUESTION: who is hot?", `\"players\"`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("message missing %q: %s", want, b)
		}
	}
}
