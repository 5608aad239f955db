package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

func sampleAnalysis(t *testing.T, localUser string) *analysis.Analysis {
	t.Helper()
	r := &model.Report{
		Players: model.NewPlayerMap("p:1", "Alice", "p:2", "Bob"),
		LogFiles: []model.LogSource{
			{
				Filename: "one.vlog",
				Scenario: model.Scenario{ScenarioName: "Hill 621", ScenarioID: "ASL 12"},
				Events: []model.Event{
					model.TurnTrackEvent("German", "1", "Rally"),
					model.RollEvent("p:1", "IFT", model.MustRoll(1, 1)),
					model.RollEvent("p:2", "IFT", model.MustRoll(6, 6)),
					model.RollEvent("p:1", "SA", model.MustRoll(2)),
				},
			},
			{
				Filename: "two.vlog",
				Events: []model.Event{
					model.CustomLabelEvent("ambush"),
					model.RollEvent("p:2", "MC", model.MustRoll(3, 4)),
				},
			},
		},
	}
	return analysis.New(r, analysis.AllFiles, config.Default().WithLocalUser(localUser))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, sampleAnalysis(t, ""))
	out := buf.String()
	for _, want := range []string{"Hill 621 (ASL 12)", "Files: 2", "Players: 2", "Rolls: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q:\n%s", want, out)
		}
	}
}

func TestPrintDistribution_MarksLocalUser(t *testing.T) {
	a := sampleAnalysis(t, "bob")
	stats := aggregator.ExtractStats(a, nil)

	var buf bytes.Buffer
	PrintDistribution(&buf, a, stats, model.KindDR, config.Default())
	out := buf.String()

	if !strings.Contains(out, "EXPECTED") {
		t.Errorf("missing expected row:\n%s", out)
	}
	if !strings.Contains(out, "16.7") {
		t.Errorf("missing expected 7 share:\n%s", out)
	}
	if !strings.Contains(out, ">") || !strings.Contains(out, config.LocalUserLabel) {
		t.Errorf("local user not marked:\n%s", out)
	}
	if strings.Contains(out, "Bob") {
		t.Errorf("local user should be renamed:\n%s", out)
	}
}

func TestMarkerFollowsLocalUserID(t *testing.T) {
	r := &model.Report{
		Players: model.NewPlayerMap("p:1", config.LocalUserLabel, "p:2", "Bob"),
		LogFiles: []model.LogSource{{Events: []model.Event{
			model.RollEvent("p:1", "IFT", model.MustRoll(2, 3)),
			model.RollEvent("p:2", "IFT", model.MustRoll(4, 5)),
		}}},
	}
	a := analysis.New(r, analysis.AllFiles, config.Default())
	if got := marker(a, "p:1"); got != " " {
		t.Errorf("player named %q marked without a local user: %q", config.LocalUserLabel, got)
	}

	a = analysis.New(r, analysis.AllFiles, config.Default().WithLocalUser("bob"))
	if got := marker(a, "p:2"); got != ">" {
		t.Errorf("local user not marked: %q", got)
	}
	if got := marker(a, "p:1"); got != " " {
		t.Errorf("p:1 marked as local user: %q", got)
	}
}

func TestSampleFlag(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{1, "OK"},
		{2.5, "OK"},
		{0.5, "LOW"},
		{0.99, "LOW"},
		{0.1, "VERY_LOW"},
	}
	for _, c := range cases {
		if got := sampleFlag(aggregator.Hotness{RollRatio: c.ratio}); got != c.want {
			t.Errorf("sampleFlag(%v) = %s, want %s", c.ratio, got, c.want)
		}
	}
}

func TestPrintHotness(t *testing.T) {
	a := sampleAnalysis(t, "")
	cfg := config.Default()
	stats := aggregator.ExtractStats(a, nil)
	hot := aggregator.CalcHotness(stats, cfg)

	var buf bytes.Buffer
	PrintHotness(&buf, a, stats, hot, cfg)
	out := buf.String()
	if !strings.Contains(out, "VERY_LOW") {
		t.Errorf("small sample not flagged:\n%s", out)
	}
	if !strings.Contains(out, "fewer than 100 DR's") {
		t.Errorf("missing threshold footer:\n%s", out)
	}
}

func TestPrintSeries_FileColumn(t *testing.T) {
	a := sampleAnalysis(t, "")
	s, l := aggregator.LabeledSeries(a, 1, "")

	var buf bytes.Buffer
	PrintSeries(&buf, a, s, l)
	out := buf.String()
	for _, want := range []string{"one.vlog", "two.vlog", "German 1 Rally", "ambush"} {
		if !strings.Contains(out, want) {
			t.Errorf("series missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSeries_Empty(t *testing.T) {
	a := sampleAnalysis(t, "")
	s, l := aggregator.LabeledSeries(a, 1, "TK")

	var buf bytes.Buffer
	PrintSeries(&buf, a, s, l)
	if got := strings.TrimSpace(buf.String()); got != "No rolls." {
		t.Errorf("got %q", got)
	}
}

func TestPrintWindowSizes(t *testing.T) {
	var buf bytes.Buffer
	PrintWindowSizes(&buf, 5, []int{1, 5})
	if got := strings.TrimSpace(buf.String()); got != "Window: 1 [5]" {
		t.Errorf("got %q", got)
	}
}

func TestPrintExtremes(t *testing.T) {
	a := sampleAnalysis(t, "")
	var buf bytes.Buffer
	PrintExtremes(&buf, a, aggregator.ExtractExtremes(a))
	out := buf.String()
	for _, want := range []string{"IFT 2", "IFT 12", "SA 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("extremes missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "MC 2") {
		t.Errorf("MC had no extremes but was shown:\n%s", out)
	}
}

func TestPrintRollTypes(t *testing.T) {
	var buf bytes.Buffer
	PrintRollTypes(&buf, sampleAnalysis(t, ""))
	out := buf.String()
	for _, want := range []string{"Morale Check", "Sniper Activation"} {
		if !strings.Contains(out, want) {
			t.Errorf("roll types missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Close Combat") {
		t.Errorf("absent roll type listed:\n%s", out)
	}
}

func TestPrintPlayerBreakdown_NoRolls(t *testing.T) {
	var buf bytes.Buffer
	PrintPlayerBreakdown(&buf, "Carol", nil, config.Default())
	if !strings.Contains(buf.String(), "No rolls.") {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, []string{"name", "score"}, [][]string{{"Alice", "1.5"}, {"Bob", "NULL"}})
	out := buf.String()
	for _, want := range []string{"Alice", "NULL", "(2 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}
