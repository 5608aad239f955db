// Package analysis merges the sources of an analysis report into one ordered
// event stream with a resolved player roster.
package analysis

import (
	"fmt"
	"strings"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// AllFiles selects every source in the report.
const AllFiles = -1

// Analysis is built once per (report, source selection) and is read-only
// afterwards. Selecting a different source means building a new Analysis.
type Analysis struct {
	logFiles  []string
	logFileNo int
	nSources  int
	events    []model.Event
	roster    Roster

	Title  string
	Title2 string
}

// New merges the report's sources. If logFileNo >= 0 only that source is
// included; otherwise all of them are, in order, each preceded by its
// log-file marker event.
func New(r *model.Report, logFileNo int, cfg *config.Config) *Analysis {
	a := &Analysis{logFileNo: logFileNo, nSources: len(r.LogFiles)}
	seen := make(map[string]bool)

	for i, lf := range r.LogFiles {
		if logFileNo >= 0 && logFileNo != i {
			continue
		}
		name := lf.Filename
		if name == "" {
			name = fmt.Sprintf("file #%d", i+1)
		}
		a.logFiles = append(a.logFiles, name)
		a.events = append(a.events, model.LogFileEvent(lf.Filename))
		for _, ev := range lf.Events {
			a.events = append(a.events, ev)
			if ev.Type == model.EventRoll {
				seen[ev.PlayerID] = true
			}
		}
		// Prefer the last (most recent) scenario name found.
		if lf.Scenario.ScenarioName != "" {
			a.Title = lf.Scenario.ScenarioName
			a.Title2 = lf.Scenario.ScenarioID
		}
	}

	if a.Title == "" && len(a.logFiles) > 0 {
		a.Title = a.logFiles[0]
		if n := len(a.logFiles) - 1; n > 0 {
			a.Title2 = fmt.Sprintf("and %d %s", n, plural(n, "other", "others"))
		}
	}

	localUser := ""
	if cfg != nil {
		localUser = cfg.LocalUser
	}
	a.roster = resolveRoster(r.Players, seen, localUser)
	return a
}

// Events returns the merged event stream. Callers must not modify it.
func (a *Analysis) Events() []model.Event { return a.events }

// LogFiles returns the display names of the included sources.
func (a *Analysis) LogFiles() []string { return append([]string(nil), a.logFiles...) }

// LogFileNo returns the source selector the analysis was built with.
func (a *Analysis) LogFileNo() int { return a.logFileNo }

// SourceCount returns the number of sources in the report, selected or not.
func (a *Analysis) SourceCount() int { return a.nSources }

// Roster returns the resolved players.
func (a *Analysis) Roster() Roster { return a.roster }

// PlayerIDs returns the roster order.
func (a *Analysis) PlayerIDs() []string { return a.roster.IDs() }

// PlayerName returns a player's display name.
func (a *Analysis) PlayerName(id string) string { return a.roster.Name(id) }

// IsLocalUser reports whether id is the player matched to the local user.
func (a *Analysis) IsLocalUser(id string) bool {
	return id != "" && a.roster.LocalUser() == id
}

// ForEachPlayer calls fn for each player in roster order.
func (a *Analysis) ForEachPlayer(fn func(id string, index int)) {
	for i, id := range a.roster.ids {
		fn(id, i)
	}
}

// RollTypes returns the distinct roll types in the analysis, in first-seen order.
func (a *Analysis) RollTypes() []string { return RollTypes(a.events) }

// RollTypes returns the distinct roll types among roll events, in first-seen order.
func RollTypes(events []model.Event) []string {
	var out []string
	seen := make(map[string]bool)
	for _, ev := range events {
		if ev.Type != model.EventRoll || seen[ev.RollType] {
			continue
		}
		seen[ev.RollType] = true
		out = append(out, ev.RollType)
	}
	return out
}

// FileCaption returns "k/N" when a single source of a multi-source report is
// selected, and "" otherwise.
func (a *Analysis) FileCaption() string {
	if a.logFileNo < 0 || a.nSources <= 1 {
		return ""
	}
	return fmt.Sprintf("%d/%d", a.logFileNo+1, a.nSources)
}

// FullTitle joins Title and Title2 the way the banner shows them.
func (a *Analysis) FullTitle() string {
	if a.Title2 == "" {
		return a.Title
	}
	return a.Title + " (" + strings.TrimSpace(a.Title2) + ")"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
