package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/report"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell <report>...",
	Short: "Start an interactive session over the loaded reports",
	Long:  "Load the reports once, then switch source, roll type and window size without reloading. Type 'help' for available commands.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShell,
}

// shellState is the current view. Changing the source rebuilds the analysis.
type shellState struct {
	s        *session
	a        *analysis.Analysis
	rollType string
	window   int
}

func runShell(_ *cobra.Command, args []string) error {
	s, a, err := loadAnalysis(args)
	if err != nil {
		return err
	}
	st := &shellState{s: s, a: a}

	cGreeting.Println("vlogstats shell")
	cMuted.Printf("%s, %d source(s), %d player(s); type 'help' or 'exit'\n", a.FullTitle(), a.SourceCount(), a.Roster().Len())
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("vlogstats")
		cMuted.Print(st.promptSuffix() + "> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "files":
			st.listFiles()
		case "file":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: file <n>|all")
				continue
			}
			st.selectFile(args[0])
		case "type":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: type <roll-type>|all")
				continue
			}
			st.rollType = args[0]
			if st.rollType == "all" {
				st.rollType = ""
			}
		case "window":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: window <n>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				cError.Fprintf(os.Stderr, "invalid window %q\n", args[0])
				continue
			}
			st.window = n
		case "stats":
			st.showStats()
		case "hotness":
			stats := aggregator.ExtractStats(st.a, aggregator.RollTypeFilter(st.rollType))
			report.PrintHotness(os.Stdout, st.a, stats, aggregator.CalcHotness(stats, st.s.cfg), st.s.cfg)
		case "series":
			st.showSeries(len(args) > 0 && args[0] == "--points")
		case "extremes":
			report.PrintExtremes(os.Stdout, st.a, aggregator.ExtractExtremes(st.a))
		case "rolltypes":
			report.PrintRollTypes(os.Stdout, st.a)
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <id|name>")
				continue
			}
			id, err := findPlayer(st.a, strings.Join(args, " "))
			if err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			report.PrintPlayerBreakdown(os.Stdout, st.a.PlayerName(id), aggregator.BreakdownByRollType(st.a, id), st.s.cfg)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func (st *shellState) promptSuffix() string {
	var parts []string
	if c := st.a.FileCaption(); c != "" {
		parts = append(parts, "file "+c)
	}
	if st.rollType != "" {
		parts = append(parts, st.rollType)
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, " ") + "]"
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"files", "list the loaded sources"},
		{"file <n>|all", "analyse only source n (1-based), or all of them"},
		{"type <roll-type>|all", "restrict stats and series to a roll type"},
		{"window <n>", "moving average window for 'series'"},
		{"stats", "DR and dr distributions"},
		{"hotness", "hotness scores"},
		{"series [--points]", "moving average series"},
		{"extremes", "2s, 12s and sniper activations"},
		{"rolltypes", "roll types present"},
		{"player <id|name>", "one player's rolls by roll type"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-24s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (st *shellState) listFiles() {
	cHeader.Fprintf(os.Stdout, "%4s  %-40s  %s\n", "#", "FILE", "SCENARIO")
	for i, lf := range st.s.report.LogFiles {
		name := lf.Filename
		if name == "" {
			name = fmt.Sprintf("file #%d", i+1)
		}
		mark := " "
		if st.a.LogFileNo() == i {
			mark = ">"
		}
		fmt.Fprintf(os.Stdout, "%s%3d  %-40s  %s\n", mark, i+1, name, lf.Scenario.ScenarioName)
	}
}

func (st *shellState) selectFile(arg string) {
	k := analysis.AllFiles
	if arg != "all" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			cError.Fprintf(os.Stderr, "invalid file number %q\n", arg)
			return
		}
		k = n - 1
	}
	a, err := st.s.analysis(k)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	st.a = a
	report.PrintBanner(os.Stdout, a)
}

func (st *shellState) showStats() {
	stats := aggregator.ExtractStats(st.a, aggregator.RollTypeFilter(st.rollType))
	shown := false
	for _, k := range model.Kinds {
		if stats.TotalRolls[k] == 0 {
			continue
		}
		shown = true
		cHeader.Fprintf(os.Stdout, "--- %s, %s ---\n", k, rollTypeLabel(st.rollType))
		report.PrintDistribution(os.Stdout, st.a, stats, k, st.s.cfg)
	}
	if !shown {
		cMuted.Println("No rolls.")
	}
}

func (st *shellState) showSeries(points bool) {
	window, usable := aggregator.ChooseWindowSize(st.a, st.rollType, st.window, st.s.cfg.PreferredWindowSize, st.s.cfg.WindowSizes)
	if st.window > 0 && window != st.window {
		cWarn.Fprintf(os.Stderr, "window %d is too large for this data, using %d\n", st.window, window)
	}
	series, labels := aggregator.LabeledSeries(st.a, window, st.rollType)
	report.PrintWindowSizes(os.Stdout, window, usable)
	report.PrintSeriesSummary(os.Stdout, st.a, series)
	if points {
		report.PrintSeries(os.Stdout, st.a, series, labels)
	}
}
