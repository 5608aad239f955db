package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/aggregator"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

const explainSystemPrompt = `You are an Advanced Squad Leader dice analyst. You are given dice statistics
computed from VASL game logs and a question from a player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the sample is too small to support a conclusion, say so explicitly.
- Remember that dice are random: describe luck, never skill.

Glossary:
- DR: a roll of two dice, total 2-12, average 7. Low DRs are usually good for the roller.
- dr: a roll of one die, 1-6, average 3.5.
- Roll types: IFT (Infantry Fire Table), MC (Morale Check), TH (To Hit), TK (To Kill),
  CC (Close Combat), SA (Sniper Activation), TC (Task Check), RS (Random Selection).
- hotness: signed, weighted chi-squared style score of a player's DR distribution against
  the expected one. Positive = more low DRs than expected ("hot" dice), negative = "cold".
  roll_ratio < 1 means fewer DRs than the confidence threshold.
- chi2 / p_value: standard goodness-of-fit test of the DR distribution; a small p_value
  means the distribution is unlikely under fair dice.
- Me: the player running the tool.`

var (
	explainModel    string
	explainAPIKey   string
	explainRollType string
)

var explainCmd = &cobra.Command{
	Use:   "explain <report>... <question>",
	Short: "AI-powered grounded explanation of the dice (requires ANTHROPIC_API_KEY)",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&explainModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	explainCmd.Flags().StringVar(&explainAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	explainCmd.Flags().StringVar(&explainRollType, "roll-type", "", "only describe rolls of this type")
}

func runExplain(cmd *cobra.Command, args []string) error {
	paths, question := args[:len(args)-1], args[len(args)-1]
	s, a, err := loadAnalysis(paths)
	if err != nil {
		return err
	}
	doc, err := buildExplainDoc(a, s.cfg, explainRollType)
	if err != nil {
		return fmt.Errorf("build data: %w", err)
	}
	key, err := explainAPIKeyFrom(explainAPIKey)
	if err != nil {
		return err
	}
	req := explainRequest(explainModel, explainSystemPrompt, doc, question)
	return streamExplanation(cmd.Context(), os.Stdout, key, req)
}

type explainPlayer struct {
	Name       string               `json:"name"`
	Kinds      map[string]kindBlock `json:"kinds"`
	RollRatio  float64              `json:"roll_ratio"`
	Extremes   map[string][2]int    `json:"twos_and_twelves,omitempty"`
	SnipersLow map[int]int          `json:"sniper_activations,omitempty"`
}

type kindBlock struct {
	NRolls  int             `json:"n_rolls"`
	Average *float64        `json:"average"`
	Pct     map[int]float64 `json:"pct"`
	Hotness *float64        `json:"hotness"`
	Chi2    *float64        `json:"chi2,omitempty"`
	PValue  *float64        `json:"p_value,omitempty"`
}

// buildExplainDoc serialises the computed statistics for the prompt.
func buildExplainDoc(a *analysis.Analysis, cfg *config.Config, rollType string) (string, error) {
	stats := aggregator.ExtractStats(a, aggregator.RollTypeFilter(rollType))
	hot := aggregator.CalcHotness(stats, cfg)
	ex := aggregator.ExtractExtremes(a)

	var players []explainPlayer
	a.ForEachPlayer(func(id string, _ int) {
		p := stats.Player(id)
		ep := explainPlayer{
			Name:      a.PlayerName(id),
			Kinds:     make(map[string]kindBlock, len(model.Kinds)),
			RollRatio: round2(hot[id].RollRatio),
		}
		for _, k := range model.Kinds {
			ks := p.Kind(k)
			b := kindBlock{NRolls: ks.NRolls, Pct: make(map[int]float64), Hotness: roundPtr(hot[id].ByKind[k])}
			if ks.HasRolls() {
				avg := round2(ks.RollAverage)
				b.Average = &avg
				for _, v := range k.Values() {
					b.Pct[v] = ks.Percent(v)
				}
			}
			if k == model.KindDR {
				if cs, ok := aggregator.ChiSquared(ks, cfg.ExpectedDistrib[k]); ok {
					chi, pv := round2(cs.Statistic), math.Round(cs.PValue*1000)/1000
					b.Chi2, b.PValue = &chi, &pv
				}
			}
			ep.Kinds[string(k)] = b
		}
		if rollType == "" {
			for _, rt := range ex.ShownRollTypes {
				c := ex.Count(id, rt)
				if c.Twos+c.Twelves == 0 {
					continue
				}
				if ep.Extremes == nil {
					ep.Extremes = make(map[string][2]int)
				}
				ep.Extremes[rt] = [2]int{c.Twos, c.Twelves}
			}
			if ex.HasSnipers() {
				ep.SnipersLow = ex.Snipers[id]
			}
		}
		players = append(players, ep)
	})

	doc := map[string]any{
		"title":     a.FullTitle(),
		"sources":   a.LogFiles(),
		"roll_type": rollTypeLabel(rollType),
		"expected":  cfg.ExpectedDistrib,
		"threshold": cfg.HotnessThresholds[model.KindDR],
		"players":   players,
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}

// explainAPIKeyFrom prefers the flag value over $ANTHROPIC_API_KEY.
func explainAPIKeyFrom(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
}

// explainRequest asks one question about the data document under the given
// system prompt.
func explainRequest(modelID, system, dataJSON, question string) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(
				fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question))),
		},
	}
}

// streamExplanation prints the answer to w as its text deltas arrive.
func streamExplanation(ctx context.Context, w io.Writer, apiKey string, req anthropic.MessageNewParams) error {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	stream := client.Messages.NewStreaming(ctx, req)
	defer stream.Close()

	fmt.Fprintln(w, "\n--- Dice analysis ---")
	for stream.Next() {
		evt, ok := stream.Current().AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		if text, ok := evt.Delta.AsAny().(anthropic.TextDelta); ok {
			fmt.Fprint(w, text.Text)
		}
	}
	fmt.Fprintln(w)

	if err := stream.Err(); err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("stream explanation: %w", err)
	}
	return nil
}
