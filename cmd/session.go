package cmd

import (
	"fmt"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/analysis"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/config"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/loader"
	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// session is the loaded input shared by every command: the engine config and
// the merged report.
type session struct {
	cfg    *config.Config
	report *model.Report
	files  []*loader.File
}

func openSession(paths []string) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if localUser != "" {
		cfg = cfg.WithLocalUser(localUser)
	}
	r, files, err := loader.Load(paths...)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, report: r, files: files}, nil
}

// analysis builds the view of source k, or of every source for -1.
func (s *session) analysis(k int) (*analysis.Analysis, error) {
	if k < analysis.AllFiles || k >= len(s.report.LogFiles) {
		return nil, fmt.Errorf("file %d out of range: report has %d source(s)", k+1, len(s.report.LogFiles))
	}
	return analysis.New(s.report, k, s.cfg), nil
}

func (s *session) reportKeys() []string {
	keys := make([]string, len(s.files))
	for i, f := range s.files {
		keys[i] = f.Hash
	}
	return keys
}

// loadAnalysis opens the reports and applies the --file selector (1-based,
// 0 for all sources).
func loadAnalysis(paths []string) (*session, *analysis.Analysis, error) {
	s, err := openSession(paths)
	if err != nil {
		return nil, nil, err
	}
	a, err := s.analysis(fileNo - 1)
	if err != nil {
		return nil, nil, err
	}
	return s, a, nil
}

// rollTypeLabel names a roll-type selection for headings.
func rollTypeLabel(rt string) string {
	if rt == "" {
		return "all rolls"
	}
	if desc, ok := model.RollTypeDescription(rt); ok && desc != rt {
		return rt + " (" + desc + ")"
	}
	return rt
}
