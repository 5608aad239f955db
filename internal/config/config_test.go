package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lfa.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.HotnessThresholds[model.KindDR] != 100 {
		t.Errorf("expected default DR threshold 100, got %d", cfg.HotnessThresholds[model.KindDR])
	}
}

func TestLoadOverridesPerKind(t *testing.T) {
	path := writeFile(t, `
local_user: Bob
hotness_weights:
  dr: {1: 6, 2: 4, 3: 2, 4: -2, 5: -4, 6: -6}
hotness_thresholds:
  DR: 40
window_sizes: [3, 6]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LocalUser != "Bob" {
		t.Errorf("LocalUser: want Bob, got %q", cfg.LocalUser)
	}
	if cfg.HotnessWeights[model.KindDr][1] != 6 {
		t.Errorf("dr weight 1: want 6, got %g", cfg.HotnessWeights[model.KindDr][1])
	}
	// DR weights were not given, so the defaults survive.
	if cfg.HotnessWeights[model.KindDR][2] != 20 {
		t.Errorf("DR weight 2: want 20, got %g", cfg.HotnessWeights[model.KindDR][2])
	}
	if cfg.HotnessThresholds[model.KindDR] != 40 || cfg.HotnessThresholds[model.KindDr] != 50 {
		t.Errorf("thresholds: got %v", cfg.HotnessThresholds)
	}
	if len(cfg.WindowSizes) != 2 || cfg.PreferredWindowSize != 20 {
		t.Errorf("window sizes: got %v / %d", cfg.WindowSizes, cfg.PreferredWindowSize)
	}
}

func TestLoadRejectsWeightWithoutExpected(t *testing.T) {
	path := writeFile(t, `
hotness_weights:
  dr: {7: 1}
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "no expected probability") {
		t.Fatalf("expected missing-probability error, got %v", err)
	}
}

func TestLoadRejectsNonPositiveExpected(t *testing.T) {
	path := writeFile(t, `
expected_distrib:
  dr: {1: 0, 2: 20, 3: 20, 4: 20, 5: 20, 6: 20}
hotness_weights:
  dr: {2: 1}
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero expected probability")
	}
}

func TestWithLocalUserLeavesOriginal(t *testing.T) {
	base := Default()
	cp := base.WithLocalUser("alice")
	if base.LocalUser != "" || cp.LocalUser != "alice" {
		t.Errorf("unexpected local users: base=%q copy=%q", base.LocalUser, cp.LocalUser)
	}
}
