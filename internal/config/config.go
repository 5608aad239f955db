// Package config holds the tunable parameters of the dice analysis: the
// theoretical roll distribution, hotness weights and sample-size thresholds,
// and the local user's name.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// LocalUserLabel replaces the local user's name in the roster.
const LocalUserLabel = "Me"

// Config is passed explicitly to the analysis and never modified by it.
type Config struct {
	// ExpectedDistrib is the theoretical probability of each total, in percent.
	ExpectedDistrib map[model.Kind]map[int]float64 `yaml:"expected_distrib"`
	// HotnessWeights scales each total's contribution to the hotness score.
	HotnessWeights map[model.Kind]map[int]float64 `yaml:"hotness_weights"`
	// HotnessThresholds is the roll count at which a hotness score is
	// considered fully reliable.
	HotnessThresholds map[model.Kind]int `yaml:"hotness_thresholds"`

	LocalUser string `yaml:"local_user"`

	WindowSizes         []int `yaml:"window_sizes"`
	PreferredWindowSize int   `yaml:"preferred_window_size"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		ExpectedDistrib: map[model.Kind]map[int]float64{
			model.KindDR: {2: 2.8, 3: 5.6, 4: 8.3, 5: 11.1, 6: 13.9, 7: 16.7, 8: 13.9, 9: 11.1, 10: 8.3, 11: 5.6, 12: 2.8},
			model.KindDr: {1: 16.7, 2: 16.7, 3: 16.7, 4: 16.7, 5: 16.7, 6: 16.7},
		},
		HotnessWeights: map[model.Kind]map[int]float64{
			model.KindDR: {2: 20, 3: 16, 4: 12, 5: 8, 6: 4, 7: 0, 8: -4, 9: -8, 10: -12, 11: -16, 12: -20},
			model.KindDr: {1: 3, 2: 2, 3: 1, 4: -1, 5: -2, 6: -3},
		},
		HotnessThresholds: map[model.Kind]int{
			model.KindDR: 100,
			model.KindDr: 50,
		},
		WindowSizes:         []int{5, 10, 20, 50, 100},
		PreferredWindowSize: 20,
	}
}

// Load reads a YAML file over the defaults. A table given for a kind replaces
// the default table for that kind as a whole.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc Config
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	for k, tbl := range fc.ExpectedDistrib {
		cfg.ExpectedDistrib[k] = tbl
	}
	for k, tbl := range fc.HotnessWeights {
		cfg.HotnessWeights[k] = tbl
	}
	for k, n := range fc.HotnessThresholds {
		cfg.HotnessThresholds[k] = n
	}
	if fc.LocalUser != "" {
		cfg.LocalUser = fc.LocalUser
	}
	if len(fc.WindowSizes) > 0 {
		cfg.WindowSizes = fc.WindowSizes
	}
	if fc.PreferredWindowSize > 0 {
		cfg.PreferredWindowSize = fc.PreferredWindowSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects tables the hotness calculation cannot use.
func (c *Config) Validate() error {
	for _, k := range model.Kinds {
		expected, ok := c.ExpectedDistrib[k]
		if !ok {
			return fmt.Errorf("no expected distribution for %s", k)
		}
		for _, v := range sortedKeys(expected) {
			if expected[v] <= 0 {
				return fmt.Errorf("expected %s distribution for %d must be positive, got %g", k, v, expected[v])
			}
		}
		for _, v := range sortedKeys(c.HotnessWeights[k]) {
			if _, ok := expected[v]; !ok {
				return fmt.Errorf("hotness weight for %s %d has no expected probability", k, v)
			}
		}
		if c.HotnessThresholds[k] <= 0 {
			return fmt.Errorf("hotness threshold for %s must be positive", k)
		}
	}
	for _, w := range c.WindowSizes {
		if w < 1 {
			return fmt.Errorf("window size must be at least 1, got %d", w)
		}
	}
	if c.PreferredWindowSize < 1 {
		return fmt.Errorf("preferred window size must be at least 1, got %d", c.PreferredWindowSize)
	}
	return nil
}

// WithLocalUser returns a copy of the config with the local user replaced.
// The tables are shared, not copied.
func (c *Config) WithLocalUser(name string) *Config {
	cp := *c
	cp.LocalUser = name
	return &cp
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// SortedValues is sortedKeys for callers outside the package that need a
// deterministic iteration order over a distribution table.
func SortedValues(m map[int]float64) []int {
	return sortedKeys(m)
}
