package config

import (
	"fmt"
	"strings"
)

// SearchPreset bundles solver settings for a quick choice on the command line.
type SearchPreset string

const (
	PresetNone     SearchPreset = ""
	PresetQuick    SearchPreset = "quick"    // bounded backtracking
	PresetBalanced SearchPreset = "balanced" // unbounded backtracking
	PresetWide     SearchPreset = "wide"     // parallel backtracking on every CPU
	PresetVerify   SearchPreset = "verify"   // exhaustive enumeration
)

// quickNodeBudget caps the quick preset's search.
const quickNodeBudget = 200_000

// ParsePreset converts a flag value into a SearchPreset.
func ParsePreset(s string) (SearchPreset, error) {
	switch p := SearchPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case PresetNone, PresetQuick, PresetBalanced, PresetWide, PresetVerify:
		return p, nil
	default:
		return PresetNone, fmt.Errorf("unknown preset %q (want quick, balanced, wide or verify)", s)
	}
}

// ApplyPreset modifies the solver config based on a search preset.
func ApplyPreset(cfg *SolverConfig, preset SearchPreset) {
	switch preset {
	case PresetQuick:
		cfg.Strategy = "backtrack"
		cfg.MaxNodes = quickNodeBudget
	case PresetBalanced:
		cfg.Strategy = "backtrack"
		cfg.MaxNodes = 0
	case PresetWide:
		cfg.Strategy = "parallel"
		cfg.Workers = 0
		cfg.MaxNodes = 0
	case PresetVerify:
		cfg.Strategy = "exhaustive"
		cfg.MaxNodes = 0
	}
}
