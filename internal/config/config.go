// Package config loads the run-time bounds the evaluator and task splitter
// are parameterised by (eval.Config, restated at repository scope) from a
// YAML file, layering operator-overridable values over built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/flowc-lang/flowc/internal/eval"
)

// Run holds every bound a `flowc` invocation can tune, on top of
// eval.Config: the evaluator's own recursion/unroll/branch caps, plus the
// driver-level choice of mode. A further per-invocation branch cap is not
// part of Run; it comes only from the `flowc eval` command line.
type Run struct {
	Eval eval.Config `yaml:"eval"`

	// Mode selects which of eval.ModeFull / eval.Partial / eval.NonDet the
	// `flowc eval` subcommand runs by default; overridable with --mode.
	Mode string `yaml:"mode"`
}

// Default returns the built-in bounds,
// suitable when no config file is given.
func Default() Run {
	return Run{Eval: eval.DefaultConfig(), Mode: "partial"}
}

// Load reads a YAML config file at path, merging it over Default(). Missing
// fields keep the default's value, so a file only needs to mention the
// bounds it overrides.
func Load(path string) (Run, error) {
	r := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Run{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return r, nil
}

// ParseMode maps the config/flag string form of a mode to eval.Mode.
func ParseMode(s string) (eval.Mode, error) {
	switch s {
	case "full":
		return eval.ModeFull, nil
	case "partial", "":
		return eval.Partial, nil
	case "nondet", "non-det", "non-deterministic":
		return eval.NonDet, nil
	default:
		return eval.ModeFull, fmt.Errorf("config: unknown mode %q (want full, partial, or nondet)", s)
	}
}
