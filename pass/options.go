// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package pass

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrOptionRange is returned by Validate for an out-of-range option.
var ErrOptionRange = errors.New("option out of range")

// Options configures a refinement run.
type Options struct {
	// SizingField is the squared-circumradius ceiling: the split pass
	// refines tets above it, the collapse and swap passes must not grow
	// a tet past it.
	SizingField float64 `yaml:"sizing_field"`

	// CollapseQuality is the absolute worst-energy bound below which a
	// collapse is accepted even when it worsens quality.
	CollapseQuality float64 `yaml:"collapse_quality"`

	// DistortionBudget caps the reference-surface distortion accepted by
	// the shell redistribution fallback; negative disables the cap.
	DistortionBudget float64 `yaml:"distortion_budget"`

	// MaxPasses is the number of split/collapse/swap/smooth rounds.
	MaxPasses int `yaml:"max_passes"`

	// MaxOperations caps the accepted edits per run, 0 for unlimited.
	MaxOperations int `yaml:"max_operations"`

	// Verify audits the whole mesh after every accepted edit. Expensive;
	// meant for debugging runs.
	Verify bool `yaml:"verify"`
}

// DefaultOptions mirrors the refinement defaults of the interactive
// driver: unit-scale geometry with a 1e-2 sizing field.
func DefaultOptions() Options {
	return Options{
		SizingField:      1e-2,
		CollapseQuality:  8,
		DistortionBudget: -1,
		MaxPasses:        3,
	}
}

// LoadOptions reads a yaml options file over the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return opts, fmt.Errorf("parse options: %w", err)
	}
	return opts, opts.Validate()
}

// Validate rejects option values the passes cannot run with.
func (o Options) Validate() error {
	if o.SizingField <= 0 {
		return fmt.Errorf("%w: sizing_field %v, want > 0", ErrOptionRange, o.SizingField)
	}
	if o.CollapseQuality <= 0 {
		return fmt.Errorf("%w: collapse_quality %v, want > 0", ErrOptionRange, o.CollapseQuality)
	}
	if o.MaxPasses < 1 {
		return fmt.Errorf("%w: max_passes %d, want >= 1", ErrOptionRange, o.MaxPasses)
	}
	if o.MaxOperations < 0 {
		return fmt.Errorf("%w: max_operations %d, want >= 0", ErrOptionRange, o.MaxOperations)
	}
	return nil
}
