// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Profile is a reusable scan configuration loadable from YAML.
//
// Option fields are pointers so an absent key keeps its default from
// DefaultOptions while an explicit false still disables the option.
type Profile struct {
	// Patterns are glob patterns OR-combined into the match specification.
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	// Regexps are full-path regular expressions added to the specification.
	Regexps []string `json:"regexps,omitempty" yaml:"regexps,omitempty"`
	// Extensions are file extensions expanded to "**/*.ext" glob patterns.
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	// FollowSymlinks overrides Options.FollowSymlinks when set.
	FollowSymlinks *bool `json:"follow_symlinks,omitempty" yaml:"follow_symlinks,omitempty"`
	// IntermediateDirs overrides Options.IntermediateDirs when set.
	IntermediateDirs *bool `json:"intermediate_dirs,omitempty" yaml:"intermediate_dirs,omitempty"`
	// PeriodSpecial overrides Options.PeriodSpecial when set.
	PeriodSpecial *bool `json:"period_special,omitempty" yaml:"period_special,omitempty"`
	// Recursive overrides Options.Recursive when set.
	Recursive *bool `json:"recursive,omitempty" yaml:"recursive,omitempty"`
}

// ParseProfile parses a YAML scan profile.
func ParseProfile(data []byte) (*Profile, error) {
	profile := &Profile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	return profile, nil
}

// LoadProfile reads and parses a YAML scan profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	profile, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	return profile, nil
}

// Options converts the profile into walker options, filling unset fields
// with defaults.
func (p *Profile) Options() Options {
	opts := DefaultOptions()
	if p.FollowSymlinks != nil {
		opts.FollowSymlinks = *p.FollowSymlinks
	}

	if p.IntermediateDirs != nil {
		opts.IntermediateDirs = *p.IntermediateDirs
	}

	if p.PeriodSpecial != nil {
		opts.PeriodSpecial = *p.PeriodSpecial
	}

	if p.Recursive != nil {
		opts.Recursive = *p.Recursive
	}

	return opts
}

// MatchSpec builds the match specification described by the profile.
//
// Patterns, extensions and regexps are OR-combined in that order. A profile
// naming none of them returns nil, the match-everything specification.
func (p *Profile) MatchSpec() (any, error) {
	spec := make([]any, 0, len(p.Patterns)+len(p.Extensions)+len(p.Regexps))
	for _, pattern := range p.Patterns {
		spec = append(spec, pattern)
	}

	for _, pattern := range ExtensionPatterns(p.Extensions) {
		spec = append(spec, pattern)
	}

	for _, expr := range p.Regexps {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: compile regexp %q: %v", ErrInvalidProfile, expr, err)
		}

		spec = append(spec, re)
	}

	if len(spec) == 0 {
		return nil, nil
	}

	return spec, nil
}

// NewWalker creates a walker over root configured by the profile.
func (p *Profile) NewWalker(root string) (*Walker, error) {
	spec, err := p.MatchSpec()
	if err != nil {
		return nil, err
	}

	return NewWalker(root, spec, p.Options())
}
