// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher decides which paths a traversal descends into and reports.
//
// Both methods receive paths relative to the scan root, cleaned of empty,
// "." and ".." labels, using the native separator, with no leading or
// trailing separator. Implementations must be pure functions of the path and
// their compiled state. The two decisions are independent: a directory may
// be reported without being descended into, and vice versa.
type Matcher interface {
	// ShouldDescend decides whether traversal recurses into the directory.
	// Implementations should be permissive when uncertain, refusing descent
	// is irreversible for the whole subtree.
	ShouldDescend(path string) bool
	// ShouldReport decides whether the node is emitted. A "file" here is
	// anything that is not a directory, including unfollowed symlinks.
	ShouldReport(path string, isDir bool) bool
}

// DummyMatcher reports and descends into everything.
type DummyMatcher struct{}

// ShouldDescend always permits descent.
func (DummyMatcher) ShouldDescend(string) bool { return true }

// ShouldReport always reports.
func (DummyMatcher) ShouldReport(string, bool) bool { return true }

// ReMatcher matches full normalized paths using one regular expression.
//
// Directories are tested with a trailing separator appended so expressions
// can distinguish files from directories. The expression must match the
// whole candidate, anchoring is applied internally. Regular expressions
// cannot be analyzed for which directories their matches live in, so this
// matcher descends into every directory it is asked about.
type ReMatcher struct {
	re *regexp.Regexp
}

// NewReMatcher wraps a compiled regular expression in a matcher.
func NewReMatcher(re *regexp.Regexp) *ReMatcher {
	// Recompile anchored: the source expression is already known-valid.
	return &ReMatcher{
		re: regexp.MustCompile(`\A(?:` + re.String() + `)\z`),
	}
}

// ShouldDescend always permits descent.
func (m *ReMatcher) ShouldDescend(string) bool { return true }

// ShouldReport matches the full path, with a trailing separator for directories.
func (m *ReMatcher) ShouldReport(path string, isDir bool) bool {
	if isDir {
		path += pathSep
	}

	return m.re.MatchString(path)
}

// MetaMatcher delegates both decisions to child matchers, combining with OR.
//
// An empty child list matches nothing.
type MetaMatcher struct {
	children []Matcher
}

// NewMetaMatcher combines ordered child matchers.
func NewMetaMatcher(children []Matcher) *MetaMatcher {
	return &MetaMatcher{children: children}
}

// ShouldDescend permits descent when any child does.
func (m *MetaMatcher) ShouldDescend(path string) bool {
	for _, child := range m.children {
		if child.ShouldDescend(path) {
			return true
		}
	}

	return false
}

// ShouldReport reports when any child does.
func (m *MetaMatcher) ShouldReport(path string, isDir bool) bool {
	for _, child := range m.children {
		if child.ShouldReport(path, isDir) {
			return true
		}
	}

	return false
}

// NoRecursionMatcher adapts a matcher to top-level-only traversal.
//
// It refuses every descent and reports only direct children of the root that
// the wrapped matcher also reports, providing recursive=false semantics on
// top of an otherwise recursive matcher.
type NoRecursionMatcher struct {
	child Matcher
}

// NewNoRecursionMatcher wraps a matcher to prevent any recursion.
func NewNoRecursionMatcher(child Matcher) *NoRecursionMatcher {
	return &NoRecursionMatcher{child: child}
}

// ShouldDescend always refuses descent.
func (m *NoRecursionMatcher) ShouldDescend(string) bool { return false }

// ShouldReport reports separator-free paths the wrapped matcher reports.
func (m *NoRecursionMatcher) ShouldReport(path string, isDir bool) bool {
	return !hasSeparator(path) && m.child.ShouldReport(path, isDir)
}

// MatcherFromSpec normalizes a flexible match specification into one Matcher.
//
// Accepted spec forms:
//   - nil: match everything
//   - string: glob pattern (GlobMatcher)
//   - *regexp.Regexp: full-path regular expression (ReMatcher)
//   - Matcher: used as-is
//   - []string, []*regexp.Regexp, []any: OR-combination of element specs
//
// When opts.Recursive is false the normalized result is wrapped exactly once,
// outermost, in NoRecursionMatcher.
func MatcherFromSpec(spec any, opts MatchOptions) (Matcher, error) {
	if !opts.Recursive {
		opts.Recursive = true
		inner, err := MatcherFromSpec(spec, opts)
		if err != nil {
			return nil, err
		}

		return NewNoRecursionMatcher(inner), nil
	}

	switch s := spec.(type) {
	case nil:
		return DummyMatcher{}, nil
	case string:
		return NewGlobMatcher(s, opts.PeriodSpecial)
	case *regexp.Regexp:
		return NewReMatcher(s), nil
	case Matcher:
		return s, nil
	case []string:
		children := make([]Matcher, 0, len(s))
		for _, pattern := range s {
			m, err := NewGlobMatcher(pattern, opts.PeriodSpecial)
			if err != nil {
				return nil, err
			}

			children = append(children, m)
		}

		return NewMetaMatcher(children), nil
	case []*regexp.Regexp:
		children := make([]Matcher, 0, len(s))
		for _, re := range s {
			children = append(children, NewReMatcher(re))
		}

		return NewMetaMatcher(children), nil
	case []any:
		children := make([]Matcher, 0, len(s))
		for i, elem := range s {
			m, err := MatcherFromSpec(elem, opts)
			if err != nil {
				return nil, fmt.Errorf("spec element %d: %w", i, err)
			}

			children = append(children, m)
		}

		return NewMetaMatcher(children), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidMatchSpec, spec)
	}
}

// ExtensionPatterns converts an extension list to recursive glob patterns.
//
// Accepted extension forms:
//   - "txt"
//   - ".txt"
//   - "*.txt"
//
// Empty values are skipped. Returned patterns take the "**/*.ext" form and
// preserve input order, ready to be used as a match specification.
func ExtensionPatterns(exts []string) []string {
	patterns := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimLeft(ext, ".")
		if ext == "" {
			continue
		}

		patterns = append(patterns, "**"+pathSep+"*."+ext)
	}

	return patterns
}
