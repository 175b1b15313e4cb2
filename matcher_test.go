// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

import (
	"errors"
	"regexp"
	"testing"
)

func TestDummyMatcher(t *testing.T) {
	t.Parallel()

	m := DummyMatcher{}
	if !m.ShouldDescend("a"+pathSep+"b") || !m.ShouldReport("a", true) || !m.ShouldReport("a", false) {
		t.Fatalf("dummy matcher must permit everything")
	}
}

func TestReMatcherFullMatch(t *testing.T) {
	t.Parallel()

	m := NewReMatcher(regexp.MustCompile(`a.*\.txt`))
	if !m.ShouldReport("ab.txt", false) {
		t.Fatalf("ab.txt must match")
	}

	if m.ShouldReport("ab.txt.bak", false) {
		t.Fatalf("match must cover the full path, not a prefix")
	}

	if !m.ShouldDescend("anything"+pathSep+"at"+pathSep+"all") {
		t.Fatalf("regexp matcher must always permit descent")
	}
}

func TestReMatcherDirectorySuffix(t *testing.T) {
	t.Parallel()

	// Trailing separator-or-nothing matches both files and directories.
	both := NewReMatcher(regexp.MustCompile("logs" + regexp.QuoteMeta(pathSep) + "?"))
	if !both.ShouldReport("logs", false) || !both.ShouldReport("logs", true) {
		t.Fatalf("optional separator suffix must match files and directories")
	}

	dirs := NewReMatcher(regexp.MustCompile("logs" + regexp.QuoteMeta(pathSep)))
	if dirs.ShouldReport("logs", false) {
		t.Fatalf("mandatory separator suffix must not match files")
	}

	if !dirs.ShouldReport("logs", true) {
		t.Fatalf("mandatory separator suffix must match directories")
	}
}

func TestMetaMatcherOr(t *testing.T) {
	t.Parallel()

	a, err := NewGlobMatcher("*.txt", true)
	if err != nil {
		t.Fatalf("NewGlobMatcher: %v", err)
	}

	b, err := NewGlobMatcher("*.md", true)
	if err != nil {
		t.Fatalf("NewGlobMatcher: %v", err)
	}

	m := NewMetaMatcher([]Matcher{a, b})
	for _, path := range []string{"x.txt", "x.md"} {
		want := a.ShouldReport(path, false) || b.ShouldReport(path, false)
		if got := m.ShouldReport(path, false); got != want {
			t.Fatalf("meta report %q = %v, want OR of children (%v)", path, got, want)
		}
	}

	if m.ShouldReport("x.go", false) {
		t.Fatalf("meta matcher must not report what no child reports")
	}

	empty := NewMetaMatcher(nil)
	if empty.ShouldDescend("a") || empty.ShouldReport("a", true) {
		t.Fatalf("empty meta matcher must match nothing")
	}
}

func TestNoRecursionMatcher(t *testing.T) {
	t.Parallel()

	m := NewNoRecursionMatcher(DummyMatcher{})
	if m.ShouldDescend("a") || m.ShouldDescend("a"+pathSep+"b") {
		t.Fatalf("no-recursion matcher must refuse every descent")
	}

	if !m.ShouldReport("a", true) || !m.ShouldReport("a.txt", false) {
		t.Fatalf("top-level paths must pass through to the wrapped matcher")
	}

	if m.ShouldReport("a"+pathSep+"b", false) {
		t.Fatalf("nested paths must never be reported")
	}
}

func TestMatcherFromSpecForms(t *testing.T) {
	t.Parallel()

	opts := DefaultMatchOptions()

	m, err := MatcherFromSpec(nil, opts)
	if err != nil {
		t.Fatalf("nil spec: %v", err)
	}

	if _, ok := m.(DummyMatcher); !ok {
		t.Fatalf("nil spec must produce DummyMatcher, got %T", m)
	}

	m, err = MatcherFromSpec("*.txt", opts)
	if err != nil {
		t.Fatalf("pattern spec: %v", err)
	}

	if _, ok := m.(*GlobMatcher); !ok {
		t.Fatalf("pattern spec must produce GlobMatcher, got %T", m)
	}

	m, err = MatcherFromSpec(regexp.MustCompile(`.*`), opts)
	if err != nil {
		t.Fatalf("regexp spec: %v", err)
	}

	if _, ok := m.(*ReMatcher); !ok {
		t.Fatalf("regexp spec must produce ReMatcher, got %T", m)
	}

	passthrough := DummyMatcher{}
	m, err = MatcherFromSpec(passthrough, opts)
	if err != nil {
		t.Fatalf("matcher spec: %v", err)
	}

	if m != Matcher(passthrough) {
		t.Fatalf("matcher spec must pass through unchanged")
	}

	m, err = MatcherFromSpec([]any{"*.txt", regexp.MustCompile(`x`)}, opts)
	if err != nil {
		t.Fatalf("mixed slice spec: %v", err)
	}

	if _, ok := m.(*MetaMatcher); !ok {
		t.Fatalf("slice spec must produce MetaMatcher, got %T", m)
	}

	if _, err = MatcherFromSpec(42, opts); !errors.Is(err, ErrInvalidMatchSpec) {
		t.Fatalf("unsupported spec type: got %v, want ErrInvalidMatchSpec", err)
	}
}

func TestMatcherFromSpecPatternSlice(t *testing.T) {
	t.Parallel()

	m, err := MatcherFromSpec([]string{"*.txt", "*.md"}, DefaultMatchOptions())
	if err != nil {
		t.Fatalf("MatcherFromSpec: %v", err)
	}

	if !m.ShouldReport("a.txt", false) || !m.ShouldReport("a.md", false) {
		t.Fatalf("pattern slice must OR-combine patterns")
	}

	if m.ShouldReport("a.go", false) {
		t.Fatalf("pattern slice must not report unmatched paths")
	}
}

func TestMatcherFromSpecNonRecursive(t *testing.T) {
	t.Parallel()

	opts := DefaultMatchOptions()
	opts.Recursive = false

	m, err := MatcherFromSpec(nil, opts)
	if err != nil {
		t.Fatalf("MatcherFromSpec: %v", err)
	}

	if _, ok := m.(*NoRecursionMatcher); !ok {
		t.Fatalf("recursive=false must wrap outermost in NoRecursionMatcher, got %T", m)
	}

	if m.ShouldDescend("a") {
		t.Fatalf("recursive=false must refuse descent")
	}

	if !m.ShouldReport("a", true) || m.ShouldReport("a"+pathSep+"b", false) {
		t.Fatalf("recursive=false must report top-level paths only")
	}
}

func TestMatcherFromSpecInvalidPatternInSlice(t *testing.T) {
	t.Parallel()

	if _, err := MatcherFromSpec([]any{"ok", "a**b"}, DefaultMatchOptions()); !errors.Is(err, ErrUnsupportedPattern) {
		t.Fatalf("invalid element: got %v, want ErrUnsupportedPattern", err)
	}
}

func TestExtensionPatterns(t *testing.T) {
	t.Parallel()

	got := ExtensionPatterns([]string{"txt", ".md", "*.go", "", "  "})
	want := []string{
		"**" + pathSep + "*.txt",
		"**" + pathSep + "*.md",
		"**" + pathSep + "*.go",
	}

	if len(got) != len(want) {
		t.Fatalf("ExtensionPatterns = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ExtensionPatterns[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
