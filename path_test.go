// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

import "testing"

func TestTrimRootPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"a" + pathSep + "b", "a" + pathSep + "b"},
		{"a" + pathSep + "b" + pathSep, "a" + pathSep + "b"},
		{"a" + pathSep + pathSep, "a"},
		{pathSep, pathSep},
		{".", "."},
	}

	for _, tc := range cases {
		if got := trimRootPath(tc.in); got != tc.want {
			t.Fatalf("trimRootPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJoinRel(t *testing.T) {
	t.Parallel()

	if got := joinRel("", "a"); got != "a" {
		t.Fatalf("joinRel at root = %q, want %q", got, "a")
	}

	if got := joinRel("a", "b"); got != "a"+pathSep+"b" {
		t.Fatalf("joinRel = %q, want %q", got, "a"+pathSep+"b")
	}
}

func TestSplitLabels(t *testing.T) {
	t.Parallel()

	labels := splitLabels("a" + pathSep + "b" + pathSep + "c")
	if len(labels) != 3 || labels[0] != "a" || labels[2] != "c" {
		t.Fatalf("splitLabels = %v", labels)
	}
}
