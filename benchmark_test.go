// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

var (
	sinkBool  bool
	sinkEntry FSNodeEntry
)

func BenchmarkGlobShouldReport(b *testing.B) {
	m, err := NewGlobMatcher("**"+pathSep+"*.txt", true)
	if err != nil {
		b.Fatalf("NewGlobMatcher: %v", err)
	}

	path := filepath.Join("a", "b", "c", "d", "file.txt")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkBool = m.ShouldReport(path, false)
	}
}

func BenchmarkGlobShouldDescend(b *testing.B) {
	m, err := NewGlobMatcher("a"+pathSep+"b"+pathSep+"*.txt", true)
	if err != nil {
		b.Fatalf("NewGlobMatcher: %v", err)
	}

	path := filepath.Join("a", "b")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkBool = m.ShouldDescend(path)
	}
}

func BenchmarkMatchLabelWildcard(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sinkBool = matchLabelWildcard("*a*b*.txt", "prefix-a-middle-b-suffix.txt")
	}
}

func BenchmarkWalker(b *testing.B) {
	root := b.TempDir()
	for d := 0; d < 8; d++ {
		dir := filepath.Join(root, fmt.Sprintf("dir%d", d))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.Fatalf("MkdirAll: %v", err)
		}

		for f := 0; f < 16; f++ {
			name := filepath.Join(dir, fmt.Sprintf("file%d.txt", f))
			if err := os.WriteFile(name, nil, 0o644); err != nil {
				b.Fatalf("WriteFile: %v", err)
			}
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w, err := NewWalker(root, "**"+pathSep+"*.txt", DefaultOptions())
		if err != nil {
			b.Fatalf("NewWalker: %v", err)
		}

		for {
			entry, err := w.Next()
			if errors.Is(err, io.EOF) {
				break
			}

			if err != nil {
				b.Fatalf("Next: %v", err)
			}

			sinkEntry = entry
		}
	}
}
