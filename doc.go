// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

/*
Package treescan implements matcher-driven directory traversal with lazy,
gap-free entry streams.

The package answers two questions while walking a file tree: which
directories to descend into, and which files/directories to report to the
caller. Both decisions are made by a Matcher compiled once from a flexible
match specification.

Basic flow:
  - build a match spec: glob pattern string, *regexp.Regexp, Matcher value,
    or a slice mixing any of these (nil means "match everything")
  - create a walker (`NewWalker` / `NewWalkerFd`)
  - pull entries (`Next`) or range over them (`Entries`)
  - close the walker (`Close`), safe at any point and idempotent

Reported entries form a gap-free tree: the root is always reported first and
missing ancestor directories are synthesized before their descendants, so a
consumer can mirror the tree remotely in stream order.

On Unix platforms the walker uses descriptor-relative directory access
(openat) and exposes the parent directory descriptor on each entry. A walker
is single-reader: its traversal state is not safe for concurrent use.

Match specs and traversal options can also be loaded from YAML scan profiles
(`LoadProfile`).
*/
package treescan
