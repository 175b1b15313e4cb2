// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

import (
	"os"
	"strings"
)

// pathSep is the platform-native path separator in string form.
const pathSep = string(os.PathSeparator)

// normalizeSeparators rewrites alternate path separators to the native one.
//
// Only Windows has an alternate separator ("/"); on other platforms the
// pattern is returned unchanged since "\" is an ordinary name character there.
func normalizeSeparators(pattern string) string {
	if os.PathSeparator != '/' {
		return strings.ReplaceAll(pattern, "/", pathSep)
	}

	return pattern
}

// isAbsPattern reports whether pattern addresses an absolute location.
func isAbsPattern(pattern string) bool {
	if strings.HasPrefix(pattern, pathSep) {
		return true
	}

	// Windows drive-letter form ("C:\..." after separator normalization).
	if os.PathSeparator != '/' && len(pattern) >= 2 && pattern[1] == ':' {
		return true
	}

	return false
}

// splitLabels splits a normalized relative path into its labels.
func splitLabels(path string) []string {
	return strings.Split(path, pathSep)
}

// joinRel appends one child name to a normalized relative directory path.
func joinRel(relDir string, name string) string {
	if relDir == "" {
		return name
	}

	return relDir + pathSep + name
}

// hasSeparator reports whether path contains the native separator.
func hasSeparator(path string) bool {
	return strings.Contains(path, pathSep)
}

// trimRootPath removes trailing separators from a root directory path,
// keeping at least one character so the filesystem root stays addressable.
func trimRootPath(root string) string {
	for len(root) > len(pathSep) && strings.HasSuffix(root, pathSep) {
		root = root[:len(root)-len(pathSep)]
	}

	return root
}
