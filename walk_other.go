// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

//go:build !unix

package treescan

// openRootHandle opens the traversal root for path-based walking.
func openRootHandle(path string) (dirHandle, error) {
	return &pathDirHandle{path: path}, nil
}

// handleFromFd rejects descriptor roots where descriptor walks are unavailable.
func handleFromFd(int) (dirHandle, error) {
	return nil, ErrDescriptorsUnsupported
}
