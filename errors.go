// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

import "errors"

// Sentinel errors for treescan operations.
var (
	// ErrInvalidPattern indicates a glob pattern that can never match a
	// normalized relative path (absolute, "..", or empty after cleanup).
	ErrInvalidPattern = errors.New("invalid glob pattern")
	// ErrUnsupportedPattern indicates a glob construct that is not supported,
	// such as "**" mixed with other characters in one path label.
	ErrUnsupportedPattern = errors.New("unsupported glob pattern construct")
	// ErrInvalidMatchSpec indicates a match specification of an unsupported type.
	ErrInvalidMatchSpec = errors.New("invalid match specification")
	// ErrNotDirectory indicates a walker root that is not a directory.
	ErrNotDirectory = errors.New("root is not a directory")
	// ErrDescriptorsUnsupported indicates descriptor-based traversal was
	// requested on a platform that cannot provide it.
	ErrDescriptorsUnsupported = errors.New("descriptor-based traversal is not supported on this platform")
	// ErrInvalidProfile indicates malformed scan profile input.
	ErrInvalidProfile = errors.New("invalid scan profile")
)
