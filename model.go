// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

// FSNodeType classifies one reported file-system node.
type FSNodeType uint8

const (
	// FSNodeFile is any node that is not a directory, including symbolic
	// links that were not followed as directories.
	FSNodeFile FSNodeType = iota
	// FSNodeDirectory is a directory node.
	FSNodeDirectory
)

// String returns human-readable node type name.
func (t FSNodeType) String() string {
	switch t {
	case FSNodeFile:
		return "file"
	case FSNodeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// FSNodeEntry is one immutable reported file-system node.
type FSNodeEntry struct {
	// Path is the node path including the walker root prefix as supplied.
	Path string `json:"path" yaml:"path"`
	// Relpath is the node path relative to the walker root ("." for the root).
	Relpath string `json:"relpath" yaml:"relpath"`
	// Name is the final path label.
	Name string `json:"name" yaml:"name"`
	// Type reports whether the node is a file or a directory.
	Type FSNodeType `json:"type" yaml:"type"`
	// ParentFd is the open descriptor of the containing directory when
	// descriptor-based traversal is active, -1 otherwise. It is always -1 for
	// the synthetic root entry and for synthesized ancestor directories. The
	// descriptor stays valid until the walker moves past its directory.
	ParentFd int `json:"parent_fd" yaml:"parent_fd"`
}

// MatchOptions controls match specification normalization.
type MatchOptions struct {
	// PeriodSpecial prevents wildcards from matching a leading period in
	// file/directory names unless the pattern label itself starts with one.
	PeriodSpecial bool `json:"period_special" yaml:"period_special"`
	// Recursive disables descent entirely when false by wrapping the final
	// matcher in NoRecursionMatcher.
	Recursive bool `json:"recursive" yaml:"recursive"`
}

// DefaultMatchOptions returns match normalization defaults.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		PeriodSpecial: true,
		Recursive:     true,
	}
}

// Options controls walker traversal behavior.
type Options struct {
	// FollowSymlinks treats symlinked directories as descend targets.
	FollowSymlinks bool `json:"follow_symlinks" yaml:"follow_symlinks"`
	// IntermediateDirs synthesizes unreported ancestor directory entries
	// before any entry below them, keeping the reported tree gap-free.
	IntermediateDirs bool `json:"intermediate_dirs" yaml:"intermediate_dirs"`
	// PeriodSpecial is passed to glob matchers built from the match spec.
	PeriodSpecial bool `json:"period_special" yaml:"period_special"`
	// Recursive enables descent below the root directory.
	Recursive bool `json:"recursive" yaml:"recursive"`
}

// DefaultOptions returns walker traversal defaults.
func DefaultOptions() Options {
	return Options{
		FollowSymlinks:   false,
		IntermediateDirs: true,
		PeriodSpecial:    true,
		Recursive:        true,
	}
}

// matchOptions converts walker options to match normalization options.
func (o Options) matchOptions() MatchOptions {
	return MatchOptions{
		PeriodSpecial: o.PeriodSpecial,
		Recursive:     o.Recursive,
	}
}
