// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

package treescan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Walker lazily produces matcher-filtered file-system entries below one root.
//
// A walker is a finite, single-pass sequence: entries are pulled one at a
// time with Next, and the underlying directory walk advances exactly as far
// as needed to produce the next entry. The synthetic root directory entry is
// always produced first, regardless of match rules. Walkers are not safe for
// concurrent readers.
type Walker struct {
	matcher    Matcher
	rootHandle dirHandle
	reported   map[string]bool
	stack      []*walkFrame
	pending    []FSNodeEntry
	// prefix is prepended to relative paths to form FSNodeEntry.Path.
	prefix string
	// rootPath is the Path value of the synthetic root entry.
	rootPath string
	opts     Options
	started  bool
	closed   bool
}

// walkFrame is the traversal state of one directory being walked.
type walkFrame struct {
	handle  dirHandle
	relDir  string
	dirs    []string
	files   []string
	dirIdx  int
	fileIdx int
	// read reports whether the directory listing was loaded.
	read bool
	// descending reports whether the subdirectory at dirIdx is on the stack.
	descending bool
	// synthesized reports whether ancestor synthesis already ran for this
	// directory, it is checked at most once per directory.
	synthesized bool
}

// dirHandle is one open directory behind the two traversal strategies
// (descriptor-relative on Unix, path-based elsewhere).
type dirHandle interface {
	// ReadChildren returns child directory and file names, each sorted.
	// Symlinked directories count as directories only when followSymlinks.
	ReadChildren(followSymlinks bool) (dirs []string, files []string, err error)
	// OpenChild opens one child directory for further walking.
	OpenChild(name string, followSymlinks bool) (dirHandle, error)
	// Fd returns the underlying descriptor, -1 when none exists.
	Fd() int
	// Close releases the handle, repeated calls are no-ops.
	Close() error
}

// NewWalker creates a walker over the directory tree rooted at root.
//
// The match specification accepts the forms documented on MatcherFromSpec.
// Construction fails when the root does not exist or is not a directory.
func NewWalker(root string, spec any, opts Options) (*Walker, error) {
	matcher, err := MatcherFromSpec(spec, opts.matchOptions())
	if err != nil {
		return nil, err
	}

	cleaned := trimRootPath(root)
	info, err := os.Stat(cleaned)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, cleaned)
	}

	handle, err := openRootHandle(cleaned)
	if err != nil {
		return nil, fmt.Errorf("open root: %w", err)
	}

	prefix := cleaned + pathSep
	if strings.HasSuffix(cleaned, pathSep) {
		// Filesystem root ("/") already carries its separator.
		prefix = cleaned
	}

	return &Walker{
		matcher:    matcher,
		rootHandle: handle,
		reported:   map[string]bool{"": true},
		prefix:     prefix,
		rootPath:   cleaned,
		opts:       opts,
	}, nil
}

// NewWalkerFd creates a walker over an already-open directory descriptor.
//
// The walker re-opens its own descriptor relative to fd and never closes the
// caller's one. Reported paths are rooted at ".". On platforms without
// descriptor-based traversal the error wraps ErrDescriptorsUnsupported.
func NewWalkerFd(fd int, spec any, opts Options) (*Walker, error) {
	matcher, err := MatcherFromSpec(spec, opts.matchOptions())
	if err != nil {
		return nil, err
	}

	handle, err := handleFromFd(fd)
	if err != nil {
		return nil, err
	}

	return &Walker{
		matcher:    matcher,
		rootHandle: handle,
		reported:   map[string]bool{"": true},
		prefix:     "." + pathSep,
		rootPath:   ".",
		opts:       opts,
	}, nil
}

// Next returns the next entry, or io.EOF once the sequence is exhausted or
// the walker was closed. Any other error aborts the traversal; resources are
// released before the error is returned and entries already produced stay
// valid.
func (w *Walker) Next() (FSNodeEntry, error) {
	if len(w.pending) > 0 {
		return w.popPending(), nil
	}

	if w.closed {
		return FSNodeEntry{}, io.EOF
	}

	if !w.started {
		w.started = true
		w.stack = append(w.stack, &walkFrame{handle: w.rootHandle})

		// The root is reported unconditionally, before the matcher is ever
		// consulted, establishing the ancestor for every other entry.
		return FSNodeEntry{
			Type:     FSNodeDirectory,
			Path:     w.rootPath,
			Relpath:  ".",
			Name:     ".",
			ParentFd: -1,
		}, nil
	}

	if err := w.advance(); err != nil {
		_ = w.Close()
		return FSNodeEntry{}, err
	}

	if len(w.pending) > 0 {
		return w.popPending(), nil
	}

	// Normal exhaustion releases the root descriptor as well.
	_ = w.Close()
	return FSNodeEntry{}, io.EOF
}

// Entries returns a single-use iterator over the remaining entries.
//
// The walker is closed when the loop finishes, including early breaks, so a
// plain range statement provides the full acquire/release discipline. After
// a non-nil error is yielded the iteration stops.
func (w *Walker) Entries() iter.Seq2[FSNodeEntry, error] {
	return func(yield func(FSNodeEntry, error) bool) {
		defer func() { _ = w.Close() }()

		for {
			entry, err := w.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(entry, err) {
				return
			}

			if err != nil {
				return
			}
		}
	}
}

// Close releases every descriptor held by the traversal. It is idempotent
// and safe to call at any point, including after an error.
func (w *Walker) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true

	var firstErr error
	for i := len(w.stack) - 1; i >= 0; i-- {
		if err := w.stack[i].handle.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	w.stack = nil
	w.pending = nil

	if w.rootHandle != nil {
		// Handle-level Close is idempotent, double-closing the root frame's
		// handle here is harmless.
		if err := w.rootHandle.Close(); err != nil && firstErr == nil {
			firstErr = err
		}

		w.rootHandle = nil
	}

	return firstErr
}

// advance drives the walk until at least one entry is pending or the tree is
// exhausted. Each directory level handles subdirectories before files, and a
// subdirectory's whole subtree is walked before the level's files.
func (w *Walker) advance() error {
	for len(w.stack) > 0 && len(w.pending) == 0 {
		frame := w.stack[len(w.stack)-1]

		if !frame.read {
			dirs, files, err := frame.handle.ReadChildren(w.opts.FollowSymlinks)
			if err != nil {
				return fmt.Errorf("read dir %s: %w", w.displayPath(frame.relDir), err)
			}

			frame.dirs = dirs
			frame.files = files
			frame.read = true
			continue
		}

		switch {
		case frame.descending:
			// The subdirectory's frame was popped, move to the next child.
			frame.descending = false
			frame.dirIdx++

		case frame.dirIdx < len(frame.dirs):
			name := frame.dirs[frame.dirIdx]
			rel := joinRel(frame.relDir, name)

			// Pruned subdirectories are still evaluated for reporting at
			// this level, the two decisions are independent.
			descend := w.matcher.ShouldDescend(rel)
			if w.matcher.ShouldReport(rel, true) {
				w.queueEntry(frame, rel, name, true)
			}

			if !descend {
				frame.dirIdx++
				continue
			}

			child, err := frame.handle.OpenChild(name, w.opts.FollowSymlinks)
			if err != nil {
				return fmt.Errorf("open dir %s: %w", w.displayPath(rel), err)
			}

			frame.descending = true
			w.stack = append(w.stack, &walkFrame{handle: child, relDir: rel})

		case frame.fileIdx < len(frame.files):
			name := frame.files[frame.fileIdx]
			frame.fileIdx++

			rel := joinRel(frame.relDir, name)
			if w.matcher.ShouldReport(rel, false) {
				w.queueEntry(frame, rel, name, false)
			}

		default:
			w.stack = w.stack[:len(w.stack)-1]
			_ = frame.handle.Close()
		}
	}

	return nil
}

// queueEntry queues one reported node, synthesizing unreported ancestor
// directories first so consumers always see ancestors before descendants.
func (w *Walker) queueEntry(frame *walkFrame, rel string, name string, isDir bool) {
	if w.opts.IntermediateDirs && !frame.synthesized {
		w.synthesizeAncestors(frame.relDir)
		frame.synthesized = true
	}

	nodeType := FSNodeFile
	if isDir {
		nodeType = FSNodeDirectory
		w.reported[rel] = true
	}

	w.pending = append(w.pending, FSNodeEntry{
		Type:     nodeType,
		Path:     w.prefix + rel,
		Relpath:  rel,
		Name:     name,
		ParentFd: frame.handle.Fd(),
	})
}

// synthesizeAncestors queues directory entries for every unreported ancestor
// of relDir in root-to-leaf order. Each directory is reported at most once
// per traversal.
func (w *Walker) synthesizeAncestors(relDir string) {
	if relDir == "" {
		return
	}

	acc := ""
	for _, part := range splitLabels(relDir) {
		acc = joinRel(acc, part)
		if w.reported[acc] {
			continue
		}

		w.reported[acc] = true
		w.pending = append(w.pending, FSNodeEntry{
			Type:     FSNodeDirectory,
			Path:     w.prefix + acc,
			Relpath:  acc,
			Name:     part,
			ParentFd: -1,
		})
	}
}

// popPending removes and returns the oldest pending entry.
func (w *Walker) popPending() FSNodeEntry {
	entry := w.pending[0]
	w.pending = w.pending[1:]
	return entry
}

// displayPath renders a relative path with the root prefix for error text.
func (w *Walker) displayPath(rel string) string {
	if rel == "" {
		return w.rootPath
	}

	return w.prefix + rel
}

// pathDirHandle walks by joining names onto a directory path, the fallback
// strategy for platforms without descriptor-relative opens.
type pathDirHandle struct {
	path string
}

// ReadChildren lists the directory, splitting entries into dirs and files.
func (h *pathDirHandle) ReadChildren(followSymlinks bool) ([]string, []string, error) {
	entries, err := os.ReadDir(h.path)
	if err != nil {
		return nil, nil, err
	}

	dirs := make([]string, 0, len(entries))
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		isDir := entry.IsDir()
		if !isDir && followSymlinks && entry.Type()&fs.ModeSymlink != 0 {
			// Broken symlinks stat with an error and stay files.
			if info, statErr := os.Stat(filepath.Join(h.path, entry.Name())); statErr == nil && info.IsDir() {
				isDir = true
			}
		}

		if isDir {
			dirs = append(dirs, entry.Name())
		} else {
			files = append(files, entry.Name())
		}
	}

	return dirs, files, nil
}

// OpenChild narrows the handle to one child directory.
func (h *pathDirHandle) OpenChild(name string, _ bool) (dirHandle, error) {
	return &pathDirHandle{path: filepath.Join(h.path, name)}, nil
}

// Fd reports that no descriptor backs this handle.
func (h *pathDirHandle) Fd() int { return -1 }

// Close is a no-op, path handles hold no resources.
func (h *pathDirHandle) Close() error { return nil }
