// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/treescan

//go:build unix

package treescan

import (
	"io/fs"
	"os"
	"slices"

	"golang.org/x/sys/unix"
)

// openDirFlags are the base flags for every directory descriptor open.
const openDirFlags = unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC

// openRootHandle opens the traversal root for descriptor-relative walking.
func openRootHandle(path string) (dirHandle, error) {
	fd, err := unix.Open(path, openDirFlags, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}

	return &fdDirHandle{fd: fd}, nil
}

// handleFromFd adopts a caller-supplied directory descriptor.
//
// The walker opens its own descriptor relative to fd and never closes the
// caller's one.
func handleFromFd(fd int) (dirHandle, error) {
	own, err := unix.Openat(fd, ".", openDirFlags, 0)
	if err != nil {
		return nil, &os.PathError{Op: "openat", Path: ".", Err: err}
	}

	return &fdDirHandle{fd: own}, nil
}

// fdDirHandle walks using descriptor-relative opens, avoiding repeated path
// resolution from the root on every step.
type fdDirHandle struct {
	fd     int
	closed bool
}

// ReadChildren lists the directory through a separate descriptor so fd keeps
// a clean offset for later openat calls.
func (h *fdDirHandle) ReadChildren(followSymlinks bool) ([]string, []string, error) {
	listFd, err := unix.Openat(h.fd, ".", openDirFlags, 0)
	if err != nil {
		return nil, nil, &os.PathError{Op: "openat", Path: ".", Err: err}
	}

	listing := os.NewFile(uintptr(listFd), ".")
	entries, err := listing.ReadDir(-1)
	_ = listing.Close()
	if err != nil {
		return nil, nil, err
	}

	dirs := make([]string, 0, len(entries))
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		isDir := entry.IsDir()
		if !isDir && followSymlinks && entry.Type()&fs.ModeSymlink != 0 {
			// Broken symlinks fail the stat and stay files.
			var stat unix.Stat_t
			if statErr := unix.Fstatat(h.fd, entry.Name(), &stat, 0); statErr == nil &&
				stat.Mode&unix.S_IFMT == unix.S_IFDIR {
				isDir = true
			}
		}

		if isDir {
			dirs = append(dirs, entry.Name())
		} else {
			files = append(files, entry.Name())
		}
	}

	// ReadDir(-1) on an open file yields raw directory order.
	slices.Sort(dirs)
	slices.Sort(files)

	return dirs, files, nil
}

// OpenChild opens one child directory relative to this descriptor.
func (h *fdDirHandle) OpenChild(name string, followSymlinks bool) (dirHandle, error) {
	flags := openDirFlags
	if !followSymlinks {
		flags |= unix.O_NOFOLLOW
	}

	fd, err := unix.Openat(h.fd, name, flags, 0)
	if err != nil {
		return nil, &os.PathError{Op: "openat", Path: name, Err: err}
	}

	return &fdDirHandle{fd: fd}, nil
}

// Fd returns the open directory descriptor.
func (h *fdDirHandle) Fd() int { return h.fd }

// Close releases the descriptor exactly once.
func (h *fdDirHandle) Close() error {
	if h.closed {
		return nil
	}

	h.closed = true
	return unix.Close(h.fd)
}
