// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	cp "github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/transfer"
)

// 📊 FileStatus is what happened to a file during the run
type FileStatus int

const (
	StatusUnknown FileStatus = iota
	StatusCopied             // Copied from the source tree
	StatusWritten            // Generated by the run
	StatusSkipped            // Optional source was missing
	StatusDeleted            // Removed by a delete glob
	StatusArchived           // Archive created from an output directory
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusCopied:
		return "copied"
	case StatusWritten:
		return "written"
	case StatusSkipped:
		return "skipped"
	case StatusDeleted:
		return "deleted"
	case StatusArchived:
		return "archived"
	default:
		return "unknown"
	}
}

// 📄 FileInfo is the record of one file
type FileInfo struct {
	Path   string     // Absolute path
	Status FileStatus // Last status recorded
}

// 🌳 Tree is the parent output directory and the directories created in it
type Tree struct {
	parent string

	mu    sync.RWMutex
	dirs  []string
	files map[string]FileStatus
}

var _ transfer.Listener = (*Tree)(nil)

// 🏭 New creates a tree rooted at parent. The directory is created on first use.
func New(parent string) (*Tree, error) {
	abs, err := filepath.Abs(parent)
	if err != nil {
		return nil, errors.Errorf("resolving output directory %s: %w", parent, err)
	}
	return &Tree{
		parent: abs,
		files:  make(map[string]FileStatus),
	}, nil
}

// Parent returns the absolute parent directory
func (t *Tree) Parent() string {
	return t.parent
}

// 📁 Create makes an empty directory named name under the parent, deleting any
// existing one, and adds it to Dirs
func (t *Tree) Create(ctx context.Context, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.Errorf("invalid output directory name %q", name)
	}
	dir := filepath.Join(t.parent, name)

	if _, err := os.Stat(dir); err == nil {
		zerolog.Ctx(ctx).Info().Str("dir", dir).Msg("removing existing output directory")
		if err := os.RemoveAll(dir); err != nil {
			return "", errors.Errorf("removing %s: %w", dir, err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Errorf("creating %s: %w", dir, err)
	}

	t.mu.Lock()
	t.dirs = append(t.dirs, dir)
	t.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("created output directory")
	return dir, nil
}

// Dirs returns the created directories in creation order
func (t *Tree) Dirs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.dirs))
	copy(out, t.dirs)
	return out
}

// ✍️ WriteFile writes content to path through a temporary file and a rename,
// creating parent directories
func (t *Tree) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting mode of temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	t.Track(ctx, path, StatusWritten)
	return nil
}

// 📋 CopyFile copies a single file, preserving its mode, and records it
func (t *Tree) CopyFile(ctx context.Context, src, dst string) error {
	if err := cp.Copy(src, dst); err != nil {
		return errors.Errorf("copying %s to %s: %w", src, dst, err)
	}
	t.Track(ctx, dst, StatusCopied)
	return nil
}

// Track records the status of path
func (t *Tree) Track(ctx context.Context, path string, status FileStatus) {
	t.mu.Lock()
	t.files[path] = status
	t.mu.Unlock()

	zerolog.Ctx(ctx).Trace().Str("path", path).Stringer("status", status).Msg("tracked file")
}

// OnTransfer records the file operations of a transfer engine
func (t *Tree) OnTransfer(ctx context.Context, action transfer.Action, path string) {
	switch action {
	case transfer.ActionCopied, transfer.ActionNormalized, transfer.ActionFormatted:
		t.Track(ctx, path, StatusCopied)
	case transfer.ActionSkipped:
		t.Track(ctx, path, StatusSkipped)
	case transfer.ActionDeleted:
		t.Track(ctx, path, StatusDeleted)
	}
}

// Files returns every tracked file sorted by path
func (t *Tree) Files() []FileInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]FileInfo, 0, len(t.files))
	for p, s := range t.files {
		out = append(out, FileInfo{Path: p, Status: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Count returns the number of files with a status
func (t *Tree) Count(status FileStatus) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, s := range t.files {
		if s == status {
			n++
		}
	}
	return n
}
