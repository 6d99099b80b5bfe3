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

package transfer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"github.com/walteh/makedistrib/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

// 🎬 Action names a file operation reported to a Listener
type Action string

const (
	ActionCopied     Action = "copied"
	ActionSkipped    Action = "skipped"
	ActionDeleted    Action = "deleted"
	ActionNormalized Action = "normalized"
	ActionFormatted  Action = "formatted"
	ActionCollision  Action = "collision"
)

// 👂 Listener is told about every file operation, for console output
type Listener interface {
	OnTransfer(ctx context.Context, action Action, path string)
}

// 🖌️ Formatter formats a source file in place
type Formatter interface {
	Format(ctx context.Context, path string) error
}

// Option configures an Engine
type Option func(*Engine)

// WithFormatter enables the clang_format post-process. Without one those entries are copied unformatted.
func WithFormatter(f Formatter) Option {
	return func(e *Engine) { e.formatter = f }
}

// WithListener reports file operations to l. It may be given more than once.
func WithListener(l Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

// ⚙️ Engine executes manifests. Destinations are remembered across calls so
// collisions between manifests are reported too.
type Engine struct {
	formatter Formatter
	listeners []Listener
	seen      map[string]string
}

// 🏭 NewEngine creates a new transfer engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{seen: map[string]string{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// 🚚 Transfer copies every entry of m from its source directory to its destination directory
func (e *Engine) Transfer(ctx context.Context, m *manifest.Manifest) (*Report, error) {
	logger := zerolog.Ctx(ctx).With().Str("manifest", m.Name()).Logger()
	ctx = logger.WithContext(ctx)

	report := &Report{}
	for _, entry := range m.Entries() {
		if err := e.transferEntry(ctx, m, entry, report); err != nil {
			return report, err
		}
	}

	logger.Debug().
		Int("files", report.FilesCopied).
		Int("dirs", report.DirsCopied).
		Int("deleted", report.FilesDeleted).
		Int("skipped", len(report.Skipped)).
		Msg("transfer complete")

	return report, nil
}

func (e *Engine) transferEntry(ctx context.Context, m *manifest.Manifest, entry manifest.Entry, report *Report) error {
	logger := zerolog.Ctx(ctx)

	src := filepath.Join(m.SourceDir(), filepath.FromSlash(entry.Path))
	dst := filepath.Join(m.DestDir(), filepath.FromSlash(entry.Target()))

	info, err := os.Stat(src)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return errors.Errorf("checking %s: %w", src, err)
		}
		if !entry.Conditional {
			return errors.WithStack(&MissingRequiredPathError{Manifest: m.Name(), Path: src})
		}
		logger.Warn().Str("path", src).Msg("missing conditional path")
		report.Skipped = append(report.Skipped, Skip{Manifest: m.Name(), Entry: entry, Source: src})
		e.notify(ctx, ActionSkipped, src)
		return nil
	}

	e.checkCollision(ctx, m.Name()+":"+entry.Path, dst, report)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Errorf("creating parent of %s: %w", dst, err)
	}

	if entry.Replace {
		if err := os.RemoveAll(dst); err != nil {
			return errors.Errorf("removing %s before replace: %w", dst, err)
		}
	}

	if err := copy.Copy(src, dst, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction { return copy.Shallow },
	}); err != nil {
		return errors.Errorf("copying %s to %s: %w", src, dst, err)
	}
	e.notify(ctx, ActionCopied, dst)

	if info.IsDir() {
		report.DirsCopied++
		if entry.Delete != "" {
			n, err := e.deleteMatches(ctx, dst, entry.Delete)
			report.FilesDeleted += n
			if err != nil {
				return err
			}
		}
	} else {
		report.FilesCopied++
		if entry.Delete != "" {
			logger.Debug().Str("path", src).Str("glob", entry.Delete).Msg("ignoring delete glob on a file entry")
		}
	}

	return e.postProcess(ctx, entry, dst, info.IsDir(), report)
}

// deleteMatches removes the files matched by glob under dir. Every match is
// checked before anything is removed.
func (e *Engine) deleteMatches(ctx context.Context, dir, glob string) (int, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), glob)
	if err != nil {
		return 0, errors.Errorf("matching %q in %s: %w", glob, dir, err)
	}

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		if hidden(match) && !namesHidden(glob) {
			continue
		}
		p := filepath.Join(dir, filepath.FromSlash(match))
		info, err := os.Lstat(p)
		if err != nil {
			return 0, errors.Errorf("checking %s: %w", p, err)
		}
		if info.IsDir() {
			return 0, errors.WithStack(&RefusedDirectoryDeletionError{Path: p, Glob: glob})
		}
		paths = append(paths, p)
	}

	deleted := 0
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			return deleted, errors.Errorf("deleting %s: %w", p, err)
		}
		deleted++
		e.notify(ctx, ActionDeleted, p)
	}
	return deleted, nil
}

// hidden reports whether any component of a slash separated match starts with a dot
func hidden(match string) bool {
	for _, part := range strings.Split(match, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// namesHidden reports whether a glob spells out a dot-prefixed component, the
// only way wildcards reach hidden files
func namesHidden(glob string) bool {
	return strings.HasPrefix(glob, ".") || strings.Contains(glob, "/.")
}

func (e *Engine) checkCollision(ctx context.Context, owner, dst string, report *Report) {
	key := filepath.Clean(dst)
	if prev, ok := e.seen[key]; ok && prev != owner {
		zerolog.Ctx(ctx).Warn().
			Str("dest", dst).
			Str("previous", prev).
			Str("current", owner).
			Msg("destination written twice, later entry wins")
		report.Collisions = append(report.Collisions, Collision{Dest: dst, Previous: prev, Current: owner})
		e.notify(ctx, ActionCollision, dst)
	}
	e.seen[key] = owner
}

func (e *Engine) notify(ctx context.Context, action Action, path string) {
	for _, l := range e.listeners {
		l.OnTransfer(ctx, action, path)
	}
}
