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

package manifest

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/makedistrib/pkg/gypi"
	"gitlab.com/tozd/go/errors"
)

// 📜 TransferConfigEntry is one record of a legacy transfer.cfg file
type TransferConfigEntry struct {
	// Source is relative to the project directory. Empty when the file held None,
	// in which case only the post-process step applies to Target.
	Source        string
	Target        string
	PostProcess   PostProcess
	NewHeaderPath string
}

// 📥 LoadTransferConfig reads a transfer.cfg literal list
func LoadTransferConfig(ctx context.Context, file string) ([]TransferConfigEntry, error) {
	raw, err := gypi.ParseFile(file)
	if err != nil {
		return nil, err
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, errors.Errorf("%s: top level is %T, want a list", file, raw)
	}

	out := make([]TransferConfigEntry, 0, len(list))
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Errorf("%s: record %d is %T, want a dictionary", file, i, item)
		}

		var e TransferConfigEntry
		for key, val := range rec {
			s, isString := val.(string)
			if val != nil && !isString {
				return nil, errors.Errorf("%s: record %d: %s is %T, want a string", file, i, key, val)
			}
			if s == gypi.None {
				s = ""
			}
			switch key {
			case "source":
				e.Source = s
			case "target":
				e.Target = s
			case "post-process":
				e.PostProcess = PostProcess(s)
			case "new_header_path":
				e.NewHeaderPath = s
			default:
				return nil, errors.Errorf("%s: record %d: unknown key %q", file, i, key)
			}
		}

		if e.Target == "" {
			return nil, errors.Errorf("%w: %s: record %d: target is required", ErrInvalidEntry, file, i)
		}
		out = append(out, e)
	}

	zerolog.Ctx(ctx).Debug().Str("file", file).Int("records", len(out)).Msg("loaded transfer config")
	return out, nil
}

// 🔗 TransferConfigManifest binds the records that have a source to a manifest.
// Sources are relative to projectDir, which must live inside rootDir; the
// manifest is rooted at rootDir so sources like "../build/x" stay expressible.
func TransferConfigManifest(name, rootDir, projectDir, destDir string, records []TransferConfigEntry) (*Manifest, error) {
	rel, err := filepath.Rel(rootDir, projectDir)
	if err != nil {
		return nil, errors.Errorf("relating %s to %s: %w", projectDir, rootDir, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, errors.Errorf("project directory %s is outside %s", projectDir, rootDir)
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		if r.Source == "" {
			continue
		}
		src := path.Clean(path.Join(rel, filepath.ToSlash(r.Source)))
		if src == ".." || strings.HasPrefix(src, "../") {
			return nil, errors.Errorf("%w: source %q escapes %s", ErrInvalidEntry, r.Source, rootDir)
		}
		entries = append(entries, Entry{
			Path:          src,
			OutPath:       r.Target,
			PostProcess:   r.PostProcess,
			NewHeaderPath: r.NewHeaderPath,
		})
	}
	return New(name, rootDir, destDir, entries)
}
