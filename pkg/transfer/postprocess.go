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

	"github.com/rs/zerolog"
	"github.com/walteh/makedistrib/pkg/manifest"
	"github.com/walteh/makedistrib/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// formattable lists the extensions handed to the formatter.
var formattable = map[string]bool{".c": true, ".cc": true, ".cpp": true, ".h": true}

func (e *Engine) postProcess(ctx context.Context, entry manifest.Entry, dst string, isDir bool, report *Report) error {
	if entry.PostProcess == manifest.PostProcessNone {
		return nil
	}

	files := []string{dst}
	if isDir {
		var err error
		files, err = regularFiles(dst)
		if err != nil {
			return err
		}
	}

	for _, f := range files {
		if err := e.postProcessFile(ctx, entry, f, report); err != nil {
			return err
		}
	}
	return nil
}

// 🔧 PostProcessFile applies entry's post-process step to a file that is already in place
func (e *Engine) PostProcessFile(ctx context.Context, entry manifest.Entry, path string) (*Report, error) {
	report := &Report{}
	if err := e.postProcessFile(ctx, entry, path, report); err != nil {
		return report, err
	}
	return report, nil
}

func (e *Engine) postProcessFile(ctx context.Context, entry manifest.Entry, path string, report *Report) error {
	switch entry.PostProcess {
	case manifest.PostProcessNormalizeHeaders:
		n, err := NormalizeHeaderFile(path, entry.NewHeaderPath)
		if err != nil {
			return err
		}
		if n > 0 {
			report.HeadersNormalized += n
			e.notify(ctx, ActionNormalized, path)
		}
	case manifest.PostProcessClangFormat:
		if e.formatter == nil || !formattable[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if err := e.formatter.Format(ctx, path); err != nil {
			return errors.Errorf("formatting %s: %w", path, err)
		}
		report.FilesFormatted++
		e.notify(ctx, ActionFormatted, path)
	case manifest.PostProcessNone:
	default:
		zerolog.Ctx(ctx).Warn().Str("path", path).Str("post_process", string(entry.PostProcess)).Msg("unknown post-process step")
	}
	return nil
}

// ✂️ NormalizeHeaderFile rewrites the project include directives of a file in place
func NormalizeHeaderFile(path, newPrefix string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.Errorf("checking %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Errorf("reading %s: %w", path, err)
	}

	out, n := text.NormalizeIncludes(string(data), newPrefix)
	if n == 0 {
		return 0, nil
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return 0, errors.Errorf("writing %s: %w", path, err)
	}
	return n, nil
}

func regularFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}
