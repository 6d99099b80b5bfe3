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

package distrib

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/layout"
	"github.com/walteh/makedistrib/pkg/text"
)

// bazelPlatforms maps a file name component to the platform it is limited to
var bazelPlatforms = map[string]layout.Platform{
	"linux": layout.Linux,
	"mac":   layout.Mac,
	"win":   layout.Windows,
}

var unresolvedBazelToken = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// 🧩 BazelFile is one file of tools/distrib/bazel. Hyphens in its name stand
// for directory separators: tests-cefsimple-BUILD.bazel.in is written to
// tests/cefsimple/BUILD.bazel.
type BazelFile struct {
	Name string
}

// Dirs are the directory components encoded in the name
func (f BazelFile) Dirs() []string {
	parts := strings.Split(f.Name, "-")
	return parts[:len(parts)-1]
}

// Target is the output path relative to the main output directory, with any
// template suffix still attached
func (f BazelFile) Target() string {
	return strings.ReplaceAll(f.Name, "-", "/")
}

// AppliesTo reports whether no directory component limits the file to another platform
func (f BazelFile) AppliesTo(p layout.Platform) bool {
	for _, part := range f.Dirs() {
		if want, ok := bazelPlatforms[part]; ok && want != p {
			return false
		}
	}
	return true
}

// BazelVariables are the values available to bazel templates: the version
// strings plus the maintained gypi variables, which win on conflict
func (rc *RunContext) BazelVariables() text.Context {
	return text.Merge(text.Strings(map[string]string{
		"version_long":  rc.Version.Long(),
		"version_short": rc.Version.Short(),
		"version_plist": rc.Version.Plist(),
	}), rc.Maintained)
}

// SubstituteBazel fills a bazel template. List items under relativeTo lose
// that prefix. A ${name} left in the result is an unknown variable.
func SubstituteBazel(tmpl string, vars text.Context, relativeTo string) (string, error) {
	out := text.Substitute(tmpl, vars, text.Bazel.WithRelativeTo(relativeTo))
	if m := unresolvedBazelToken.FindStringSubmatch(out); m != nil {
		return "", errors.Errorf("unknown bazel variable %q", m[1])
	}
	return out, nil
}

// stepBazel copies the project bazel directory and writes the bazel build files
func (rc *RunContext) stepBazel(ctx context.Context) error {
	if err := rc.transferGroup(ctx, rc.common, layout.GroupBazel, rc.Paths.CefDir, rc.MainDir); err != nil {
		return err
	}
	return rc.transferBazelFiles(ctx, filepath.Join(rc.Paths.DistribDir, "bazel"), rc.Selection.Mode != layout.ModeStandard)
}

func (rc *RunContext) transferBazelFiles(ctx context.Context, dir string, requireParent bool) error {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Str("dir", dir).Msg("no bazel files")
			return nil
		}
		return errors.Errorf("listing %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	vars := rc.BazelVariables()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		f := BazelFile{Name: entry.Name()}
		src := filepath.Join(dir, f.Name)

		if !f.AppliesTo(rc.Selection.Platform) {
			logger.Debug().Str("file", src).Msg("skipping bazel file for another platform")
			continue
		}

		target := rc.mainPath(filepath.FromSlash(f.Target()))
		targetDir := filepath.Dir(target)
		if !isDir(targetDir) {
			if requireParent && !isDir(filepath.Dir(targetDir)) {
				// tests/* files are only written when tests/ exists
				logger.Debug().Str("file", src).Msg("skipping bazel file without a parent directory")
				continue
			}
			if err := os.MkdirAll(targetDir, 0o755); err != nil {
				return errors.Errorf("creating %s: %w", targetDir, err)
			}
		}

		if !strings.HasSuffix(target, text.TemplateSuffix) {
			if err := rc.copyFile(ctx, src, target); err != nil {
				return err
			}
			continue
		}

		data, err := os.ReadFile(src)
		if err != nil {
			return errors.Errorf("reading %s: %w", src, err)
		}
		out, err := SubstituteBazel(string(data), vars, strings.Join(f.Dirs(), "/"))
		if err != nil {
			return errors.Errorf("%s: %w", src, err)
		}
		if err := rc.writeFile(ctx, text.OutputName(target), []byte(out)); err != nil {
			return err
		}
	}
	return nil
}
