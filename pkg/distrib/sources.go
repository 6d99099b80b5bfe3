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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/layout"
	"github.com/walteh/makedistrib/pkg/log"
	"github.com/walteh/makedistrib/pkg/manifest"
	"github.com/walteh/makedistrib/pkg/output"
	"github.com/walteh/makedistrib/pkg/text"
)

// transferReadme is copied into each directory filled from a transfer config,
// followed by the list of sources copied there
const transferReadme = "README-TRANSFER.txt"

// 📚 transferSourceGroups copies the files named by gypi variables
func (rc *RunContext) transferSourceGroups(ctx context.Context, groups []layout.SourceGroup) error {
	for _, g := range groups {
		var paths []string
		for _, name := range g.Vars {
			if _, ok := rc.Variables[name]; !ok {
				return errors.Errorf("source group %s: variable %q is not defined in the gypi files", g.Name(), name)
			}
			paths = append(paths, rc.Variables.Lookup(name)...)
		}

		var post manifest.PostProcess
		if g.Generated && !rc.Options.NoFormat {
			post = manifest.PostProcessClangFormat
		}

		m, err := manifest.FromPaths(g.Name(), rc.Paths.CefDir, rc.mainPath(filepath.FromSlash(g.Dest)), paths, g.StripPrefix, post)
		if err != nil {
			return err
		}
		if err := rc.transfer(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// stepSources copies headers, generated headers, wrapper sources and the
// shared transfer configs
func (rc *RunContext) stepSources(ctx context.Context) error {
	for _, dir := range []string{"include", "cmake", "libcef_dll"} {
		if err := os.MkdirAll(rc.mainPath(dir), 0o755); err != nil {
			return errors.Errorf("creating %s: %w", dir, err)
		}
	}

	groups := rc.Selection.CommonSourceGroups()
	// wrapper sources follow the generated headers
	split := 0
	for i, g := range groups {
		if g.Dest == "include" {
			split = i + 1
		}
	}
	if err := rc.transferSourceGroups(ctx, groups[:split]); err != nil {
		return err
	}

	for _, name := range layout.GeneratedHeaders {
		// debug before release, see Paths.FindGenerated
		src, err := rc.Paths.FindGenerated(layout.GeneratedHeaderPath(name))
		if err != nil {
			return err
		}
		if err := rc.copyFile(ctx, src, rc.mainPath("include", name)); err != nil {
			return err
		}
	}

	if err := rc.transferSourceGroups(ctx, groups[split:]); err != nil {
		return err
	}

	return rc.transferConfigs(ctx, rc.Paths.DistribDir)
}

// 🗂️ transferConfigs evaluates transfer.cfg and transfer_<mode>.cfg in dir, when present
func (rc *RunContext) transferConfigs(ctx context.Context, dir string) error {
	for _, name := range []string{"transfer.cfg", "transfer_" + string(rc.Selection.Mode) + ".cfg"} {
		file := filepath.Join(dir, name)
		if !exists(file) {
			continue
		}
		if err := rc.transferConfig(ctx, file); err != nil {
			return err
		}
	}
	return nil
}

func (rc *RunContext) transferConfig(ctx context.Context, file string) error {
	records, err := manifest.LoadTransferConfig(ctx, file)
	if err != nil {
		return err
	}

	m, err := manifest.TransferConfigManifest(file, rc.Paths.SrcDir, rc.Paths.CefDir, rc.MainDir, records)
	if err != nil {
		return err
	}
	if err := rc.transfer(ctx, m); err != nil {
		return err
	}

	for _, r := range records {
		dst := rc.mainPath(filepath.FromSlash(r.Target))
		if r.Source != "" {
			if err := rc.appendTransferReadme(ctx, filepath.Dir(dst), r.Source); err != nil {
				return err
			}
			continue
		}
		if r.PostProcess == "" {
			continue
		}
		report, err := rc.Engine.PostProcessFile(ctx, manifest.Entry{
			Path:          r.Target,
			PostProcess:   r.PostProcess,
			NewHeaderPath: r.NewHeaderPath,
		}, dst)
		rc.Report.Add(report)
		if err != nil {
			return err
		}
	}
	return nil
}

// appendTransferReadme adds source to the README-TRANSFER.txt of dir, creating it from the template
func (rc *RunContext) appendTransferReadme(ctx context.Context, dir, source string) error {
	readme := filepath.Join(dir, transferReadme)
	if !exists(readme) {
		if err := rc.copyFile(ctx, filepath.Join(rc.Paths.DistribDir, transferReadme), readme); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(readme, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Errorf("opening %s: %w", readme, err)
	}
	defer f.Close()

	if _, err := f.WriteString(source + "\n"); err != nil {
		return errors.Errorf("appending to %s: %w", readme, err)
	}
	return nil
}

// stepTests copies the sample application sources, gtest, the gypi files,
// README.md and the Doxyfile
func (rc *RunContext) stepTests(ctx context.Context) error {
	if err := rc.transferSourceGroups(ctx, rc.Selection.CommonTestGroups()); err != nil {
		return err
	}

	if err := rc.transferGroup(ctx, rc.common, layout.GroupGTest, rc.Paths.CefDir, rc.mainPath("tests", "gtest")); err != nil {
		return err
	}
	if err := rc.transferGroup(ctx, rc.common, layout.GroupStandard, rc.Paths.CefDir, rc.MainDir); err != nil {
		return err
	}

	return rc.transferDoxyfile(ctx)
}

// transferDoxyfile copies the Doxyfile, when there is one, with the version filled in
func (rc *RunContext) transferDoxyfile(ctx context.Context) error {
	src := filepath.Join(rc.Paths.CefDir, "Doxyfile")
	if !exists(src) {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Errorf("reading %s: %w", src, err)
	}
	out := text.Substitute(string(data), text.Strings(map[string]string{"PROJECT_NUMBER": rc.Version.Long()}), text.Make)
	return rc.writeFile(ctx, rc.mainPath("Doxyfile"), []byte(out))
}

// stepCMake instantiates the CMake templates with the merged gypi variables
func (rc *RunContext) stepCMake(ctx context.Context) error {
	for _, tmpl := range rc.Selection.CMakeTemplates() {
		src := filepath.Join(rc.Paths.CefDir, filepath.FromSlash(tmpl.Src))
		dst := rc.mainPath(filepath.FromSlash(tmpl.Dst))
		if err := text.ProcessTemplateFile(ctx, src, dst, rc.Variables, text.CMake); err != nil {
			return err
		}
		rc.Tree.Track(ctx, dst, output.StatusWritten)
		rc.console.LogFileOperation(ctx, log.FileOperation{Path: dst, Action: "substituted", Detail: tmpl.Src})
	}
	return nil
}
