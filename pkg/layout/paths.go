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

package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// ❌ MissingGeneratedError is returned when a generated artifact is in neither build directory
type MissingGeneratedError struct {
	Path   string
	Probed []string
}

func (e *MissingGeneratedError) Error() string {
	return fmt.Sprintf("missing generated file %s (looked in %v)", e.Path, e.Probed)
}

// 📍 Paths are the absolute directories of a checkout for one selection
type Paths struct {
	SrcDir          string
	CefDir          string
	ToolsDir        string
	DistribDir      string
	OutDir          string
	DebugBuildDir   string
	ReleaseBuildDir string

	platform Platform
}

// 🧭 Resolve computes the paths for a project checkout. The chromium source
// directory is the parent of cefDir.
func Resolve(cefDir string, sel Selection) (*Paths, error) {
	abs, err := filepath.Abs(cefDir)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", cefDir, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	src := filepath.Dir(abs)
	out := filepath.Join(src, "out")
	tools := filepath.Join(abs, "tools")

	return &Paths{
		SrcDir:          src,
		CefDir:          abs,
		ToolsDir:        tools,
		DistribDir:      filepath.Join(tools, "distrib"),
		OutDir:          out,
		DebugBuildDir:   filepath.Join(out, "Debug"+sel.Arch.BuildDirSuffix()),
		ReleaseBuildDir: filepath.Join(out, "Release"+sel.Arch.BuildDirSuffix()),
		platform:        sel.Platform,
	}, nil
}

// BuildDir returns the build output directory of a build type
func (p *Paths) BuildDir(b BuildType) string {
	if b == Debug {
		return p.DebugBuildDir
	}
	return p.ReleaseBuildDir
}

// 🔍 FindGenerated looks for a generated file relative to the build directories,
// debug first and then release. Both builds generate identical copies.
func (p *Paths) FindGenerated(rel string) (string, error) {
	probed := make([]string, 0, 2)
	// debug first, then release. Callers rely on this order.
	for _, dir := range []string{p.DebugBuildDir, p.ReleaseBuildDir} {
		candidate := filepath.Join(dir, filepath.FromSlash(rel))
		probed = append(probed, candidate)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.WithStack(&MissingGeneratedError{Path: rel, Probed: probed})
}

// 📄 ReadmeComponent returns the path of README.<name>.txt, preferring the platform directory
func (p *Paths) ReadmeComponent(name string) (string, error) {
	file := "README." + name + ".txt"
	for _, dir := range []string{filepath.Join(p.DistribDir, p.platform.DistribDir()), p.DistribDir} {
		candidate := filepath.Join(dir, file)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Errorf("readme component not found: %s", name)
}

// TransferConfigDirs are the directories holding transfer.cfg files: shared first, then platform
func (p *Paths) TransferConfigDirs() []string {
	return []string{p.DistribDir, filepath.Join(p.DistribDir, p.platform.DistribDir())}
}
