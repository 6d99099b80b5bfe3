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
	"github.com/walteh/makedistrib/pkg/manifest"
)

// 🎯 Selection is the platform, mode and architecture of one run
type Selection struct {
	Platform Platform
	Mode     Mode
	Arch     Arch
	Ozone    bool

	// Subdir replaces the generated output directory name when set.
	Subdir string
	// SubdirSuffix is appended to the generated name. Ignored when Subdir is set.
	SubdirSuffix string
}

// OutputDirBase is the name shared by every output directory of a version
func OutputDirBase(version string) string {
	return "cef_binary_" + version
}

// 📁 OutputDirName returns the name of the main output directory
func (s Selection) OutputDirName(version string) string {
	name := s.Subdir
	if name == "" {
		platformName := string(s.Platform)
		if s.Platform == Mac {
			platformName = "macos"
			if s.Arch == ArchX64 {
				platformName += "x"
			}
		}
		name = OutputDirBase(version) + "_" + platformName + s.Arch.PlatformArch()
		if s.SubdirSuffix != "" {
			name += "_" + s.SubdirSuffix
		}
	}

	name += s.Mode.DirSuffix()
	if s.Ozone {
		name += "_ozone"
	}
	return name
}

// IncludesBuild reports whether binaries of a build type are distributed
func (s Selection) IncludesBuild(b BuildType) bool {
	if b == Release {
		return true
	}
	if s.Platform == Linux {
		return s.Mode == ModeStandard
	}
	return s.Mode == ModeStandard || s.Mode == ModeSandbox || s.Mode.SymbolsOnly()
}

// WantsSymbols reports whether a symbol directory is produced for a build type
func (s Selection) WantsSymbols(b BuildType, noSymbols bool) bool {
	if noSymbols || s.Platform == Linux {
		return false
	}
	if b == Debug && s.Mode == ModeReleaseSymbols {
		return false
	}
	if b == Release && s.Mode == ModeDebugSymbols {
		return false
	}
	return true
}

// ResourcesDir is where resource files go inside the main output directory
func (s Selection) ResourcesDir() string {
	if s.Mode == ModeClient {
		return "Release"
	}
	return "Resources"
}

// 🌍 Env exposes the selection to manifest expressions
func (s Selection) Env() *manifest.Env {
	return manifest.NewEnv().
		Set("platform", string(s.Platform)).
		Set("mode", string(s.Mode)).
		Set("arch", string(s.Arch)).
		SetBool("ozone", s.Ozone).
		Set("exe_suffix", s.Platform.ExeSuffix()).
		Set("script_suffix", s.Platform.ScriptSuffix())
}
