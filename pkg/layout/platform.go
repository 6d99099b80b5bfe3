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
	"runtime"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🖥️ Platform is a distribution target operating system
type Platform string

const (
	Windows Platform = "windows"
	Mac     Platform = "mac"
	Linux   Platform = "linux"
)

// HostPlatform returns the platform of the running binary, or "" when unsupported
func HostPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return Mac
	case "linux":
		return Linux
	default:
		return ""
	}
}

// ParsePlatform accepts windows, mac and linux (plus the aliases win, darwin, macos)
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows", "win":
		return Windows, nil
	case "mac", "macos", "darwin":
		return Mac, nil
	case "linux":
		return Linux, nil
	default:
		return "", errors.Errorf("unsupported platform %q", s)
	}
}

// DisplayName is the name used in README text
func (p Platform) DisplayName() string {
	switch p {
	case Windows:
		return "Windows"
	case Mac:
		return "MacOS"
	case Linux:
		return "Linux"
	default:
		return string(p)
	}
}

// DistribDir is the per-platform subdirectory of tools/distrib
func (p Platform) DistribDir() string {
	if p == Windows {
		return "win"
	}
	return string(p)
}

// ExeName appends the executable suffix of the platform
func (p Platform) ExeName(name string) string {
	return name + p.ExeSuffix()
}

func (p Platform) ExeSuffix() string {
	if p == Windows {
		return ".exe"
	}
	return ""
}

// ScriptName appends the shell script suffix of the platform
func (p Platform) ScriptName(name string) string {
	return name + p.ScriptSuffix()
}

func (p Platform) ScriptSuffix() string {
	if p == Windows {
		return ".bat"
	}
	return ".sh"
}

// MarkerBinary is the build output whose presence means a build directory is usable
func (p Platform) MarkerBinary() string {
	switch p {
	case Windows:
		return "libcef.dll"
	case Mac:
		return "cefclient.app"
	default:
		return "libcef.so"
	}
}

// 🧩 Mode selects what goes into the distribution
type Mode string

const (
	ModeStandard       Mode = "standard"
	ModeMinimal        Mode = "minimal"
	ModeClient         Mode = "client"
	ModeSandbox        Mode = "sandbox"
	ModeTools          Mode = "tools"
	ModeSymbols        Mode = "symbols"
	ModeDebugSymbols   Mode = "debug-symbols"
	ModeReleaseSymbols Mode = "release-symbols"
)

// SymbolsOnly reports whether the mode produces only symbol directories
func (m Mode) SymbolsOnly() bool {
	return strings.HasSuffix(string(m), "symbols")
}

// HasSources reports whether headers, wrapper sources and build files are included
func (m Mode) HasSources() bool {
	return m == ModeStandard || m == ModeMinimal
}

// DirSuffix is appended to the output directory name
func (m Mode) DirSuffix() string {
	switch m {
	case ModeMinimal, ModeClient, ModeSandbox, ModeTools:
		return "_" + string(m)
	default:
		return ""
	}
}

// 🏗️ Arch is the target CPU architecture
type Arch string

const (
	ArchX86   Arch = "x86"
	ArchX64   Arch = "x64"
	ArchARM   Arch = "arm"
	ArchARM64 Arch = "arm64"
)

// PlatformArch is the architecture part of the output directory name
func (a Arch) PlatformArch() string {
	switch a {
	case ArchX64:
		return "64"
	case ArchARM:
		return "arm"
	case ArchARM64:
		return "arm64"
	default:
		return "32"
	}
}

// BuildDirSuffix is the suffix of the GN output directories
func (a Arch) BuildDirSuffix() string {
	if a == "" {
		return "_GN_" + string(ArchX86)
	}
	return "_GN_" + string(a)
}

// 🔨 BuildType is a build configuration
type BuildType int

const (
	Debug BuildType = iota
	Release
)

func (b BuildType) String() string {
	if b == Debug {
		return "Debug"
	}
	return "Release"
}

// SymbolsSuffix is appended to the output directory name for symbol directories
func (b BuildType) SymbolsSuffix() string {
	if b == Debug {
		return "_debug_symbols"
	}
	return "_release_symbols"
}
