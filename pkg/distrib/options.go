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
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/command"
	"github.com/walteh/makedistrib/pkg/layout"
)

// ❌ ConfigError is an invalid combination of options. It is returned before
// anything touches the filesystem.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

func configErrorf(msg string) error {
	return errors.WithStack(&ConfigError{Msg: msg})
}

// ⚙️ Options are the settings of one run, usually filled from command line flags
type Options struct {
	OutputDir string
	// CefDir is the project checkout. The chromium sources are its parent.
	CefDir   string
	Platform layout.Platform

	DistribSubdir       string
	DistribSubdirSuffix string

	AllowPartial       bool
	NoSymbols          bool
	SymbolsOnly        bool
	DebugSymbolsOnly   bool
	ReleaseSymbolsOnly bool
	NoDocs             bool
	NoArchive          bool
	NoSandbox          bool
	NoFormat           bool
	NinjaBuild         bool

	X64Build   bool
	ArmBuild   bool
	Arm64Build bool

	Minimal bool
	Client  bool
	Sandbox bool
	Tools   bool
	Ozone   bool

	// Getenv looks up CEF_* settings. Defaults to os.Getenv.
	Getenv func(string) string
	// Runner executes the docs generator, clang-format and 7-zip. Defaults to command.ExecRunner.
	Runner command.Runner
	// Now stamps the README. Defaults to time.Now.
	Now func() time.Time
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// ✅ Validate checks the flag rules, in the order they are reported
func (o Options) Validate() error {
	if o.OutputDir == "" {
		return configErrorf("--output-dir is required")
	}
	if o.Platform == "" {
		return configErrorf("unsupported host platform, use --platform")
	}
	if o.Minimal && o.Client {
		return configErrorf("cannot specify both --minimal and --client")
	}
	if count(o.X64Build, o.ArmBuild, o.Arm64Build) > 1 {
		return configErrorf("invalid combination of build options")
	}
	if o.ArmBuild && o.Platform != layout.Linux {
		return configErrorf("--arm-build is only supported on Linux")
	}
	if o.Sandbox && o.Platform != layout.Mac && o.Platform != layout.Windows {
		return configErrorf("--sandbox is only supported on macOS and Windows")
	}
	if o.Sandbox && o.NoSandbox {
		return configErrorf("cannot specify both --sandbox and --no-sandbox")
	}
	if !o.NinjaBuild {
		return configErrorf("--ninja-build is required")
	}
	if o.Ozone && o.Platform != layout.Linux {
		return configErrorf("--ozone is only supported on Linux")
	}
	symbolsOnly := count(o.SymbolsOnly, o.DebugSymbolsOnly, o.ReleaseSymbolsOnly)
	if (o.NoSymbols && symbolsOnly > 0) || symbolsOnly > 1 {
		return configErrorf("invalid combination of build options")
	}
	return nil
}

// Mode picks the distribution mode. The first of minimal, client, sandbox,
// tools and the symbols flags wins.
func (o Options) Mode() layout.Mode {
	switch {
	case o.Minimal:
		return layout.ModeMinimal
	case o.Client:
		return layout.ModeClient
	case o.Sandbox:
		return layout.ModeSandbox
	case o.Tools:
		return layout.ModeTools
	case o.DebugSymbolsOnly:
		return layout.ModeDebugSymbols
	case o.ReleaseSymbolsOnly:
		return layout.ModeReleaseSymbols
	case o.SymbolsOnly:
		return layout.ModeSymbols
	default:
		return layout.ModeStandard
	}
}

// Arch picks the target architecture, x86 unless a build flag says otherwise
func (o Options) Arch() layout.Arch {
	switch {
	case o.X64Build:
		return layout.ArchX64
	case o.ArmBuild:
		return layout.ArchARM
	case o.Arm64Build:
		return layout.ArchARM64
	default:
		return layout.ArchX86
	}
}

// 🎯 Selection converts the options into a layout selection
func (o Options) Selection() layout.Selection {
	return layout.Selection{
		Platform:     o.Platform,
		Mode:         o.Mode(),
		Arch:         o.Arch(),
		Ozone:        o.Ozone,
		Subdir:       o.DistribSubdir,
		SubdirSuffix: o.DistribSubdirSuffix,
	}
}
