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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/layout"
)

func TestOptionsValidate(t *testing.T) {
	base := Options{OutputDir: "out", Platform: layout.Linux, NinjaBuild: true}

	tests := []struct {
		name    string
		modify  func(o *Options)
		wantErr string
	}{
		{name: "valid", modify: func(o *Options) {}},
		{name: "missing_output_dir", modify: func(o *Options) { o.OutputDir = "" }, wantErr: "--output-dir is required"},
		{name: "unknown_platform", modify: func(o *Options) { o.Platform = "" }, wantErr: "unsupported host platform"},
		{name: "minimal_and_client", modify: func(o *Options) { o.Minimal, o.Client = true, true }, wantErr: "cannot specify both --minimal and --client"},
		{name: "two_arch_flags", modify: func(o *Options) { o.X64Build, o.Arm64Build = true, true }, wantErr: "invalid combination of build options"},
		{name: "arm_on_windows", modify: func(o *Options) { o.Platform, o.ArmBuild = layout.Windows, true }, wantErr: "--arm-build is only supported on Linux"},
		{name: "arm_on_linux", modify: func(o *Options) { o.ArmBuild = true }},
		{name: "sandbox_on_linux", modify: func(o *Options) { o.Sandbox = true }, wantErr: "--sandbox is only supported"},
		{name: "sandbox_on_mac", modify: func(o *Options) { o.Platform, o.Sandbox = layout.Mac, true }},
		{name: "sandbox_and_no_sandbox", modify: func(o *Options) { o.Platform, o.Sandbox, o.NoSandbox = layout.Windows, true, true }, wantErr: "cannot specify both --sandbox and --no-sandbox"},
		{name: "no_ninja_build", modify: func(o *Options) { o.NinjaBuild = false }, wantErr: "--ninja-build is required"},
		{name: "ozone_on_mac", modify: func(o *Options) { o.Platform, o.Ozone = layout.Mac, true }, wantErr: "--ozone is only supported on Linux"},
		{name: "no_symbols_and_symbols_only", modify: func(o *Options) { o.NoSymbols, o.SymbolsOnly = true, true }, wantErr: "invalid combination of build options"},
		{name: "two_symbols_flags", modify: func(o *Options) { o.DebugSymbolsOnly, o.ReleaseSymbolsOnly = true, true }, wantErr: "invalid combination of build options"},
		{name: "first_rule_reported", modify: func(o *Options) { o.Minimal, o.Client, o.NinjaBuild = true, true, false }, wantErr: "--minimal and --client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.modify(&opts)

			err := opts.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected a ConfigError, got %T", err)
			assert.Contains(t, cfgErr.Msg, tt.wantErr)
		})
	}
}

func TestOptionsMode(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want layout.Mode
	}{
		{name: "default", opts: Options{}, want: layout.ModeStandard},
		{name: "minimal", opts: Options{Minimal: true}, want: layout.ModeMinimal},
		{name: "minimal_wins", opts: Options{Minimal: true, Tools: true, SymbolsOnly: true}, want: layout.ModeMinimal},
		{name: "client_over_sandbox", opts: Options{Client: true, Sandbox: true}, want: layout.ModeClient},
		{name: "sandbox_over_tools", opts: Options{Sandbox: true, Tools: true}, want: layout.ModeSandbox},
		{name: "tools_over_symbols", opts: Options{Tools: true, DebugSymbolsOnly: true}, want: layout.ModeTools},
		{name: "debug_symbols", opts: Options{DebugSymbolsOnly: true}, want: layout.ModeDebugSymbols},
		{name: "release_symbols", opts: Options{ReleaseSymbolsOnly: true}, want: layout.ModeReleaseSymbols},
		{name: "symbols", opts: Options{SymbolsOnly: true}, want: layout.ModeSymbols},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Mode())
		})
	}
}

func TestOptionsSelection(t *testing.T) {
	assert.Equal(t, layout.ArchX86, Options{}.Arch())
	assert.Equal(t, layout.ArchARM, Options{ArmBuild: true}.Arch())
	assert.Equal(t, layout.ArchARM64, Options{Arm64Build: true}.Arch())

	sel := Options{
		Platform:            layout.Mac,
		X64Build:            true,
		Client:              true,
		DistribSubdirSuffix: "beta",
	}.Selection()
	assert.Equal(t, layout.Selection{
		Platform:     layout.Mac,
		Mode:         layout.ModeClient,
		Arch:         layout.ArchX64,
		SubdirSuffix: "beta",
	}, sel)
	assert.Equal(t, "cef_binary_1.0_macosx64_beta_client", sel.OutputDirName("1.0"))
}
