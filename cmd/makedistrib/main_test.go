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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/distrib"
)

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        func(out string) []string
		wantConfig  bool
		errContains string
	}{
		{
			name:        "missing_output_dir",
			args:        func(string) []string { return []string{"--ninja-build", "--platform", "linux"} },
			wantConfig:  true,
			errContains: "--output-dir is required",
		},
		{
			name: "minimal_and_client",
			args: func(out string) []string {
				return []string{"--output-dir", out, "--ninja-build", "--platform", "linux", "--minimal", "--client"}
			},
			wantConfig:  true,
			errContains: "cannot specify both --minimal and --client",
		},
		{
			name: "sandbox_on_linux",
			args: func(out string) []string {
				return []string{"--output-dir", out, "--ninja-build", "--platform", "linux", "--sandbox"}
			},
			wantConfig:  true,
			errContains: "--sandbox is only supported on macOS and Windows",
		},
		{
			name: "ninja_build_required",
			args: func(out string) []string {
				return []string{"--output-dir", out, "--platform", "windows", "--x64-build"}
			},
			wantConfig:  true,
			errContains: "--ninja-build is required",
		},
		{
			name: "unknown_platform",
			args: func(out string) []string {
				return []string{"--output-dir", out, "--ninja-build", "--platform", "beos"}
			},
			errContains: "unsupported platform",
		},
		{
			name: "missing_env_file",
			args: func(out string) []string {
				return []string{"--output-dir", out, "--ninja-build", "--platform", "linux", "--env-file", filepath.Join(out, "missing.env")}
			},
			errContains: "reading env file",
		},
		{
			name:        "unknown_flag",
			args:        func(string) []string { return []string{"--make-it-fast"} },
			errContains: "unknown flag",
		},
		{
			name:        "positional_args",
			args:        func(string) []string { return []string{"extra"} },
			errContains: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "dist")
			var stdout, stderr bytes.Buffer

			cmd := newRootCmd(&stdout, &stderr)
			cmd.SetArgs(tt.args(out))
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)

			err := cmd.ExecuteContext(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)

			var cfgErr *distrib.ConfigError
			assert.Equal(t, tt.wantConfig, errors.As(err, &cfgErr))

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
		})
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})

	for _, name := range []string{
		"output-dir", "cef-dir", "distrib-subdir", "distrib-subdir-suffix", "allow-partial",
		"no-symbols", "symbols-only", "debug-symbols-only", "release-symbols-only",
		"no-docs", "no-archive", "no-sandbox", "no-format", "ninja-build",
		"x64-build", "arm-build", "arm64-build", "minimal", "client", "sandbox", "tools",
		"ozone", "quiet", "debug", "platform", "env-file",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "q", cmd.Flags().Lookup("quiet").Shorthand)
}
