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

package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func writeNinja(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, NinjaFile), []byte(content), 0o644))
	return dir
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		ninja   string
		want    *Invocation
		wantErr error
	}{
		{
			name:  "default_toolchain",
			ninja: "rule x\n  command = python3 ../../v8/tools/run.py ./mksnapshot --turbo --embedded_src gen/v8/embedded.S\n",
			want:  &Invocation{Command: "--turbo --embedded_src gen/v8/embedded.S"},
		},
		{
			name:  "cross_toolchain",
			ninja: "  command = python3 ../../v8/tools/run.py ./clang_x64_v8_arm64/mksnapshot --abc\n",
			want:  &Invocation{Command: "--abc", RelativeDir: "clang_x64_v8_arm64"},
		},
		{
			name:  "windows_cross_toolchain",
			ninja: "  command = python3 ../../v8/tools/run.py ./win_clang_x64/mksnapshot --abc\n",
			want:  &Invocation{Command: "--abc", RelativeDir: "win_clang_x64"},
		},
		{
			name:    "tool_not_referenced",
			ninja:   "  command = ./other --abc\n",
			wantErr: ErrNotFound,
		},
		{
			name:    "unsafe_command",
			ninja:   "  command = ./mksnapshot --abc; rm -rf /\n",
			wantErr: ErrNotFound,
		},
		{
			name:    "unexpected_directory",
			ninja:   "  command = ./gcc_x64/mksnapshot --abc\n",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(writeNinja(t, tt.ninja), "mksnapshot")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractNoToolchain(t *testing.T) {
	_, err := Extract(t.TempDir(), "mksnapshot")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoToolchain))
}

func TestRewrite(t *testing.T) {
	src := t.TempDir()
	build := filepath.Join(src, "out", "Release_GN_x64")
	profile := filepath.Join(src, "v8", "tools", "x64.profile")
	require.NoError(t, os.MkdirAll(build, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(profile), 0o755))
	require.NoError(t, os.WriteFile(profile, []byte("p"), 0o644))

	t.Run("inputs_are_collected", func(t *testing.T) {
		inv := &Invocation{Command: "--turbo --profile ../../v8/tools/x64.profile --embedded_src gen/v8/embedded.S"}
		args, err := inv.Rewrite(build, src)
		require.NoError(t, err)
		assert.Equal(t, "--turbo --profile x64.profile --embedded_src embedded.S", args.String())
		require.Len(t, args.Inputs, 1)
		assert.Equal(t, "x64.profile", filepath.Base(args.Inputs[0]))
	})

	t.Run("empty_command", func(t *testing.T) {
		args, err := (&Invocation{}).Rewrite(build, src)
		require.NoError(t, err)
		assert.Empty(t, args.String())
	})

	t.Run("input_outside_src", func(t *testing.T) {
		inv := &Invocation{Command: "../../../../etc/passwd"}
		_, err := inv.Rewrite(build, src)
		require.Error(t, err)
	})

	t.Run("missing_input", func(t *testing.T) {
		inv := &Invocation{Command: "../../v8/tools/missing.profile"}
		_, err := inv.Rewrite(build, src)
		require.Error(t, err)
	})

	t.Run("trailing_slash", func(t *testing.T) {
		inv := &Invocation{Command: "gen/v8/"}
		_, err := inv.Rewrite(build, src)
		require.Error(t, err)
	})
}
