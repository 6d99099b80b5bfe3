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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "distrib.env")
	require.NoError(t, os.WriteFile(file, []byte("CEF_ARCHIVE_FORMAT=tar.bz2\nCEF_COMMAND_CLANG_FORMAT=\"clang-format --style=file\"\n"), 0o644))

	t.Setenv("CEF_ARCHIVE_FORMAT", "zip")

	getenv, err := LoadEnv(file)
	require.NoError(t, err)

	assert.Equal(t, "zip", getenv("CEF_ARCHIVE_FORMAT"), "the process environment wins")
	assert.Equal(t, "clang-format --style=file", getenv(EnvClangFormat))
	assert.Empty(t, getenv("CEF_COMMAND_7ZIP_UNSET_FOR_TEST"))
}

func TestLoadEnvWithoutFile(t *testing.T) {
	t.Setenv("CEF_COMMAND_7ZIP", "7z")

	getenv, err := LoadEnv("")
	require.NoError(t, err)
	assert.Equal(t, "7z", getenv("CEF_COMMAND_7ZIP"))

	_, err = LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading env file")
}
