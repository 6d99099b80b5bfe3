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

	"github.com/walteh/makedistrib/pkg/layout"
	"github.com/walteh/makedistrib/pkg/text"
)

func TestBazelFile(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		wantDirs   []string
		wantTarget string
		appliesTo  []layout.Platform
	}{
		{
			name:       "top_level",
			file:       "BUILD.bazel.in",
			wantDirs:   []string{},
			wantTarget: "BUILD.bazel.in",
			appliesTo:  []layout.Platform{layout.Linux, layout.Mac, layout.Windows},
		},
		{
			name:       "nested",
			file:       "tests-cefsimple-BUILD.bazel.in",
			wantDirs:   []string{"tests", "cefsimple"},
			wantTarget: "tests/cefsimple/BUILD.bazel.in",
			appliesTo:  []layout.Platform{layout.Linux, layout.Mac, layout.Windows},
		},
		{
			name:       "windows_only",
			file:       "win-defs.bzl",
			wantDirs:   []string{"win"},
			wantTarget: "win/defs.bzl",
			appliesTo:  []layout.Platform{layout.Windows},
		},
		{
			name:       "mac_sample",
			file:       "tests-cefclient-mac-BUILD.bazel",
			wantDirs:   []string{"tests", "cefclient", "mac"},
			wantTarget: "tests/cefclient/mac/BUILD.bazel",
			appliesTo:  []layout.Platform{layout.Mac},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := BazelFile{Name: tt.file}
			assert.Equal(t, tt.wantDirs, f.Dirs())
			assert.Equal(t, tt.wantTarget, f.Target())
			for _, p := range []layout.Platform{layout.Linux, layout.Mac, layout.Windows} {
				assert.Equal(t, contains(tt.appliesTo, p), f.AppliesTo(p), "platform %s", p)
			}
		})
	}
}

func contains(list []layout.Platform, p layout.Platform) bool {
	for _, item := range list {
		if item == p {
			return true
		}
	}
	return false
}

func TestSubstituteBazel(t *testing.T) {
	vars := text.Merge(
		text.Strings(map[string]string{"version_long": "130.0.1+gabc+chromium-130.0.6723.44"}),
		text.Context{"cefclient_sources_linux": text.List("tests/cefclient/cefclient_gtk.cc", "tests/shared/main.cc")},
	)

	t.Run("relative_lists", func(t *testing.T) {
		out, err := SubstituteBazel("v = \"${version_long}\"\nsrcs = [${cefclient_sources_linux}]\n", vars, "tests/cefclient")
		require.NoError(t, err)
		assert.Equal(t, "v = \"130.0.1+gabc+chromium-130.0.6723.44\"\nsrcs = [\"cefclient_gtk.cc\", \"tests/shared/main.cc\"]\n", out)
	})

	t.Run("unknown_variable", func(t *testing.T) {
		_, err := SubstituteBazel("srcs = [${missing_sources}]", vars, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing_sources")
	})
}
