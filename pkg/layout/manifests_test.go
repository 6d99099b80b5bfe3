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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/makedistrib/pkg/manifest"
)

func targets(t *testing.T, set *manifest.Set, group string) []string {
	t.Helper()
	entries, ok := set.Entries(group)
	require.True(t, ok, "group %s", group)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Target())
	}
	return out
}

func TestEmbeddedManifestsLoadForEverySelection(t *testing.T) {
	ctx := testContext(t)
	modes := []Mode{ModeStandard, ModeMinimal, ModeClient, ModeSandbox, ModeTools, ModeSymbols, ModeDebugSymbols, ModeReleaseSymbols}
	for _, p := range []Platform{Windows, Mac, Linux} {
		for _, m := range modes {
			sel := Selection{Platform: p, Mode: m, Arch: ArchX64}
			set, err := LoadPlatformManifests(ctx, sel)
			require.NoError(t, err, "%s/%s", p, m)
			for _, g := range []string{GroupBinaries, GroupSymbols, GroupResources, GroupTestExtras} {
				_, ok := set.Entries(g)
				assert.True(t, ok, "%s/%s missing %s", p, m, g)
			}

			common, err := LoadCommonManifests(ctx, sel)
			require.NoError(t, err, "%s/%s", p, m)
			assert.Len(t, common.Names(), 7)
		}
	}
}

func TestWindowsBinaries(t *testing.T) {
	ctx := testContext(t)

	t.Run("standard", func(t *testing.T) {
		set, err := LoadPlatformManifests(ctx, Selection{Platform: Windows, Mode: ModeStandard, Arch: ArchX64})
		require.NoError(t, err)
		got := targets(t, set, GroupBinaries)
		assert.Contains(t, got, "libcef.dll")
		assert.Contains(t, got, "libcef.lib")
		assert.Contains(t, got, "bootstrap.exe")
		assert.NotContains(t, got, "cefclient.exe")
	})

	t.Run("sandbox", func(t *testing.T) {
		set, err := LoadPlatformManifests(ctx, Selection{Platform: Windows, Mode: ModeSandbox, Arch: ArchX64})
		require.NoError(t, err)
		assert.Equal(t, []string{"bootstrap.exe", "bootstrapc.exe"}, targets(t, set, GroupBinaries))
		assert.Equal(t, []string{"bootstrap.exe.pdb", "bootstrapc.exe.pdb"}, targets(t, set, GroupSymbols))
	})

	t.Run("client_arm64_ships_cefsimple", func(t *testing.T) {
		set, err := LoadPlatformManifests(ctx, Selection{Platform: Windows, Mode: ModeClient, Arch: ArchARM64})
		require.NoError(t, err)
		got := targets(t, set, GroupBinaries)
		assert.Contains(t, got, "cefsimple.exe")
		assert.NotContains(t, got, "cefclient.exe")
		assert.NotContains(t, got, "bootstrap.exe")
		assert.NotContains(t, got, "libcef.lib")
	})

	t.Run("optional_dlls_are_conditional", func(t *testing.T) {
		set, err := LoadPlatformManifests(ctx, Selection{Platform: Windows, Mode: ModeMinimal, Arch: ArchX64})
		require.NoError(t, err)
		entries, _ := set.Entries(GroupBinaries)
		for _, e := range entries {
			switch e.Path {
			case "dxcompiler.dll", "dxil.dll":
				assert.True(t, e.Conditional, e.Path)
			case "libcef.dll":
				assert.False(t, e.Conditional, e.Path)
			}
		}
	})
}

func TestLinuxBinaries(t *testing.T) {
	ctx := testContext(t)

	set, err := LoadPlatformManifests(ctx, Selection{Platform: Linux, Mode: ModeMinimal, Arch: ArchX64})
	require.NoError(t, err)
	got := targets(t, set, GroupBinaries)
	assert.Contains(t, got, "chrome-sandbox")
	assert.NotContains(t, got, "libminigbm.so")
	assert.NotContains(t, got, "cefsimple")

	set, err = LoadPlatformManifests(ctx, Selection{Platform: Linux, Mode: ModeClient, Arch: ArchX64, Ozone: true})
	require.NoError(t, err)
	got = targets(t, set, GroupBinaries)
	assert.Contains(t, got, "libminigbm.so")
	assert.Contains(t, got, "cefsimple")

	entries, _ := set.Entries(GroupResources)
	var locales bool
	for _, e := range entries {
		if e.Path == "locales" {
			locales = true
			assert.Equal(t, "*.info", e.Delete)
		}
	}
	assert.True(t, locales)
}

func TestMacBinaries(t *testing.T) {
	ctx := testContext(t)

	set, err := LoadPlatformManifests(ctx, Selection{Platform: Mac, Mode: ModeClient, Arch: ArchARM64})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"cefclient.app",
		"cefclient.app/Contents/Frameworks/Chromium Embedded Framework.framework",
	}, targets(t, set, GroupBinaries))

	set, err = LoadPlatformManifests(ctx, Selection{Platform: Mac, Mode: ModeSandbox, Arch: ArchARM64})
	require.NoError(t, err)
	assert.Equal(t, []string{"libcef_sandbox.dylib"}, targets(t, set, GroupBinaries))
	assert.Equal(t, []string{"libcef_sandbox.dylib.dSYM"}, targets(t, set, GroupSymbols))

	set, err = LoadPlatformManifests(ctx, Selection{Platform: Mac, Mode: ModeStandard, Arch: ArchARM64})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chromium Embedded Framework.framework"}, targets(t, set, GroupBinaries))
	assert.Len(t, targets(t, set, GroupTestExtras), 3)
}

func TestCommonManifestSuffixes(t *testing.T) {
	ctx := testContext(t)

	set, err := LoadCommonManifests(ctx, Selection{Platform: Windows, Mode: ModeTools, Arch: ArchX64})
	require.NoError(t, err)
	assert.Equal(t, []string{"mksnapshot.exe", "v8_context_snapshot_generator.exe"}, targets(t, set, GroupTools))
	assert.Equal(t, []string{"run_mksnapshot.bat"}, targets(t, set, GroupToolsScripts))
	assert.Empty(t, targets(t, set, GroupStandard))
	assert.Empty(t, targets(t, set, GroupBazel))

	set, err = LoadCommonManifests(ctx, Selection{Platform: Linux, Mode: ModeStandard, Arch: ArchX64})
	require.NoError(t, err)
	assert.Equal(t, []string{"mksnapshot", "v8_context_snapshot_generator"}, targets(t, set, GroupTools))
	assert.Equal(t, []string{"run_mksnapshot.sh"}, targets(t, set, GroupToolsScripts))
	assert.Equal(t, []string{"cef_paths.gypi", "cef_paths2.gypi", "README.md"}, targets(t, set, GroupStandard))
	assert.Equal(t, []string{"bazel"}, targets(t, set, GroupBazel))
}

func TestSourceGroups(t *testing.T) {
	std := Selection{Platform: Linux, Mode: ModeStandard, Arch: ArchX64}
	assert.NotEmpty(t, std.CommonSourceGroups())
	assert.Len(t, std.CommonTestGroups(), 4)
	assert.Len(t, std.CMakeTemplates(), 9)

	ozone := std
	ozone.Ozone = true
	assert.Len(t, ozone.CommonTestGroups(), 3)
	assert.Len(t, ozone.CMakeTemplates(), 8)
	for _, g := range ozone.PlatformSourceGroups() {
		assert.NotEqual(t, "tests/cefclient", g.Dest)
	}

	minimal := Selection{Platform: Windows, Mode: ModeMinimal, Arch: ArchX64}
	assert.Empty(t, minimal.CommonTestGroups())
	assert.Len(t, minimal.CMakeTemplates(), 5)
	assert.Len(t, minimal.PlatformSourceGroups(), 4)

	client := Selection{Platform: Mac, Mode: ModeClient}
	assert.Empty(t, client.CommonSourceGroups())
	assert.Empty(t, client.PlatformSourceGroups())

	groups := std.CommonSourceGroups()
	assert.Equal(t, "includes_common", groups[0].Name())
	assert.Equal(t, "include", groups[0].Dest)
	assert.True(t, groups[4].Generated)
}
