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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/walteh/makedistrib/pkg/layout"
	"github.com/walteh/makedistrib/pkg/log"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	ctx := zlog.WithContext(context.Background())
	return log.NewContext(ctx, log.New(zerolog.NewTestWriter(t), zlog))
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

type call struct {
	Dir  string
	Name string
	Args []string
}

type recordingRunner struct {
	calls []call
	onRun func(dir, name string) error
}

func (r *recordingRunner) Run(_ context.Context, dir string, name string, args ...string) error {
	r.calls = append(r.calls, call{Dir: dir, Name: name, Args: args})
	if r.onRun != nil {
		return r.onRun(dir, name)
	}
	return nil
}

var fixedNow = func() time.Time { return time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC) }

// fixture is a chromium source tree with a project checkout at src/cef and
// x64 debug and release builds
type fixture struct {
	src  string
	cef  string
	out  string
	hash string
}

const cefPaths = `# generated
{
  'variables': {
    'autogen_cpp_includes': [
      'include/cef_app.h',
    ],
    'autogen_capi_includes': [
      'include/capi/cef_app_capi.h',
    ],
    'autogen_client_side': [
      'libcef_dll/ctocpp/app_ctocpp.cc',
    ],
  },
}
`

const cefPaths2 = `{
  'variables': {
    'includes_common': [
      'include/cef_base.h',
      'include/cef_version_info.h',
    ],
    'includes_common_capi': [
      'include/capi/cef_base_capi.h',
    ],
    'includes_capi': [],
    'includes_wrapper': [
      'include/wrapper/cef_helpers.h',
    ],
    'includes_linux': [
      'include/internal/cef_linux.h',
    ],
    'includes_linux_capi': [],
    'includes_win': [],
    'includes_win_capi': [],
    'includes_wrapper_win': [],
    'libcef_dll_wrapper_sources_base': [
      'libcef_dll/base/cef_lock.cc',
    ],
    'libcef_dll_wrapper_sources_common': [
      'libcef_dll/wrapper/cef_closure_task.cc',
    ],
    'libcef_dll_wrapper_sources_win': [],
    'shared_sources_browser': [
      'tests/shared/browser/main_message_loop.cc',
    ],
    'shared_sources_common': [],
    'shared_sources_renderer': [],
    'shared_sources_resources': [],
    'shared_sources_linux': [],
    'cefclient_sources_browser': [
      'tests/cefclient/browser/root_window.cc',
    ],
    'cefclient_sources_common': [],
    'cefclient_sources_renderer': [],
    'cefclient_sources_resources': [],
    'cefclient_sources_linux': [
      'tests/cefclient/cefclient_gtk.cc',
    ],
    'cefsimple_sources_common': [
      'tests/cefsimple/simple_app.cc',
    ],
    'cefsimple_sources_linux': [],
    'ceftests_sources_common': [
      'tests/ceftests/run_all_unittests.cc',
    ],
    'ceftests_sources_linux': [],
  },
}
`

var buildFiles = []string{
	// linux
	"chrome_sandbox", "libcef.so", "libEGL.so", "libGLESv2.so", "libvk_swiftshader.so",
	"libvulkan.so.1", "v8_context_snapshot.bin", "vk_swiftshader_icd.json", "cefsimple",
	// windows
	"chrome_elf.dll", "d3dcompiler_47.dll", "libcef.dll", "libEGL.dll", "libGLESv2.dll",
	"vk_swiftshader.dll", "vulkan-1.dll", "bootstrap.exe", "bootstrapc.exe", "libcef.dll.lib",
	"chrome_elf.dll.pdb", "libcef.dll.pdb", "libEGL.dll.pdb", "libGLESv2.dll.pdb",
	"vk_swiftshader.dll.pdb", "vulkan-1.dll.pdb", "bootstrap.exe.pdb", "bootstrapc.exe.pdb",
	// resources
	"chrome_100_percent.pak", "chrome_200_percent.pak", "resources.pak", "icudtl.dat",
	"locales/en-US.pak", "locales/en-US.pak.info",
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	f := &fixture{
		src: filepath.Join(root, "src"),
		cef: filepath.Join(root, "src", "cef"),
		out: filepath.Join(root, "out"),
	}

	writeFiles(t, f.src, map[string]string{
		"chrome/VERSION":        "MAJOR=130\nMINOR=0\nBUILD=6723\nPATCH=44\n",
		"build/util/LASTCHANGE": "LASTCHANGE=0123456789abcdef-refs/branch-heads/6723@{#44}\n",
	})

	writeFiles(t, f.cef, map[string]string{
		"LICENSE.txt":     "license",
		"README.md":       "# cef",
		"Doxyfile":        "PROJECT_NUMBER = $(PROJECT_NUMBER)\n",
		"cef_paths.gypi":  cefPaths,
		"cef_paths2.gypi": cefPaths2,

		"include/cef_app.h":                         "#include \"include/cef_base.h\"\n",
		"include/capi/cef_app_capi.h":               "#include \"include/capi/cef_base_capi.h\"\n#include \"base/internal/cef_atomic.h\"\n",
		"include/cef_base.h":                        "base",
		"include/cef_version_info.h":                "version info",
		"include/capi/cef_base_capi.h":              "base capi",
		"include/wrapper/cef_helpers.h":             "helpers",
		"include/internal/cef_linux.h":              "linux",
		"libcef_dll/ctocpp/app_ctocpp.cc":           "ctocpp",
		"libcef_dll/base/cef_lock.cc":               "lock",
		"libcef_dll/wrapper/cef_closure_task.cc":    "closure",
		"tests/shared/browser/main_message_loop.cc": "loop",
		"tests/cefclient/browser/root_window.cc":    "root window",
		"tests/cefclient/cefclient_gtk.cc":          "gtk",
		"tests/cefsimple/simple_app.cc":             "simple",
		"tests/ceftests/run_all_unittests.cc":       "unittests",
		"tests/gtest/teamcity/teamcity_gtest.cc":    "teamcity",

		"CMakeLists.txt.in":                 "project(cef)\nset(CEF_COMMON\n  {{includes_common}}\n)\n",
		"cmake/cef_macros.cmake.in":         "macros",
		"cmake/cef_variables.cmake.in":      "variables",
		"cmake/FindCEF.cmake.in":            "find",
		"libcef_dll/CMakeLists.txt.in":      "set(WRAPPER {{libcef_dll_wrapper_sources_base}})\n",
		"tests/cefclient/CMakeLists.txt.in": "cefclient",
		"tests/cefsimple/CMakeLists.txt.in": "cefsimple",
		"tests/gtest/CMakeLists.txt.in":     "gtest",
		"tests/ceftests/CMakeLists.txt.in":  "ceftests",

		"bazel/BUILD": "exports_files([])\n",

		"tools/distrib/README.header.txt":     "CEF $CEF_VER$ from $CEF_URL$ at $CEF_REV$\nChromium $CHROMIUM_VER$ from $CHROMIUM_URL$ at $CHROMIUM_REV$\n$DATE$ $PLATFORM$",
		"tools/distrib/README.standard.txt":   "$DISTRIB_TYPE$\n$DISTRIB_DESC$",
		"tools/distrib/README.minimal.txt":    "$DISTRIB_TYPE$\n$DISTRIB_DESC$",
		"tools/distrib/README.client.txt":     "$DISTRIB_TYPE$\n$DISTRIB_DESC$",
		"tools/distrib/README.sandbox.txt":    "$DISTRIB_TYPE$\n$DISTRIB_DESC$",
		"tools/distrib/README.tools.txt":      "$DISTRIB_TYPE$\n$DISTRIB_DESC$",
		"tools/distrib/README.redistrib.txt":  "REDISTRIB",
		"tools/distrib/README.footer.txt":     "FOOTER",
		"tools/distrib/win/README.footer.txt": "WINDOWS FOOTER",
		"tools/distrib/README-TRANSFER.txt":   "Files copied from the source tree:\n",

		"tools/distrib/extra/notes.txt":      "notes",
		"tools/distrib/transfer_minimal.cfg": `[
  {
    'source' : 'tools/distrib/extra/notes.txt',
    'target' : 'extra/notes.txt',
  },
  {
    'source' : None,
    'target' : 'include/capi/cef_app_capi.h',
    'post-process' : 'normalize_headers',
  },
]
`,
		"tools/distrib/gtest/gtest.h":      "gtest header",
		"tools/distrib/gtest/gtest-all.cc": "gtest all",
		"tools/distrib/gtest/LICENSE":      "gtest license",
		"tools/distrib/gtest/README.cef":   "gtest readme",

		"tools/distrib/bazel/BUILD.bazel.in":                 "version = \"${version_long}\"\nhdrs = [${includes_common}]\n",
		"tools/distrib/bazel/linux-defs.bzl":                 "linux defs",
		"tools/distrib/bazel/win-defs.bzl":                   "windows defs",
		"tools/distrib/bazel/tests-cefsimple-BUILD.bazel.in": "srcs = [${cefsimple_sources_common}]\n",
		"tools/distrib/tools/run_mksnapshot.sh":              "#!/bin/sh\n",
	})

	for _, b := range []layout.BuildType{layout.Debug, layout.Release} {
		dir := filepath.Join(f.src, "out", b.String()+"_GN_x64")
		files := map[string]string{}
		for _, name := range buildFiles {
			files[name] = b.String() + " " + name
		}
		writeFiles(t, dir, files)
	}
	release := filepath.Join(f.src, "out", "Release_GN_x64")
	generated := map[string]string{layout.CreditsFile: "<html>credits</html>"}
	for _, name := range layout.GeneratedHeaders {
		generated[layout.GeneratedHeaderPath(name)] = "// " + name
	}
	writeFiles(t, release, generated)

	f.hash = initRepo(t, f.cef, "https://example.com/cef.git")
	return f
}

func initRepo(t *testing.T, dir, origin string) string {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{origin}})
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("LICENSE.txt")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Unix(1700000000, 0)},
	})
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	return head.Hash().String()
}

// options returns linux x64 options for the fixture with docs, archives and formatting off
func (f *fixture) options() Options {
	return Options{
		OutputDir:  f.out,
		CefDir:     f.cef,
		Platform:   layout.Linux,
		NinjaBuild: true,
		X64Build:   true,
		NoDocs:     true,
		NoArchive:  true,
		NoFormat:   true,
		Getenv:     func(string) string { return "" },
		Runner:     &recordingRunner{},
		Now:        fixedNow,
	}
}

func (f *fixture) version() string {
	return "130.0.1+g" + f.hash[:7] + "+chromium-130.0.6723.44"
}
