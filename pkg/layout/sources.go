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

// 📚 SourceGroup copies the files listed in gypi variables into a directory of the distribution
type SourceGroup struct {
	// Vars are gypi variable names, concatenated in order.
	Vars []string
	// StripPrefix is removed from each listed path.
	StripPrefix string
	// Dest is relative to the main output directory.
	Dest string
	// Generated groups hold autogenerated files that get formatted.
	Generated bool
}

// Name identifies the group in logs and reports
func (g SourceGroup) Name() string {
	if len(g.Vars) == 0 {
		return g.Dest
	}
	return g.Vars[0]
}

func include(vars ...string) SourceGroup {
	return SourceGroup{Vars: vars, StripPrefix: "include/", Dest: "include"}
}

func wrapper(vars ...string) SourceGroup {
	return SourceGroup{Vars: vars, StripPrefix: "libcef_dll/", Dest: "libcef_dll"}
}

func tests(name string, vars ...string) SourceGroup {
	return SourceGroup{Vars: vars, StripPrefix: "tests/" + name + "/", Dest: "tests/" + name}
}

func generated(g SourceGroup) SourceGroup {
	g.Generated = true
	return g
}

// GeneratedHeaders are copied from <build>/gen/cef/include into include/
var GeneratedHeaders = []string{
	"cef_api_versions.h",
	"cef_color_ids.h",
	"cef_command_ids.h",
	"cef_config.h",
	"cef_pack_resources.h",
	"cef_pack_strings.h",
	"cef_version.h",
}

// CreditsFile is the generated license credits page, distributed as CREDITS.html
const CreditsFile = "gen/components/resources/about_credits.html"

// GeneratedHeaderPath is the build-relative path of a generated header
func GeneratedHeaderPath(name string) string {
	return "gen/cef/include/" + name
}

// 📦 CommonSourceGroups are the header and wrapper groups shared by all platforms (standard and minimal)
func (s Selection) CommonSourceGroups() []SourceGroup {
	if !s.Mode.HasSources() {
		return nil
	}
	return []SourceGroup{
		include("includes_common"),
		include("includes_common_capi"),
		include("includes_capi"),
		include("includes_wrapper"),
		generated(include("autogen_cpp_includes")),
		generated(include("autogen_capi_includes")),
		wrapper("libcef_dll_wrapper_sources_base"),
		wrapper("libcef_dll_wrapper_sources_common"),
		generated(wrapper("autogen_client_side")),
	}
}

// 🧪 CommonTestGroups are the sample application sources (standard only)
func (s Selection) CommonTestGroups() []SourceGroup {
	if s.Mode != ModeStandard {
		return nil
	}
	groups := []SourceGroup{
		tests("shared", "shared_sources_browser", "shared_sources_common", "shared_sources_renderer", "shared_sources_resources"),
	}
	if s.IncludesCefclient() {
		groups = append(groups, tests("cefclient", "cefclient_sources_browser", "cefclient_sources_common", "cefclient_sources_renderer", "cefclient_sources_resources"))
	}
	return append(groups,
		tests("cefsimple", "cefsimple_sources_common"),
		tests("ceftests", "ceftests_sources_common"),
	)
}

// 🖥️ PlatformSourceGroups are the platform specific headers, wrapper and test sources
func (s Selection) PlatformSourceGroups() []SourceGroup {
	var groups []SourceGroup
	if s.Mode.HasSources() {
		switch s.Platform {
		case Windows:
			groups = append(groups,
				include("includes_win"),
				include("includes_win_capi"),
				include("includes_wrapper_win"),
				wrapper("libcef_dll_wrapper_sources_win"),
			)
		case Mac:
			groups = append(groups,
				include("includes_mac"),
				include("includes_mac_capi"),
				include("includes_wrapper_mac"),
				wrapper("libcef_dll_wrapper_sources_mac"),
			)
		case Linux:
			groups = append(groups,
				include("includes_linux"),
				include("includes_linux_capi"),
			)
		}
	}

	if s.Mode != ModeStandard {
		return groups
	}

	switch s.Platform {
	case Windows:
		groups = append(groups,
			tests("shared", "shared_sources_win"),
			tests("cefclient", "cefclient_sources_win", "cefclient_sources_resources_win", "cefclient_sources_resources_win_rc"),
			tests("cefsimple", "cefsimple_sources_win", "cefsimple_sources_resources_win", "cefsimple_sources_resources_win_rc"),
			tests("ceftests", "ceftests_sources_win", "ceftests_sources_resources_win", "ceftests_sources_resources_win_rc"),
		)
	case Mac:
		groups = append(groups,
			tests("shared", "shared_sources_mac", "shared_sources_mac_helper"),
			tests("cefclient", "cefclient_sources_mac"),
			tests("cefsimple", "cefsimple_sources_mac", "cefsimple_sources_mac_helper"),
			tests("ceftests", "ceftests_sources_mac", "ceftests_sources_mac_helper"),
		)
	case Linux:
		groups = append(groups, tests("shared", "shared_sources_linux"))
		if s.IncludesCefclient() {
			groups = append(groups, tests("cefclient", "cefclient_sources_linux"))
		}
		groups = append(groups,
			tests("cefsimple", "cefsimple_sources_linux"),
			tests("ceftests", "ceftests_sources_linux"),
		)
	}
	return groups
}

// IncludesCefclient reports whether the cefclient sample is distributed. It does not build with ozone.
func (s Selection) IncludesCefclient() bool {
	return !s.Ozone
}

// 📄 Template maps a CMake template in the project directory to its output path
type Template struct {
	Src string
	Dst string
}

// CMakeTemplates are the build files generated for the selection
func (s Selection) CMakeTemplates() []Template {
	if !s.Mode.HasSources() {
		return nil
	}
	out := []Template{
		{Src: "CMakeLists.txt.in", Dst: "CMakeLists.txt"},
		{Src: "cmake/cef_macros.cmake.in", Dst: "cmake/cef_macros.cmake"},
		{Src: "cmake/cef_variables.cmake.in", Dst: "cmake/cef_variables.cmake"},
		{Src: "cmake/FindCEF.cmake.in", Dst: "cmake/FindCEF.cmake"},
		{Src: "libcef_dll/CMakeLists.txt.in", Dst: "libcef_dll/CMakeLists.txt"},
	}
	if s.Mode != ModeStandard {
		return out
	}
	if s.IncludesCefclient() {
		out = append(out, Template{Src: "tests/cefclient/CMakeLists.txt.in", Dst: "tests/cefclient/CMakeLists.txt"})
	}
	return append(out,
		Template{Src: "tests/cefsimple/CMakeLists.txt.in", Dst: "tests/cefsimple/CMakeLists.txt"},
		Template{Src: "tests/gtest/CMakeLists.txt.in", Dst: "tests/gtest/CMakeLists.txt"},
		Template{Src: "tests/ceftests/CMakeLists.txt.in", Dst: "tests/ceftests/CMakeLists.txt"},
	)
}
