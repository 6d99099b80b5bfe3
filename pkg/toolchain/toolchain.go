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

// Package toolchain reads tool invocations out of a GN build's toolchain.ninja.
//
// Tools mode redistributes mksnapshot together with the arguments the build
// ran it with. The build records them in lines such as
//
//	command = python3 ../../v8/tools/run.py ./mksnapshot --turbo-instruction-scheduling
//	command = python3 ../../v8/tools/run.py ./clang_x64_v8_arm64/mksnapshot --embedded_src gen/v8/embedded.S
package toolchain

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

// NinjaFile is the toolchain description written into every build directory
const NinjaFile = "toolchain.ninja"

var (
	// ErrNoToolchain is returned when the build directory has no toolchain.ninja
	ErrNoToolchain = errors.Base("missing toolchain file")
	// ErrNotFound is returned when the tool has no usable command in toolchain.ninja
	ErrNotFound = errors.Base("tool command not found")

	commandPattern = regexp.MustCompile(`^[0-9a-zA-Z_\- ./=]+$`)
	dirPattern     = regexp.MustCompile(`^(win_)?clang_[0-9a-z_]+$`)
)

// 🔧 Invocation is how the build runs a tool
type Invocation struct {
	// Command holds the arguments following the tool path.
	Command string
	// RelativeDir is the toolchain subdirectory of the build directory holding
	// the tool. Empty for the default toolchain.
	RelativeDir string
}

// 🔍 Extract finds the invocation of tool in <buildDir>/toolchain.ninja
func Extract(buildDir, tool string) (*Invocation, error) {
	ninja := filepath.Join(buildDir, NinjaFile)
	data, err := os.ReadFile(ninja)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%s: %w", ninja, ErrNoToolchain)
		}
		return nil, errors.Errorf("reading %s: %w", ninja, err)
	}

	content := string(data)
	needle := "/" + tool + " "
	start := strings.Index(content, needle)
	if start < 0 {
		return nil, errors.Errorf("%s in %s: %w", tool, ninja, ErrNotFound)
	}

	rest := content[start+len(needle):]
	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		return nil, errors.Errorf("%s in %s: unterminated command: %w", tool, ninja, ErrNotFound)
	}
	command := strings.TrimSpace(rest[:end])
	if command != "" && !commandPattern.MatchString(command) {
		return nil, errors.Errorf("%s in %s: unsafe command %q: %w", tool, ninja, command, ErrNotFound)
	}

	dirStart := start
	for dirStart > 0 {
		r := rune(content[dirStart-1])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		dirStart--
	}
	dir := content[dirStart:start]
	if dir != "" && !dirPattern.MatchString(dir) {
		return nil, errors.Errorf("%s in %s: unexpected toolchain directory %q: %w", tool, ninja, dir, ErrNotFound)
	}

	return &Invocation{Command: command, RelativeDir: dir}, nil
}

// 📋 Arguments is a command rewritten for a distribution directory
type Arguments struct {
	// Args reference files by bare name.
	Args []string
	// Inputs are absolute source files the arguments read. They are copied
	// next to the tool.
	Inputs []string
}

// String joins the arguments as written to the command file
func (a *Arguments) String() string {
	return strings.Join(a.Args, " ")
}

// 🔄 Rewrite replaces path arguments with their file names. Arguments starting
// with ../../ are build inputs: they must resolve to a file inside srcDir.
//
//	../../v8/tools/builtins-pgo/profiles/x64.profile -> x64.profile (input)
//	gen/v8/embedded.S                                -> embedded.S
func (inv *Invocation) Rewrite(buildDir, srcDir string) (*Arguments, error) {
	out := &Arguments{}
	if inv.Command == "" {
		return out, nil
	}

	realSrc, err := filepath.EvalSymlinks(srcDir)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", srcDir, err)
	}

	for _, arg := range strings.Split(inv.Command, " ") {
		if strings.Index(arg, "/") <= 0 {
			out.Args = append(out.Args, arg)
			continue
		}

		name := arg[strings.LastIndex(arg, "/")+1:]
		if name == "" {
			return nil, errors.Errorf("failed to parse command component %q", arg)
		}

		if strings.HasPrefix(arg, "../../") {
			input, err := filepath.EvalSymlinks(filepath.Join(buildDir, filepath.FromSlash(arg)))
			if err != nil {
				return nil, errors.Errorf("missing command input file %s: %w", arg, err)
			}
			if rel, err := filepath.Rel(realSrc, input); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				return nil, errors.Errorf("invalid command input file %s: outside %s", input, srcDir)
			}
			info, err := os.Stat(input)
			if err != nil || !info.Mode().IsRegular() {
				return nil, errors.Errorf("missing command input file %s", input)
			}
			out.Inputs = append(out.Inputs, input)
		}

		out.Args = append(out.Args, name)
	}

	return out, nil
}
