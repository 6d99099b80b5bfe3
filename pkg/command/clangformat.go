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

package command

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultClangFormat is used when CEF_COMMAND_CLANG_FORMAT is unset
const DefaultClangFormat = "clang-format"

// 🎨 ClangFormat formats source files in place. It satisfies transfer.Formatter.
type ClangFormat struct {
	runner  Runner
	program string
	args    []string
}

// 🏭 NewClangFormat creates a formatter from a command line such as "clang-format --style=file"
func NewClangFormat(runner Runner, line string) (*ClangFormat, error) {
	if line == "" {
		line = DefaultClangFormat
	}
	program, args, err := Split(line)
	if err != nil {
		return nil, errors.Errorf("clang-format command: %w", err)
	}
	return &ClangFormat{runner: runner, program: program, args: args}, nil
}

// Format rewrites path in place
func (c *ClangFormat) Format(ctx context.Context, path string) error {
	args := append(append([]string{}, c.args...), "-i", filepath.Base(path))
	if err := c.runner.Run(ctx, filepath.Dir(path), c.program, args...); err != nil {
		return errors.Errorf("formatting %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("file", path).Msg("formatted")
	return nil
}
