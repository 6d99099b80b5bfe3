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

// Package command runs the external programs a distribution build depends on:
// the docs generator, clang-format and 7-zip. Every invocation blocks and a
// non-zero exit is an error.
package command

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes a program in a working directory
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// ❌ ExitError is returned when a program fails to start or exits non-zero
type ExitError struct {
	Command string
	Dir     string
	Output  string
	Err     error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("running %q in %s: %v", e.Command, e.Dir, e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExecRunner runs programs with os/exec
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run implements Runner. Output is logged at debug level and attached to the error on failure.
func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	logger := zerolog.Ctx(ctx)
	line := strings.Join(append([]string{name}, args...), " ")

	logger.Debug().Str("command", line).Str("dir", dir).Msg("running command")

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	err := cmd.Run()
	output := strings.TrimSpace(out.String())

	if err != nil {
		return errors.WithStack(&ExitError{Command: line, Dir: dir, Output: output, Err: err})
	}

	logger.Debug().
		Str("command", line).
		Dur("took", time.Since(start)).
		Str("output", output).
		Msg("command finished")

	return nil
}

// 🔪 Split breaks a configured command line (from the environment) into a program and its arguments
func Split(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, errors.New("empty command")
	}
	return fields[0], fields[1:], nil
}
