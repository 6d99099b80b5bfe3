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

// Package archive packs distribution directories into archives.
//
//	<parent>/cef_binary_X_linux64/        ->  <parent>/cef_binary_X_linux64.zip
//	                                          cef_binary_X_linux64/README.txt
//	                                          cef_binary_X_linux64/Release/...
//
// Built-in formats are zip, tar.gz and tar.bz2. When CEF_COMMAND_7ZIP names a
// 7-zip binary every archive is created by it instead, in the format given by
// CEF_COMMAND_7ZIP_FORMAT.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/command"
)

// Built-in formats
const (
	FormatZip    = "zip"
	FormatTarGz  = "tar.gz"
	FormatTarBz2 = "tar.bz2"
)

// Environment variables read by FromEnv
const (
	EnvFormat         = "CEF_ARCHIVE_FORMAT"
	EnvSevenZip       = "CEF_COMMAND_7ZIP"
	EnvSevenZipFormat = "CEF_COMMAND_7ZIP_FORMAT"
)

// ❌ UnsupportedFormatError is returned for a format no archiver handles
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported archive format: %s", e.Format)
}

// 📦 Builder creates one archive per directory
type Builder struct {
	format   string
	sevenZip string
	runner   command.Runner
}

// Option configures a Builder
type Option func(*Builder)

// WithSevenZip hands archiving to an external 7-zip command line
func WithSevenZip(line string, runner command.Runner) Option {
	return func(b *Builder) {
		b.sevenZip = line
		b.runner = runner
	}
}

// 🏭 New creates a builder. Without WithSevenZip the format must be built in.
func New(format string, opts ...Option) (*Builder, error) {
	b := &Builder{format: format}
	for _, opt := range opts {
		opt(b)
	}

	if b.sevenZip != "" {
		if b.format == "" {
			b.format = "7z"
		}
		if b.runner == nil {
			b.runner = command.ExecRunner{}
		}
		return b, nil
	}

	if b.format == "" {
		b.format = FormatZip
	}
	switch b.format {
	case FormatZip, FormatTarGz, FormatTarBz2:
		return b, nil
	default:
		return nil, errors.WithStack(&UnsupportedFormatError{Format: b.format})
	}
}

// 🌍 FromEnv configures a builder from CEF_ARCHIVE_FORMAT, CEF_COMMAND_7ZIP and
// CEF_COMMAND_7ZIP_FORMAT. CEF_ARCHIVE_FORMAT is validated even when 7-zip is used.
func FromEnv(getenv func(string) string, runner command.Runner) (*Builder, error) {
	format := getenv(EnvFormat)
	if format == "" {
		format = FormatZip
	}
	if _, err := New(format); err != nil {
		return nil, err
	}

	if line := getenv(EnvSevenZip); line != "" {
		return New(getenv(EnvSevenZipFormat), WithSevenZip(line, runner))
	}
	return New(format)
}

// Format is the archive format, also the file extension
func (b *Builder) Format() string {
	return b.format
}

// 🗜️ Build archives dir into <dir>.<format> and returns the archive path
func (b *Builder) Build(ctx context.Context, dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", errors.Errorf("archiving %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("archiving %s: not a directory", dir)
	}

	start := time.Now()
	var out string
	switch {
	case b.sevenZip != "":
		out, err = b.buildSevenZip(ctx, dir)
	case b.format == FormatZip:
		out, err = buildZip(dir)
	case b.format == FormatTarGz:
		out, err = buildTar(dir, gzipCompressor)
	case b.format == FormatTarBz2:
		out, err = buildTar(dir, bzip2Compressor)
	default:
		err = errors.WithStack(&UnsupportedFormatError{Format: b.format})
	}
	if err != nil {
		return "", err
	}

	zerolog.Ctx(ctx).Info().
		Str("format", b.format).
		Str("archive", out).
		Dur("took", time.Since(start)).
		Msg("created archive")

	return out, nil
}

func (b *Builder) buildSevenZip(ctx context.Context, dir string) (string, error) {
	program, args, err := command.Split(b.sevenZip)
	if err != nil {
		return "", errors.Errorf("7-zip command: %w", err)
	}
	parent := filepath.Dir(dir)

	run := func(extra ...string) error {
		return b.runner.Run(ctx, parent, program, append(append([]string{}, args...), extra...)...)
	}

	input, out := dir, dir+"."+b.format
	switch b.format {
	case "xz", "gzip", "bzip2":
		// single stream formats get an intermediate tar
		input = dir + ".tar"
		out = input + "." + b.format
		if err := run("a", "-ttar", "-y", input, dir); err != nil {
			return "", errors.Errorf("creating %s: %w", input, err)
		}
		defer os.Remove(input)
	}

	if err := run("a", "-t"+b.format, "-y", out, input); err != nil {
		return "", errors.Errorf("creating %s: %w", out, err)
	}
	return out, nil
}
