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
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/archive"
	"github.com/walteh/makedistrib/pkg/command"
	"github.com/walteh/makedistrib/pkg/gypi"
	"github.com/walteh/makedistrib/pkg/layout"
	"github.com/walteh/makedistrib/pkg/log"
	"github.com/walteh/makedistrib/pkg/manifest"
	"github.com/walteh/makedistrib/pkg/output"
	"github.com/walteh/makedistrib/pkg/text"
	"github.com/walteh/makedistrib/pkg/transfer"
	"github.com/walteh/makedistrib/pkg/vcs"
	"github.com/walteh/makedistrib/pkg/version"
)

// 🧭 RunContext is everything a step needs. It is built once, before any
// output directory exists, and threaded through every step.
type RunContext struct {
	Options   Options
	Selection layout.Selection
	Paths     *layout.Paths

	CEF             *vcs.Info
	Chromium        *vcs.Info
	ChromiumVersion version.Chromium
	Version         version.Formatter
	Date            string

	// Generated holds cef_paths.gypi, Maintained cef_paths2.gypi. Variables
	// merges both with Maintained winning.
	Generated  text.Context
	Maintained text.Context
	Variables  text.Context

	// OutputName is the name of the main output directory. MainDir stays
	// empty in symbols-only modes.
	OutputName string
	MainDir    string

	Tree     *output.Tree
	Engine   *transfer.Engine
	Report   *transfer.Report
	Archives []string
	Warnings []string

	common   *manifest.Set
	platform *manifest.Set
	archiver *archive.Builder
	console  *log.Logger
	getenv   func(string) string
	runner   command.Runner
	copied   int
}

// 🏗️ NewRunContext reads the checkout metadata, variable files and manifests.
// It does not write anything.
func NewRunContext(ctx context.Context, opts Options) (*RunContext, error) {
	logger := zerolog.Ctx(ctx)

	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Runner == nil {
		opts.Runner = command.ExecRunner{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	rc := &RunContext{
		Options:   opts,
		Selection: opts.Selection(),
		Report:    &transfer.Report{},
		console:   log.FromContext(ctx),
		getenv:    opts.Getenv,
		runner:    opts.Runner,
	}

	cefDir := opts.CefDir
	if cefDir == "" {
		cefDir = "."
	}
	paths, err := layout.Resolve(cefDir, rc.Selection)
	if err != nil {
		return nil, err
	}
	rc.Paths = paths

	if !vcs.IsCheckout(paths.CefDir) {
		return nil, errors.Errorf("not a valid checkout: %s: %w", paths.CefDir, vcs.ErrNotCheckout)
	}
	if rc.CEF, err = vcs.Read(ctx, paths.CefDir); err != nil {
		return nil, errors.Errorf("reading project revision: %w", err)
	}
	if rc.Chromium, err = vcs.ReadChromium(ctx, paths.SrcDir); err != nil {
		return nil, errors.Errorf("reading chromium revision: %w", err)
	}
	if rc.ChromiumVersion, err = version.ReadChromium(filepath.Join(paths.SrcDir, "chrome", "VERSION")); err != nil {
		return nil, err
	}
	rc.Version = version.Formatter{
		Chromium:     rc.ChromiumVersion,
		Hash:         rc.CEF.Hash,
		CommitNumber: rc.CEF.CommitNumber,
	}
	rc.Date = opts.Now().Format("January 02, 2006")
	rc.OutputName = rc.Selection.OutputDirName(rc.Version.Long())

	if rc.Generated, err = gypi.LoadVariables(ctx, filepath.Join(paths.CefDir, "cef_paths.gypi")); err != nil {
		return nil, err
	}
	if rc.Maintained, err = gypi.LoadVariables(ctx, filepath.Join(paths.CefDir, "cef_paths2.gypi")); err != nil {
		return nil, err
	}
	rc.Variables = text.Merge(rc.Generated, rc.Maintained)

	if rc.common, err = layout.LoadCommonManifests(ctx, rc.Selection); err != nil {
		return nil, err
	}
	if rc.platform, err = layout.LoadPlatformManifests(ctx, rc.Selection); err != nil {
		return nil, err
	}

	if !opts.NoArchive {
		if rc.archiver, err = archive.FromEnv(rc.getenv, rc.runner); err != nil {
			return nil, err
		}
	}

	if rc.Tree, err = output.New(opts.OutputDir); err != nil {
		return nil, err
	}

	engineOpts := []transfer.Option{
		transfer.WithListener(rc.console),
		transfer.WithListener(rc.Tree),
	}
	if !opts.NoFormat {
		formatter, err := command.NewClangFormat(rc.runner, rc.getenv(EnvClangFormat))
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, transfer.WithFormatter(formatter))
	}
	rc.Engine = transfer.NewEngine(engineOpts...)

	logger.Info().
		Str("platform", string(rc.Selection.Platform)).
		Str("mode", string(rc.Selection.Mode)).
		Str("arch", string(rc.Selection.Arch)).
		Str("version", rc.Version.Long()).
		Str("output", rc.OutputName).
		Msg("resolved distribution")

	return rc, nil
}

// warn prints a soft miss and keeps it for the summary
func (rc *RunContext) warn(ctx context.Context, msg string) {
	zerolog.Ctx(ctx).Warn().Msg(msg)
	rc.console.Warning(msg)
	rc.Warnings = append(rc.Warnings, msg)
}

func (rc *RunContext) transfer(ctx context.Context, m *manifest.Manifest) error {
	report, err := rc.Engine.Transfer(ctx, m)
	rc.Report.Add(report)
	if err != nil {
		return err
	}
	for _, skip := range report.Skipped {
		rc.Warnings = append(rc.Warnings, "missing conditional path: "+skip.Source)
	}
	return nil
}

// transferGroup binds a named group of an embedded manifest set and transfers it
func (rc *RunContext) transferGroup(ctx context.Context, set *manifest.Set, group, srcDir, dstDir string) error {
	m, err := set.Bind(group, srcDir, dstDir)
	if err != nil {
		return err
	}
	return rc.transfer(ctx, m)
}

func (rc *RunContext) copyFile(ctx context.Context, src, dst string) error {
	if err := rc.Tree.CopyFile(ctx, src, dst); err != nil {
		return err
	}
	rc.copied++
	rc.console.LogFileOperation(ctx, log.FileOperation{Path: dst, Action: "copied"})
	return nil
}

func (rc *RunContext) writeFile(ctx context.Context, path string, content []byte) error {
	if err := rc.Tree.WriteFile(ctx, path, content); err != nil {
		return err
	}
	rc.console.LogFileOperation(ctx, log.FileOperation{Path: path, Action: "written"})
	return nil
}

// mainPath joins parts onto the main output directory
func (rc *RunContext) mainPath(parts ...string) string {
	return filepath.Join(append([]string{rc.MainDir}, parts...)...)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
