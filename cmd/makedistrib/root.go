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

package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/distrib"
	"github.com/walteh/makedistrib/pkg/layout"
	"github.com/walteh/makedistrib/pkg/log"
)

// rootFlags holds the values that are not plain distrib.Options fields
type rootFlags struct {
	platform string
	envFile  string
	quiet    bool
	debug    bool
}

// newRootCmd builds the makedistrib command. Console lines go to stdout,
// structured logs to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		opts  distrib.Options
		flags rootFlags
	)

	cmd := &cobra.Command{
		Use:   "makedistrib",
		Short: "Assemble a binary distribution from a built checkout",
		Long: `makedistrib copies the headers, sources, binaries, resources and build files of
a built project checkout into one or more distribution directories and archives them.

The checkout is --cef-dir; the chromium sources are its parent directory and
builds are read from <chromium>/out/<Debug|Release>_GN_<arch>.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			switch {
			case flags.debug:
				level = zerolog.DebugLevel
			case flags.quiet:
				level = zerolog.WarnLevel
			}
			zlog := log.NewZerolog(stderr, level)
			ctx := zlog.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.New(stdout, zlog, log.WithQuiet(flags.quiet), log.WithRoot(opts.OutputDir)))
			cmd.SetContext(ctx)

			if flags.platform != "" {
				p, err := layout.ParsePlatform(flags.platform)
				if err != nil {
					return err
				}
				opts.Platform = p
			} else {
				opts.Platform = layout.HostPlatform()
			}

			getenv, err := distrib.LoadEnv(flags.envFile)
			if err != nil {
				return err
			}
			opts.Getenv = getenv

			result, err := distrib.Run(ctx, opts)
			if err != nil {
				var cfgErr *distrib.ConfigError
				if errors.As(err, &cfgErr) {
					return errors.Errorf("invalid options: %w", err)
				}
				return err
			}

			zlog.Debug().Strs("output_dirs", result.OutputDirs).Strs("archives", result.Archives).Msg("distribution complete")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.OutputDir, "output-dir", "", "output directory (required)")
	f.StringVar(&opts.CefDir, "cef-dir", ".", "project checkout; the chromium sources are its parent")
	f.StringVar(&opts.DistribSubdir, "distrib-subdir", "", "name of the distribution directory, replacing the generated name")
	f.StringVar(&opts.DistribSubdirSuffix, "distrib-subdir-suffix", "", "suffix appended to the generated distribution directory name")
	f.BoolVar(&opts.AllowPartial, "allow-partial", false, "allow creation of a partial distribution")
	f.BoolVar(&opts.NoSymbols, "no-symbols", false, "don't create symbol files")
	f.BoolVar(&opts.SymbolsOnly, "symbols-only", false, "only create symbol files")
	f.BoolVar(&opts.DebugSymbolsOnly, "debug-symbols-only", false, "only create debug symbol files")
	f.BoolVar(&opts.ReleaseSymbolsOnly, "release-symbols-only", false, "only create release symbol files")
	f.BoolVar(&opts.NoDocs, "no-docs", false, "don't create documentation")
	f.BoolVar(&opts.NoArchive, "no-archive", false, "don't create archives for output directories")
	f.BoolVar(&opts.NoSandbox, "no-sandbox", false, "don't create the cef_sandbox files")
	f.BoolVar(&opts.NoFormat, "no-format", false, "don't format autogenerated source files")
	f.BoolVar(&opts.NinjaBuild, "ninja-build", false, "build was created using ninja")
	f.BoolVar(&opts.X64Build, "x64-build", false, "create a 64-bit binary distribution")
	f.BoolVar(&opts.ArmBuild, "arm-build", false, "create an ARM binary distribution (Linux only)")
	f.BoolVar(&opts.Arm64Build, "arm64-build", false, "create an ARM64 binary distribution")
	f.BoolVar(&opts.Minimal, "minimal", false, "include only release build binary files")
	f.BoolVar(&opts.Client, "client", false, "include only the sample application")
	f.BoolVar(&opts.Sandbox, "sandbox", false, "include only the sandbox files (macOS and Windows)")
	f.BoolVar(&opts.Tools, "tools", false, "include only the tools")
	f.BoolVar(&opts.Ozone, "ozone", false, "build was created with ozone (Linux only)")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "do not output detailed status information")
	f.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	f.StringVar(&flags.platform, "platform", "", "target platform (windows, mac or linux), defaults to the host")
	f.StringVar(&flags.envFile, "env-file", "", "dotenv file with CEF_* settings; the process environment wins")

	return cmd
}
