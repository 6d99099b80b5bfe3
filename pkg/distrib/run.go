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
	"time"

	"github.com/rs/zerolog"

	"github.com/walteh/makedistrib/pkg/layout"
	"github.com/walteh/makedistrib/pkg/log"
	"github.com/walteh/makedistrib/pkg/operation"
	"github.com/walteh/makedistrib/pkg/output"
	"github.com/walteh/makedistrib/pkg/transfer"
)

// 📊 Result describes a finished run
type Result struct {
	OutputDirs []string
	Archives   []string
	Report     *transfer.Report
	Steps      []operation.Result
	Warnings   []string
}

// Steps lists the orchestration steps for the selection, in run order
func (rc *RunContext) Steps() []operation.Operation {
	sel := rc.Selection
	mode := sel.Mode
	hasMain := !mode.SymbolsOnly()

	return []operation.Operation{
		operation.When(hasMain, operation.New("readme and license", rc.stepReadme)),
		operation.When(hasMain, operation.New("credits", rc.stepCredits)),
		operation.When(mode.HasSources(), operation.New("headers and wrapper sources", rc.stepSources)),
		operation.When(mode == layout.ModeStandard, operation.New("sample sources", rc.stepTests)),
		operation.When(mode.HasSources(), operation.New("cmake templates", rc.stepCMake)),
		operation.When(!rc.Options.NoDocs, operation.New("docs", rc.stepDocs)),
		operation.When(mode == layout.ModeTools, operation.New("tools", rc.stepTools)),
		operation.When(mode != layout.ModeTools, operation.New("binaries", rc.stepBinaries)),
		operation.When(hasMain && mode != layout.ModeTools, operation.New("platform sources", rc.stepPlatformSources)),
		operation.When(mode.HasSources(), operation.New("bazel", rc.stepBazel)),
		operation.When(!rc.Options.NoArchive, operation.New("archives", rc.stepArchive)),
	}
}

// 🗜️ stepArchive archives every output directory beside itself
func (rc *RunContext) stepArchive(ctx context.Context) error {
	builder := rc.archiver
	for _, dir := range rc.Tree.Dirs() {
		rc.console.Infof("creating %s archive for %s", builder.Format(), dir)
		out, err := builder.Build(ctx, dir)
		if err != nil {
			return err
		}
		rc.Archives = append(rc.Archives, out)
		rc.Tree.Track(ctx, out, output.StatusArchived)
		rc.console.LogFileOperation(ctx, log.FileOperation{Path: out, Action: "archived"})
	}
	return nil
}

// Summary collects the counters of the run for printing
func (rc *RunContext) Summary(took time.Duration) log.Summary {
	return log.Summary{
		OutputDirs:   rc.Tree.Dirs(),
		Archives:     rc.Archives,
		FilesCopied:  rc.Report.FilesCopied + rc.copied,
		DirsCopied:   rc.Report.DirsCopied,
		FilesWritten: rc.Tree.Count(output.StatusWritten),
		FilesDeleted: rc.Report.FilesDeleted,
		Skipped:      len(rc.Report.Skipped),
		Collisions:   len(rc.Report.Collisions),
		Warnings:     rc.Warnings,
		Took:         took,
	}
}

// 🚀 Run validates the options and builds the distribution
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	console := log.FromContext(ctx)

	rc, err := NewRunContext(ctx, opts)
	if err != nil {
		return nil, err
	}

	console.Header(rc.OutputName)

	runner := operation.NewRunner(console)
	runErr := runner.Run(ctx, rc.Steps()...)

	result := &Result{
		OutputDirs: rc.Tree.Dirs(),
		Archives:   rc.Archives,
		Report:     rc.Report,
		Steps:      runner.Results(),
		Warnings:   rc.Warnings,
	}
	if runErr != nil {
		return result, runErr
	}

	if err := console.PrintSummary(rc.Summary(time.Since(start))); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("printing summary")
	}
	return result, nil
}
