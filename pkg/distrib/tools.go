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
	"fmt"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/layout"
	"github.com/walteh/makedistrib/pkg/toolchain"
)

const (
	snapshotTool    = "mksnapshot"
	snapshotCmdFile = "mksnapshot_cmd.txt"
)

// 🔧 stepTools copies the snapshot tools of each build with their command
// line and inputs, then the wrapper scripts
func (rc *RunContext) stepTools(ctx context.Context) error {
	for _, b := range []layout.BuildType{layout.Debug, layout.Release} {
		if err := rc.transferTools(ctx, b); err != nil {
			return err
		}
	}
	return rc.transferGroup(ctx, rc.common, layout.GroupToolsScripts, filepath.Join(rc.Paths.DistribDir, "tools"), rc.MainDir)
}

func (rc *RunContext) transferTools(ctx context.Context, b layout.BuildType) error {
	buildDir := rc.Paths.BuildDir(b)

	inv, err := toolchain.Extract(buildDir, snapshotTool)
	if err != nil {
		if rc.Options.AllowPartial && errors.Is(err, toolchain.ErrNoToolchain) {
			rc.warn(ctx, fmt.Sprintf("no %s build toolchain for %s", b, snapshotTool))
			return nil
		}
		return err
	}

	toolDir := filepath.Join(buildDir, inv.RelativeDir)
	if rc.Options.AllowPartial && !exists(filepath.Join(toolDir, rc.Selection.Platform.ExeName(snapshotTool))) {
		rc.warn(ctx, fmt.Sprintf("no %s build of %s", b, snapshotTool))
		return nil
	}

	dst := rc.mainPath(b.String())
	if err := rc.transferGroup(ctx, rc.common, layout.GroupTools, toolDir, dst); err != nil {
		return err
	}

	args, err := inv.Rewrite(buildDir, rc.Paths.SrcDir)
	if err != nil {
		return errors.Errorf("%s command: %w", snapshotTool, err)
	}
	for _, input := range args.Inputs {
		if err := rc.copyFile(ctx, input, filepath.Join(dst, filepath.Base(input))); err != nil {
			return err
		}
	}

	return rc.writeFile(ctx, filepath.Join(dst, snapshotCmdFile), []byte(args.String()))
}
