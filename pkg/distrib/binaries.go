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

	"github.com/rs/zerolog"

	"github.com/walteh/makedistrib/pkg/layout"
)

// 🖥️ stepBinaries copies the binaries and symbols of each build, then the
// resources of the last usable build
func (rc *RunContext) stepBinaries(ctx context.Context) error {
	sel := rc.Selection
	logger := zerolog.Ctx(ctx)

	validBuildDir := ""
	for _, b := range []layout.BuildType{layout.Debug, layout.Release} {
		if !sel.IncludesBuild(b) {
			continue
		}

		buildDir := rc.Paths.BuildDir(b)
		if rc.Options.AllowPartial && !exists(filepath.Join(buildDir, sel.Platform.MarkerBinary())) {
			rc.warn(ctx, fmt.Sprintf("no %s build files", b))
			continue
		}

		if !sel.Mode.SymbolsOnly() {
			validBuildDir = buildDir
			if err := rc.transferGroup(ctx, rc.platform, layout.GroupBinaries, buildDir, rc.mainPath(b.String())); err != nil {
				return err
			}
		}

		if sel.WantsSymbols(b, rc.Options.NoSymbols) {
			dir, err := rc.Tree.Create(ctx, rc.OutputName+b.SymbolsSuffix())
			if err != nil {
				return err
			}
			if err := rc.transferGroup(ctx, rc.platform, layout.GroupSymbols, buildDir, dir); err != nil {
				return err
			}
		}
	}

	if validBuildDir == "" || sel.Mode == layout.ModeSandbox {
		return nil
	}

	logger.Debug().Str("build_dir", validBuildDir).Msg("copying resources")
	return rc.transferGroup(ctx, rc.platform, layout.GroupResources, validBuildDir, rc.mainPath(sel.ResourcesDir()))
}

// stepPlatformSources copies the platform headers, wrapper and sample sources
// and evaluates the platform transfer configs
func (rc *RunContext) stepPlatformSources(ctx context.Context) error {
	if err := rc.transferSourceGroups(ctx, rc.Selection.PlatformSourceGroups()); err != nil {
		return err
	}

	if rc.Selection.Mode.HasSources() {
		if err := rc.transferConfigs(ctx, filepath.Join(rc.Paths.DistribDir, rc.Selection.Platform.DistribDir())); err != nil {
			return err
		}
	}

	return rc.transferGroup(ctx, rc.platform, layout.GroupTestExtras, rc.Paths.CefDir, rc.MainDir)
}
