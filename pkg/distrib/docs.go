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
	"path/filepath"

	"github.com/walteh/makedistrib/pkg/layout"
)

// 📖 stepDocs runs the documentation generator and copies its output into a
// <base>_docs directory
func (rc *RunContext) stepDocs(ctx context.Context) error {
	script := filepath.Join(rc.Paths.CefDir, "tools", rc.Selection.Platform.ScriptName("make_cppdocs"))
	rc.console.Infof("generating docs with %s", filepath.Base(script))
	if err := rc.runner.Run(ctx, rc.Paths.CefDir, script); err != nil {
		return err
	}

	if !isDir(filepath.Join(rc.Paths.CefDir, "docs")) {
		rc.warn(ctx, "no docs generated")
		return nil
	}

	dir, err := rc.Tree.Create(ctx, layout.OutputDirBase(rc.Version.Long())+"_docs")
	if err != nil {
		return err
	}
	return rc.transferGroup(ctx, rc.common, layout.GroupDocs, rc.Paths.CefDir, dir)
}
