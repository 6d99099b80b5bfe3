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

package layout

import (
	"context"
	"embed"

	"github.com/walteh/makedistrib/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

//go:embed manifests/*.hcl
var manifestFS embed.FS

// Group names used in the embedded manifests
const (
	GroupBinaries     = "binaries"
	GroupSymbols      = "symbols"
	GroupResources    = "resources"
	GroupTestExtras   = "test_extras"
	GroupLicense      = "license"
	GroupStandard     = "standard_files"
	GroupGTest        = "gtest"
	GroupTools        = "tools"
	GroupToolsScripts = "tools_scripts"
	GroupBazel        = "bazel"
	GroupDocs         = "docs"
)

// 📥 LoadPlatformManifests loads the binary, symbol and resource groups of the
// selected platform, evaluated for the selection
func LoadPlatformManifests(ctx context.Context, sel Selection) (*manifest.Set, error) {
	if sel.Platform == "" {
		return nil, errors.New("platform is required")
	}
	return loadEmbedded(ctx, "manifests/"+string(sel.Platform)+".hcl", sel)
}

// 📥 LoadCommonManifests loads the groups shared by every platform
func LoadCommonManifests(ctx context.Context, sel Selection) (*manifest.Set, error) {
	return loadEmbedded(ctx, "manifests/common.hcl", sel)
}

func loadEmbedded(ctx context.Context, name string, sel Selection) (*manifest.Set, error) {
	set, err := manifest.LoadFS(ctx, manifestFS, name, sel.Env())
	if err != nil {
		return nil, errors.Errorf("loading embedded manifest: %w", err)
	}
	return set, nil
}
