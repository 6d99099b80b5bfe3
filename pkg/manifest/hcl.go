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

package manifest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
//	manifest "binaries" {
//	  entry {
//	    path     = "chrome_sandbox"
//	    out_path = "chrome-sandbox"
//	  }
//	  entry {
//	    path        = "libminigbm.so"
//	    conditional = true
//	    when        = ozone
//	  }
//	}
//
// Attribute values may reference Env variables, `when` may be any boolean expression.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclEntry struct {
	Path          string         `hcl:"path"`
	OutPath       string         `hcl:"out_path,optional"`
	Conditional   bool           `hcl:"conditional,optional"`
	Delete        string         `hcl:"delete,optional"`
	Replace       bool           `hcl:"replace,optional"`
	PostProcess   string         `hcl:"post_process,optional"`
	NewHeaderPath string         `hcl:"new_header_path,optional"`
	When          hcl.Expression `hcl:"when,optional"`
}

type hclManifest struct {
	Name    string     `hcl:"name,label"`
	Entries []hclEntry `hcl:"entry,block"`
}

type hclDocument struct {
	Manifests []hclManifest `hcl:"manifest,block"`
}

// 📝 Parse parses manifests from HCL
func (p *HCLParser) Parse(ctx context.Context, filename string, data []byte, env *Env) (*Set, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filepath.Base(filename))
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var doc hclDocument
	diags = gohcl.DecodeBody(hclFile.Body, env.EvalContext(), &doc)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	groups := make([]Group, 0, len(doc.Manifests))
	for _, m := range doc.Manifests {
		g := Group{Name: m.Name}
		for i, he := range m.Entries {
			ok, err := env.Eval(he.When)
			if err != nil {
				return nil, errors.Errorf("manifest %s: entry %d (%s): %w", m.Name, i, he.Path, err)
			}
			if !ok {
				continue
			}
			g.Entries = append(g.Entries, Entry{
				Path:          he.Path,
				OutPath:       he.OutPath,
				Conditional:   he.Conditional,
				Delete:        he.Delete,
				Replace:       he.Replace,
				PostProcess:   PostProcess(he.PostProcess),
				NewHeaderPath: he.NewHeaderPath,
			})
		}
		groups = append(groups, g)
	}

	return NewSet(groups...)
}
