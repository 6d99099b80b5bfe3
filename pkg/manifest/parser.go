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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser decodes a manifest file format
type Parser interface {
	// 📝 Parse decodes data, dropping entries whose condition is false in env
	Parse(ctx context.Context, filename string, data []byte, env *Env) (*Set, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📥 Load parses a manifest file from disk
func Load(ctx context.Context, path string, env *Env) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading manifest: %w", err)
	}
	return parse(ctx, path, data, env)
}

// 📥 LoadFS parses a manifest file from a filesystem, such as an embedded one
func LoadFS(ctx context.Context, fsys fs.FS, path string, env *Env) (*Set, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading manifest: %w", err)
	}
	return parse(ctx, path, data, env)
}

func parse(ctx context.Context, path string, data []byte, env *Env) (*Set, error) {
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported manifest format %q", filepath.Ext(path))
	}
	if env == nil {
		env = NewEnv()
	}

	set, err := p.Parse(ctx, path, data, env)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("manifest", path).
		Strs("groups", set.Names()).
		Msg("loaded manifest")

	return set, nil
}

// conditionalEntry pairs an entry with the raw text of its condition, shared by
// the YAML and JSON formats.
type conditionalEntry struct {
	Entry `yaml:",inline"`
	When  string `json:"when,omitempty" yaml:"when,omitempty"`
}

type conditionalGroup struct {
	Name    string             `json:"name" yaml:"name"`
	Entries []conditionalEntry `json:"entries" yaml:"entries"`
}

type document struct {
	Manifests []conditionalGroup `json:"manifests" yaml:"manifests"`
}

func (d document) resolve(env *Env) (*Set, error) {
	groups := make([]Group, 0, len(d.Manifests))
	for _, g := range d.Manifests {
		out := Group{Name: g.Name}
		for i, ce := range g.Entries {
			ok, err := env.EvalString(ce.When)
			if err != nil {
				return nil, errors.Errorf("group %s: entry %d: %w", g.Name, i, err)
			}
			if ok {
				out.Entries = append(out.Entries, ce.Entry)
			}
		}
		groups = append(groups, out)
	}
	return NewSet(groups...)
}
