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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📋 Manifest is an ordered list of entries bound to a source and destination directory.
// It cannot be changed after construction.
type Manifest struct {
	name      string
	sourceDir string
	destDir   string
	entries   []Entry
}

// 🏭 New validates entries and creates a manifest
func New(name, sourceDir, destDir string, entries []Entry) (*Manifest, error) {
	if sourceDir == "" {
		return nil, errors.Errorf("manifest %s: source directory is required", name)
	}
	if destDir == "" {
		return nil, errors.Errorf("manifest %s: destination directory is required", name)
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, errors.Errorf("manifest %s: entry %d: %w", name, i, err)
		}
	}

	cp := make([]Entry, len(entries))
	copy(cp, entries)

	return &Manifest{
		name:      name,
		sourceDir: sourceDir,
		destDir:   destDir,
		entries:   cp,
	}, nil
}

// 🏭 FromPaths builds a manifest of plain file entries, the shape of the gypi path
// lists. stripPrefix is removed from each path to form the output path.
func FromPaths(name, sourceDir, destDir string, paths []string, stripPrefix string, post PostProcess) (*Manifest, error) {
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e := Entry{Path: p, PostProcess: post}
		if stripPrefix != "" {
			if out := strings.ReplaceAll(p, stripPrefix, ""); out != p {
				e.OutPath = out
			}
		}
		entries = append(entries, e)
	}
	return New(name, sourceDir, destDir, entries)
}

func (m *Manifest) Name() string      { return m.name }
func (m *Manifest) SourceDir() string { return m.sourceDir }
func (m *Manifest) DestDir() string   { return m.destDir }
func (m *Manifest) Len() int          { return len(m.entries) }

// Entries returns a copy of the entries in order
func (m *Manifest) Entries() []Entry {
	cp := make([]Entry, len(m.entries))
	copy(cp, m.entries)
	return cp
}

// 📚 Group is a named, unbound list of entries
type Group struct {
	Name    string  `json:"name" yaml:"name"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// 🗂️ Set holds the groups loaded from one manifest file, in file order
type Set struct {
	groups []Group
	index  map[string]int
}

// 🏭 NewSet validates the groups and creates a set. Group names must be unique.
func NewSet(groups ...Group) (*Set, error) {
	s := &Set{index: make(map[string]int, len(groups))}
	for _, g := range groups {
		if g.Name == "" {
			return nil, errors.Errorf("manifest group name is required")
		}
		if _, ok := s.index[g.Name]; ok {
			return nil, errors.Errorf("duplicate manifest group %q", g.Name)
		}
		for i, e := range g.Entries {
			if err := e.Validate(); err != nil {
				return nil, errors.Errorf("group %s: entry %d: %w", g.Name, i, err)
			}
		}
		entries := make([]Entry, len(g.Entries))
		copy(entries, g.Entries)
		s.index[g.Name] = len(s.groups)
		s.groups = append(s.groups, Group{Name: g.Name, Entries: entries})
	}
	return s, nil
}

// Names returns the group names in file order
func (s *Set) Names() []string {
	names := make([]string, len(s.groups))
	for i, g := range s.groups {
		names[i] = g.Name
	}
	return names
}

// Entries returns a copy of a group's entries
func (s *Set) Entries(name string) ([]Entry, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	cp := make([]Entry, len(s.groups[i].Entries))
	copy(cp, s.groups[i].Entries)
	return cp, true
}

// 🔗 Bind turns a group into a manifest rooted at sourceDir and destDir
func (s *Set) Bind(name, sourceDir, destDir string) (*Manifest, error) {
	entries, ok := s.Entries(name)
	if !ok {
		return nil, errors.Errorf("unknown manifest group %q", name)
	}
	return New(name, sourceDir, destDir, entries)
}
