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
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidEntry is wrapped by every entry validation failure.
var ErrInvalidEntry = errors.Base("invalid manifest entry")

// 🔧 PostProcess names a transformation applied to a file after it is copied
type PostProcess string

const (
	PostProcessNone             PostProcess = ""
	PostProcessNormalizeHeaders PostProcess = "normalize_headers"
	PostProcessClangFormat      PostProcess = "clang_format"
)

// 📦 Entry describes one file or directory to transfer
type Entry struct {
	// Path is relative to the manifest source directory.
	Path string `json:"path" yaml:"path"`
	// OutPath is relative to the manifest destination directory. Empty means Path.
	OutPath string `json:"out_path,omitempty" yaml:"out_path,omitempty"`
	// Conditional entries may be missing from the source tree.
	Conditional bool `json:"conditional,omitempty" yaml:"conditional,omitempty"`
	// Delete is a glob of files removed from a copied directory.
	Delete string `json:"delete,omitempty" yaml:"delete,omitempty"`
	// Replace removes an existing destination directory before copying.
	Replace bool `json:"replace,omitempty" yaml:"replace,omitempty"`

	PostProcess   PostProcess `json:"post_process,omitempty" yaml:"post_process,omitempty"`
	NewHeaderPath string      `json:"new_header_path,omitempty" yaml:"new_header_path,omitempty"`
}

// Target returns the destination path relative to the manifest destination
func (e Entry) Target() string {
	if e.OutPath != "" {
		return e.OutPath
	}
	return e.Path
}

// ✅ Validate checks the entry against the rules in the package doc
func (e Entry) Validate() error {
	if err := validateRelative("path", e.Path); err != nil {
		return err
	}
	if e.OutPath != "" {
		if err := validateRelative("out_path", e.OutPath); err != nil {
			return err
		}
	}
	if e.Delete != "" {
		if strings.HasPrefix(e.Delete, "/") || hasParentRef(e.Delete) {
			return errors.Errorf("%w: delete glob %q must stay inside the copied directory", ErrInvalidEntry, e.Delete)
		}
		if !doublestar.ValidatePattern(e.Delete) {
			return errors.Errorf("%w: delete glob %q is not a valid pattern", ErrInvalidEntry, e.Delete)
		}
	}
	switch e.PostProcess {
	case PostProcessNone, PostProcessNormalizeHeaders, PostProcessClangFormat:
	default:
		return errors.Errorf("%w: %s: unknown post_process %q", ErrInvalidEntry, e.Path, e.PostProcess)
	}
	if e.NewHeaderPath != "" && e.PostProcess != PostProcessNormalizeHeaders {
		return errors.Errorf("%w: %s: new_header_path requires post_process %q", ErrInvalidEntry, e.Path, PostProcessNormalizeHeaders)
	}
	return nil
}

func validateRelative(field, p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.Errorf("%w: %s is empty", ErrInvalidEntry, field)
	}
	if filepath.IsAbs(p) || path.IsAbs(filepath.ToSlash(p)) {
		return errors.Errorf("%w: %s %q must be relative", ErrInvalidEntry, field, p)
	}
	if hasParentRef(p) {
		return errors.Errorf("%w: %s %q escapes its base directory", ErrInvalidEntry, field, p)
	}
	return nil
}

func hasParentRef(p string) bool {
	for _, part := range strings.Split(filepath.ToSlash(p), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
