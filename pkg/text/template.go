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

package text

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// TemplateSuffix marks files that need substitution before use.
const TemplateSuffix = ".in"

// OutputName strips the template suffix from a path
func OutputName(path string) string {
	return strings.TrimSuffix(path, TemplateSuffix)
}

// 📄 ProcessTemplateFile substitutes src and writes the result to dst.
// An empty dst writes next to src with the template suffix stripped.
func ProcessTemplateFile(ctx context.Context, src, dst string, c Context, style Style) error {
	logger := zerolog.Ctx(ctx)

	if dst == "" {
		if !strings.HasSuffix(src, TemplateSuffix) {
			return errors.Errorf("template %s has no %s suffix", src, TemplateSuffix)
		}
		dst = OutputName(src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Errorf("reading template %s: %w", src, err)
	}

	out := Substitute(string(data), c, style)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Errorf("creating directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, []byte(out), 0o644); err != nil {
		return errors.Errorf("writing %s: %w", dst, err)
	}

	logger.Debug().Str("template", src).Str("output", dst).Str("style", style.Name).Msg("processed template")
	return nil
}
