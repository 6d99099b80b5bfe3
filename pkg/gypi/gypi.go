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

// Package gypi reads the literal dictionary files (cef_paths.gypi,
// cef_paths2.gypi, transfer.cfg) that describe the source tree.
//
// The files are python literals: dicts and lists of single quoted strings with
// '#' comments and trailing commas. That is a subset of YAML flow syntax, so
// they are decoded with yaml.v3.
package gypi

import (
	"bytes"
	"context"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/makedistrib/pkg/text"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// None is how a python None literal decodes.
const None = "None"

// 📝 Parse decodes a literal file into plain Go values (maps, slices, strings, bools, ints)
func Parse(data []byte) (any, error) {
	var out any
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&out); err != nil {
		return nil, errors.Errorf("parsing literal: %w", err)
	}
	return out, nil
}

// 📥 ParseFile reads and decodes a literal file
func ParseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	out, err := Parse(data)
	if err != nil {
		return nil, errors.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// 🎯 LoadVariables reads the 'variables' dictionary of a gypi file as a template context.
// String values become scalars, lists of strings become lists. Anything else is skipped.
func LoadVariables(ctx context.Context, path string) (text.Context, error) {
	logger := zerolog.Ctx(ctx)

	raw, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	top, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.Errorf("%s: top level is %T, want a dictionary", path, raw)
	}

	vars, ok := top["variables"].(map[string]any)
	if !ok {
		return nil, errors.Errorf("%s: missing 'variables' dictionary", path)
	}

	out := make(text.Context, len(vars))
	for _, key := range sortedKeys(vars) {
		v, err := toValue(vars[key])
		if err != nil {
			logger.Debug().Str("file", path).Str("key", key).Err(err).Msg("skipping variable")
			continue
		}
		out[key] = v
	}

	logger.Debug().Str("file", path).Int("variables", len(out)).Msg("loaded gypi variables")
	return out, nil
}

func toValue(raw any) (text.Value, error) {
	switch v := raw.(type) {
	case string:
		return text.String(v), nil
	case []any:
		items := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return text.Value{}, errors.Errorf("item %d is %T, want string", i, item)
			}
			items = append(items, s)
		}
		return text.List(items...), nil
	case nil:
		return text.List(), nil
	default:
		return text.Value{}, errors.Errorf("unsupported value type %T", raw)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
