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
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📝 ReplacementRule replaces every occurrence of FromText with ToText
type ReplacementRule struct {
	FromText string
	ToText   string
}

// 📊 ReplacementResult holds the outcome of applying a set of rules
type ReplacementResult struct {
	OriginalContent  []byte
	ModifiedContent  []byte
	ReplacementCount int
	WasModified      bool
}

// SimpleTextReplacer applies literal replacement rules in order
type SimpleTextReplacer struct{}

// 🏭 NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText reads content and applies each rule once, in order
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
	}

	current := string(originalContent)
	for _, rule := range rules {
		if rule.FromText == "" {
			continue
		}

		next, n := replaceToken(current, rule.FromText, func(string) string { return rule.ToText })
		if n > 0 {
			result.ReplacementCount += n
			if next != current {
				result.WasModified = true
			}
		}
		current = next
	}

	result.ModifiedContent = []byte(current)

	zerolog.Ctx(ctx).Trace().
		Int("rules", len(rules)).
		Int("replacements", result.ReplacementCount).
		Msg("applied replacement rules")

	return result, nil
}

// ValidateRules rejects empty and duplicate tokens
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	seen := make(map[string]int, len(rules))
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if prev, ok := seen[rule.FromText]; ok {
			return errors.Errorf("rule %d: duplicate from_text %q (first seen in rule %d)", i, rule.FromText, prev)
		}
		seen[rule.FromText] = i
	}
	return nil
}

// 🎯 Rules converts the scalar values of a context into replacement rules for a style.
// List values are flattened with the style's list renderer at zero indentation.
func Rules(c Context, style Style) []ReplacementRule {
	rules := make([]ReplacementRule, 0, len(c))
	for _, key := range c.Keys() {
		rules = append(rules, ReplacementRule{
			FromText: style.Token(key),
			ToText:   style.render(c[key], ""),
		})
	}
	return rules
}
