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
	"sort"
	"strconv"
	"strings"
)

// 🎨 Style describes how placeholder tokens are delimited and how list values render
type Style struct {
	Name  string
	Open  string
	Close string

	// RelativeTo is trimmed (plus a trailing slash) from list items that start with it.
	RelativeTo string

	list func(items []string, indent string) string
}

var (
	// Dollar matches README tokens like $CEF_VER$
	Dollar = Style{Name: "dollar", Open: "$", Close: "$", list: joinSpaces}

	// Make matches Doxyfile tokens like $(PROJECT_NUMBER)
	Make = Style{Name: "make", Open: "$(", Close: ")", list: joinSpaces}

	// CMake matches {{name}} and renders lists one item per line at the token's indentation
	CMake = Style{Name: "cmake", Open: "{{", Close: "}}", list: joinLines}

	// Bazel matches ${name} and renders lists as quoted, comma separated items
	Bazel = Style{Name: "bazel", Open: "${", Close: "}", list: joinQuoted}
)

// Token returns the placeholder for a variable name
func (s Style) Token(name string) string {
	return s.Open + name + s.Close
}

// WithRelativeTo returns a copy of the style that trims dir from list items
func (s Style) WithRelativeTo(dir string) Style {
	s.RelativeTo = strings.TrimSuffix(dir, "/")
	return s
}

func (s Style) render(v Value, indent string) string {
	if !v.IsList() {
		return v.String()
	}
	items := v.Items()
	if s.RelativeTo != "" {
		prefix := s.RelativeTo + "/"
		for i, item := range items {
			items[i] = strings.TrimPrefix(item, prefix)
		}
	}
	if s.list == nil {
		return joinSpaces(items, indent)
	}
	return s.list(items, indent)
}

// 🔄 Substitute replaces every token of style found in tmpl with its value from c.
// The template is scanned once: inserted values are not searched for tokens.
// Unknown tokens stay as they are.
func Substitute(tmpl string, c Context, style Style) string {
	if len(c) == 0 || style.Open == "" {
		return tmpl
	}

	keys := c.Keys()
	// longer tokens first so a key never shadows one it prefixes
	sort.SliceStable(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	var b strings.Builder
	pos := 0
	for {
		idx := strings.Index(tmpl[pos:], style.Open)
		if idx < 0 {
			break
		}
		start := pos + idx
		b.WriteString(tmpl[pos:start])

		matched := false
		for _, key := range keys {
			token := style.Token(key)
			if strings.HasPrefix(tmpl[start:], token) {
				b.WriteString(style.render(c[key], leadingIndent(tmpl, start)))
				pos = start + len(token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteString(style.Open)
			pos = start + len(style.Open)
		}
	}
	b.WriteString(tmpl[pos:])
	return b.String()
}

// replaceToken replaces each occurrence of token scanning left to right. The
// replacement is computed from the whitespace that precedes the token on its
// line, or "" when the token is not the first thing on the line.
func replaceToken(s, token string, replacement func(indent string) string) (string, int) {
	if token == "" {
		return s, 0
	}

	var b strings.Builder
	count := 0
	pos := 0
	for {
		idx := strings.Index(s[pos:], token)
		if idx < 0 {
			break
		}
		start := pos + idx
		b.WriteString(s[pos:start])
		b.WriteString(replacement(leadingIndent(s, start)))
		pos = start + len(token)
		count++
	}
	if count == 0 {
		return s, 0
	}
	b.WriteString(s[pos:])
	return b.String(), count
}

func leadingIndent(s string, at int) string {
	lineStart := strings.LastIndexByte(s[:at], '\n') + 1
	prefix := s[lineStart:at]
	if strings.TrimLeft(prefix, " \t") != "" {
		return ""
	}
	return prefix
}

func joinSpaces(items []string, _ string) string {
	return strings.Join(items, " ")
}

func joinLines(items []string, indent string) string {
	return strings.Join(items, "\n"+indent)
}

func joinQuoted(items []string, _ string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return strings.Join(quoted, ", ")
}
