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
	"regexp"
	"strings"
)

// IncludeMarker is written on the line above every rewritten include directive.
const IncludeMarker = "// Include path modified for CEF Binary Distribution."

// ExemptIncludePrefix marks include paths that are already rooted correctly.
const ExemptIncludePrefix = "include/"

var includeDirective = regexp.MustCompile(`#include "([a-zA-Z0-9_/]+/+([a-zA-Z0-9_.]+))"`)

// ✂️ NormalizeIncludes rewrites #include "<dir>/<file>" into #include "<newPrefix><file>"
// for every directive whose path does not start with ExemptIncludePrefix.
// It returns the rewritten text and the number of directives changed.
func NormalizeIncludes(src, newPrefix string) (string, int) {
	count := 0
	out := includeDirective.ReplaceAllStringFunc(src, func(match string) string {
		m := includeDirective.FindStringSubmatch(match)
		if strings.HasPrefix(m[1], ExemptIncludePrefix) {
			return match
		}
		count++
		return IncludeMarker + "\n#include \"" + newPrefix + m[2] + "\""
	})
	return out, count
}
