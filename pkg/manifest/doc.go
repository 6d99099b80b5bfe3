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

/*
Package manifest defines transfer entries and loads them from declarative files.

	            +---------------+
	            |   Manifest    |
	            | (src, dst,    |
	            |  entries)     |
	            +-------+-------+
	                    |
	      +-------------+--------------+
	      |             |              |
	+-----+----+  +-----+----+  +------+-------+
	|   HCL    |  |   YAML   |  |    JSON      |
	|  Parser  |  |  Parser  |  |   Parser     |
	+----------+  +----------+  +--------------+
	                    |
	            +-------+-------+
	            | transfer.cfg  |
	            |   (legacy)    |
	            +---------------+

🎯 Purpose:
- Strongly typed transfer entries validated at load time
- Named groups of entries ("binaries", "resources", "symbols", ...)
- Conditions on entries evaluated against the current selection

🔄 Flow:
1. A parser is picked by file extension
2. Entries are decoded strictly (unknown fields fail)
3. `when` expressions are evaluated against an Env, false entries are dropped
4. Every entry is validated, a bad entry fails the whole load
5. Groups are bound to a source and destination directory with Set.Bind

⚡ Entry rules:
- path is relative, non-empty and never escapes with ".."
- out_path defaults to path
- delete is a doublestar glob relative to the copied directory
- post_process is one of "", "normalize_headers", "clang_format"
*/
package manifest
