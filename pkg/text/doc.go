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
Package text turns templates into build files.

	  +-----------+      +-----------+      +-------------+
	  |  Context  | ---> |   Style   | ---> | Substitute  |
	  | (gypi +   |      | $X$ $(X)  |      |  (one pass  |
	  |  version) |      | {{x}} ${x}|      |  per token) |
	  +-----------+      +-----------+      +------+------+
	                                               |
	                          +--------------------+-----------+
	                          |                                |
	                  +-------+--------+              +--------+--------+
	                  | ProcessTemplate|              | NormalizeIncludes|
	                  |  (*.in -> *)   |              | (header rewrite) |
	                  +----------------+              +-----------------+

🎯 Purpose:
- Replace placeholder tokens with values from a Context
- Render path lists the way each build system expects them
- Rewrite project include directives for the flattened distribution layout

📝 Rules:
- Tokens missing from the Context are left as literal text
- Each token is replaced in a single left-to-right pass, replaced text is never rescanned
- Substituting with an empty Context returns the input unchanged
*/
package text
