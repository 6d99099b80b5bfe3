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
Package transfer executes manifests against the filesystem.

	+-----------+     +-------------+     +-------------+     +--------------+
	| Manifest  | --> |  exists?    | --> |   copy      | --> | delete glob  |
	| entries   |     | required /  |     | file / dir  |     | (files only) |
	+-----------+     | conditional |     +------+------+     +--------------+
	                  +-------------+            |
	                                      +------+-------+
	                                      | post process |
	                                      | headers/fmt  |
	                                      +--------------+

Rules:
  - A missing required source stops the call with *MissingRequiredPathError.
    Entries after it are not touched.
  - A missing conditional source is recorded in the Report and creates nothing.
  - Delete globs are matched relative to the copied directory. When any match is a
    directory the call fails with *RefusedDirectoryDeletionError and nothing is removed.
  - Two entries writing the same destination are recorded as a Collision and
    logged as a warning. The later entry wins.
*/
package transfer
