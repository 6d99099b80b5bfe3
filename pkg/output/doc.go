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
Package output owns the directories a run creates and everything written into them.

🎯 Purpose:
- Creates fresh top-level output directories (a stale one is removed first)
- Remembers them in creation order, which is the archive order
- Writes generated files atomically
- Records the status of every file the run touched

🔄 Flow:
1. The orchestrator creates the main, symbols and docs directories
2. Transfers and generated files report into the tree
3. The archive step reads Dirs()

🔍 Example:

	tree, err := output.New("/build/distrib")
	dir, err := tree.Create(ctx, "cef_binary_1.0_linux64")
	err = tree.WriteFile(ctx, filepath.Join(dir, "README.txt"), readme)
	for _, d := range tree.Dirs() { ... }
*/
package output
