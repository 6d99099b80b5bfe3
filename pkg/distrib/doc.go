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
Package distrib assembles a binary distribution from a built project checkout.

🎯 Purpose:
- Validates the options before anything is written
- Reads versions, gypi variables and manifests into a RunContext
- Runs the steps of the selected mode and archives the results

🔄 Flow:
1. Options.Validate rejects bad flag combinations with a ConfigError
2. NewRunContext resolves paths, revisions and the output directory name
3. Steps copies README, sources, binaries, tools, docs and bazel files
4. Every output directory is archived beside itself unless disabled

🔍 Example:

	opts := distrib.Options{
		OutputDir:  "/tmp/dist",
		CefDir:     "/src/chromium/src/cef",
		Platform:   layout.Linux,
		X64Build:   true,
		NinjaBuild: true,
		Minimal:    true,
	}
	result, err := distrib.Run(ctx, opts)
*/
package distrib
