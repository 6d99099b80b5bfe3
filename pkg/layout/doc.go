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

// Package layout describes where things live in a project checkout and where
// they go in a binary distribution.
//
//	         Selection (platform, mode, arch, ozone)
//	                     │
//	    ┌────────────────┼─────────────────────┐
//	    ▼                ▼                     ▼
//	  Paths        embedded manifests     source groups
//	(src, cef,    (binaries, symbols,    (gypi variables ->
//	 out/*_GN_*)   resources, tools)      include/, tests/)
//
// The embedded manifests are HCL files evaluated with the selection's
// variables: platform, mode, arch, ozone, exe_suffix and script_suffix.
package layout
