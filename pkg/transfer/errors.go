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

package transfer

import "fmt"

// ❌ MissingRequiredPathError is returned when a non-conditional source does not exist
type MissingRequiredPathError struct {
	Manifest string
	Path     string
}

func (e *MissingRequiredPathError) Error() string {
	return fmt.Sprintf("missing required path: %s (manifest %s)", e.Path, e.Manifest)
}

// ❌ RefusedDirectoryDeletionError is returned when a delete glob matches a directory
type RefusedDirectoryDeletionError struct {
	Path string
	Glob string
}

func (e *RefusedDirectoryDeletionError) Error() string {
	return fmt.Sprintf("refusing to delete directory: %s (glob %q)", e.Path, e.Glob)
}
