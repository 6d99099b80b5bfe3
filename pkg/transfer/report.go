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

import "github.com/walteh/makedistrib/pkg/manifest"

// Skip records a conditional entry whose source was missing
type Skip struct {
	Manifest string
	Entry    manifest.Entry
	Source   string
}

// Collision records two entries that wrote the same destination
type Collision struct {
	Dest     string
	Previous string
	Current  string
}

// 📊 Report summarizes one or more transfers
type Report struct {
	Skipped    []Skip
	Collisions []Collision

	FilesCopied       int
	DirsCopied        int
	FilesDeleted      int
	HeadersNormalized int
	FilesFormatted    int
}

// Add folds another report into r
func (r *Report) Add(other *Report) {
	if other == nil {
		return
	}
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Collisions = append(r.Collisions, other.Collisions...)
	r.FilesCopied += other.FilesCopied
	r.DirsCopied += other.DirsCopied
	r.FilesDeleted += other.FilesDeleted
	r.HeadersNormalized += other.HeadersNormalized
	r.FilesFormatted += other.FilesFormatted
}
