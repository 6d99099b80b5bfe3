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

// Package version formats the version strings of a distribution from the
// chromium VERSION file and the project checkout.
package version

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
	"gitlab.com/tozd/go/errors"
)

// 🔢 Chromium is the four part chromium version
type Chromium struct {
	Major int
	Minor int
	Build int
	Patch int
}

func (c Chromium) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", c.Major, c.Minor, c.Build, c.Patch)
}

// 📄 ReadChromium parses a chrome/VERSION file (MAJOR=, MINOR=, BUILD=, PATCH= lines)
func ReadChromium(path string) (Chromium, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		return Chromium{}, errors.Errorf("reading %s: %w", path, err)
	}

	var c Chromium
	for key, dst := range map[string]*int{"MAJOR": &c.Major, "MINOR": &c.Minor, "BUILD": &c.Build, "PATCH": &c.Patch} {
		raw, ok := vals[key]
		if !ok {
			return Chromium{}, errors.Errorf("%s: missing %s", path, key)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Chromium{}, errors.Errorf("%s: %s: %w", path, key, err)
		}
		*dst = n
	}
	return c, nil
}

// 🏷️ Formatter builds the project version strings
type Formatter struct {
	Chromium     Chromium
	Hash         string
	CommitNumber int
}

// Long is the full version, used in the output directory name and README
//
//	<major>.0.<commit number>+g<hash>+chromium-<chromium version>
func (f Formatter) Long() string {
	return fmt.Sprintf("%s+g%s+chromium-%s", f.Short(), shortHash(f.Hash), f.Chromium)
}

// Short drops the hash and chromium parts of Long
func (f Formatter) Short() string {
	return fmt.Sprintf("%d.0.%d", f.Chromium.Major, f.CommitNumber)
}

// Plist is the numeric form accepted by Info.plist bundle versions
func (f Formatter) Plist() string {
	return f.Short()
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
