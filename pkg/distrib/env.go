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

package distrib

import (
	"os"

	"github.com/joho/godotenv"
	"gitlab.com/tozd/go/errors"
)

// Environment variables read during a run
const (
	EnvClangFormat = "CEF_COMMAND_CLANG_FORMAT"
)

// 🌍 LoadEnv returns a lookup over the process environment, falling back to the
// values of an optional dotenv file. The process environment wins.
func LoadEnv(file string) (func(string) string, error) {
	fromFile := map[string]string{}
	if file != "" {
		vals, err := godotenv.Read(file)
		if err != nil {
			return nil, errors.Errorf("reading env file %s: %w", file, err)
		}
		fromFile = vals
	}

	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fromFile[key]
	}, nil
}
