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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()

	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		// flag errors happen before RunE sets up the logger
		logger := zerolog.Ctx(cmd.Context())
		if logger.GetLevel() == zerolog.Disabled {
			l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
			logger = &l
		}
		logger.Error().Err(err).Msg("make distrib failed")
		os.Exit(1)
	}
}
