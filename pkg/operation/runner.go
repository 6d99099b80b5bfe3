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

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/makedistrib/pkg/log"
)

// ErrSkipped is returned by a step that does not apply to the run
var ErrSkipped = errors.Base("step skipped")

// 📋 Result records how one step ended
type Result struct {
	Name    string
	Skipped bool
	Took    time.Duration
}

// 🏃 Runner executes operations in order
type Runner struct {
	console *log.Logger
	results []Result
}

// 🏗️ NewRunner creates a new runner. console may be nil.
func NewRunner(console *log.Logger) *Runner {
	if console == nil {
		console = log.Discard()
	}
	return &Runner{console: console}
}

// 🏃 Run executes ops one after another and stops at the first error
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("before step %s: %w", op.Name(), err)
		}
		if err := r.runOne(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, op Operation) error {
	logger := zerolog.Ctx(ctx).With().Str("step", op.Name()).Logger()
	ctx = logger.WithContext(ctx)

	r.console.StartSection(ctx, log.Section{Name: op.Name()})
	start := time.Now()

	err := op.Execute(ctx)
	took := time.Since(start)
	r.console.EndSection(ctx, took)

	switch {
	case errors.Is(err, ErrSkipped):
		logger.Debug().Msg("step skipped")
		r.results = append(r.results, Result{Name: op.Name(), Skipped: true, Took: took})
		return nil
	case err != nil:
		return errors.WithStack(&StepError{Step: op.Name(), Err: err})
	}

	logger.Debug().Dur("took", took).Msg("step finished")
	r.results = append(r.results, Result{Name: op.Name(), Took: took})
	return nil
}

// Results returns the finished and skipped steps in run order
func (r *Runner) Results() []Result {
	out := make([]Result, len(r.results))
	copy(out, r.results)
	return out
}
