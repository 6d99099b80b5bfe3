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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestRunnerRunsInOrder(t *testing.T) {
	ctx := testContext(t)
	var order []string
	step := func(name string) Operation {
		return New(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	r := NewRunner(nil)
	require.NoError(t, r.Run(ctx, step("readme"), step("headers"), step("binaries")))
	assert.Equal(t, []string{"readme", "headers", "binaries"}, order, "steps should run in order")

	results := r.Results()
	require.Len(t, results, 3)
	assert.Equal(t, "binaries", results[2].Name)
	assert.False(t, results[2].Skipped)
}

func TestRunnerStopsAtFirstError(t *testing.T) {
	ctx := testContext(t)
	ran := false
	boom := errors.New("missing libcef.so")

	r := NewRunner(nil)
	err := r.Run(ctx,
		New("binaries", func(context.Context) error { return boom }),
		New("archive", func(context.Context) error {
			ran = true
			return nil
		}),
	)
	require.Error(t, err)
	assert.False(t, ran, "later steps should not run")

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, "binaries", stepErr.Step)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "step binaries: missing libcef.so")
}

func TestRunnerSkips(t *testing.T) {
	ctx := testContext(t)
	ran := false

	r := NewRunner(nil)
	err := r.Run(ctx,
		When(false, New("docs", func(context.Context) error {
			ran = true
			return nil
		})),
		New("bazel", func(context.Context) error { return errors.Errorf("not standard: %w", ErrSkipped) }),
	)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, []Result{
		{Name: "docs", Skipped: true, Took: r.Results()[0].Took},
		{Name: "bazel", Skipped: true, Took: r.Results()[1].Took},
	}, r.Results())
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	err := NewRunner(nil).Run(ctx, New("readme", func(context.Context) error { return nil }))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
