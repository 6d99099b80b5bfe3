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
	"fmt"
)

// 🔧 Operation is one named step
type Operation interface {
	Name() string
	Execute(ctx context.Context) error
}

// 🏭 New wraps a function as an operation
func New(name string, fn func(ctx context.Context) error) Operation {
	return &funcOperation{name: name, fn: fn}
}

// When returns op if cond holds, otherwise an operation that reports itself skipped
func When(cond bool, op Operation) Operation {
	if cond {
		return op
	}
	return New(op.Name(), func(context.Context) error { return ErrSkipped })
}

type funcOperation struct {
	name string
	fn   func(ctx context.Context) error
}

func (o *funcOperation) Name() string { return o.name }

func (o *funcOperation) Execute(ctx context.Context) error {
	return o.fn(ctx)
}

// ❌ StepError is returned when a step fails
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
