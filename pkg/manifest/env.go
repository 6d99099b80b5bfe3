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

package manifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gitlab.com/tozd/go/errors"
)

// 🌍 Env holds the variables visible to manifest expressions (mode, arch, ozone, ...)
type Env struct {
	vars map[string]cty.Value
}

// 🏭 NewEnv creates an empty environment
func NewEnv() *Env {
	return &Env{vars: map[string]cty.Value{}}
}

// Set adds a string variable
func (e *Env) Set(name, value string) *Env {
	e.vars[name] = cty.StringVal(value)
	return e
}

// SetBool adds a boolean variable
func (e *Env) SetBool(name string, value bool) *Env {
	e.vars[name] = cty.BoolVal(value)
	return e
}

// EvalContext returns an HCL evaluation context over the variables
func (e *Env) EvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return &hcl.EvalContext{Variables: vars}
}

// 🎯 Eval evaluates a condition. A null expression (an absent `when`) is true.
func (e *Env) Eval(expr hcl.Expression) (bool, error) {
	if expr == nil {
		return true, nil
	}

	val, diags := expr.Value(e.EvalContext())
	if diags.HasErrors() {
		return false, errors.Errorf("evaluating condition: %s", diags.Error())
	}
	if val.IsNull() {
		return true, nil
	}
	if !val.IsWhollyKnown() {
		return false, errors.Errorf("condition is not known")
	}

	b, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, errors.Errorf("condition must be a bool: %w", err)
	}
	return b.True(), nil
}

// EvalString parses a condition written as text (YAML and JSON manifests) and evaluates it.
// An empty string is true.
func (e *Env) EvalString(src string) (bool, error) {
	if src == "" {
		return true, nil
	}
	expr, diags := hclsyntax.ParseExpression([]byte(src), "when", hcl.InitialPos)
	if diags.HasErrors() {
		return false, errors.Errorf("parsing condition %q: %s", src, diags.Error())
	}
	ok, err := e.Eval(expr)
	if err != nil {
		return false, errors.Errorf("condition %q: %w", src, err)
	}
	return ok, nil
}
