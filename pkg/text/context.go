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

package text

import (
	"sort"
	"strings"
)

// 📦 Value is a template variable: either a single string or a list of strings
type Value struct {
	scalar string
	items  []string
	list   bool
}

// 🏭 String creates a scalar value
func String(s string) Value {
	return Value{scalar: s}
}

// 🏭 List creates a list value
func List(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{items: cp, list: true}
}

// IsList reports whether the value holds a list
func (v Value) IsList() bool {
	return v.list
}

// Items returns the list items, or the scalar as a single item
func (v Value) Items() []string {
	if !v.list {
		return []string{v.scalar}
	}
	cp := make([]string, len(v.items))
	copy(cp, v.items)
	return cp
}

// String returns the scalar, or the list items joined by spaces
func (v Value) String() string {
	if v.list {
		return strings.Join(v.items, " ")
	}
	return v.scalar
}

// 🗺️ Context maps variable names to values
type Context map[string]Value

// 🔀 Merge returns a new context with the keys of each later context overriding earlier ones
func Merge(contexts ...Context) Context {
	out := Context{}
	for _, c := range contexts {
		for k, v := range c {
			out[k] = v
		}
	}
	return out
}

// Strings builds a context of scalar values
func Strings(m map[string]string) Context {
	out := make(Context, len(m))
	for k, v := range m {
		out[k] = String(v)
	}
	return out
}

// Keys returns the variable names in sorted order
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the list stored under name, or nil when the variable is absent
func (c Context) Lookup(name string) []string {
	v, ok := c[name]
	if !ok {
		return nil
	}
	return v.Items()
}
