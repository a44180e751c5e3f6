// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demangle collapses compiler-introduced symbol name clones back
// to the function they originate from, so that the object symbol table,
// the RTL call dump, and the .su stack-estimate file can all agree on one
// name for the same function.
package demangle

import "regexp"

// constprop matches the suffix GCC appends to a constant-propagation
// clone of a function: ".constprop" optionally followed by ".<digits>".
var constprop = regexp.MustCompile(`\.constprop(\.[0-9]+)?$`)

// Func strips a trailing constant-propagation suffix from name.
func Func(name string) string {
	return constprop.ReplaceAllString(name, "")
}
