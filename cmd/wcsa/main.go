// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command wcsa computes a conservative upper bound on per-function
// stack usage for a compiled C program from its GCC/linker build
// artifacts.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if _, ok := err.(*stackBudgetExceededError); ok {
			appLog.Error(err.Error())
			os.Exit(3)
		}
		appLog.Error(err.Error())
		os.Exit(1)
	}
}
