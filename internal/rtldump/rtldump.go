// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rtldump parses a GCC "*.c.249r.dfinish" RTL dump: a per-function
// listing of direct and indirect call sites. Names are returned exactly as
// written; demangling is the call graph's concern (internal/callgraph),
// applied uniformly across the object, RTL, and .su readers so that their
// names join on the same key.
package rtldump

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

var (
	// ;; Function foo (foo, funcdef_no=0, decl_uid=...) ...
	functionHeader = regexp.MustCompile(`^;; Function (.*?)\s+\((\S+)(,.*)?\).*$`)
	// (call ... "target" ...)
	directCall = regexp.MustCompile(`^.*\(call.*"(.*)".*$`)
	// any other line mentioning a call, e.g. through a function pointer.
	indirectCall = regexp.MustCompile(`^.*call .*$`)
)

// Func is the call information recorded for one function in the dump.
type Func struct {
	Name            string
	Direct          []string
	HasIndirectCall bool
}

// Read parses an RTL dump, returning one Func per function header
// encountered, in file order. A call site is classified as indirect only
// when it isn't already matched as a direct call — the indirect pattern
// is a superset of the direct one, so the two must be tried in this
// order and treated as mutually exclusive.
func Read(r io.Reader) ([]Func, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var funcs []Func
	var cur *Func
	for scanner.Scan() {
		line := scanner.Text()

		if m := functionHeader.FindStringSubmatch(line); m != nil {
			funcs = append(funcs, Func{Name: m[1]})
			cur = &funcs[len(funcs)-1]
			continue
		}
		if cur == nil {
			// Lines before the first function header (dump banners,
			// blank lines) carry no call information.
			continue
		}
		if m := directCall.FindStringSubmatch(line); m != nil {
			cur.Direct = append(cur.Direct, m[1])
			continue
		}
		if indirectCall.MatchString(line) {
			cur.HasIndirectCall = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading RTL dump: %w", err)
	}
	return funcs, nil
}
