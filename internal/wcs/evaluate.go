// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wcs computes the worst-case stack (WCS) depth of every
// function in a resolved call graph: a memoized depth-first traversal
// with an explicit path for cycle detection, absorbing UNBOUNDED on
// recursion and on indirect calls, and propagating (without absorbing)
// the unresolved-callee set.
package wcs

import "github.com/OpenTestJig/WorstCaseStackAnalyser/internal/callgraph"

// Evaluate computes Node.WCS for every function in g except WEAK
// functions the RTL dump never visited (rule 2), which are left without
// a WCS. g must already have been through Graph.Resolve.
func Evaluate(g *callgraph.Graph) {
	path := map[*callgraph.Node]bool{}
	for _, n := range g.AllNodes() {
		evaluate(n, path)
	}
}

func evaluate(n *callgraph.Node, path map[*callgraph.Node]bool) {
	// Rule 1: memoization.
	if n.HasWCS {
		return
	}

	// Rule 2: a WEAK symbol the RTL dump never visited is a stub
	// expected to be displaced at link time; it contributes nothing.
	if n.Binding == callgraph.Weak && !n.HasCallInfo {
		return
	}

	// Rule 3: an indirect call bounds nothing.
	if n.HasIndirectCall {
		n.WCS, n.HasWCS = callgraph.Unbounded, true
		return
	}

	// Rule 4: direct or mutual recursion.
	if path[n] {
		n.WCS, n.HasWCS = callgraph.Unbounded, true
		return
	}

	// Rule 5: DFS over resolved callees.
	path[n] = true
	maxChild := callgraph.Bounded(0)
	unbounded := false
	for _, callee := range n.ResolvedCalls {
		evaluate(callee, path)

		for u := range callee.UnresolvedCalls {
			n.UnresolvedCalls[u] = struct{}{}
		}

		if callee.WCS.IsUnbounded() {
			unbounded = true
			break
		}
		maxChild = callgraph.Max(maxChild, callee.WCS)
	}
	delete(path, n)

	// Rule 6.
	switch {
	case unbounded:
		n.WCS, n.HasWCS = callgraph.Unbounded, true
	case n.HasLocalStack:
		n.WCS, n.HasWCS = maxChild.Add(n.LocalStack), true
	default:
		n.WCS, n.HasWCS = callgraph.Unbounded, true
	}
}
