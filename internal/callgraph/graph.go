// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package callgraph builds and resolves the whole-program call graph: it
// merges per-translation-unit symbol, call-list, and stack-estimate data,
// honoring the linker's one-definition rule with weak-override
// precedence, then binds each function's textual callees to graph nodes.
//
// The node layout is a flat collection of nodes with out-edges, except
// here a node is identified by (scope, name[, TU]) rather than a dense
// integer, since the scoping rules (global vs. per-TU local) are the
// whole point of this graph.
package callgraph

import (
	"fmt"

	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/demangle"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/objsym"
)

// Binding re-exports objsym's linker binding so callers don't need to
// import both packages.
type Binding = objsym.Binding

const (
	Local  = objsym.Local
	Global = objsym.Global
	Weak   = objsym.Weak
)

// Node is one function in the call graph.
type Node struct {
	Name    string
	TU      string
	Binding Binding

	LocalStack    int
	HasLocalStack bool
	StackQual     string

	DirectCalls     []string
	HasIndirectCall bool
	HasCallInfo     bool // true once the RTL dump has visited this function

	ResolvedCalls   []*Node
	UnresolvedCalls map[string]struct{}

	WCS    Stack
	HasWCS bool
}

// Graph is the whole-program call graph: a globals index and a
// TU-scoped locals index.
type Graph struct {
	globals map[string]*Node
	locals  map[string]map[string]*Node // name -> TU -> node
}

// New returns an empty call graph.
func New() *Graph {
	return &Graph{
		globals: map[string]*Node{},
		locals:  map[string]map[string]*Node{},
	}
}

// DuplicateGlobalError reports a non-WEAK global colliding with a
// previously seen global or local of the same name.
type DuplicateGlobalError struct {
	Name, TU, PrevTU string
}

func (e *DuplicateGlobalError) Error() string {
	return fmt.Sprintf("%s: multiple global declarations of %q (previous in %s)", e.TU, e.Name, e.PrevTU)
}

// DuplicateLocalError reports two LOCAL symbols of the same name in one
// TU.
type DuplicateLocalError struct {
	Name, TU string
}

func (e *DuplicateLocalError) Error() string {
	return fmt.Sprintf("%s: multiple local declarations of %q", e.TU, e.Name)
}

// UnknownBindingError reports a symbol binding outside
// {LOCAL, GLOBAL, WEAK}.
type UnknownBindingError struct {
	Name, TU string
	Binding  Binding
}

func (e *UnknownBindingError) Error() string {
	return fmt.Sprintf("%s: symbol %q has unknown binding %v", e.TU, e.Name, e.Binding)
}

// MissingFunctionError reports a function named in a call-list or
// stack-estimate file that has no symbol-table entry.
type MissingFunctionError struct {
	Name, TU, Source string
}

func (e *MissingFunctionError) Error() string {
	return fmt.Sprintf("%s: %s names function %q, which has no symbol-table entry", e.TU, e.Source, e.Name)
}

func newNode(name, tu string, binding Binding) *Node {
	return &Node{
		Name:            name,
		TU:              tu,
		Binding:         binding,
		UnresolvedCalls: map[string]struct{}{},
	}
}

// AddSymbol inserts a function symbol into the graph, implementing the
// linker-scoping insertion rules.
func (g *Graph) AddSymbol(tu, rawName string, binding Binding) error {
	name := demangle.Func(rawName)

	switch binding {
	case Global:
		if prev, ok := g.globals[name]; ok && prev.Binding != Weak {
			return &DuplicateGlobalError{Name: name, TU: tu, PrevTU: prev.TU}
		}
		for _, n := range g.locals[name] {
			if n.Binding != Weak {
				return &DuplicateGlobalError{Name: name, TU: tu, PrevTU: n.TU}
			}
		}
		g.globals[name] = newNode(name, tu, Global)

	case Local:
		byTU, ok := g.locals[name]
		if !ok {
			byTU = map[string]*Node{}
			g.locals[name] = byTU
		}
		if _, exists := byTU[tu]; exists {
			return &DuplicateLocalError{Name: name, TU: tu}
		}
		byTU[tu] = newNode(name, tu, Local)

	case Weak:
		if _, ok := g.globals[name]; !ok {
			g.globals[name] = newNode(name, tu, Weak)
		}

	default:
		return &UnknownBindingError{Name: name, TU: tu, Binding: binding}
	}
	return nil
}

// find implements the shared global-then-local-in-TU lookup used both to
// attach call-list/stack-estimate data to an existing node and, later, to
// resolve call edges.
func (g *Graph) find(tu, name string) *Node {
	if n, ok := g.globals[name]; ok {
		return n
	}
	if byTU, ok := g.locals[name]; ok {
		if n, ok := byTU[tu]; ok {
			return n
		}
	}
	return nil
}

// SetCalls attaches the RTL dump's call information (component C's
// output) to the function it describes.
func (g *Graph) SetCalls(tu, rawName string, rawDirect []string, hasIndirect bool) error {
	name := demangle.Func(rawName)
	n := g.find(tu, name)
	if n == nil {
		return &MissingFunctionError{Name: name, TU: tu, Source: "call-list"}
	}

	direct := make([]string, len(rawDirect))
	for i, c := range rawDirect {
		direct[i] = demangle.Func(c)
	}
	n.DirectCalls = direct
	n.HasIndirectCall = hasIndirect
	n.HasCallInfo = true
	return nil
}

// SetStackEstimate attaches the .su file's local-stack-size estimate
// (component D's output) to the function it describes.
func (g *Graph) SetStackEstimate(tu, rawName string, bytes int, qualifier string) error {
	name := demangle.Func(rawName)
	n := g.find(tu, name)
	if n == nil {
		return &MissingFunctionError{Name: name, TU: tu, Source: "stack-estimate"}
	}
	n.LocalStack = bytes
	n.HasLocalStack = true
	n.StackQual = qualifier
	return nil
}

// Resolve binds every function's textual direct calls to graph nodes.
// WEAK functions are skipped: a weak definition is expected to be
// displaced by a strong one at link time and contributes no edges to the
// final analysis.
func (g *Graph) Resolve() {
	for _, n := range g.AllNodes() {
		n.UnresolvedCalls = map[string]struct{}{}
		if n.Binding == Weak {
			continue
		}
		for _, call := range n.DirectCalls {
			if target := g.find(n.TU, call); target != nil {
				n.ResolvedCalls = append(n.ResolvedCalls, target)
			} else {
				n.UnresolvedCalls[call] = struct{}{}
			}
		}
	}
}

// AllNodes returns every node in the graph: every global, then every
// local (grouped by name). Within each group the order follows Go map
// iteration, so it can differ from one call to the next.
func (g *Graph) AllNodes() []*Node {
	nodes := make([]*Node, 0, len(g.globals))
	for _, n := range g.globals {
		nodes = append(nodes, n)
	}
	for _, byTU := range g.locals {
		for _, n := range byTU {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
