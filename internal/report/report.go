// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report turns an evaluated call graph into a ranked list of
// rows and renders it as a table or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/callgraph"
)

// Row is one function's worst-case-stack result.
type Row struct {
	TU        string   `json:"tu"`
	Name      string   `json:"name"`
	Unbounded bool     `json:"unbounded"`
	Bytes     int      `json:"bytes,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// Build ranks every evaluated function worst-case first. WEAK globals
// that were never displaced by a strong definition are excluded unless
// includeWeak is set, since they're link-time stubs rather than
// functions that end up in the final binary.
func Build(g *callgraph.Graph, includeWeak bool) []Row {
	var rows []Row
	for _, n := range g.AllNodes() {
		if !n.HasWCS {
			continue
		}
		if n.Binding == callgraph.Weak && !includeWeak {
			continue
		}
		// n.TU is the graph's TU key, the full base path discover.Find
		// assigned for uniqueness; only here, at the display boundary, is
		// it cut down to the basename a report reader actually wants.
		row := Row{TU: filepath.Base(n.TU), Name: n.Name}
		if n.WCS.IsUnbounded() {
			row.Unbounded = true
		} else {
			row.Bytes = n.WCS.Bytes()
		}
		if len(n.UnresolvedCalls) > 0 {
			for name := range n.UnresolvedCalls {
				row.Unresolved = append(row.Unresolved, name)
			}
			sort.Strings(row.Unresolved)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Unbounded != b.Unbounded {
			return a.Unbounded
		}
		if !a.Unbounded && a.Bytes != b.Bytes {
			return a.Bytes > b.Bytes
		}
		if a.TU != b.TU {
			return a.TU < b.TU
		}
		return a.Name < b.Name
	})
	return rows
}

// WriteTable renders rows as an aligned, human-readable table.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "WCS\tFUNCTION\tTU\tUNRESOLVED")
	for _, r := range rows {
		wcs := fmt.Sprintf("%d", r.Bytes)
		if r.Unbounded {
			wcs = "UNBOUNDED"
		}
		unresolved := "-"
		if len(r.Unresolved) > 0 {
			unresolved = fmt.Sprintf("%v", r.Unresolved)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", wcs, r.Name, r.TU, unresolved)
	}
	return tw.Flush()
}

// WriteJSON renders rows as a JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if rows == nil {
		rows = []Row{}
	}
	return enc.Encode(rows)
}

// ExceedsThreshold reports whether any bounded row exceeds maxBytes.
// Rows that are already UNBOUNDED always count as exceeding it.
func ExceedsThreshold(rows []Row, maxBytes int) bool {
	for _, r := range rows {
		if r.Unbounded || r.Bytes > maxBytes {
			return true
		}
	}
	return false
}
