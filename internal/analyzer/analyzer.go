// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analyzer wires discovery, parsing, graph construction, and
// evaluation together into a single entry point for the CLI.
package analyzer

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/callgraph"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/discover"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/objsym"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/report"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/rtldump"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/sudump"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/wcs"
)

// Options configures a single analysis run.
type Options struct {
	IncludeWeak bool
}

// Run discovers translation units under dirs, builds the whole-program
// call graph, evaluates worst-case stack for every function, and
// returns the ranked report rows.
func Run(dirs []string, opts Options, log *slog.Logger) ([]report.Row, error) {
	tus, err := discover.Find(dirs)
	if err != nil {
		return nil, err
	}
	log.Debug("translation units discovered", slog.Int("count", len(tus)))

	g := callgraph.New()
	for _, tu := range tus {
		if err := ingestSymbols(g, tu, log); err != nil {
			return nil, fmt.Errorf("%s: %w", tu, err)
		}
	}
	for _, tu := range tus {
		if err := ingestCalls(g, tu, log); err != nil {
			return nil, fmt.Errorf("%s: %w", tu, err)
		}
		if err := ingestStackEstimates(g, tu, log); err != nil {
			return nil, fmt.Errorf("%s: %w", tu, err)
		}
	}

	g.Resolve()
	wcs.Evaluate(g)
	rows := report.Build(g, opts.IncludeWeak)

	log.Info("analysis complete",
		slog.Int("translation_units", len(tus)),
		slog.Int("functions", len(rows)),
	)
	return rows, nil
}

func ingestSymbols(g *callgraph.Graph, tu discover.TU, log *slog.Logger) error {
	f, err := os.Open(tu.ObjPath())
	if err != nil {
		return err
	}
	defer f.Close()

	funcs, err := objsym.Read(tu.ObjPath(), f)
	if err != nil {
		return err
	}
	for _, sym := range funcs {
		if err := g.AddSymbol(tu.String(), sym.Name, sym.Binding); err != nil {
			return err
		}
		log.Debug("symbol added", slog.String("tu", tu.String()), slog.String("name", sym.Name), slog.String("binding", sym.Binding.String()))
	}
	return nil
}

func ingestCalls(g *callgraph.Graph, tu discover.TU, log *slog.Logger) error {
	f, err := os.Open(tu.RTLPath())
	if err != nil {
		return err
	}
	defer f.Close()

	funcs, err := rtldump.Read(f)
	if err != nil {
		return err
	}
	log.Debug("call lists ingested", slog.String("tu", tu.String()), slog.Int("functions", len(funcs)))
	for _, fn := range funcs {
		if err := g.SetCalls(tu.String(), fn.Name, fn.Direct, fn.HasIndirectCall); err != nil {
			return err
		}
	}
	return nil
}

func ingestStackEstimates(g *callgraph.Graph, tu discover.TU, log *slog.Logger) error {
	f, err := os.Open(tu.SuPath())
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := sudump.Read(f)
	if err != nil {
		return err
	}
	log.Debug("stack estimates ingested", slog.String("tu", tu.String()), slog.Int("entries", len(entries)))
	for _, e := range entries {
		if err := g.SetStackEstimate(tu.String(), e.Function, e.Bytes, e.Qualifier); err != nil {
			return err
		}
	}
	return nil
}
