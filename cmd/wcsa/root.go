// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/analyzer"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/config"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/logging"
	"github.com/OpenTestJig/WorstCaseStackAnalyser/internal/report"
)

// appLog is the logger main() reaches for once Execute returns a
// terminal error; run() replaces it with a verbosity-resolved logger as
// soon as it knows whether -v was set.
var appLog = logging.New(os.Stderr, false)

// stackBudgetExceededError signals that a report row broke the
// --max-stack-bytes budget; main() turns this into exit code 3.
type stackBudgetExceededError struct {
	MaxBytes int
}

func (e *stackBudgetExceededError) Error() string {
	return fmt.Sprintf("one or more functions exceed the %d byte stack budget", e.MaxBytes)
}

type flags struct {
	maxStackBytes int
	includeWeak   bool
	format        string
	configPath    string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "wcsa <dir>...",
		Short: "Compute worst-case stack usage across a compiled program",
		Long: "wcsa scans directories of GCC build artifacts (.o object files,\n" +
			".su stack-usage files, and .c.249r.dfinish RTL dumps), builds the\n" +
			"whole-program call graph, and reports a conservative upper bound on\n" +
			"stack consumption for every function.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, dirs []string) error {
			return run(cmd, dirs, &f)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().IntVar(&f.maxStackBytes, "max-stack-bytes", 0, "fail if any function's worst-case stack exceeds this many bytes (0 disables the check)")
	cmd.Flags().BoolVar(&f.includeWeak, "include-weak", false, "include un-overridden weak symbols in the report")
	cmd.Flags().StringVar(&f.format, "format", "table", `report format: "table" or "json"`)
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to a YAML file of default option values")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, dirs []string, f *flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	opts := resolveOptions(cmd, f, cfg)
	log := logging.New(os.Stderr, opts.verbose)
	appLog = log

	rows, err := analyzer.Run(dirs, analyzer.Options{IncludeWeak: opts.includeWeak}, log)
	if err != nil {
		return err
	}

	var writeErr error
	switch opts.format {
	case "json":
		writeErr = report.WriteJSON(cmd.OutOrStdout(), rows)
	case "table", "":
		writeErr = report.WriteTable(cmd.OutOrStdout(), rows)
	default:
		return fmt.Errorf("unknown --format %q (want table or json)", opts.format)
	}
	if writeErr != nil {
		return writeErr
	}

	if opts.maxStackBytes > 0 && report.ExceedsThreshold(rows, opts.maxStackBytes) {
		return &stackBudgetExceededError{MaxBytes: opts.maxStackBytes}
	}
	return nil
}

// resolvedOptions merges config-file defaults with the flags the user
// actually typed; an explicitly set flag always wins.
type resolvedOptions struct {
	maxStackBytes int
	includeWeak   bool
	format        string
	verbose       bool
}

func resolveOptions(cmd *cobra.Command, f *flags, cfg config.Config) resolvedOptions {
	out := resolvedOptions{
		maxStackBytes: cfg.MaxStackBytes,
		includeWeak:   cfg.IncludeWeak,
		format:        cfg.Format,
		verbose:       cfg.Verbose,
	}
	if cmd.Flags().Changed("max-stack-bytes") {
		out.maxStackBytes = f.maxStackBytes
	}
	if cmd.Flags().Changed("include-weak") {
		out.includeWeak = f.includeWeak
	}
	if cmd.Flags().Changed("format") {
		out.format = f.format
	}
	if cmd.Flags().Changed("verbose") {
		out.verbose = f.verbose
	}
	if out.format == "" {
		out.format = "table"
	}
	return out
}
