// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/PeterZs/bichon/pass"
	"github.com/PeterZs/bichon/pkg/logging"
	"github.com/PeterZs/bichon/tetra"
)

var (
	optionsPath string
	logLevel    string
	jsonLogs    bool
	verify      bool

	refineCmd = &cobra.Command{
		Use:   "refine",
		Short: "Run the refinement passes on the built-in demo shell",
		RunE:  runRefine,
	}
)

func init() {
	refineCmd.Flags().StringVarP(&optionsPath, "options", "o", "", "yaml options file (defaults apply when empty)")
	refineCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	refineCmd.Flags().BoolVar(&jsonLogs, "json-logs", !isatty.IsTerminal(os.Stderr.Fd()), "emit JSON logs (default: on when stderr is not a terminal)")
	refineCmd.Flags().BoolVar(&verify, "verify", false, "audit the whole mesh after every accepted edit")
	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log := logging.New(logging.Config{Level: level, JSON: jsonLogs, Output: os.Stderr})

	opts := pass.DefaultOptions()
	if optionsPath != "" {
		if opts, err = pass.LoadOptions(optionsPath); err != nil {
			return err
		}
	}
	if verify {
		opts.Verify = true
	}

	mesh, err := pass.DemoMesh(tetra.WithLogger(log))
	if err != nil {
		return fmt.Errorf("build demo mesh: %w", err)
	}
	runner, err := pass.NewRunner(mesh, opts, log)
	if err != nil {
		return err
	}
	if err := runner.Refine(cmd.Context()); err != nil {
		return err
	}

	stats := runner.Stats()
	fmt.Fprintf(cmd.OutOrStdout(),
		"splits %d collapses %d edge-swaps %d face-swaps %d smooths %d rejected %d\n",
		stats.Splits, stats.Collapses, stats.EdgeSwaps, stats.FaceSwaps, stats.Smooths, stats.Rejected)
	fmt.Fprintf(cmd.OutOrStdout(), "verts %d tets %d cage-faces %d\n",
		len(mesh.Verts), len(mesh.Tets), mesh.Cage.FaceCount())
	return nil
}
