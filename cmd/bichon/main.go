// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bichon",
	Short: "Shell-coupled tetrahedral mesh refinement",
	Long: `bichon refines a tetrahedral mesh whose boundary is pinned to a
prism shell, keeping the volume and its tracked surface consistent
through every local edit.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
