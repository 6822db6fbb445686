// SPDX-License-Identifier: AGPL-3.0-or-later

/*
validate-commit - checks commit messages against the Type(scope): description
convention and its casing rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra commands of validate-commit.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bartekus/validate-commit/internal/logger"
)

// NewRootCmd constructs the validate-commit root command. Run with a path it
// validates that commit message file.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("VALIDATE_COMMIT_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	var format string

	cmd := &cobra.Command{
		Use:   "validate-commit [flags] <path-to-commit-msg-file>",
		Short: "Validate a commit message against the Type(scope): description convention",
		Long: `Validates a commit message file (use - for stdin).

Exit codes:
  0  message is valid
  1  malformed header
  2  type casing
  3  description casing
  4  summary casing
  5  footer casing
  6  usage, I/O or configuration error`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			errOut := cmd.ErrOrStderr()
			cmd.SetContext(logger.Put(cmd.Context(), logger.New(errOut, verbose, colorEnabled(errOut))))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], format)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	addConfigFlags(cmd)

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of validate-commit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "validate-commit version %s\n", version)
		},
	})
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
