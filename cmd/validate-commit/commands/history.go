// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/validate-commit/cmd/validate-commit/internal/clierr"
	"github.com/bartekus/validate-commit/internal/commitmsg"
	"github.com/bartekus/validate-commit/internal/history"
	"github.com/bartekus/validate-commit/internal/projectroot"
	"github.com/bartekus/validate-commit/internal/report"
)

// NewHistoryCommand returns the `validate-commit history` command.
func NewHistoryCommand() *cobra.Command {
	var (
		format   string
		out      string
		maxCount int
	)

	cmd := &cobra.Command{
		Use:   "history [revision-range]",
		Short: "Validate the messages of existing commits",
		Long: `Validates every non-merge commit in a revision range (default HEAD).
Exits with the code of the first failing commit.`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			revRange := "HEAD"
			if len(args) == 1 {
				revRange = args[0]
			}

			render, err := historyRenderer(format)
			if err != nil {
				return err
			}

			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			repo, _ := cmd.Flags().GetString("repo")
			root, err := projectroot.Find(repo)
			if err != nil {
				return clierr.Failuref(err, "locating repository root")
			}

			src := history.NewGitSource(root, revRange, maxCount)
			rep, err := history.Check(cmd.Context(), src, commitmsg.New(opts))
			if err != nil {
				return clierr.Failuref(err, "checking history")
			}

			data, err := render(rep)
			if err != nil {
				return err
			}
			if out != "" {
				if err := report.WriteFile(out, data); err != nil {
					return clierr.Failuref(err, "writing report")
				}
			} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return clierr.Failuref(err, "writing report")
			}

			return rep.FirstFailure()
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or markdown")
	cmd.Flags().IntVar(&maxCount, "max-count", 0, "Maximum number of commits to check (0 = unlimited)")
	cmd.Flags().StringVar(&out, "out", "", "Write the report to this file instead of stdout")

	return cmd
}

func historyRenderer(format string) (func(*history.Report) ([]byte, error), error) {
	switch format {
	case "text":
		return func(r *history.Report) ([]byte, error) { return []byte(r.Text()), nil }, nil
	case "markdown":
		return func(r *history.Report) ([]byte, error) { return []byte(r.Markdown()), nil }, nil
	case "json":
		return func(r *history.Report) ([]byte, error) {
			data, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return nil, clierr.Failuref(err, "marshaling JSON")
			}
			return append(data, '\n'), nil
		}, nil
	default:
		return nil, clierr.New(clierr.ExitFailure, fmt.Sprintf("invalid format: %s (must be 'text', 'json' or 'markdown')", format))
	}
}
