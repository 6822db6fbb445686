// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/validate-commit/cmd/validate-commit/internal/clierr"
	"github.com/bartekus/validate-commit/internal/commitmsg"
	"github.com/bartekus/validate-commit/internal/config"
	"github.com/bartekus/validate-commit/internal/logger"
	"github.com/bartekus/validate-commit/internal/projectroot"
)

// addConfigFlags registers the flags that shape the validator. They are
// persistent so subcommands share them.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("repo", ".", "Repository directory used for config discovery and history")
	f.String("config", "", "Path to a .yaml, .yml or .toml config (default: discovered at the repository root)")
	f.Bool("no-config", false, "Ignore config files")
	f.StringSlice("structure", nil, "Structure name allowed to keep its casing (repeatable)")
	f.StringSlice("proper-noun", nil, "Proper noun allowed capitalized in the summary (repeatable)")
}

// loadOptions resolves the config file and merges the command-line names.
func loadOptions(cmd *cobra.Command) (commitmsg.Options, error) {
	log := logger.Get(cmd.Context())

	repo, _ := cmd.Flags().GetString("repo")
	path, _ := cmd.Flags().GetString("config")
	noConfig, _ := cmd.Flags().GetBool("no-config")
	structures, _ := cmd.Flags().GetStringSlice("structure")
	nouns, _ := cmd.Flags().GetStringSlice("proper-noun")

	var (
		cfg *config.Config
		err error
	)
	switch {
	case noConfig:
		cfg = &config.Config{}
	case path != "":
		cfg, err = config.Load(path)
	default:
		root, ferr := projectroot.Find(repo)
		if errors.Is(ferr, projectroot.ErrNotFound) {
			log.Debug("no repository root, using empty config", "from", repo)
			cfg = &config.Config{}
			break
		}
		if ferr != nil {
			return commitmsg.Options{}, clierr.Failuref(ferr, "locating repository root")
		}
		cfg, err = config.Discover(root)
	}
	if err != nil {
		return commitmsg.Options{}, clierr.Failuref(err, "loading config")
	}

	cfg.Merge(structures, nouns)
	log.Debug("validator configured",
		"config", cfg.Path,
		"structures", len(cfg.Structures),
		"proper_nouns", len(cfg.ProperNouns))
	return cfg.Options(), nil
}

func readMessage(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", clierr.Failuref(err, "reading stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's commit message file
	if err != nil {
		return "", clierr.Failuref(err, "reading commit message")
	}
	return string(data), nil
}

// validateOutput is the JSON shape of a single validation.
type validateOutput struct {
	Valid     bool               `json:"valid"`
	Message   *commitmsg.Message `json:"message,omitempty"`
	Violation *violationOutput   `json:"violation,omitempty"`
}

type violationOutput struct {
	Kind     commitmsg.Kind `json:"kind"`
	ExitCode int            `json:"exit_code"`
	Line     int            `json:"line,omitempty"`
	Word     string         `json:"word,omitempty"`
	Reason   string         `json:"reason"`
}

func runValidate(cmd *cobra.Command, path, format string) error {
	if format != "text" && format != "json" {
		return clierr.New(clierr.ExitFailure, fmt.Sprintf("invalid format: %s (must be 'text' or 'json')", format))
	}

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	text, err := readMessage(cmd, path)
	if err != nil {
		return err
	}

	opts.StripComments = true
	msg, verr := commitmsg.New(opts).Validate(text)
	logger.Get(cmd.Context()).Debug("validated", "path", path, "ok", verr == nil)

	switch format {
	case "json":
		out := validateOutput{Valid: verr == nil, Message: msg}
		var v *commitmsg.Violation
		if errors.As(verr, &v) {
			out.Violation = &violationOutput{
				Kind:     v.Kind,
				ExitCode: v.ExitCode(),
				Line:     v.Line,
				Word:     v.Word,
				Reason:   v.Reason,
			}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return clierr.Failuref(err, "marshaling JSON")
		}
		data = append(data, '\n')
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return clierr.Failuref(err, "writing JSON output")
		}
	default:
		if verr == nil {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", msg.Header())
		}
	}

	if verr != nil {
		return fmt.Errorf("%s: %w", path, verr)
	}
	return nil
}
