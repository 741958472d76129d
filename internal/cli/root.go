// Package cli implements the scorecard-export command line tool: offline
// exports of YAML record files and replaying them against a running server.
package cli

import (
	"log/slog"

	"github.com/okian/scorecard/pkg/logger"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "scorecard-export",
		Short:        "Export scorecard and feedback records without a browser",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithWriter(cmd.ErrOrStderr(), logger.FormatText); err != nil {
				return err
			}
			if verbose {
				logger.SetLevel(slog.LevelDebug)
			} else {
				logger.SetLevel(slog.LevelWarn)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newExportCommand())
	root.AddCommand(newSubmitCommand())
	root.AddCommand(newVariantsCommand())
	return root
}
