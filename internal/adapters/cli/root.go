// Package cli exposes the classification pipeline as a command line tool.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kirillkom/resume-classifier/internal/bootstrap"
)

const app = "resumectl"

// Actual version can be specified in build command.
var version = "unknown"

// AppLoader builds the wired application. Commands call it lazily so that
// `version` works without model artifacts.
type AppLoader func(ctx context.Context) (*bootstrap.App, error)

func NewRootCommand(load AppLoader) *cobra.Command {
	root := &cobra.Command{
		Use:           app,
		Short:         "resumectl classifies resumes into job categories with the fitted model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newClassifyCommand(load),
		newCategoriesCommand(load),
		newExportCommand(load),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
