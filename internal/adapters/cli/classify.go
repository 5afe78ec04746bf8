package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
)

func newClassifyCommand(load AppLoader) *cobra.Command {
	var showText bool

	cmd := &cobra.Command{
		Use:   "classify FILE",
		Short: "Classify one PDF, DOCX or TXT resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			a, err := load(cmd.Context())
			if err != nil {
				return err
			}

			outcome := a.ClassifyUC.Classify(cmd.Context(), filepath.Base(args[0]), bytes.NewReader(body))
			if !outcome.Succeeded() {
				return failureError(outcome)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:      %s (%s)\n", outcome.Filename, outcome.FileType)
			fmt.Fprintf(out, "category:  %s\n", outcome.Prediction.Category)
			fmt.Fprintf(out, "class id:  %d\n", outcome.Prediction.ClassID)
			if outcome.Extracted != nil {
				fmt.Fprintf(out, "units:     %d\n", outcome.Extracted.Units)
				for _, warning := range outcome.Extracted.Warnings {
					fmt.Fprintf(out, "warning:   %s\n", warning)
				}
				if showText {
					fmt.Fprintf(out, "\n%s\n", outcome.Extracted.Text)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showText, "show-text", false, "print the extracted text after the category")
	return cmd
}

func failureError(outcome domain.Outcome) error {
	if outcome.Failure == nil {
		return fmt.Errorf("classification of %s failed", outcome.Filename)
	}
	return fmt.Errorf("%s: %s", outcome.Failure.Kind, outcome.Failure.Message)
}

func newCategoriesCommand(load AppLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the category table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY")
			for _, category := range a.Categories.List() {
				fmt.Fprintf(w, "%d\t%s\n", category.ID, category.Name)
			}
			return w.Flush()
		},
	}
}
