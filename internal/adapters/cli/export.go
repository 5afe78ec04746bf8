package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kirillkom/resume-classifier/internal/infrastructure/export"
)

func newExportCommand(load AppLoader) *cobra.Command {
	var (
		out  string
		topN int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an XLSX workbook describing the loaded model artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd.Context())
			if err != nil {
				return err
			}

			buf, err := export.ModelWorkbook(a.Artifacts, a.Categories, topN)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			slog.Info("workbook_exported", "path", out, "bytes", buf.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "destination .xlsx file")
	cmd.Flags().IntVar(&topN, "top", export.DefaultTopTerms, "number of top-weighted terms per category")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
