package cmd

import (
	"errors"
	"fmt"

	"oli3d-catalog/internal/output"

	"github.com/spf13/cobra"
)

var ErrInvalidCatalog = errors.New("catalog is invalid")

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the data files for integrity problems",
		Long: `Check the data files for integrity problems.

Errors (duplicate ids, missing names or prices, unknown category
references, a missing "all" category) make the command fail.
Warnings (products without image or categories) are only reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := a.service()
			if err != nil {
				return err
			}
			format, err := a.format()
			if err != nil {
				return err
			}

			report := svc.Validate(cmd.Context())

			rows := make([][]string, 0, len(report.Errors)+len(report.Warnings))
			for _, e := range report.Errors {
				rows = append(rows, []string{"error", e})
			}
			for _, w := range report.Warnings {
				rows = append(rows, []string{"warning", w})
			}

			out := cmd.OutOrStdout()
			if err := output.Write(out, format, output.Table{
				Headers: []string{"Level", "Issue"},
				Rows:    rows,
				Value:   report,
			}); err != nil {
				return err
			}
			if format == output.FormatTable {
				fmt.Fprintf(out, "%d products, %d categories, %d errors, %d warnings\n",
					report.ProductCount, report.CategoryCount, len(report.Errors), len(report.Warnings))
			}

			if !report.Valid {
				return ErrInvalidCatalog
			}
			return nil
		},
	}
}
