package cmd

import (
	"oli3d-catalog/internal/contact"
	"oli3d-catalog/internal/output"

	"github.com/spf13/cobra"
)

func newMailtoCommand(a *app) *cobra.Command {
	var (
		quantity  int
		message   string
		recipient string
	)

	cmd := &cobra.Command{
		Use:   "mailto <product-id>",
		Short: "Print the contact link for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := a.service()
			if err != nil {
				return err
			}
			outFormat, err := a.format()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			p, err := svc.ProductByID(ctx, args[0])
			if err != nil {
				return err
			}

			to := recipient
			if to == "" {
				to = cfg.ContactEmail
			}
			href := contact.BuildMailto(to, contact.Inquiry{
				Product:    p,
				Quantity:   quantity,
				Message:    message,
				ShowPrices: svc.ShouldShowPrices(ctx),
			})

			return output.Write(cmd.OutOrStdout(), outFormat, output.Table{
				Headers: []string{"Product", "Link"},
				Rows:    [][]string{{p.Name, href}},
				Value:   map[string]string{"id": p.ID.String(), "href": href},
			})
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "n", 1, "units requested")
	cmd.Flags().StringVarP(&message, "message", "m", "", "free text appended to the body")
	cmd.Flags().StringVar(&recipient, "to", "", "recipient address (defaults to CONTACT_EMAIL)")

	return cmd
}
