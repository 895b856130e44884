package cmd

import (
	"fmt"
	"strings"

	"oli3d-catalog/internal/format"
	"oli3d-catalog/internal/output"
	"oli3d-catalog/internal/query"
	"oli3d-catalog/internal/view"

	"github.com/spf13/cobra"
)

type listFlags struct {
	categories []string
	search     string
	sort       string
	page       int
	perPage    int
}

type listing struct {
	Items       []view.Card `json:"items"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	TotalItems  int         `json:"totalItems"`
	HasNext     bool        `json:"hasNext"`
	HasPrev     bool        `json:"hasPrev"`
}

func newListCommand(a *app) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible products as the shop page shows them",
		Example: `  catalogctl list --category pets,home --sort price-asc
  catalogctl list -q maceta --page 2 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cfg, err := a.service()
			if err != nil {
				return err
			}
			outFormat, err := a.format()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			perPage := f.perPage
			if perPage == 0 {
				perPage = cfg.PerPage
			}

			page := query.List(svc.Products(ctx), query.Params{
				Categories: f.categories,
				Search:     f.search,
				Sort:       query.SortKey(f.sort),
				Page:       f.page,
				PerPage:    perPage,
			})

			showPrices := svc.ShouldShowPrices(ctx)
			cards, err := view.BuildCards(ctx, page.Items, showPrices)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(cards))
			for i, c := range cards {
				price := "-"
				if showPrices {
					price = format.EUR(page.Items[i].Price)
				}
				rows = append(rows, []string{c.ID, c.Name, price, strings.Join(c.Categories, ", ")})
			}

			out := cmd.OutOrStdout()
			if err := output.Write(out, outFormat, output.Table{
				Headers: []string{"ID", "Name", "Price", "Categories"},
				Rows:    rows,
				Value: listing{
					Items:       cards,
					CurrentPage: page.CurrentPage,
					TotalPages:  page.TotalPages,
					TotalItems:  page.TotalItems,
					HasNext:     page.HasNext,
					HasPrev:     page.HasPrev,
				},
			}); err != nil {
				return err
			}
			if outFormat == output.FormatTable {
				fmt.Fprintf(out, "page %d of %d, %d products\n", page.CurrentPage, page.TotalPages, page.TotalItems)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringSliceVarP(&f.categories, "category", "c", nil, "category ids to include (any of)")
	fl.StringVarP(&f.search, "query", "q", "", "search in name and description")
	fl.StringVarP(&f.sort, "sort", "s", string(query.DefaultSort), "price-asc, price-desc, name-asc, name-desc or newest")
	fl.IntVarP(&f.page, "page", "p", 1, "page number, starting at 1")
	fl.IntVar(&f.perPage, "per-page", 0, "products per page (defaults to PER_PAGE)")

	return cmd
}
