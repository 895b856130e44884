// Package query holds the pure list operations shared by every catalog page:
// filtering, sorting, pagination and related-product matching. Nothing here
// performs I/O or mutates its input.
package query

import (
	"strings"

	"oli3d-catalog/internal/category"
	"oli3d-catalog/internal/product"

	"golang.org/x/text/cases"
)

// FilterByCategory keeps products tagged with at least one of the selected
// categories. An empty selection, or one containing "all", is a no-op.
func FilterByCategory(products []product.Product, selected []string) []product.Product {
	if len(selected) == 0 {
		return products
	}

	ids := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		if id == category.AllID {
			return products
		}
		ids[id] = struct{}{}
	}

	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if product.InAnyCategory(p, ids) {
			out = append(out, p)
		}
	}
	return out
}

// FilterBySearch does a case-insensitive substring match on name and
// description. A blank query is a no-op.
func FilterBySearch(products []product.Product, q string) []product.Product {
	q = strings.TrimSpace(q)
	if q == "" {
		return products
	}

	fold := cases.Fold()
	needle := fold.String(q)

	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(fold.String(p.Name), needle) ||
			strings.Contains(fold.String(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}
