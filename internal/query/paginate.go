package query

import (
	"slices"

	"oli3d-catalog/internal/product"
)

type PageResult struct {
	Items       []product.Product `json:"items"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
	TotalItems  int               `json:"totalItems"`
	HasNext     bool              `json:"hasNext"`
	HasPrev     bool              `json:"hasPrev"`
}

// Paginate slices out a 1-indexed page. The page is not clamped: a page
// outside [1, TotalPages] yields no items rather than an error. perPage below
// 1 is treated as 1.
func Paginate(products []product.Product, page, perPage int) PageResult {
	if perPage < 1 {
		perPage = 1
	}

	total := len(products)
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	// page is bounded by totalPages before any multiplication, so the
	// offsets cannot overflow for query-string input.
	items := []product.Product{}
	if page >= 1 && page <= totalPages {
		start := (page - 1) * perPage
		end := start + min(perPage, total-start)
		items = slices.Clone(products[start:end])
	}

	return PageResult{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
