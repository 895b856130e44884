package query

import "oli3d-catalog/internal/product"

// Params describes one shop listing request.
type Params struct {
	Categories []string
	Search     string
	Sort       SortKey
	Page       int
	PerPage    int
}

// List runs the shop pipeline over visible products: category filter, search,
// sort and finally pagination.
func List(products []product.Product, p Params) PageResult {
	sortKey := p.Sort
	if sortKey == "" {
		sortKey = DefaultSort
	}

	filtered := FilterByCategory(products, p.Categories)
	filtered = FilterBySearch(filtered, p.Search)
	return Paginate(SortProducts(filtered, sortKey), p.Page, p.PerPage)
}
