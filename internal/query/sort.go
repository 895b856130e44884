package query

import (
	"slices"
	"sort"

	"oli3d-catalog/internal/product"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortNewest    SortKey = "newest"

	DefaultSort = SortNewest
)

// SortProducts returns a stably sorted copy of products. Names compare under
// Spanish collation; unknown keys keep the input order.
func SortProducts(products []product.Product, key SortKey) []product.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []product.Product{}
	}

	var less func(a, b product.Product) bool

	switch key {
	case SortPriceAsc:
		less = func(a, b product.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b product.Product) bool { return a.Price > b.Price }
	case SortNameAsc, SortNameDesc:
		// collate.Collator keeps internal buffers, so it is built per call.
		col := collate.New(language.Spanish)
		if key == SortNameAsc {
			less = func(a, b product.Product) bool { return col.CompareString(a.Name, b.Name) < 0 }
		} else {
			less = func(a, b product.Product) bool { return col.CompareString(a.Name, b.Name) > 0 }
		}
	case SortNewest:
		less = func(a, b product.Product) bool { return a.Created.After(b.Created) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
