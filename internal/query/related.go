package query

import "oli3d-catalog/internal/product"

const DefaultRelatedLimit = 4

// Related returns up to limit products sharing a category with the given
// one, in load order, never including the product itself. There is no
// relevance ranking.
func Related(id product.ID, categories []string, products []product.Product, limit int) []product.Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	ids := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		ids[c] = struct{}{}
	}

	out := make([]product.Product, 0, limit)
	for _, p := range products {
		if len(out) == limit {
			break
		}
		if p.ID == id {
			continue
		}
		if product.InAnyCategory(p, ids) {
			out = append(out, p)
		}
	}
	return out
}
