package catalog

import (
	"fmt"

	"oli3d-catalog/internal/category"
	"oli3d-catalog/internal/product"
)

// Report is the integrity check the site operator runs before publishing
// hand-edited data files. Errors make the catalog invalid; warnings do not.
type Report struct {
	Valid         bool     `json:"valid"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	ProductCount  int      `json:"productCount"`
	CategoryCount int      `json:"categoryCount"`
}

func Validate(products []product.Product, categories []category.Category) Report {
	r := Report{
		Errors:        []string{},
		Warnings:      []string{},
		ProductCount:  len(products),
		CategoryCount: len(categories),
	}

	categoryIDs := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		switch {
		case c.ID == "":
			r.Errors = append(r.Errors, "category without id")
		case has(categoryIDs, c.ID):
			r.Errors = append(r.Errors, fmt.Sprintf("duplicate category id: %s", c.ID))
		default:
			categoryIDs[c.ID] = struct{}{}
		}

		if c.Name == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("category %q has no name", c.ID))
		}
	}
	if !has(categoryIDs, category.AllID) {
		r.Errors = append(r.Errors, fmt.Sprintf("missing reserved category %q", category.AllID))
	}

	if len(products) == 0 {
		r.Warnings = append(r.Warnings, "catalog has no products")
	}

	productIDs := make(map[product.ID]struct{}, len(products))
	for _, p := range products {
		switch {
		case p.ID == "":
			r.Errors = append(r.Errors, "product without id")
		case has(productIDs, p.ID):
			r.Errors = append(r.Errors, fmt.Sprintf("duplicate product id: %s", p.ID))
		default:
			productIDs[p.ID] = struct{}{}
		}

		if p.Name == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("product %q has no name", p.ID))
		}
		if p.MissingPrice {
			r.Errors = append(r.Errors, fmt.Sprintf("product %q has no price", p.ID))
		}

		if len(p.Categories) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("product %q has no categories", p.ID))
		}
		for _, c := range p.Categories {
			if !has(categoryIDs, c) {
				r.Errors = append(r.Errors, fmt.Sprintf("product %q references unknown category: %s", p.ID, c))
			}
		}

		if p.Image == "" && len(p.Images) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("product %q has no image", p.ID))
		}
	}

	r.Valid = len(r.Errors) == 0
	return r
}

func has[K comparable](set map[K]struct{}, k K) bool {
	_, ok := set[k]
	return ok
}
