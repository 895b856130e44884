// Package store fetches the raw catalog documents from wherever the site
// operator publishes them.
package store

import (
	"context"
	"errors"
)

// Document names, identical across every source.
const (
	ProductsDocument   = "products.json"
	CategoriesDocument = "categories.json"
	SettingsDocument   = "settings.json"
)

var ErrDocumentNotFound = errors.New("catalog document not found")

// Source returns the raw bytes of a named catalog document.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}
