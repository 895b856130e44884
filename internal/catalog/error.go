package catalog

import "errors"

var (
	// ErrProductNotFound covers both unknown ids and products that resolve
	// but are not visible.
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyProductID  = errors.New("product id is required")
)
