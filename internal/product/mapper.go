package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DecodeList parses a products document. Both a bare array and the
// {"products": [...]} envelope written by the admin tool are accepted.
func DecodeList(b []byte) ([]Product, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty products document")
	}

	var products []Product
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
	} else {
		var envelope struct {
			Products []Product `json:"products"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
		products = envelope.Products
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, Normalize(p))
	}
	return out, nil
}

// Normalize fills display defaults so downstream code never checks for
// missing optional fields.
func Normalize(p Product) Product {
	if p.Material == "" {
		p.Material = DefaultMaterial
	}
	if p.Size == "" {
		p.Size = DefaultSize
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}

	offers := make([]PriceOffer, 0, len(p.PriceOffers))
	for _, o := range p.PriceOffers {
		if o.Label == "" && o.Quantity > 0 {
			o.Label = strconv.Itoa(o.Quantity) + "+ unidades"
		}
		offers = append(offers, o)
	}
	p.PriceOffers = offers

	p.Created = ParseCreatedAt(p.CreatedAt)
	return p
}

// ParseCreatedAt returns the zero time for values it cannot parse, which
// makes them sort as the oldest.
func ParseCreatedAt(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
