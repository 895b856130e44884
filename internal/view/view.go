// Package view turns catalog records into the shapes the API and CLI emit.
package view

import (
	"context"

	"oli3d-catalog/internal/contact"
	"oli3d-catalog/internal/format"
	"oli3d-catalog/internal/product"

	"golang.org/x/sync/errgroup"
)

const cardWorkers = 8

type Card struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Price        *float64 `json:"price,omitempty"`
	PriceLabel   string   `json:"priceLabel,omitempty"`
	Highlighted  bool     `json:"highlighted"`
	Customizable bool     `json:"customizable"`
	Categories   []string `json:"categories"`
}

type Offer struct {
	Label      string `json:"label"`
	PriceLabel string `json:"priceLabel"`
}

type Detail struct {
	Card
	Description  string   `json:"description"`
	Gallery      []string `json:"gallery"`
	Size         string   `json:"size"`
	Material     string   `json:"material"`
	Offers       []Offer  `json:"offers"`
	WallapopLink string   `json:"wallapopLink,omitempty"`
	Related      []Card   `json:"related"`
	Mailto       string   `json:"mailto"`
}

// NewCard builds the listing card for p. Prices are left out entirely when
// showPrices is false.
func NewCard(p product.Product, showPrices bool) Card {
	c := Card{
		ID:           p.ID.String(),
		Name:         p.Name,
		Image:        product.MainImage(p),
		Highlighted:  p.Highlighted,
		Customizable: p.Customizable,
		Categories:   p.Categories,
	}
	if c.Categories == nil {
		c.Categories = []string{}
	}
	if showPrices {
		price := p.Price
		c.Price = &price
		c.PriceLabel = format.EUR(p.Price)
	}
	return c
}

// BuildCards builds cards concurrently. Each worker writes its own slot, so
// the result keeps the order of products.
func BuildCards(ctx context.Context, products []product.Product, showPrices bool) ([]Card, error) {
	cards := make([]Card, len(products))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cardWorkers)
	for i, p := range products {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cards[i] = NewCard(p, showPrices)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}

// NewDetail assembles the product page: gallery, offers, related cards and
// the contact link.
func NewDetail(ctx context.Context, p product.Product, related []product.Product, showPrices bool, recipient string) (Detail, error) {
	relatedCards, err := BuildCards(ctx, related, showPrices)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		Card:         NewCard(p, showPrices),
		Description:  p.Description,
		Gallery:      product.GalleryImages(p),
		Size:         p.Size,
		Material:     p.Material,
		Offers:       []Offer{},
		WallapopLink: p.WallapopLink,
		Related:      relatedCards,
		Mailto:       contact.BuildMailto(recipient, contact.Inquiry{Product: p, ShowPrices: showPrices}),
	}
	if showPrices {
		for _, o := range p.PriceOffers {
			d.Offers = append(d.Offers, Offer{Label: o.Label, PriceLabel: format.EUR(o.Price)})
		}
	}
	return d, nil
}
