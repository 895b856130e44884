// Package contact builds the pre-filled e-mail link the storefront offers in
// place of a checkout.
package contact

import (
	"fmt"
	"net/url"
	"strings"

	"oli3d-catalog/internal/format"
	"oli3d-catalog/internal/product"
)

// Inquiry is what a visitor asks about a product. A zero Quantity means one
// unit; no upper bound is enforced.
type Inquiry struct {
	Product    product.Product
	Quantity   int
	Message    string
	ShowPrices bool
}

func Subject(p product.Product) string {
	return "Consulta sobre: " + p.Name
}

// Body lists the product, the requested quantity and, when prices are shown,
// the unit price and its quantity tiers.
func Body(in Inquiry) string {
	p := in.Product

	size := p.Size
	if size == "" {
		size = product.DefaultSize
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}

	var b strings.Builder
	b.WriteString("Hola, me interesa este producto:\n\n")
	fmt.Fprintf(&b, "Producto: %s\n", p.Name)
	if in.ShowPrices {
		fmt.Fprintf(&b, "Precio: %s\n", format.EUR(p.Price))
	}
	fmt.Fprintf(&b, "Tamaño: %s\n", size)
	fmt.Fprintf(&b, "Cantidad: %d\n", quantity)

	if in.ShowPrices && len(p.PriceOffers) > 0 {
		b.WriteString("\nOfertas:\n")
		for _, o := range p.PriceOffers {
			fmt.Fprintf(&b, "- %s: %s\n", o.Label, format.EUR(o.Price))
		}
	}

	if msg := strings.TrimSpace(in.Message); msg != "" {
		fmt.Fprintf(&b, "\nMensaje:\n%s\n", msg)
	}
	return b.String()
}

// BuildMailto returns a mailto URI for the inquiry. Subject and body are
// percent-encoded with spaces as %20.
func BuildMailto(recipient string, in Inquiry) string {
	return "mailto:" + encodeAddress(recipient) +
		"?subject=" + encodeComponent(Subject(in.Product)) +
		"&body=" + encodeComponent(Body(in))
}

// encodeComponent escapes s for a mailto header value. QueryEscape turns
// spaces into '+', which mail clients show literally.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// encodeAddress escapes the recipient for the mailto path. PathEscape keeps
// '@' and escapes '?', '#', '%' and spaces.
func encodeAddress(addr string) string {
	return url.PathEscape(strings.TrimSpace(addr))
}
