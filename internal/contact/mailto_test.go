package contact

import (
	"net/url"
	"strings"
	"testing"

	"oli3d-catalog/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct() product.Product {
	return product.Product{
		ID:    "7",
		Name:  "Maceta & gato",
		Price: 12,
		Size:  "10 cm",
		PriceOffers: []product.PriceOffer{
			{Quantity: 5, Label: "5+ unidades", Price: 10.5},
		},
	}
}

func decode(t *testing.T, href string) (subject, body string) {
	t.Helper()

	require.True(t, strings.HasPrefix(href, "mailto:shop@example.com?"))
	u, err := url.Parse(href)
	require.NoError(t, err)

	q := u.Query()
	return q.Get("subject"), q.Get("body")
}

func TestBuildMailto(t *testing.T) {
	t.Run("Prices shown", func(t *testing.T) {
		href := BuildMailto("shop@example.com", Inquiry{
			Product:    sampleProduct(),
			Quantity:   3,
			Message:    "¿Lo tenéis en rojo?",
			ShowPrices: true,
		})

		subject, body := decode(t, href)
		assert.Equal(t, "Consulta sobre: Maceta & gato", subject)
		assert.Contains(t, body, "Producto: Maceta & gato\n")
		assert.Contains(t, body, "Precio: 12,00 €\n")
		assert.Contains(t, body, "Tamaño: 10 cm\n")
		assert.Contains(t, body, "Cantidad: 3\n")
		assert.Contains(t, body, "- 5+ unidades: 10,50 €\n")
		assert.True(t, strings.HasSuffix(body, "Mensaje:\n¿Lo tenéis en rojo?\n"))
	})

	t.Run("Prices hidden", func(t *testing.T) {
		href := BuildMailto("shop@example.com", Inquiry{Product: sampleProduct(), ShowPrices: false})

		_, body := decode(t, href)
		assert.NotContains(t, body, "Precio")
		assert.NotContains(t, body, "Ofertas")
		assert.NotContains(t, body, "€")
		assert.Contains(t, body, "Cantidad: 1\n")
		assert.NotContains(t, body, "Mensaje")
	})

	t.Run("Default size", func(t *testing.T) {
		p := sampleProduct()
		p.Size = ""
		_, body := decode(t, BuildMailto("shop@example.com", Inquiry{Product: p}))
		assert.Contains(t, body, "Tamaño: "+product.DefaultSize)
	})

	t.Run("Encoding", func(t *testing.T) {
		href := BuildMailto("shop@example.com", Inquiry{Product: sampleProduct(), Message: "a+b c"})

		assert.NotContains(t, href, " ")
		assert.NotContains(t, href, "+")
		assert.Contains(t, href, "subject=Consulta%20sobre%3A%20Maceta%20%26%20gato")
		assert.Contains(t, href, "a%2Bb%20c")
	})
}

func TestBuildMailto_Recipient(t *testing.T) {
	in := Inquiry{Product: sampleProduct()}

	t.Run("Plain address", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(BuildMailto("shop@example.com", in), "mailto:shop@example.com?subject="))
	})

	t.Run("Special characters are escaped", func(t *testing.T) {
		href := BuildMailto("ventas y pedidos?x@example.com", in)
		assert.True(t, strings.HasPrefix(href, "mailto:ventas%20y%20pedidos%3Fx@example.com?subject="), href)

		u, err := url.Parse(href)
		require.NoError(t, err)
		addr, err := url.PathUnescape(u.Opaque)
		require.NoError(t, err)
		assert.Equal(t, "ventas y pedidos?x@example.com", addr)
		assert.Equal(t, "Consulta sobre: Maceta & gato", u.Query().Get("subject"))
	})
}
