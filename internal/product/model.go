package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	DefaultMaterial  = "PLA"
	DefaultSize      = "Tamaño estándar"
	PlaceholderImage = "resources/LOGO_SIN_FONDO.png"
)

// ID accepts both JSON strings and JSON numbers; hand-edited data files use both.
// Integral numbers are stored in their shortest integer form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("product id must be a string or a number: %s", string(b))
	}
	*id = numericID(n)
	return nil
}

// numericID renders integral numbers without a fraction so that 5, 5.0 and
// 5e0 all name the same product.
func numericID(n json.Number) ID {
	if i, err := n.Int64(); err == nil {
		return ID(strconv.FormatInt(i, 10))
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return ID(strconv.FormatInt(int64(f), 10))
	}
	return ID(n.String())
}

func (id ID) String() string { return string(id) }

type PriceOffer struct {
	Quantity int     `json:"quantity,omitempty"`
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
}

type Product struct {
	ID           ID           `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        float64      `json:"price"`
	PriceOffers  []PriceOffer `json:"priceOffers"`
	Image        string       `json:"image,omitempty"`
	Images       []string     `json:"images,omitempty"`
	Highlighted  bool         `json:"highlighted"`
	Customizable bool         `json:"customizable"`
	Categories   []string     `json:"categories"`
	WallapopLink string       `json:"wallapopLink,omitempty"`
	Size         string       `json:"size"`
	Material     string       `json:"material"`
	Hidden       bool         `json:"hidden,omitempty"`
	CreatedAt    string       `json:"createdAt,omitempty"`

	// Created is CreatedAt parsed at decode time; zero when absent or invalid.
	Created time.Time `json:"-"`
	// MissingPrice is set when the record had no price field at all.
	MissingPrice bool `json:"-"`
}

func (p *Product) UnmarshalJSON(b []byte) error {
	type alias Product
	aux := struct {
		*alias
		Price *float64 `json:"price"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	if aux.Price == nil {
		p.MissingPrice = true
		p.Price = 0
	} else {
		p.Price = *aux.Price
	}
	return nil
}
