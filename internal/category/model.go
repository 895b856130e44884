package category

// AllID is the reserved pseudo-category meaning "no filter".
const AllID = "all"

const DefaultIcon = "📦"

type Category struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Images   []string `json:"images,omitempty"`
	Popular  bool     `json:"popular,omitempty"`
	Seasonal bool     `json:"seasonal,omitempty"`
	Hidden   bool     `json:"hidden,omitempty"`
}

// IsPopular excludes the "all" pseudo-category even when it is flagged.
func (c Category) IsPopular() bool {
	return c.Popular && c.ID != AllID
}
