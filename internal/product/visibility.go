package product

// IsVisible reports whether p may appear in listings and detail lookups.
// The hidden flag always wins; a product without categories is visible;
// otherwise at least one of its categories must not be hidden.
func IsVisible(p Product, hiddenCategoryIDs map[string]struct{}) bool {
	if p.Hidden {
		return false
	}
	if len(p.Categories) == 0 {
		return true
	}
	for _, c := range p.Categories {
		if _, hidden := hiddenCategoryIDs[c]; !hidden {
			return true
		}
	}
	return false
}

// InAnyCategory reports whether p is tagged with at least one id in ids.
func InAnyCategory(p Product, ids map[string]struct{}) bool {
	for _, c := range p.Categories {
		if _, ok := ids[c]; ok {
			return true
		}
	}
	return false
}

// GalleryImages resolves the ordered image list for a product. It is total:
// the gallery, else the main image, else the logo placeholder.
func GalleryImages(p Product) []string {
	if len(p.Images) > 0 {
		out := make([]string, len(p.Images))
		copy(out, p.Images)
		return out
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return []string{PlaceholderImage}
}

// MainImage is the first gallery image.
func MainImage(p Product) string {
	return GalleryImages(p)[0]
}
