package category

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeList parses a categories document, either a bare array or the
// {"categories": [...]} envelope.
func DecodeList(b []byte) ([]Category, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty categories document")
	}

	var categories []Category
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &categories); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
	} else {
		var envelope struct {
			Categories []Category `json:"categories"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
		categories = envelope.Categories
	}

	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.Icon == "" {
			c.Icon = DefaultIcon
		}
		out = append(out, c)
	}
	return out, nil
}

// HiddenIDs collects the ids of hidden categories. "all" is never part of
// the set, whatever its flag says.
func HiddenIDs(categories []Category) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, c := range categories {
		if c.Hidden && c.ID != AllID {
			ids[c.ID] = struct{}{}
		}
	}
	return ids
}

// Visible drops hidden categories, keeping order.
func Visible(categories []Category) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}
