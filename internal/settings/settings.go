package settings

import (
	"encoding/json"
	"fmt"
)

type Settings struct {
	ShowPrices bool `json:"showPrices"`
}

// Default is used when the settings document is absent or unreadable.
func Default() Settings {
	return Settings{ShowPrices: true}
}

// Decode parses a settings document; fields that are absent keep their defaults.
func Decode(b []byte) (Settings, error) {
	var raw struct {
		ShowPrices *bool `json:"showPrices"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Default(), fmt.Errorf("decode settings: %w", err)
	}

	s := Default()
	if raw.ShowPrices != nil {
		s.ShowPrices = *raw.ShowPrices
	}
	return s, nil
}
