package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeList(t *testing.T) {
	t.Run("Envelope", func(t *testing.T) {
		doc := `{"categories": [
			{"id": "all", "name": "Todos", "icon": "✨"},
			{"id": "pets", "name": "Mascotas", "popular": true, "images": ["a.png", "b.png"]},
			{"id": "christmas", "name": "Navidad", "seasonal": true, "hidden": true}
		]}`

		categories, err := DecodeList([]byte(doc))
		require.NoError(t, err)
		require.Len(t, categories, 3)
		assert.Equal(t, "✨", categories[0].Icon)
		assert.Equal(t, DefaultIcon, categories[1].Icon)
		assert.Equal(t, []string{"a.png", "b.png"}, categories[1].Images)
		assert.True(t, categories[2].Seasonal)
	})

	t.Run("BareArray", func(t *testing.T) {
		categories, err := DecodeList([]byte(`[{"id": "all", "name": "Todos"}]`))
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := DecodeList([]byte(`{"categories": 3}`))
		assert.Error(t, err)
	})
}

func TestHiddenIDs(t *testing.T) {
	categories := []Category{
		{ID: AllID, Hidden: true},
		{ID: "pets"},
		{ID: "christmas", Hidden: true},
	}

	ids := HiddenIDs(categories)
	assert.Len(t, ids, 1)
	assert.Contains(t, ids, "christmas")
	assert.NotContains(t, ids, AllID)
}

func TestVisible(t *testing.T) {
	categories := []Category{{ID: "a"}, {ID: "b", Hidden: true}, {ID: "c"}}
	got := Visible(categories)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestIsPopular(t *testing.T) {
	assert.True(t, Category{ID: "pets", Popular: true}.IsPopular())
	assert.False(t, Category{ID: AllID, Popular: true}.IsPopular())
	assert.False(t, Category{ID: "pets"}.IsPopular())
}
