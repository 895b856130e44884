package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	t.Run("Explicit false", func(t *testing.T) {
		s, err := Decode([]byte(`{"showPrices": false}`))
		assert.NoError(t, err)
		assert.False(t, s.ShowPrices)
	})

	t.Run("Absent field", func(t *testing.T) {
		s, err := Decode([]byte(`{}`))
		assert.NoError(t, err)
		assert.True(t, s.ShowPrices)
	})

	t.Run("Malformed", func(t *testing.T) {
		s, err := Decode([]byte(`{"showPrices": "yes"`))
		assert.Error(t, err)
		assert.Equal(t, Default(), s)
	})
}
