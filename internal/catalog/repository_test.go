package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"oli3d-catalog/internal/metrics"
	"oli3d-catalog/internal/settings"
	"oli3d-catalog/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

const (
	productsDoc = `{"products": [
		{"id": 5, "name": "Maceta", "price": 12, "createdAt": "2024-01-01", "categories": ["pets"]},
		{"id": 6, "name": "Comedero", "price": 8, "createdAt": "2024-06-01", "categories": ["pets"]}
	]}`
	categoriesDoc = `{"categories": [{"id": "all", "name": "Todos"}, {"id": "pets", "name": "Mascotas"}]}`
)

// --- Tests ---

func TestRepository_LoadProductsRaw(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		src := new(MockSource)
		src.On("Fetch", mock.Anything, store.ProductsDocument).Return([]byte(productsDoc), nil).Once()

		repo := NewRepository(src)
		products := repo.LoadProductsRaw(context.Background())

		require.Len(t, products, 2)
		assert.Equal(t, "Maceta", products[0].Name)
		src.AssertExpectations(t)
	})

	t.Run("Fetch error degrades to empty and is memoized", func(t *testing.T) {
		src := new(MockSource)
		src.On("Fetch", mock.Anything, store.ProductsDocument).Return(nil, errors.New("network down")).Once()

		m := &metrics.Catalog{}
		repo := NewRepository(src, WithMetrics(m))

		first := repo.LoadProductsRaw(context.Background())
		second := repo.LoadProductsRaw(context.Background())

		assert.NotNil(t, first)
		assert.Empty(t, first)
		assert.Empty(t, second)
		assert.Equal(t, uint64(1), m.Fetches.Load())
		assert.Equal(t, uint64(1), m.FetchFailures.Load())
		src.AssertExpectations(t)
	})

	t.Run("Parse error degrades to empty", func(t *testing.T) {
		src := new(MockSource)
		src.On("Fetch", mock.Anything, store.ProductsDocument).Return([]byte(`{"products": [`), nil).Once()

		repo := NewRepository(src)
		assert.Empty(t, repo.LoadProductsRaw(context.Background()))
	})

	t.Run("Concurrent first callers share one fetch", func(t *testing.T) {
		src := new(MockSource)
		src.On("Fetch", mock.Anything, store.ProductsDocument).
			WaitUntil(time.After(20*time.Millisecond)).
			Return([]byte(productsDoc), nil).
			Once()

		m := &metrics.Catalog{}
		repo := NewRepository(src, WithMetrics(m))

		var wg sync.WaitGroup
		results := make([]int, 20)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = len(repo.LoadProductsRaw(context.Background()))
			}(i)
		}
		wg.Wait()

		for _, n := range results {
			assert.Equal(t, 2, n)
		}
		assert.Equal(t, uint64(1), m.Fetches.Load())
		src.AssertExpectations(t)
	})

	t.Run("Cancelled caller does not poison the session", func(t *testing.T) {
		src := new(MockSource)
		src.On("Fetch", mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Err() == nil
		}), store.ProductsDocument).Return([]byte(productsDoc), nil).Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		repo := NewRepository(src, WithFetchTimeout(time.Second))
		assert.Len(t, repo.LoadProductsRaw(ctx), 2)
		src.AssertExpectations(t)
	})
}

func TestRepository_LoadCategoriesRaw(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		src := new(MockSource)
		src.On("Fetch", mock.Anything, store.CategoriesDocument).Return([]byte(categoriesDoc), nil).Once()

		repo := NewRepository(src)
		categories := repo.LoadCategoriesRaw(context.Background())
		repo.LoadCategoriesRaw(context.Background())

		require.Len(t, categories, 2)
		src.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		src := new(MockSource)
		src.On("Fetch", mock.Anything, store.CategoriesDocument).Return(nil, store.ErrDocumentNotFound).Once()

		repo := NewRepository(src)
		assert.Empty(t, repo.LoadCategoriesRaw(context.Background()))
	})
}

func TestRepository_LoadSettings(t *testing.T) {
	t.Run("Explicit false", func(t *testing.T) {
		src := new(MockSource)
		src.On("Fetch", mock.Anything, store.SettingsDocument).Return([]byte(`{"showPrices": false}`), nil).Once()

		repo := NewRepository(src)
		assert.False(t, repo.LoadSettings(context.Background()).ShowPrices)
	})

	t.Run("Network error falls back to defaults", func(t *testing.T) {
		src := new(MockSource)
		src.On("Fetch", mock.Anything, store.SettingsDocument).Return(nil, errors.New("connection refused")).Once()

		repo := NewRepository(src)
		assert.Equal(t, settings.Default(), repo.LoadSettings(context.Background()))
		assert.True(t, repo.LoadSettings(context.Background()).ShowPrices)
		src.AssertExpectations(t)
	})
}
