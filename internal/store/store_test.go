package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"oli3d-catalog/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProductsDocument), []byte(`[]`), 0o644))

	src := NewDirSource(dir)

	t.Run("Success", func(t *testing.T) {
		b, err := src.Fetch(context.Background(), ProductsDocument)
		assert.NoError(t, err)
		assert.Equal(t, "[]", string(b))
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), SettingsDocument)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("No traversal", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), "../"+ProductsDocument)
		assert.NoError(t, err)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := src.Fetch(ctx, ProductsDocument)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHTTPSource_Fetch(t *testing.T) {
	var (
		mu       sync.Mutex
		versions []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		versions = append(versions, r.URL.Query().Get("v"))
		mu.Unlock()

		switch r.URL.Path {
		case "/db/products.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"products": []}`))
		case "/db/settings.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/db/", srv.Client())
	tick := time.Unix(0, 0)
	src.now = func() time.Time {
		tick = tick.Add(time.Nanosecond)
		return tick
	}

	t.Run("Success with cache busting", func(t *testing.T) {
		b, err := src.Fetch(context.Background(), ProductsDocument)
		require.NoError(t, err)
		assert.JSONEq(t, `{"products": []}`, string(b))

		_, err = src.Fetch(context.Background(), ProductsDocument)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, versions, 2)
		assert.NotEmpty(t, versions[0])
		assert.NotEqual(t, versions[0], versions[1])
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), CategoriesDocument)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("Server error", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), SettingsDocument)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 500")
	})

	t.Run("Unreachable", func(t *testing.T) {
		dead := NewHTTPSource("http://127.0.0.1:1", nil)
		_, err := dead.Fetch(context.Background(), ProductsDocument)
		assert.Error(t, err)
	})
}

func TestPostgresSource_Fetch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	src := NewPostgresSource(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT body FROM catalog_documents WHERE name = \\$1").
			WithArgs(SettingsDocument).
			WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"showPrices": false}`)))

		b, err := src.Fetch(context.Background(), SettingsDocument)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"showPrices": false}`, string(b))
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery("SELECT body FROM catalog_documents").
			WithArgs(ProductsDocument).
			WillReturnError(errors.New("db error"))

		_, err := src.Fetch(context.Background(), ProductsDocument)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrDocumentNotFound))
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT body FROM catalog_documents").
			WithArgs(CategoriesDocument).
			WillReturnRows(sqlmock.NewRows([]string{"body"}))

		_, err := src.Fetch(context.Background(), CategoriesDocument)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen(t *testing.T) {
	t.Run("Dir", func(t *testing.T) {
		src, closeFn, err := Open(&config.Config{CatalogSource: config.SourceDir, CatalogDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &DirSource{}, src)
		assert.NoError(t, closeFn())
	})

	t.Run("HTTP", func(t *testing.T) {
		src, _, err := Open(&config.Config{
			CatalogSource:  config.SourceHTTP,
			CatalogBaseURL: "https://static.example.com/db/",
			FetchTimeout:   time.Second,
		})
		require.NoError(t, err)

		httpSrc, ok := src.(*HTTPSource)
		require.True(t, ok)
		assert.Equal(t, "https://static.example.com/db", httpSrc.baseURL)
		assert.Equal(t, time.Second, httpSrc.client.Timeout)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, closeFn, err := Open(&config.Config{CatalogSource: "ftp"})
		assert.ErrorIs(t, err, config.ErrUnknownSource)
		assert.NotNil(t, closeFn)
	})
}
