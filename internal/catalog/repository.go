package catalog

import (
	"context"
	"sync"
	"time"

	"oli3d-catalog/internal/category"
	"oli3d-catalog/internal/logger"
	"oli3d-catalog/internal/metrics"
	"oli3d-catalog/internal/product"
	"oli3d-catalog/internal/settings"
	"oli3d-catalog/internal/store"

	"go.uber.org/zap"
)

const defaultFetchTimeout = 10 * time.Second

// Repository exposes the raw collections of one page session. Loads never
// fail: a fetch or parse error is logged and resolves to an empty collection
// (or default settings). Returned slices are shared and must not be mutated.
type Repository interface {
	LoadProductsRaw(ctx context.Context) []product.Product
	LoadCategoriesRaw(ctx context.Context) []category.Category
	LoadSettings(ctx context.Context) settings.Settings
}

type RepositoryOption func(*repository)

// WithFetchTimeout bounds each document fetch.
func WithFetchTimeout(d time.Duration) RepositoryOption {
	return func(r *repository) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithMetrics records fetches and failures on m.
func WithMetrics(m *metrics.Catalog) RepositoryOption {
	return func(r *repository) {
		if m != nil {
			r.metrics = m
		}
	}
}

// repository memoizes each collection behind a sync.Once: the first caller
// runs the load and every concurrent caller blocks on that same in-flight
// load, so a session fetches each document at most once.
type repository struct {
	source  store.Source
	timeout time.Duration
	metrics *metrics.Catalog

	productsOnce sync.Once
	products     []product.Product

	categoriesOnce sync.Once
	categories     []category.Category

	settingsOnce sync.Once
	settings     settings.Settings
}

func NewRepository(source store.Source, opts ...RepositoryOption) Repository {
	r := &repository{
		source:  source,
		timeout: defaultFetchTimeout,
		metrics: &metrics.Catalog{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// fetch detaches from the caller's cancellation: the result is shared by the
// whole session, so one abandoned request must not poison it.
func (r *repository) fetch(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	r.metrics.Fetches.Inc()
	return r.source.Fetch(ctx, name)
}

func (r *repository) LoadProductsRaw(ctx context.Context) []product.Product {
	r.productsOnce.Do(func() {
		log := logger.FromCtx(ctx).With(
			zap.String("layer", "repository"),
			zap.String("method", "LoadProductsRaw"),
		)
		timer := metrics.StartTimer()

		b, err := r.fetch(ctx, store.ProductsDocument)
		if err == nil {
			r.products, err = product.DecodeList(b)
		}
		if err != nil {
			r.metrics.FetchFailures.Inc()
			log.Error("failed to load products, using empty list", zap.Error(err))
			r.products = []product.Product{}
			return
		}

		log.Info("products loaded",
			zap.Int("count", len(r.products)),
			zap.Duration("duration", timer.Duration()),
		)
	})
	return r.products
}

func (r *repository) LoadCategoriesRaw(ctx context.Context) []category.Category {
	r.categoriesOnce.Do(func() {
		log := logger.FromCtx(ctx).With(
			zap.String("layer", "repository"),
			zap.String("method", "LoadCategoriesRaw"),
		)
		timer := metrics.StartTimer()

		b, err := r.fetch(ctx, store.CategoriesDocument)
		if err == nil {
			r.categories, err = category.DecodeList(b)
		}
		if err != nil {
			r.metrics.FetchFailures.Inc()
			log.Error("failed to load categories, using empty list", zap.Error(err))
			r.categories = []category.Category{}
			return
		}

		log.Info("categories loaded",
			zap.Int("count", len(r.categories)),
			zap.Duration("duration", timer.Duration()),
		)
	})
	return r.categories
}

func (r *repository) LoadSettings(ctx context.Context) settings.Settings {
	r.settingsOnce.Do(func() {
		log := logger.FromCtx(ctx).With(
			zap.String("layer", "repository"),
			zap.String("method", "LoadSettings"),
		)

		b, err := r.fetch(ctx, store.SettingsDocument)
		if err == nil {
			r.settings, err = settings.Decode(b)
		}
		if err != nil {
			r.metrics.FetchFailures.Inc()
			log.Error("failed to load settings, using defaults", zap.Error(err))
			r.settings = settings.Default()
			return
		}

		log.Info("settings loaded", zap.Bool("show_prices", r.settings.ShowPrices))
	})
	return r.settings
}
