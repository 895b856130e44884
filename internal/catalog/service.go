package catalog

import (
	"context"
	"strings"

	"oli3d-catalog/internal/category"
	"oli3d-catalog/internal/logger"
	"oli3d-catalog/internal/product"
	"oli3d-catalog/internal/query"
	"oli3d-catalog/internal/settings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service is the catalog as seen by one page session: visibility rules
// applied on top of the session's memoized raw collections.
type Service interface {
	Preload(ctx context.Context) error
	Products(ctx context.Context) []product.Product
	Categories(ctx context.Context) []category.Category
	HiddenCategoryIDs(ctx context.Context) map[string]struct{}
	Settings(ctx context.Context) settings.Settings
	ShouldShowPrices(ctx context.Context) bool
	ProductByID(ctx context.Context, id string) (product.Product, error)
	ProductsByCategory(ctx context.Context, categoryID string) []product.Product
	Highlighted(ctx context.Context) []product.Product
	Latest(ctx context.Context, n int) []product.Product
	PopularCategories(ctx context.Context) []category.Category
	SeasonalCategory(ctx context.Context) (category.Category, bool)
	Related(ctx context.Context, p product.Product) []product.Product
	Validate(ctx context.Context) Report
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Preload warms all three collections concurrently.
func (s *service) Preload(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.repo.LoadProductsRaw(ctx)
		return nil
	})
	g.Go(func() error {
		s.repo.LoadCategoriesRaw(ctx)
		return nil
	})
	g.Go(func() error {
		s.repo.LoadSettings(ctx)
		return nil
	})
	return g.Wait()
}

// HiddenCategoryIDs is recomputed from the memoized raw categories on every
// call; it is cheap and never cached separately.
func (s *service) HiddenCategoryIDs(ctx context.Context) map[string]struct{} {
	return category.HiddenIDs(s.repo.LoadCategoriesRaw(ctx))
}

func (s *service) Categories(ctx context.Context) []category.Category {
	return category.Visible(s.repo.LoadCategoriesRaw(ctx))
}

func (s *service) Products(ctx context.Context) []product.Product {
	hidden := s.HiddenCategoryIDs(ctx)
	raw := s.repo.LoadProductsRaw(ctx)

	out := make([]product.Product, 0, len(raw))
	for _, p := range raw {
		if product.IsVisible(p, hidden) {
			out = append(out, p)
		}
	}
	return out
}

func (s *service) Settings(ctx context.Context) settings.Settings {
	return s.repo.LoadSettings(ctx)
}

func (s *service) ShouldShowPrices(ctx context.Context) bool {
	return s.repo.LoadSettings(ctx).ShowPrices
}

func (s *service) ProductByID(ctx context.Context, id string) (product.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ProductByID"),
		zap.String("product_id", id),
	)

	id = strings.TrimSpace(id)
	if id == "" {
		return product.Product{}, ErrEmptyProductID
	}

	hidden := s.HiddenCategoryIDs(ctx)
	for _, p := range s.repo.LoadProductsRaw(ctx) {
		if p.ID.String() != id {
			continue
		}
		if !product.IsVisible(p, hidden) {
			log.Info("product is not visible")
			return product.Product{}, ErrProductNotFound
		}
		return p, nil
	}

	log.Info("product does not exist")
	return product.Product{}, ErrProductNotFound
}

func (s *service) ProductsByCategory(ctx context.Context, categoryID string) []product.Product {
	return query.FilterByCategory(s.Products(ctx), []string{categoryID})
}

func (s *service) Highlighted(ctx context.Context) []product.Product {
	visible := s.Products(ctx)
	out := make([]product.Product, 0, len(visible))
	for _, p := range visible {
		if p.Highlighted {
			out = append(out, p)
		}
	}
	return out
}

// Latest returns the n most recently created visible products.
func (s *service) Latest(ctx context.Context, n int) []product.Product {
	sorted := query.SortProducts(s.Products(ctx), query.SortNewest)
	if n < 0 {
		n = 0
	}
	return sorted[:min(n, len(sorted))]
}

func (s *service) PopularCategories(ctx context.Context) []category.Category {
	visible := s.Categories(ctx)
	out := make([]category.Category, 0, len(visible))
	for _, c := range visible {
		if c.IsPopular() {
			out = append(out, c)
		}
	}
	return out
}

// SeasonalCategory picks the first visible category eligible for the
// seasonal banner.
func (s *service) SeasonalCategory(ctx context.Context) (category.Category, bool) {
	for _, c := range s.Categories(ctx) {
		if c.Seasonal && c.ID != category.AllID {
			return c, true
		}
	}
	return category.Category{}, false
}

func (s *service) Related(ctx context.Context, p product.Product) []product.Product {
	return query.Related(p.ID, p.Categories, s.Products(ctx), query.DefaultRelatedLimit)
}

func (s *service) Validate(ctx context.Context) Report {
	return Validate(s.repo.LoadProductsRaw(ctx), s.repo.LoadCategoriesRaw(ctx))
}
