package handlers

import (
	"fmt"
	"net/http"
	"time"

	"oli3d-catalog/internal/logger"
	"oli3d-catalog/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	defaultAPIPrefix = "/api/v1"
	defaultTimeout   = 30 * time.Second
)

type routerConfig struct {
	basePath           string
	timeout            time.Duration
	middlewares        []func(http.Handler) http.Handler
	sessionMiddlewares []func(http.Handler) http.Handler
}

// Option customises the router configuration before construction.
type Option func(*routerConfig)

// WithMiddlewares appends global middleware, run for every route.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithSessionMiddleware installs the middleware that attaches a catalog
// service to requests on the catalog routes.
func WithSessionMiddleware(mw func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.sessionMiddlewares = append(cfg.sessionMiddlewares, mw)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *routerConfig) {
		if d > 0 {
			cfg.timeout = d
		}
	}
}

// NewRouter builds the chi router serving the catalog API.
func NewRouter(h *CatalogHandlers, opts ...Option) chi.Router {
	cfg := routerConfig{
		basePath: defaultAPIPrefix,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.timeout))
	for _, mw := range cfg.middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		utils.WriteJSONError(w, fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		utils.WriteJSONError(w, fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed)
	})

	r.Route(cfg.basePath, func(api chi.Router) {
		api.Get("/healthz", h.Healthz)
		api.Get("/stats", h.Stats)

		api.Group(func(catalog chi.Router) {
			for _, mw := range cfg.sessionMiddlewares {
				if mw != nil {
					catalog.Use(mw)
				}
			}

			catalog.Get("/settings", h.Settings)
			catalog.Get("/categories", h.Categories)
			catalog.Get("/home", h.Home)
			catalog.Get("/products", h.ListProducts)
			catalog.Get("/products/{id}", h.GetProduct)
			catalog.Get("/products/{id}/contact", h.Contact)
		})
	})

	return r
}
