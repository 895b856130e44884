package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oli3d-catalog/internal/catalog"
	"oli3d-catalog/internal/config"
	"oli3d-catalog/internal/handlers"
	"oli3d-catalog/internal/logger"
	"oli3d-catalog/internal/metrics"
	"oli3d-catalog/internal/middleware"
	"oli3d-catalog/internal/session"
	"oli3d-catalog/internal/store"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	openSourceFunc  = store.Open
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	source, closeSource, err := openSourceFunc(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, source, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.L().Info("catalog server starting",
		zap.String("addr", srv.Addr),
		zap.String("source", cfg.CatalogSource),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(ctx, srv)
}

// newServer wires one catalog service per session on top of source.
func newServer(cfg *config.Config, source store.Source, limiter *middleware.RateLimiter) http.Handler {
	m := &metrics.Catalog{}
	reg := session.NewRegistry(cfg.SessionTTL, func() catalog.Service {
		repo := catalog.NewRepository(source,
			catalog.WithFetchTimeout(cfg.FetchTimeout),
			catalog.WithMetrics(m),
		)
		return catalog.NewService(repo)
	}, m)

	h := handlers.NewCatalogHandlers(cfg.ContactEmail,
		handlers.WithPerPage(cfg.PerPage),
		handlers.WithStats(func() metrics.Snapshot { return m.Snapshot(reg.Active()) }),
	)

	return handlers.NewRouter(h,
		handlers.WithMiddlewares(middleware.CORS(cfg.CORSOrigin), limiter.Middleware),
		handlers.WithSessionMiddleware(middleware.Session(reg)),
	)
}

// startServer serves until ctx is cancelled, then drains in-flight requests.
func startServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down catalog server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
