package store

import (
	"fmt"
	"net/http"

	"oli3d-catalog/internal/config"
	"oli3d-catalog/internal/db"
)

// Open builds the source selected by cfg. The returned close func releases
// whatever the source holds and is never nil.
func Open(cfg *config.Config) (Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CatalogSource {
	case config.SourceDir:
		return NewDirSource(cfg.CatalogDir), noop, nil
	case config.SourceHTTP:
		client := &http.Client{Timeout: cfg.FetchTimeout}
		return NewHTTPSource(cfg.CatalogBaseURL, client), noop, nil
	case config.SourcePostgres:
		database, err := db.NewDatabase(cfg)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresSource(database), database.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", config.ErrUnknownSource, cfg.CatalogSource)
	}
}
