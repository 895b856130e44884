package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresSource reads documents from the catalog_documents table populated
// by `migrate -mode seed`.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM catalog_documents WHERE name = $1`,
		name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query document %s: %w", name, err)
	}
	return body, nil
}
