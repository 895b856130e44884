package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"oli3d-catalog/internal/config"
	"oli3d-catalog/internal/db"
	"oli3d-catalog/internal/store"
)

const upsertDocument = `
	INSERT INTO catalog_documents (name, body, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`

var seedDocuments = []string{
	store.ProductsDocument,
	store.CategoriesDocument,
	store.SettingsDocument,
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or seed")
	migrationsDir := flag.String("migrations", "./migrations", "directory holding the .sql migrations")
	flag.Parse()

	cfg := config.FromEnv()
	if cfg.DBHost == "" {
		log.Fatal(config.ErrMissingDBHost)
	}

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	m := &migrator{db: database, out: os.Stdout}
	if err := m.run(*mode, *migrationsDir, cfg.CatalogDir); err != nil {
		log.Fatal(err)
	}
}

type migrator struct {
	db  *sql.DB
	out io.Writer
}

func (m *migrator) run(mode, migrationsDir, dataDir string) error {
	if mode == "seed" {
		return m.seed(dataDir)
	}

	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Strings(files)

	switch mode {
	case "up":
		return m.up(files)
	case "down":
		return m.down(files)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'seed')", mode)
	}
}

func (m *migrator) up(files []string) error {
	for _, file := range files {
		version := filepath.Base(file)

		var exists bool
		err := m.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			fmt.Fprintf(m.out, "⏭ Skipping already applied migration: %s\n", version)
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		fmt.Fprintf(m.out, "🚀 Applying migration: %s\n", version)
		if _, err := m.db.Exec(section(string(content), "Up")); err != nil {
			return fmt.Errorf("migration failed (%s): %w", version, err)
		}

		if _, err := m.db.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("failed to record migration version: %w", err)
		}
	}
	fmt.Fprintln(m.out, "✅ All new migrations applied successfully.")
	return nil
}

func (m *migrator) down(files []string) error {
	var lastVersion string
	err := m.db.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC LIMIT 1`).Scan(&lastVersion)
	if err == sql.ErrNoRows {
		fmt.Fprintln(m.out, "⚠️  No migrations to roll back.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	idx := slices.IndexFunc(files, func(f string) bool { return filepath.Base(f) == lastVersion })
	if idx < 0 {
		return fmt.Errorf("migration file not found for version: %s", lastVersion)
	}

	content, err := os.ReadFile(files[idx])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", files[idx], err)
	}

	fmt.Fprintf(m.out, "🧹 Rolling back migration: %s\n", lastVersion)
	if _, err := m.db.Exec(section(string(content), "Down")); err != nil {
		return fmt.Errorf("rollback failed (%s): %w", lastVersion, err)
	}

	if _, err := m.db.Exec(`DELETE FROM schema_migrations WHERE version = $1`, lastVersion); err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}

	fmt.Fprintln(m.out, "✅ Rollback successful.")
	return nil
}

// seed upserts the data files from dataDir into catalog_documents in one
// transaction. Documents that are not valid JSON abort the seed.
func (m *migrator) seed(dataDir string) error {
	bodies := make(map[string][]byte, len(seedDocuments))
	for _, name := range seedDocuments {
		b, err := os.ReadFile(filepath.Join(dataDir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if !json.Valid(b) {
			return fmt.Errorf("%s is not valid JSON", name)
		}
		bodies[name] = b
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, name := range seedDocuments {
		if _, err := tx.Exec(upsertDocument, name, string(bodies[name])); err != nil {
			return fmt.Errorf("failed to seed %s: %w", name, err)
		}
		fmt.Fprintf(m.out, "🌱 Seeded %s\n", name)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	fmt.Fprintln(m.out, "✅ Catalog documents seeded.")
	return nil
}

// section returns the statements between "-- +migrate <name>" and the next
// marker.
func section(content, name string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "-- +migrate "+name) {
			inPart = true
			continue
		}
		if inPart && strings.HasPrefix(line, "-- +migrate") {
			break
		}
		if inPart {
			part.WriteString(line + "\n")
		}
	}
	return part.String()
}
