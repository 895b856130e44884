package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceDir      = "dir"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

var (
	ErrUnknownSource  = errors.New("unknown catalog source")
	ErrMissingBaseURL = errors.New("CATALOG_BASE_URL is required for the http source")
	ErrMissingDBHost  = errors.New("DB_HOST is required for the postgres source")
)

type Config struct {
	AppEnv  string
	AppPort string

	CatalogSource  string
	CatalogDir     string
	CatalogBaseURL string
	FetchTimeout   time.Duration

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	SessionTTL     time.Duration
	ContactEmail   string
	PerPage        int
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigin     string
}

// Load reads the environment (and a .env file when present) and validates
// the source-specific settings.
func Load() (*Config, error) {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads the configuration without validating it, for callers that
// override fields first.
func FromEnv() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		AppPort:        getEnv("APP_PORT", "8080"),
		CatalogSource:  getEnv("CATALOG_SOURCE", SourceDir),
		CatalogDir:     getEnv("CATALOG_DIR", "./db"),
		CatalogBaseURL: os.Getenv("CATALOG_BASE_URL"),
		FetchTimeout:   getDuration("CATALOG_FETCH_TIMEOUT", 10*time.Second),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         getEnv("DB_PORT", "5432"),
		SessionTTL:     getDuration("SESSION_TTL", 30*time.Minute),
		ContactEmail:   getEnv("CONTACT_EMAIL", "contacto@oli3d.design"),
		PerPage:        getInt("PER_PAGE", 12),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),
	}
}

func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceDir:
	case SourceHTTP:
		if c.CatalogBaseURL == "" {
			return ErrMissingBaseURL
		}
	case SourcePostgres:
		if c.DBHost == "" {
			return ErrMissingDBHost
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.CatalogSource)
	}
	return nil
}

// LoadConfig is Load for main packages: it aborts the process on bad config.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
