package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultEnv      = "development"
	defaultDBPath   = "./dev.db"
	defaultPort     = "8080"
	defaultCurrency = "BDT"
	defaultMongoDB  = "supplydesk"

	QuoteSourceSQLite = "sqlite"
	QuoteSourceMongo  = "mongo"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env             string
	AdminEmail      string
	AdminPassword   string
	SessionSecret   string
	DBPath          string
	Port            string
	DefaultCurrency string
	QuoteSource     string
	MongoURI        string
	MongoDB         string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	return load(".env")
}

func load(dotenvPath string) Config {
	// Best-effort: load local dev environment variables.
	// godotenv never overwrites variables that are already set.
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: read %s: %v", dotenvPath, err)
	}

	cfg := Config{
		Env:             env("APP_ENV", defaultEnv),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		DBPath:          env("DB_PATH", defaultDBPath),
		Port:            env("PORT", defaultPort),
		DefaultCurrency: strings.ToUpper(env("DEFAULT_CURRENCY", defaultCurrency)),
		QuoteSource:     strings.ToLower(env("QUOTE_SOURCE", QuoteSourceSQLite)),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         env("MONGO_DB", defaultMongoDB),
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}

	switch cfg.QuoteSource {
	case QuoteSourceSQLite:
	case QuoteSourceMongo:
		if cfg.MongoURI == "" {
			log.Print("warning: QUOTE_SOURCE=mongo without MONGO_URI, using sqlite")
			cfg.QuoteSource = QuoteSourceSQLite
		}
	default:
		log.Printf("warning: unknown QUOTE_SOURCE %q, using sqlite", cfg.QuoteSource)
		cfg.QuoteSource = QuoteSourceSQLite
	}

	return cfg
}

// IsDev reports whether the app runs in a local development environment.
func (c Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
