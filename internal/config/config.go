package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Store backends selectable through SURVEY_STORE.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Config carries the environment-derived settings for the server.
type Config struct {
	Addr          string
	StoreBackend  string
	DataFile      string
	SQLiteFile    string
	MongoURI      string
	MongoDatabase string
	Debug         bool
}

// FromEnv assembles the configuration from environment variables,
// applying defaults where a variable is unset.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:          ":" + env("PORT", "8080"),
		StoreBackend:  strings.ToLower(env("SURVEY_STORE", StoreFile)),
		DataFile:      env("SURVEY_DATA_FILE", "data/survey.ndjson"),
		SQLiteFile:    env("SURVEY_SQLITE_FILE", "data/survey.db"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: env("DB_NAME", "survey"),
		Debug:         env("SURVEY_DEBUG", "false") == "true",
	}

	switch cfg.StoreBackend {
	case StoreFile, StoreSQLite, StoreMongo:
	default:
		return cfg, errors.Errorf("unknown SURVEY_STORE %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == StoreMongo && cfg.MongoURI == "" {
		return cfg, errors.New("SURVEY_STORE=mongo requires MONGODB_URI")
	}

	return cfg, nil
}

// env returns the variable's trimmed value, or fallback if unset or blank.
func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
