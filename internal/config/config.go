package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	defaultEnv           = "development"
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultMigrationsDir = "./migrations"
	defaultLogLevel      = "info"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	DBPath        string
	Port          string
	MigrationsDir string
	CompanyName   string
	LogLevel      string
}

// IsDev reports whether the server runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == "dev" || c.Env == defaultEnv
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Production injects real env; the file only helps local runs.
	if err := loadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("could not read .env")
	}

	cfg := Config{
		Env:           strings.ToLower(os.Getenv("APP_ENV")),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		CompanyName:   os.Getenv("COMPANY_NAME"),
		LogLevel:      strings.ToLower(os.Getenv("LOG_LEVEL")),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = defaultMigrationsDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	if cfg.CompanyName == "" {
		log.Warn().Msg("COMPANY_NAME is not set; quote headers will carry no company")
	}

	return cfg
}
