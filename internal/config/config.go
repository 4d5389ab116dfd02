package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	// SQLitePath is the structured store's database file.
	SQLitePath string
	// DataDir holds the flat store's collection files.
	DataDir string

	Port            string
	SecretKey       string
	DefaultLanguage string
	Timezone        string

	LogLevel  string
	LogFormat string
	LogOutput string
	LogFile   string
}

func Load() Config {
	dataDir := getEnv("DATA_DIR", "data")
	return Config{
		SQLitePath:      getEnv("DB_PATH", filepath.Join(dataDir, "mizan.db")),
		DataDir:         dataDir,
		Port:            getEnv("PORT", "8080"),
		SecretKey:       getEnv("SECRET_KEY", "change_me_in_production"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "ar"),
		Timezone:        getEnv("TZ", "Asia/Baghdad"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		LogOutput:       getEnv("LOG_OUTPUT", "stderr"),
		LogFile:         getEnv("LOG_FILE", ""),
	}
}

// Location resolves the configured timezone, falling back to UTC on an
// invalid name rather than failing startup.
func (cfg Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid TZ %q, falling back to UTC\n", cfg.Timezone)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
