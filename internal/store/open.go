package store

import "github.com/rs/zerolog"

type Config struct {
	// SQLitePath is the database file for the structured variant.
	SQLitePath string
	// DataDir holds the per-collection JSON files of the flat variant.
	DataDir string
}

// Open probes the structured variant once and falls back to the flat
// variant for the rest of the process lifetime if it cannot be opened.
// The fallback is never retried mid-session.
func Open(cfg Config, log zerolog.Logger) (Backend, error) {
	backend, err := OpenSQLite(cfg.SQLitePath)
	if err == nil {
		log.Info().Str("backend", backend.Name()).Str("path", cfg.SQLitePath).Msg("structured store opened")
		return backend, nil
	}

	log.Warn().Err(err).Msg("structured store unavailable, falling back to flat store")
	flat, flatErr := OpenFlat(cfg.DataDir)
	if flatErr != nil {
		return nil, flatErr
	}
	log.Info().Str("backend", flat.Name()).Str("dir", cfg.DataDir).Msg("flat store opened")
	return flat, nil
}
