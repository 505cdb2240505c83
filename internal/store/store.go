// Package store persists the set of posting ids that have already been
// reported.
package store

import (
	"log/slog"

	"jobtrack/internal/model"
)

// Open constructs the configured seen-store backend.
func Open(backend, path string, logger *slog.Logger) (model.SeenStore, error) {
	switch backend {
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return NewFileStore(path, logger)
	}
}
