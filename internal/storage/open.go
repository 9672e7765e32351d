package storage

import (
	"context"
	"fmt"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/config"
)

// Open builds the Store selected by settings.
func Open(ctx context.Context, s config.Settings) (Store, error) {
	switch s.Store {
	case config.StoreSQLite:
		db, err := OpenAndMigrate(s.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", s.SQLitePath, err)
		}
		return NewSQLiteStore(db), nil
	case config.StorePostgres:
		return NewPostgresStore(ctx, s.PostgresURL)
	case config.StoreJSON:
		return NewJSONStore(s.JSONPath)
	case config.StoreMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store %q", s.Store)
}
