package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps save slots in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and ensures the schema exists.
func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS save_slots (
		slot_key TEXT PRIMARY KEY,
		payload BYTEA NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.ExecContext(ctx, schema)
	return err
}

// Load returns the payload stored under key.
func (ps *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := ps.db.QueryRowContext(ctx, `SELECT payload FROM save_slots WHERE slot_key = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", key, err)
	}
	return payload, nil
}

// Save writes payload under key, replacing any previous value.
func (ps *PostgresStore) Save(ctx context.Context, key string, payload []byte) error {
	query := `
	INSERT INTO save_slots (slot_key, payload)
	VALUES ($1, $2)
	ON CONFLICT (slot_key)
	DO UPDATE SET payload = $2, updated_at = NOW()
	`
	if _, err := ps.db.ExecContext(ctx, query, key, payload); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}
	return nil
}

// Clear deletes the slot stored under key.
func (ps *PostgresStore) Clear(ctx context.Context, key string) error {
	if _, err := ps.db.ExecContext(ctx, `DELETE FROM save_slots WHERE slot_key = $1`, key); err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", key, err)
	}
	return nil
}

// Close closes the connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
