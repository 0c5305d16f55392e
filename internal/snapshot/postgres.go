package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"imperium-server/internal/shared/database"
)

// PostgresStore keeps the ledger document in a single-row upsert table.
type PostgresStore struct {
	db     *database.DB
	logger *slog.Logger
}

func NewPostgresStore(db *database.DB, logger *slog.Logger) *PostgresStore {
	logger.Debug("Initializing postgres snapshot store")

	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	logger := s.logger.With("component", "snapshot_postgres", "operation", "save", "bytes", len(data))
	logger.Debug("Saving snapshot")

	query := `
		INSERT INTO snapshots (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, Key, data); err != nil {
		logger.Error("Failed to save snapshot", "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	logger.Debug("Snapshot saved")
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	logger := s.logger.With("component", "snapshot_postgres", "operation", "load")
	logger.Debug("Loading snapshot")

	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM snapshots WHERE key = $1", Key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		logger.Debug("No snapshot stored yet")
		return nil, ErrNotFound{}
	}
	if err != nil {
		logger.Error("Failed to load snapshot", "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	logger.Debug("Snapshot loaded", "bytes", len(data))
	return data, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
