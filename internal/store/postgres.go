package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose
	"github.com/pressly/goose/v3"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/logger"
	migrationsfs "github.com/lootledger/engine/migrations"
)

// DefaultSlot is the save slot used when none is configured.
const DefaultSlot = "primary"

// PostgresStore persists save documents as versioned JSONB rows, one
// per slot. Schema is managed with goose from the embedded migrations.
type PostgresStore struct {
	pool *pgxpool.Pool
	slot string
}

// NewPostgresStore connects, migrates the schema, and returns a store
// bound to the given slot. An empty slot uses DefaultSlot.
func NewPostgresStore(ctx context.Context, connString, slot string) (*PostgresStore, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	if err := migrateSchema(connString); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool, slot: slot}, nil
}

func migrateSchema(connString string) error {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("failed to open database for migration: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsfs.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info(LogMsgSchemaUpdated)
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (*domain.GameState, error) {
	var version int
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT version, state FROM save_slots WHERE slot_name = $1`,
		s.slot,
	).Scan(&version, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("failed to load save slot %s: %w", s.slot, err)
	}

	state, err := decodeState(version, raw)
	if err != nil {
		return nil, err
	}
	if version < CurrentVersion {
		logger.Info(LogMsgSaveMigrated, "slot", s.slot, "from", version, "to", CurrentVersion)
	}
	return state, nil
}

func (s *PostgresStore) Save(ctx context.Context, state *domain.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO save_slots (slot_name, version, state, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (slot_name)
		 DO UPDATE SET version = EXCLUDED.version, state = EXCLUDED.state, updated_at = NOW()`,
		s.slot, CurrentVersion, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", s.slot, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
