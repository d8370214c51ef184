package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hafizmfadli/go-vidly/internal/jsonlog"
)

// PostgresStore is a Store backed by a PostgreSQL table of named
// payloads, one row per storage key. Every save is a single upsert of
// the whole payload, so the gateway's replace-the-collection contract
// maps onto one statement.
type PostgresStore struct {
	DB     *sql.DB
	Logger *jsonlog.Logger
}

// NewPostgresStore returns a PostgresStore over db, creating the
// backing table if it does not exist yet.
func NewPostgresStore(db *sql.DB, logger *jsonlog.Logger) (*PostgresStore, error) {
	s := &PostgresStore{DB: db, Logger: logger}

	query := `
		CREATE TABLE IF NOT EXISTS collections (
			name text PRIMARY KEY,
			payload bytea NOT NULL
		)`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// get returns the payload stored under name, or nil when the key has
// never been written.
func (s *PostgresStore) get(name string) ([]byte, error) {
	query := `
		SELECT payload
		FROM collections
		WHERE name = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var payload []byte
	err := s.DB.QueryRowContext(ctx, query, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return payload, nil
}

// set overwrites the payload stored under name in a single statement.
func (s *PostgresStore) set(name string, payload []byte) error {
	query := `
		INSERT INTO collections (name, payload)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := s.DB.ExecContext(ctx, query, name, payload)
	return err
}

// remove deletes the row stored under name, if any.
func (s *PostgresStore) remove(name string) error {
	query := `
		DELETE FROM collections
		WHERE name = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := s.DB.ExecContext(ctx, query, name)
	return err
}

func (s *PostgresStore) LoadGenres() ([]*Genre, error) {
	payload, err := s.get(keyGenres)
	if err != nil {
		return nil, err
	}
	return decodeGenres(payload, s.Logger), nil
}

func (s *PostgresStore) SaveGenres(genres []*Genre) error {
	payload, err := encodeGenres(genres)
	if err != nil {
		return err
	}
	return s.set(keyGenres, payload)
}

func (s *PostgresStore) LoadMovies() ([]*Movie, error) {
	payload, err := s.get(keyMovies)
	if err != nil {
		return nil, err
	}
	return decodeMovies(payload, s.Logger), nil
}

func (s *PostgresStore) SaveMovies(movies []*Movie) error {
	payload, err := encodeMovies(movies)
	if err != nil {
		return err
	}
	return s.set(keyMovies, payload)
}

func (s *PostgresStore) LoadStagedEditID() (int64, error) {
	payload, err := s.get(keyStagedEdit)
	if err != nil {
		return 0, err
	}
	return decodeStagedEditID(payload, s.Logger), nil
}

func (s *PostgresStore) SaveStagedEditID(id int64) error {
	if id == 0 {
		return s.remove(keyStagedEdit)
	}

	payload, err := encodeStagedEditID(id)
	if err != nil {
		return err
	}
	return s.set(keyStagedEdit, payload)
}
