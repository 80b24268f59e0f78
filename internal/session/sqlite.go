package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/lifequest/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

const (
	keyToken   = "token"
	keyProfile = "authenticated_user"
)

var ErrNoValue = errors.New("session: no stored value")

// Storage is the durable client-side key-value store holding the bearer
// token and the last profile snapshot, both cleared on sign-out.
type Storage interface {
	SaveToken(ctx context.Context, token string) error
	LoadToken(ctx context.Context) (string, error)
	SaveProfile(ctx context.Context, user model.User) error
	LoadProfile(ctx context.Context) (model.User, error)
	Clear(ctx context.Context) error
	Close() error
}

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) (*SQLiteStorage, error) {
	if db == nil {
		return nil, errors.New("session: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_values (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("create session table: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStorage(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) setValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_values (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (s *SQLiteStorage) getValue(ctx context.Context, key string) (string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM session_values WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoValue
		}
		return "", err
	}
	return value, nil
}

func (s *SQLiteStorage) SaveToken(ctx context.Context, token string) error {
	return s.setValue(ctx, keyToken, token)
}

func (s *SQLiteStorage) LoadToken(ctx context.Context) (string, error) {
	return s.getValue(ctx, keyToken)
}

func (s *SQLiteStorage) SaveProfile(ctx context.Context, user model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile snapshot: %w", err)
	}
	return s.setValue(ctx, keyProfile, string(payload))
}

func (s *SQLiteStorage) LoadProfile(ctx context.Context) (model.User, error) {
	raw, err := s.getValue(ctx, keyProfile)
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return model.User{}, fmt.Errorf("decode profile snapshot: %w", err)
	}
	return user, nil
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_values`)
	return err
}
