package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
)

// Dialect — диалект SQL для SQLSlot.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type sqlQueries struct {
	get    string
	set    string
	delete string
}

var queries = map[Dialect]sqlQueries{
	DialectPostgres: {
		get: `SELECT value FROM usuarios_slots WHERE key = $1`,
		set: `INSERT INTO usuarios_slots (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		delete: `DELETE FROM usuarios_slots WHERE key = $1`,
	},
	DialectSQLite: {
		get: `SELECT value FROM usuarios_slots WHERE key = ?`,
		set: `INSERT INTO usuarios_slots (key, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		delete: `DELETE FROM usuarios_slots WHERE key = ?`,
	},
}

// SQLSlot хранит значения слотов в таблице usuarios_slots.
//
// Схема таблицы создаётся миграциями (PostgreSQL) или EnsureSQLiteSchema (SQLite).
type SQLSlot struct {
	db *sql.DB
	q  sqlQueries
}

// NewSQLSlot оборачивает уже открытое подключение.
func NewSQLSlot(db *sql.DB, dialect Dialect) (*SQLSlot, error) {
	q, ok := queries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}
	return &SQLSlot{db: db, q: q}, nil
}

func (s *SQLSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, wrapSQLError("get", err)
	}
	return []byte(value), true, nil
}

func (s *SQLSlot) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.q.set, key, string(value)); err != nil {
		return wrapSQLError("set", err)
	}
	return nil
}

func (s *SQLSlot) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q.delete, key); err != nil {
		return wrapSQLError("delete", err)
	}
	return nil
}

// Close закрывает подключение к базе.
func (s *SQLSlot) Close() error {
	return s.db.Close()
}

// wrapSQLError добавляет к ошибке код PostgreSQL, если он есть.
func wrapSQLError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "42P01" { // undefined_table
			return fmt.Errorf("slot %s: table usuarios_slots is missing (migrations not applied): %w", op, err)
		}
		return fmt.Errorf("slot %s: postgres %s: %w", op, pgErr.Code, err)
	}
	return fmt.Errorf("slot %s: %w", op, err)
}
