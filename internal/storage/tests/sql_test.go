package tests

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-usuarios/internal/storage"
)

func newSQLSlot(t *testing.T, dialect storage.Dialect) (*storage.SQLSlot, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := storage.NewSQLSlot(db, dialect)
	require.NoError(t, err)
	return s, mock
}

func TestNewSQLSlot_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = storage.NewSQLSlot(db, "oracle")
	require.Error(t, err)
}

// Успех
func TestSQLSlot_Postgres_Get_OK(t *testing.T) {
	s, mock := newSQLSlot(t, storage.DialectPostgres)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM usuarios_slots WHERE key = $1`)).
		WithArgs("camilo_usuarios").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"cedula":"1"}]`))

	got, ok, err := s.Get(context.Background(), "camilo_usuarios")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"cedula":"1"}]`, string(got))
	require.NoError(t, mock.ExpectationsWereMet())
}

// ключа нет
func TestSQLSlot_Postgres_Get_NoRows(t *testing.T) {
	s, mock := newSQLSlot(t, storage.DialectPostgres)

	mock.ExpectQuery(`SELECT value FROM usuarios_slots`).
		WithArgs("k").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, ok)
}

// таблицы нет — понятная ошибка с кодом
func TestSQLSlot_Postgres_Get_UndefinedTable(t *testing.T) {
	s, mock := newSQLSlot(t, storage.DialectPostgres)

	mock.ExpectQuery(`SELECT value FROM usuarios_slots`).
		WillReturnError(&pgconn.PgError{Code: "42P01"})

	_, _, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	require.Contains(t, err.Error(), "migrations not applied")

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
}

func TestSQLSlot_Postgres_Set_Upsert(t *testing.T) {
	s, mock := newSQLSlot(t, storage.DialectPostgres)

	mock.ExpectExec(`INSERT INTO usuarios_slots .* ON CONFLICT \(key\) DO UPDATE`).
		WithArgs("k", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), "k", []byte(`[]`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSlot_Postgres_Set_Error(t *testing.T) {
	s, mock := newSQLSlot(t, storage.DialectPostgres)

	mock.ExpectExec(`INSERT INTO usuarios_slots`).
		WillReturnError(&pgconn.PgError{Code: "53100"}) // disk_full

	err := s.Set(context.Background(), "k", []byte(`[]`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "postgres 53100")
}

func TestSQLSlot_Postgres_Delete(t *testing.T) {
	s, mock := newSQLSlot(t, storage.DialectPostgres)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM usuarios_slots WHERE key = $1`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), "k"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSlot_SQLite_UsesQuestionPlaceholders(t *testing.T) {
	s, mock := newSQLSlot(t, storage.DialectSQLite)

	mock.ExpectExec(regexp.QuoteMeta(`VALUES (?, ?, CURRENT_TIMESTAMP)`)).
		WithArgs("k", "v").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM usuarios_slots WHERE key = ?`)).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("v"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM usuarios_slots WHERE key = ?`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", string(got))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSQLiteSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS usuarios_slots`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, storage.EnsureSQLiteSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Интеграционный тест с настоящей базой
func TestOpenPostgres_WithDSN(t *testing.T) {
	dsn := lookupEnv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	ctx := context.Background()
	s, err := storage.OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Set(ctx, "it_usuarios", []byte(`[{"cedula":"1"}]`)))
	got, ok, err := s.Get(ctx, "it_usuarios")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"cedula":"1"}]`, string(got))
	require.NoError(t, s.Delete(ctx, "it_usuarios"))
}
