package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/crypto"
	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

// Драйверы слота.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options — параметры выбора и открытия слота.
type Options struct {
	// Driver — file|memory|postgres|sqlite. Пусто — file.
	Driver string
	// Dir — каталог для file. Пусто — DefaultDir().
	Dir string
	// DSN — строка подключения postgres или путь к файлу sqlite.
	DSN string
	// Passphrase — если задана, значения шифруются (EncryptedSlot).
	Passphrase string
	// KDF — параметры Argon2id для шифрования. Нулевые — по умолчанию.
	KDF crypto.KDFParams
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open открывает слот по opts.
//
// Возвращаемый io.Closer нужно закрыть при завершении работы
// (для file/memory это no-op).
func Open(ctx context.Context, opts Options) (Slot, io.Closer, error) {
	var (
		slot   Slot
		closer io.Closer = nopCloser{}
	)

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, nil, err
			}
			dir = d
		}
		slot = NewFileSlot(dir)
	case DriverMemory:
		slot = NewMemorySlot()
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, nil, fmt.Errorf("%w: postgres requires dsn", serr.ErrInvalidInput)
		}
		s, err := OpenPostgres(ctx, opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		slot, closer = s, s
	case DriverSQLite:
		if opts.DSN == "" {
			return nil, nil, fmt.Errorf("%w: sqlite requires dsn (file path)", serr.ErrInvalidInput)
		}
		s, err := OpenSQLite(ctx, opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		slot, closer = s, s
	default:
		return nil, nil, fmt.Errorf("%w: unknown storage driver %q", serr.ErrInvalidInput, opts.Driver)
	}

	if opts.Passphrase != "" {
		slot = NewEncryptedSlot(slot, crypto.NewSealer(opts.Passphrase, opts.KDF))
	}
	return slot, closer, nil
}
