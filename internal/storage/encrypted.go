package storage

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/crypto"
	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

// EncryptedSlot шифрует значения перед записью во вложенный слот.
//
// В нижележащем слоте лежит base64 от blob'а crypto.Sealer, то есть
// значение остаётся текстом и подходит для TEXT-колонки или JSON-файла.
type EncryptedSlot struct {
	inner  Slot
	sealer *crypto.Sealer
}

// NewEncryptedSlot оборачивает inner.
func NewEncryptedSlot(inner Slot, sealer *crypto.Sealer) *EncryptedSlot {
	return &EncryptedSlot{inner: inner, sealer: sealer}
}

func (s *EncryptedSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}

	blob, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		return nil, false, fmt.Errorf("%w: slot %q is not base64", serr.ErrDecrypt, key)
	}
	plain, err := s.sealer.Open(blob)
	if err != nil {
		return nil, false, fmt.Errorf("slot %q: %w", key, err)
	}
	return plain, true, nil
}

func (s *EncryptedSlot) Set(ctx context.Context, key string, value []byte) error {
	blob, err := s.sealer.Seal(value)
	if err != nil {
		return fmt.Errorf("encrypt slot %q: %w", key, err)
	}
	return s.inner.Set(ctx, key, []byte(base64.StdEncoding.EncodeToString(blob)))
}

func (s *EncryptedSlot) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
