package tests

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/crypto"
	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-usuarios/internal/storage"
)

func fastKDF() crypto.KDFParams {
	return crypto.KDFParams{Time: 1, Memory: 1024, Threads: 1, KeyLen: crypto.KeySize, SaltLen: crypto.SaltSize}
}

func TestEncryptedSlot_RoundTripAndCiphertextAtRest(t *testing.T) {
	ctx := context.Background()
	inner := storage.NewMemorySlot()
	s := storage.NewEncryptedSlot(inner, crypto.NewSealer("pass", fastKDF()))

	plain := `[{"cedula":"1020304050"}]`
	require.NoError(t, s.Set(ctx, "k", []byte(plain)))

	raw, ok, err := inner.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, strings.Contains(string(raw), "1020304050"))
	_, err = base64.StdEncoding.DecodeString(string(raw))
	require.NoError(t, err)

	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, plain, string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEncryptedSlot_WrongPassphrase(t *testing.T) {
	ctx := context.Background()
	inner := storage.NewMemorySlot()

	require.NoError(t, storage.NewEncryptedSlot(inner, crypto.NewSealer("a", fastKDF())).Set(ctx, "k", []byte("x")))

	_, _, err := storage.NewEncryptedSlot(inner, crypto.NewSealer("b", fastKDF())).Get(ctx, "k")
	require.ErrorIs(t, err, serr.ErrDecrypt)
}

func TestEncryptedSlot_PlainDataInInnerSlot(t *testing.T) {
	ctx := context.Background()
	inner := storage.NewMemorySlot()
	require.NoError(t, inner.Set(ctx, "k", []byte(`[{"cedula":"1"}]`)))

	_, _, err := storage.NewEncryptedSlot(inner, crypto.NewSealer("a", fastKDF())).Get(ctx, "k")
	require.ErrorIs(t, err, serr.ErrDecrypt)
}
