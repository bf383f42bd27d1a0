package tests

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/config"
	srvapi "github.com/IvanChernomyrdin/go-usuarios/internal/server/api"
	"github.com/IvanChernomyrdin/go-usuarios/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-usuarios/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-usuarios/internal/server/net/http"
	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-usuarios/internal/storage"
	"github.com/IvanChernomyrdin/go-usuarios/internal/usuarios"
)

const signingKey = "supersecretkeysupersecretkey123456"

func newServer(t *testing.T) (*httptest.Server, *usuarios.Store) {
	t.Helper()

	store, err := usuarios.Open(context.Background(), storage.NewMemorySlot())
	require.NoError(t, err)

	router := h.NewRouter(srvapi.NewHandler(store, logger.Nop(), 0), h.RouterOptions{
		Verifier: middleware.NewJWTVerifier(signingKey, "usuarios", "usuarios-cli"),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store
}

func mintToken(t *testing.T) string {
	t.Helper()
	tok, err := crypto.NewOperatorToken("camilo", crypto.TokenConfig{
		Issuer:     "usuarios",
		Audience:   "usuarios-cli",
		SigningKey: signingKey,
		TTL:        time.Minute,
	})
	require.NoError(t, err)
	return tok
}

func TestRemote_WithFlags(t *testing.T) {
	isolate(t)
	srv, store := newServer(t)
	token := mintToken(t)

	_, err := run(t, "", "--server", srv.URL, "add", "--cedula", "1")
	require.ErrorIs(t, err, serr.ErrUnauthorized)

	out, err := run(t, "", "--server", srv.URL, "--token", token, "add", "--cedula", "1", "--set", "nombre=Ana")
	require.NoError(t, err)
	require.JSONEq(t, `{"cedula":"1","nombre":"Ana"}`, out)
	require.Equal(t, 1, store.Count())

	_, err = run(t, "", "--server", srv.URL, "--token", token, "add", "--cedula", "1")
	require.ErrorIs(t, err, serr.ErrDuplicateCedula)

	// чтение без токена
	out, err = run(t, "", "--server", srv.URL, "count")
	require.NoError(t, err)
	require.Equal(t, "1\n", out)

	out, err = run(t, "", "--server", srv.URL, "find", "1")
	require.NoError(t, err)
	var u map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &u))
	require.Equal(t, true, u["activo"])

	_, err = run(t, "", "--server", srv.URL, "find", "2")
	require.ErrorIs(t, err, serr.ErrNotFound)

	out, err = run(t, "", "--server", srv.URL, "--token", token, "delete", "1")
	require.NoError(t, err)
	require.Equal(t, "deleted=true\n", out)

	_, err = run(t, "", "--server", srv.URL, "--token", token, "clear", "--yes")
	require.NoError(t, err)
	require.Equal(t, 0, store.Count())
}

func TestRemote_LoginLogout(t *testing.T) {
	isolate(t)
	srv, store := newServer(t)
	token := mintToken(t)
	localDir := t.TempDir()

	_, err := run(t, "", "login")
	require.Error(t, err)

	out, err := run(t, token+"\n", "--server", srv.URL, "login", "--token-stdin")
	require.NoError(t, err)
	require.Contains(t, out, "login ok")

	p, err := config.DefaultPath()
	require.NoError(t, err)
	creds, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, srv.URL, creds.Server)
	require.Equal(t, token, creds.AccessToken)

	// без --server команды идут на сохранённый сервер
	_, err = run(t, "", "add", "--cedula", "42")
	require.NoError(t, err)
	require.Equal(t, 1, store.Count())

	// --local игнорирует login
	out, err = run(t, "", "--local", "--dir", localDir, "count")
	require.NoError(t, err)
	require.Equal(t, "0\n", out)

	_, err = run(t, "", "logout")
	require.NoError(t, err)

	out, err = run(t, "", "--dir", localDir, "count")
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
	require.Equal(t, 1, store.Count())
}

func TestRemote_LoginUnreachable(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "--server", "http://127.0.0.1:1", "--token", "x", "login")
	require.Error(t, err)
}
