package tests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/cli"
	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

func TestLocal_FullCycle(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	out, err := run(t, "", "--dir", dir, "add", "--cedula", "123", "--set", "nombre=Ana", "--set", "edad=30", "--set", "vip=true")
	require.NoError(t, err)
	require.JSONEq(t, `{"cedula":"123","nombre":"Ana","edad":30,"vip":true}`, out)

	_, err = run(t, "", "--dir", dir, "add", "--cedula", "123")
	require.ErrorIs(t, err, serr.ErrDuplicateCedula)

	out, err = run(t, "", "--dir", dir, "count")
	require.NoError(t, err)
	require.Equal(t, "1\n", out)

	out, err = run(t, "", "--dir", dir, "find", "123")
	require.NoError(t, err)
	var u map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &u))
	require.Equal(t, "Ana", u["nombre"])
	require.Equal(t, true, u["activo"])
	require.NotEmpty(t, u["fechaRegistro"])

	_, err = run(t, "", "--dir", dir, "find", "999")
	require.ErrorIs(t, err, serr.ErrNotFound)

	_, err = run(t, "", "--dir", dir, "add", "--json", `{"cedula":"456","saldo":10.5}`)
	require.NoError(t, err)

	out, err = run(t, "", "--dir", dir, "list")
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	require.Equal(t, "123", list[0]["cedula"])
	require.Equal(t, "456", list[1]["cedula"])

	out, err = run(t, "", "--dir", dir, "delete", "123")
	require.NoError(t, err)
	require.Equal(t, "deleted=true\n", out)

	out, err = run(t, "", "--dir", dir, "delete", "123")
	require.NoError(t, err)
	require.Equal(t, "deleted=false\n", out)

	_, err = run(t, "", "--dir", dir, "clear")
	require.Error(t, err)

	_, err = run(t, "", "--dir", dir, "clear", "--yes")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "camilo_usuarios.json"))
	require.True(t, os.IsNotExist(err), "clear must remove the slot file")

	out, err = run(t, "", "--dir", dir, "list")
	require.NoError(t, err)
	require.JSONEq(t, `[]`, out)
}

func TestLocal_CustomKeyAndSQLite(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "usuarios.db")

	_, err := run(t, "", "--driver", "sqlite", "--dsn", db, "--key", "otros", "add", "--cedula", "1")
	require.NoError(t, err)

	out, err := run(t, "", "--driver", "sqlite", "--dsn", db, "--key", "otros", "count")
	require.NoError(t, err)
	require.Equal(t, "1\n", out)

	out, err = run(t, "", "--driver", "sqlite", "--dsn", db, "count")
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestLocal_Encrypted(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, err := run(t, "secreto\n", "--dir", dir, "--encrypt", "--passphrase-stdin", "add", "--cedula", "777")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "camilo_usuarios.json"))
	require.NoError(t, err)
	require.NotContains(t, string(raw), `"cedula"`)

	out, err := run(t, "secreto\n", "--dir", dir, "--encrypt", "--passphrase-stdin", "count")
	require.NoError(t, err)
	require.Equal(t, "1\n", out)

	_, err = run(t, "otro\n", "--dir", dir, "--encrypt", "--passphrase-stdin", "count")
	require.ErrorIs(t, err, serr.ErrDecrypt)

	// пароль из окружения
	t.Setenv("USUARIOS_PASSPHRASE", "secreto")
	out, err = run(t, "", "--dir", dir, "--encrypt", "count")
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestLocal_CorruptSlot(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "camilo_usuarios.json"), []byte("{oops"), 0o600))

	_, err := run(t, "", "--dir", dir, "count")
	require.ErrorIs(t, err, serr.ErrCorruptSlot)
}

func TestAdd_InvalidFlags(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	cases := [][]string{
		{"add"},
		{"add", "--cedula", "1", "--set", "sin-igual"},
		{"add", "--cedula", "1", "--set", "=x"},
		{"add", "--json", "{bad"},
		{"add", "--json", "null"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := run(t, "", append([]string{"--dir", dir}, args...)...)
			require.Error(t, err)
		})
	}
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"false", false},
		{"null", nil},
		{"30", json.Number("30")},
		{"-1.5e3", json.Number("-1.5e3")},
		{`"30"`, "30"},
		{"Ana", "Ana"},
		{"", ""},
		{"0x10", "0x10"},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, cli.ParseValue(tc.in), "input %q", tc.in)
	}
}
