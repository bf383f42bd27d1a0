package tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/logger"
)

// isolate переносит HOME во временный каталог: credentials.json и
// слот по умолчанию не трогают настоящий ~/.usuarios.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("JWT_SIGNING_KEY", "")
	t.Setenv("USUARIOS_PASSPHRASE", "")

	origLogger := cli.NewLogger
	t.Cleanup(func() { cli.NewLogger = origLogger })
	cli.NewLogger = func(string) *logger.Logger { return logger.Nop() }

	return home
}

// run выполняет CLI с аргументами и stdin, возвращает stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := cli.NewRootCmd("1.0.0", "2026-10-19")

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}
