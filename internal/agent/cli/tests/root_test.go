package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/config"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := cli.NewRootCmd("1.0.0", "2026-10-19")

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	want := []string{"add", "find", "delete", "count", "list", "clear", "token", "login", "logout", "version"}
	for _, w := range want {
		if !names[w] {
			t.Fatalf("expected subcommand %q to exist", w)
		}
	}
}

func TestNewRootCmd_Version(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "usuarios 1.0.0 (сборка 2026-10-19)\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewRootCmd_VersionShort(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "version", "--short")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "1.0.0\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewRootCmd_PersistentPreRunE_ReturnsErrorOnBadCredsFile(t *testing.T) {
	isolate(t)

	p, err := config.DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(p, []byte("{bad json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := run(t, "", "version"); err == nil {
		t.Fatalf("expected error on bad credentials file")
	}
}

func TestNewRootCmd_DefaultSlotInHome(t *testing.T) {
	home := isolate(t)

	if _, err := run(t, "", "add", "--cedula", "1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(home, ".usuarios", "camilo_usuarios.json"))
	if err != nil {
		t.Fatalf("expected slot file in home: %v", err)
	}
	if !strings.Contains(string(b), `"cedula":"1"`) {
		t.Fatalf("unexpected slot content: %s", b)
	}
}
