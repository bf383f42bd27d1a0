package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/api"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-usuarios/internal/storage"
	"github.com/IvanChernomyrdin/go-usuarios/internal/usuarios"
)

// Backend — операции над коллекцией, общие для локального и удалённого режима.
type Backend interface {
	Add(ctx context.Context, u usuarios.Usuario) (usuarios.Usuario, error)
	Find(ctx context.Context, cedula string) (usuarios.Usuario, bool, error)
	Remove(ctx context.Context, cedula string) (bool, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]usuarios.Usuario, error)
	Close() error
}

// serverURL — адрес сервера из флага или из credentials.json.
func (a *App) serverURL() string {
	if a.Server != "" {
		return a.Server
	}
	if a.Local || a.Creds == nil {
		return ""
	}
	return a.Creds.Server
}

func (a *App) token() string {
	if a.Token != "" {
		return a.Token
	}
	if a.Creds == nil {
		return ""
	}
	return a.Creds.AccessToken
}

// openBackend выбирает бэкенд: HTTP API, если известен сервер, иначе локальный слот.
func (a *App) openBackend(cmd *cobra.Command) (Backend, error) {
	if srv := a.serverURL(); srv != "" {
		return &remoteBackend{c: NewAPIClient(srv, api.WithToken(a.token()))}, nil
	}

	opts := storage.Options{
		Driver: a.Driver,
		Dir:    a.Dir,
		DSN:    a.DSN,
	}
	if a.Encrypt {
		pass := os.Getenv("USUARIOS_PASSPHRASE")
		if pass == "" {
			p, err := ReadSecret(cmd, "Passphrase: ", a.PassphraseStdin)
			if err != nil {
				return nil, err
			}
			pass = p
		}
		opts.Passphrase = pass
	}

	ctx := cmd.Context()
	slot, closer, err := OpenSlot(ctx, opts)
	if err != nil {
		return nil, err
	}

	store, err := usuarios.Open(ctx, slot, usuarios.WithKey(a.Key))
	if err != nil {
		closer.Close()
		return nil, err
	}
	store.Subscribe(usuarios.LogObserver(NewLogger(a.logDir())))

	return &localBackend{s: store, closer: closer}, nil
}

// logDir — <каталог слота>/logs.
func (a *App) logDir() string {
	dir := a.Dir
	if dir == "" {
		d, err := storage.DefaultDir()
		if err != nil {
			return logger.DefaultDir
		}
		dir = d
	}
	return filepath.Join(dir, "logs")
}

type localBackend struct {
	s      *usuarios.Store
	closer io.Closer
}

func (b *localBackend) Add(ctx context.Context, u usuarios.Usuario) (usuarios.Usuario, error) {
	return b.s.Add(ctx, u)
}

func (b *localBackend) Find(_ context.Context, cedula string) (usuarios.Usuario, bool, error) {
	u, ok := b.s.FindByCedula(cedula)
	return u, ok, nil
}

func (b *localBackend) Remove(ctx context.Context, cedula string) (bool, error) {
	return b.s.Remove(ctx, cedula)
}

func (b *localBackend) Count(context.Context) (int, error) { return b.s.Count(), nil }

func (b *localBackend) Clear(ctx context.Context) error { return b.s.Clear(ctx) }

func (b *localBackend) List(context.Context) ([]usuarios.Usuario, error) { return b.s.List(), nil }

func (b *localBackend) Close() error { return b.closer.Close() }

type remoteBackend struct {
	c *api.Client
}

func (b *remoteBackend) Add(ctx context.Context, u usuarios.Usuario) (usuarios.Usuario, error) {
	return b.c.AddUsuario(ctx, u)
}

func (b *remoteBackend) Find(ctx context.Context, cedula string) (usuarios.Usuario, bool, error) {
	return b.c.FindByCedula(ctx, cedula)
}

func (b *remoteBackend) Remove(ctx context.Context, cedula string) (bool, error) {
	return b.c.RemoveUsuario(ctx, cedula)
}

func (b *remoteBackend) Count(ctx context.Context) (int, error) { return b.c.Count(ctx) }

func (b *remoteBackend) Clear(ctx context.Context) error { return b.c.Clear(ctx) }

func (b *remoteBackend) List(ctx context.Context) ([]usuarios.Usuario, error) { return b.c.List(ctx) }

func (b *remoteBackend) Close() error { return nil }
