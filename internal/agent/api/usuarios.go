package api

import (
	"context"
	"errors"
	"net/url"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/models"
	"github.com/IvanChernomyrdin/go-usuarios/internal/usuarios"
)

// AddUsuario — POST /usuarios. Возвращает запись в том виде, в каком
// её вернул сервер (без серверных полей).
func (c *Client) AddUsuario(ctx context.Context, u usuarios.Usuario) (usuarios.Usuario, error) {
	var out usuarios.Usuario
	if err := c.PostJSON(ctx, "/usuarios", u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByCedula — GET /usuarios?cedula=. 404 даёт (nil, false, nil).
func (c *Client) FindByCedula(ctx context.Context, cedula string) (usuarios.Usuario, bool, error) {
	var out usuarios.Usuario
	err := c.GetJSON(ctx, byCedula(cedula), &out)
	if errors.Is(err, serr.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// RemoveUsuario — DELETE /usuarios?cedula=.
func (c *Client) RemoveUsuario(ctx context.Context, cedula string) (bool, error) {
	var out models.DeleteUsuarioResponse
	if err := c.DeleteJSON(ctx, byCedula(cedula), &out); err != nil {
		return false, err
	}
	return out.Deleted, nil
}

// Count — GET /usuarios/count.
func (c *Client) Count(ctx context.Context) (int, error) {
	var out models.CountResponse
	if err := c.GetJSON(ctx, "/usuarios/count", &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

// Clear — DELETE /usuarios.
func (c *Client) Clear(ctx context.Context) error {
	return c.DeleteJSON(ctx, "/usuarios", nil)
}

// List — GET /usuarios.
func (c *Client) List(ctx context.Context) ([]usuarios.Usuario, error) {
	var out models.ListUsuariosResponse
	if err := c.GetJSON(ctx, "/usuarios", &out); err != nil {
		return nil, err
	}
	if out.Usuarios == nil {
		out.Usuarios = []usuarios.Usuario{}
	}
	return out.Usuarios, nil
}

// byCedula строит путь к одной записи. cedula идёт в строку запроса:
// в пути она конфликтовала бы с /usuarios/count и ломалась бы на '/'.
func byCedula(cedula string) string {
	return "/usuarios?" + url.Values{"cedula": {cedula}}.Encode()
}
