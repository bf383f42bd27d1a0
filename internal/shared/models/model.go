package models

import "github.com/IvanChernomyrdin/go-usuarios/internal/usuarios"

// ListUsuariosResponse — ответ эндпоинта получения всех пользователей.
//
// Используется в:
//
//	GET /usuarios
//
// Записи передаются как плоские JSON-объекты (cedula, id, fechaRegistro,
// activo и произвольные поля), в порядке регистрации.
type ListUsuariosResponse struct {
	Usuarios []usuarios.Usuario `json:"usuarios"`
}

// CountResponse — ответ эндпоинта GET /usuarios/count.
type CountResponse struct {
	Total int `json:"total"`
}

// DeleteUsuarioResponse — ответ на DELETE /usuarios?cedula=.
//
// Deleted=false, если пользователя с такой cedula не было.
type DeleteUsuarioResponse struct {
	Deleted bool `json:"deleted"`
}

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}
