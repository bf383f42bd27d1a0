// Package usuarios содержит хранилище пользователей (Users Store).
//
// Хранилище держит упорядоченную коллекцию записей в памяти и после каждой
// изменяющей операции целиком сохраняет её в слот (storage.Slot) под
// фиксированным ключом. Уникальный ключ записи — cedula.
package usuarios

import (
	"encoding/json"
	"fmt"
	"maps"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

// Имена полей, которые хранилище проставляет само.
const (
	KeyCedula        = "cedula"
	KeyID            = "id"
	KeyFechaRegistro = "fechaRegistro"
	KeyActivo        = "activo"
)

// Usuario — запись пользователя в виде плоского объекта "имя поля -> значение".
//
// Значения — строки, числа, bool или null. Обязательное поле — cedula (строка).
// Поля id, fechaRegistro и activo проставляются хранилищем при Add.
type Usuario map[string]any

// New собирает запись из cedula и произвольных полей.
// Поле cedula в campos игнорируется.
func New(cedula string, campos map[string]any) Usuario {
	u := make(Usuario, len(campos)+1)
	maps.Copy(u, campos)
	u[KeyCedula] = cedula
	return u
}

// Cedula возвращает идентификатор пользователя или "", если поля нет
// или оно не строка.
func (u Usuario) Cedula() string {
	s, _ := u[KeyCedula].(string)
	return s
}

// ID возвращает время создания записи в миллисекундах Unix.
func (u Usuario) ID() int64 {
	switch v := u[KeyID].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return int64(f)
	}
	return 0
}

// FechaRegistro возвращает ISO-8601 время регистрации ("" если не задано).
func (u Usuario) FechaRegistro() string {
	s, _ := u[KeyFechaRegistro].(string)
	return s
}

// Activo сообщает, активна ли запись.
func (u Usuario) Activo() bool {
	b, _ := u[KeyActivo].(bool)
	return b
}

// Clone возвращает копию записи. Значения скалярные, поэтому копии map достаточно.
func (u Usuario) Clone() Usuario {
	if u == nil {
		return nil
	}
	return maps.Clone(u)
}

// checkFlat проверяет, что все значения — скаляры.
func (u Usuario) checkFlat() error {
	for k, v := range u {
		switch v.(type) {
		case nil, string, bool, json.Number,
			float64, float32,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64:
		default:
			return fmt.Errorf("field %q: unsupported value of type %T", k, v)
		}
	}
	return nil
}

// validate проверяет запись перед добавлением.
func (u Usuario) validate() error {
	if u == nil {
		return fmt.Errorf("%w: empty record", serr.ErrInvalidInput)
	}
	if u.Cedula() == "" {
		return fmt.Errorf("%w: cedula is required", serr.ErrInvalidInput)
	}
	if err := u.checkFlat(); err != nil {
		return fmt.Errorf("%w: %v", serr.ErrInvalidInput, err)
	}
	return nil
}
