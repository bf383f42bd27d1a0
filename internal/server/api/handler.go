// Package api реализует HTTP-слой сервера usuarios.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок хранилища в HTTP-коды и сообщения.
//
// Маршруты и middleware регистрируются в internal/server/net/http.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/models"
	"github.com/IvanChernomyrdin/go-usuarios/internal/usuarios"
)

const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// DefaultMaxBodyBytes — лимит тела запроса, если он не задан.
const DefaultMaxBodyBytes int64 = 1 << 20

// UsuariosStore — операции хранилища, нужные HTTP-слою.
// Реализуется *usuarios.Store.
type UsuariosStore interface {
	Add(ctx context.Context, u usuarios.Usuario) (usuarios.Usuario, error)
	FindByCedula(cedula string) (usuarios.Usuario, bool)
	Remove(ctx context.Context, cedula string) (bool, error)
	Count() int
	Clear(ctx context.Context) error
	List() []usuarios.Usuario
}

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
type Handler struct {
	Store        UsuariosStore
	Log          *logger.Logger
	MaxBodyBytes int64
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
// maxBody <= 0 означает DefaultMaxBodyBytes.
func NewHandler(store UsuariosStore, log *logger.Logger, maxBody int64) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &Handler{
		Store:        store,
		Log:          log,
		MaxBodyBytes: maxBody,
	}
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
