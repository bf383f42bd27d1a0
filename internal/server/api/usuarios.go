package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-usuarios/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/models"
	"github.com/IvanChernomyrdin/go-usuarios/internal/usuarios"
)

// ErrPayloadTooLarge — тело запроса больше MaxBodyBytes.
var ErrPayloadTooLarge = errors.New("payload too large")

// Health отвечает 200 {"status":"ok"}.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AddUsuario регистрирует пользователя.
//
// Тело — плоский JSON-объект с обязательным строковым полем cedula.
// В ответе 201 возвращается исходное тело: id, fechaRegistro и activo
// сервер проставляет только в сохранённую копию.
//
// @Summary      Add usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} map[string]any
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} models.ErrorResponse "Duplicate cedula"
// @Failure      413 {object} models.ErrorResponse "Payload too large"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /usuarios [post]
func (h *Handler) AddUsuario(w http.ResponseWriter, r *http.Request) {
	u, err := h.decodeUsuario(w, r)
	if err != nil {
		if errors.Is(err, ErrPayloadTooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.Store.Add(r.Context(), u)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusConflict, err)
		default:
			h.internal(w, r, "add usuario failed", err, zap.String("cedula", u.Cedula()))
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListUsuarios возвращает всю коллекцию в порядке регистрации.
// С параметром ?cedula= запрос уходит в GetUsuario.
//
// @Summary      List usuarios
// @Tags         usuarios
// @Produce      json
// @Param        cedula query string false "Cedula; если задан, ищется одна запись"
// @Success      200 {object} models.ListUsuariosResponse
// @Router       /usuarios [get]
func (h *Handler) ListUsuarios(w http.ResponseWriter, r *http.Request) {
	if cedula, ok := cedulaParam(r); ok {
		h.getUsuario(w, cedula)
		return
	}
	writeJSON(w, http.StatusOK, models.ListUsuariosResponse{Usuarios: h.Store.List()})
}

// CountUsuarios возвращает число записей.
func (h *Handler) CountUsuarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.CountResponse{Total: h.Store.Count()})
}

// GetUsuario ищет запись по ?cedula=; 404, если её нет или параметр не задан.
//
// @Summary      Find usuario by cedula
// @Tags         usuarios
// @Produce      json
// @Param        cedula query string true "Cedula"
// @Success      200 {object} map[string]any
// @Failure      404 {object} models.ErrorResponse "Not found"
// @Router       /usuarios [get]
func (h *Handler) GetUsuario(w http.ResponseWriter, r *http.Request) {
	cedula, ok := cedulaParam(r)
	if !ok {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}
	h.getUsuario(w, cedula)
}

func (h *Handler) getUsuario(w http.ResponseWriter, cedula string) {
	u, ok := h.Store.FindByCedula(cedula)
	if !ok {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// DeleteUsuario удаляет запись по ?cedula=. Отсутствие записи не ошибка:
// ответ 200 {"deleted":false}. Без параметра ответ 400.
//
// @Summary      Remove usuario
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        cedula query string true "Cedula"
// @Success      200 {object} models.DeleteUsuarioResponse
// @Failure      400 {object} models.ErrorResponse "Missing cedula"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /usuarios [delete]
func (h *Handler) DeleteUsuario(w http.ResponseWriter, r *http.Request) {
	cedula, ok := cedulaParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}
	h.deleteUsuario(w, r, cedula)
}

func (h *Handler) deleteUsuario(w http.ResponseWriter, r *http.Request, cedula string) {
	deleted, err := h.Store.Remove(r.Context(), cedula)
	if err != nil {
		h.internal(w, r, "remove usuario failed", err, zap.String("cedula", cedula))
		return
	}
	writeJSON(w, http.StatusOK, models.DeleteUsuarioResponse{Deleted: deleted})
}

// ClearUsuarios очищает коллекцию; 204 без тела.
// С параметром ?cedula= удаляется только эта запись.
func (h *Handler) ClearUsuarios(w http.ResponseWriter, r *http.Request) {
	if cedula, ok := cedulaParam(r); ok {
		h.deleteUsuario(w, r, cedula)
		return
	}
	if err := h.Store.Clear(r.Context()); err != nil {
		h.internal(w, r, "clear usuarios failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// cedulaParam достаёт cedula из строки запроса. Пустое значение
// (?cedula=) считается заданным.
func cedulaParam(r *http.Request) (string, bool) {
	q := r.URL.Query()
	if !q.Has("cedula") {
		return "", false
	}
	return q.Get("cedula"), true
}

func (h *Handler) decodeUsuario(w http.ResponseWriter, r *http.Request) (usuarios.Usuario, error) {
	body := http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var u usuarios.Usuario
	if err := dec.Decode(&u); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrPayloadTooLarge
		}
		return nil, serr.ErrBadJSON
	}
	if u == nil {
		return nil, fmt.Errorf("ожидается JSON-объект: %w", serr.ErrBadJSON)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, serr.ErrBadJSON
	}
	return u, nil
}

func (h *Handler) internal(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.Error(err),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
	)
	if op, ok := middleware.OperatorFromContext(r.Context()); ok {
		fields = append(fields, zap.String("operator", op))
	}
	h.Log.Error(msg, fields...)
	WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
}
