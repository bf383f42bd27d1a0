// Package http реализует маршрутизацию HTTP-слоя сервера usuarios.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - CORS и логирование выполнения HTTP-запросов;
//   - проверку JWT оператора на изменяющих маршрутах.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/IvanChernomyrdin/go-usuarios/internal/server/api"
	"github.com/IvanChernomyrdin/go-usuarios/internal/server/middleware"
)

// RouterOptions — необязательные части роутера.
type RouterOptions struct {
	// Verifier проверяет токены на POST/DELETE. nil — аутентификация выключена.
	Verifier *middleware.JWTVerifier
	// AllowedOrigins — CORS; пусто — CORS не подключается.
	AllowedOrigins []string
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Чтение (GET) доступно всем, изменения требуют токен оператора,
// если задан opts.Verifier. Отдельная запись адресуется параметром
// запроса ?cedula=, а не сегментом пути: cedula может быть любой строкой.
func NewRouter(h *api.Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", h.Health)

	r.Route("/usuarios", func(r chi.Router) {
		// публичные пути
		// GET /usuarios?cedula=... ищет одну запись
		r.Get("/", h.ListUsuarios)
		r.Get("/count", h.CountUsuarios)

		// защищённые пути
		r.Group(func(r chi.Router) {
			if opts.Verifier != nil {
				r.Use(opts.Verifier.AuthMiddleware())
			}
			r.Post("/", h.AddUsuario)
			// DELETE /usuarios?cedula=... удаляет одну запись
			r.Delete("/", h.ClearUsuarios)
		})
	})

	return r
}
