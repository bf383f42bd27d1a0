// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/IvanChernomyrdin/go-usuarios/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/models"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
type ctxKey string

const (
	operatorKey  ctxKey = "operator"
	requestIDKey ctxKey = "request_id"
)

// JWTVerifier проверяет токены операторов.
type JWTVerifier struct {
	SigningKey string // симметричный ключ HS256
	Issuer     string // ожидаемый issuer (опционально)
	Audience   string // ожидаемая audience (опционально)
}

// NewJWTVerifier создаёт новый JWTVerifier с заданными параметрами.
func NewJWTVerifier(signingKey, issuer, audience string) *JWTVerifier {
	return &JWTVerifier{SigningKey: signingKey, Issuer: issuer, Audience: audience}
}

// OperatorFromContext возвращает оператора, чей токен прошёл проверку.
func OperatorFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(operatorKey).(string)
	return s, ok
}

// AuthMiddleware пропускает запрос только с валидным
// Authorization: Bearer <token>; иначе 401 с JSON-ошибкой.
func (v *JWTVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	cfg := crypto.TokenConfig{
		SigningKey: v.SigningKey,
		Issuer:     v.Issuer,
		Audience:   v.Audience,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			operator, err := crypto.ParseOperatorToken(tokenStr, cfg)
			if err != nil {
				switch {
				case errors.Is(err, crypto.ErrTokenExpired):
					unauthorized(w, "token expired")
				case errors.Is(err, crypto.ErrTokenIssuer):
					unauthorized(w, "invalid token issuer")
				case errors.Is(err, crypto.ErrTokenAudience):
					unauthorized(w, "invalid token audience")
				case errors.Is(err, crypto.ErrTokenSubject):
					unauthorized(w, "invalid token subject")
				default:
					unauthorized(w, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey, operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
