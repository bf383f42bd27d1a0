// Package crypto выпускает и проверяет JWT-токены операторов,
// которым разрешено менять коллекцию usuarios через HTTP API.
package crypto

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

// DefaultTTL — срок жизни токена, если он не задан.
const DefaultTTL = time.Hour

var (
	ErrTokenExpired  = fmt.Errorf("token expired: %w", serr.ErrUnauthorized)
	ErrTokenInvalid  = fmt.Errorf("invalid token: %w", serr.ErrUnauthorized)
	ErrTokenIssuer   = fmt.Errorf("invalid token issuer: %w", serr.ErrUnauthorized)
	ErrTokenAudience = fmt.Errorf("invalid token audience: %w", serr.ErrUnauthorized)
	ErrTokenSubject  = fmt.Errorf("invalid token subject: %w", serr.ErrUnauthorized)
)

// TokenConfig описывает параметры токена оператора.
type TokenConfig struct {
	// Issuer — значение поля iss.
	Issuer string
	// Audience — значение поля aud.
	Audience string
	// SigningKey — симметричный ключ HS256.
	SigningKey string
	// TTL — срок жизни; 0 означает DefaultTTL.
	TTL time.Duration
}

// NewOperatorToken подписывает HS256-токен с sub=operator.
func NewOperatorToken(operator string, cfg TokenConfig) (string, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return "", fmt.Errorf("operator пустой: %w", serr.ErrInvalidInput)
	}
	if cfg.SigningKey == "" {
		return "", fmt.Errorf("signing key пустой: %w", serr.ErrInvalidInput)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   operator,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseOperatorToken проверяет подпись, срок, iss и aud и возвращает sub.
// Пустые Issuer/Audience в cfg не проверяются.
func ParseOperatorToken(tokenStr string, cfg TokenConfig) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return "", ErrTokenIssuer
	}
	if cfg.Audience != "" && !slices.Contains(claims.Audience, cfg.Audience) {
		return "", ErrTokenAudience
	}

	operator := strings.TrimSpace(claims.Subject)
	if operator == "" {
		return "", ErrTokenSubject
	}
	return operator, nil
}
