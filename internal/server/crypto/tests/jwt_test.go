package tests

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	crypt "github.com/IvanChernomyrdin/go-usuarios/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

const testKey = "supersecretkeysupersecretkey123456"

func testConfig() crypt.TokenConfig {
	return crypt.TokenConfig{
		Issuer:     "usuarios",
		Audience:   "usuarios-cli",
		SigningKey: testKey,
		TTL:        5 * time.Minute,
	}
}

func TestNewOperatorToken_Success(t *testing.T) {
	t.Parallel()
	cfg := testConfig()

	tokenStr, err := crypt.NewOperatorToken("camilo", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				t.Fatalf("unexpected signing method: %v", token.Method)
			}
			return []byte(cfg.SigningKey), nil
		},
	)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("claims type assertion failed")
	}
	if claims.Subject != "camilo" {
		t.Fatalf("expected subject camilo, got %q", claims.Subject)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %q, got %q", cfg.Issuer, claims.Issuer)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != cfg.Audience {
		t.Fatalf("expected audience %q, got %v", cfg.Audience, claims.Audience)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatal("token must not be expired")
	}
}

func TestNewOperatorToken_DefaultTTL(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = 0

	tokenStr, err := crypt.NewOperatorToken("camilo", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return []byte(testKey), nil
	}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != crypt.DefaultTTL {
		t.Fatalf("expected ttl %v, got %v", crypt.DefaultTTL, ttl)
	}
}

func TestNewOperatorToken_InvalidInput(t *testing.T) {
	cfg := testConfig()

	if _, err := crypt.NewOperatorToken("  ", cfg); !errors.Is(err, serr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty operator, got %v", err)
	}

	cfg.SigningKey = ""
	if _, err := crypt.NewOperatorToken("camilo", cfg); !errors.Is(err, serr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty key, got %v", err)
	}
}

func TestParseOperatorToken_OK(t *testing.T) {
	cfg := testConfig()
	tokenStr, err := crypt.NewOperatorToken("camilo", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	op, err := crypt.ParseOperatorToken(tokenStr, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != "camilo" {
		t.Fatalf("expected camilo, got %q", op)
	}
}

func TestParseOperatorToken_Errors(t *testing.T) {
	cfg := testConfig()

	sign := func(claims jwt.RegisteredClaims, key string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			Subject:   "camilo",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIss := valid()
	wrongIss.Issuer = "other"

	wrongAud := valid()
	wrongAud.Audience = jwt.ClaimStrings{"other"}

	noSub := valid()
	noSub.Subject = " "

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not-a-jwt", crypt.ErrTokenInvalid},
		{"wrong key", sign(valid(), "another-key-another-key-another-key"), crypt.ErrTokenInvalid},
		{"expired", sign(expired, testKey), crypt.ErrTokenExpired},
		{"issuer", sign(wrongIss, testKey), crypt.ErrTokenIssuer},
		{"audience", sign(wrongAud, testKey), crypt.ErrTokenAudience},
		{"subject", sign(noSub, testKey), crypt.ErrTokenSubject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := crypt.ParseOperatorToken(tc.token, cfg)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, serr.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized in chain, got %v", err)
			}
		})
	}
}

func TestParseOperatorToken_NoneAlgRejected(t *testing.T) {
	cfg := testConfig()
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "camilo"})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := crypt.ParseOperatorToken(s, cfg); !errors.Is(err, crypt.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
