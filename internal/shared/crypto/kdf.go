// Package crypto содержит шифрование значений слота хранилища
// парольной фразой: Argon2id для вывода ключа и AES-256-GCM для шифрования.
package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize — размер соли по умолчанию (байты).
	SaltSize = 16

	// KeySize — размер симметричного ключа (байты), AES-256.
	KeySize = 32
)

// KDFParams описывает параметры derivation ключа на базе Argon2id.
type KDFParams struct {
	Time    uint32 // iterations
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultKDFParams возвращает параметры KDF по умолчанию.
//
// Достаточно дорого для перебора, но приемлемо для CLI на обычной машине.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:    2,
		Memory:  64 * 1024, // 64 MiB
		Threads: 2,
		KeyLen:  KeySize,
		SaltLen: SaltSize,
	}
}

// NewSalt генерирует криптографически стойкую соль длиной n байт.
func NewSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("rand salt: %w", err)
	}
	return b, nil
}

// DeriveKey выводит симметричный ключ из парольной фразы и salt через Argon2id.
//
// Параметры p должны совпадать с теми, что использовались при Seal,
// иначе Open не восстановит тот же ключ.
func DeriveKey(passphrase string, salt []byte, p KDFParams) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		p.Time,
		p.Memory,
		p.Threads,
		p.KeyLen,
	)
}
