package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

const (
	// FormatMagic — сигнатура формата зашифрованного blob.
	FormatMagic = "uk1"

	// NonceSize — размер nonce для AES-GCM.
	NonceSize = 12
)

var (
	// ErrInvalidFormat — blob не соответствует формату "uk1"+salt+nonce+ciphertext.
	ErrInvalidFormat = errors.New("invalid ciphertext format")
	// ErrCiphertextShort — blob слишком короткий.
	ErrCiphertextShort = errors.New("ciphertext too short")
	// ErrInvalidKey — KDF вернул ключ неправильной длины.
	ErrInvalidKey = errors.New("invalid key length")
)

// Sealer шифрует и расшифровывает данные одной парольной фразой.
type Sealer struct {
	passphrase string
	params     KDFParams
}

// NewSealer создаёт Sealer. Нулевые params заменяются на DefaultKDFParams.
func NewSealer(passphrase string, params KDFParams) *Sealer {
	if params == (KDFParams{}) {
		params = DefaultKDFParams()
	}
	return &Sealer{passphrase: passphrase, params: params}
}

// Seal шифрует plain и возвращает blob:
//
//	"uk1" + salt + nonce(12) + ciphertext
//
// Соль и nonce случайные для каждого вызова.
func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	salt, err := NewSalt(s.params.SaltLen)
	if err != nil {
		return nil, err
	}
	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("rand nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plain, nil)

	out := make([]byte, 0, len(FormatMagic)+len(salt)+len(nonce)+len(ciphertext))
	out = append(out, FormatMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// Open расшифровывает blob, сформированный Seal.
//
// Ошибки:
//   - ErrCiphertextShort если blob слишком короткий,
//   - ErrInvalidFormat если сигнатура некорректна,
//   - serr.ErrDecrypt если неверная парольная фраза или данные повреждены.
func (s *Sealer) Open(blob []byte) ([]byte, error) {
	minLen := len(FormatMagic) + s.params.SaltLen + NonceSize + 1
	if len(blob) < minLen {
		return nil, ErrCiphertextShort
	}
	if string(blob[:len(FormatMagic)]) != FormatMagic {
		return nil, ErrInvalidFormat
	}

	off := len(FormatMagic)
	salt := blob[off : off+s.params.SaltLen]
	off += s.params.SaltLen
	nonce := blob[off : off+NonceSize]
	off += NonceSize

	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	plain, err := gcm.Open(nil, nonce, blob[off:], nil)
	if err != nil {
		return nil, serr.ErrDecrypt
	}
	return plain, nil
}

func (s *Sealer) aead(salt []byte) (cipher.AEAD, error) {
	key := DeriveKey(s.passphrase, salt, s.params)
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm: %w", err)
	}
	return gcm, nil
}
