package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// ErrInvalidPassword is returned when a blob fails authenticated
// decryption: wrong password, truncation, or tampering. Callers get no
// more detail than that.
var ErrInvalidPassword = errors.New("invalid password or corrupted data")

// DefaultIterations is the PBKDF2 iteration count used unless overridden.
const DefaultIterations = 100000

const keyLen = 32

// appSalt is a fixed application-wide salt. The threat model is protecting
// the at-rest config file from casual disk access, not multi-tenant secret
// isolation, so a per-user salt buys nothing here.
var appSalt = []byte("huddle_config_salt_v1")

// Store derives AES keys from a password and seals/opens config blobs with
// AES-GCM. Derived keys live only for the duration of a call.
type Store struct {
	salt       []byte
	iterations int
}

// New returns a Store with the application salt and default iteration
// count.
func New() *Store {
	return &Store{salt: appSalt, iterations: DefaultIterations}
}

// NewWithParams returns a Store with explicit salt and iteration count.
// Tests use a low iteration count to stay fast.
func NewWithParams(salt []byte, iterations int) *Store {
	return &Store{salt: salt, iterations: iterations}
}

// DeriveKey stretches a password into a 32-byte AES key with
// PBKDF2-SHA256.
func (s *Store) DeriveKey(password string) []byte {
	return pbkdf2.Key([]byte(password), s.salt, s.iterations, keyLen, sha256.New)
}

func (s *Store) aead(password string) (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.DeriveKey(password))
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aead, nil
}

// Encrypt seals plaintext under a password-derived key. The blob layout is
// nonce || ciphertext; AES-GCM requires a unique nonce per encryption
// under the same key.
func (s *Store) Encrypt(plaintext []byte, password string) ([]byte, error) {
	aead, err := s.aead(password)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// Decrypt opens a blob produced by Encrypt. Any authentication failure is
// reported as ErrInvalidPassword.
func (s *Store) Decrypt(blob []byte, password string) ([]byte, error) {
	aead, err := s.aead(password)
	if err != nil {
		return nil, err
	}

	nonceSize := aead.NonceSize()
	if len(blob) < nonceSize {
		return nil, ErrInvalidPassword
	}

	plaintext, err := aead.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	return plaintext, nil
}

// VerifyPassword reports whether the password decrypts the blob.
func (s *Store) VerifyPassword(blob []byte, password string) bool {
	_, err := s.Decrypt(blob, password)
	return err == nil
}
