// Package crypto provides field-level encryption for sensitive case data.
// Uses AES-256-GCM for authenticated encryption.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
)

var (
	// ErrInvalidCiphertext is returned when decryption fails.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	// ErrInvalidKey is returned when the key is invalid.
	ErrInvalidKey = errors.New("invalid key")
)

// Encryptor encrypts and decrypts individual field values. The same instance
// is shared by the repository seed paths and the export aggregator, so a
// value encrypted on write always decrypts on export.
type Encryptor struct {
	key [32]byte
}

// NewEncryptor creates an Encryptor from a secret. The key is derived from
// the input using SHA-256, so any non-empty string is a usable secret.
func NewEncryptor(secret string) (*Encryptor, error) {
	if secret == "" {
		return nil, ErrInvalidKey
	}
	return &Encryptor{key: sha256.Sum256([]byte(secret))}, nil
}

// Encrypt encrypts a plaintext string to a base64-encoded ciphertext.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(e.key[:])
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	// Generate a random nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// Encrypt and authenticate
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	// Encode as base64 for storage
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts a base64-encoded ciphertext produced by Encrypt.
// Corrupt or foreign input fails loudly with ErrInvalidCiphertext.
func (e *Encryptor) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(e.key[:])
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	// Extract nonce and ciphertext
	nonce, cipherData := data[:nonceSize], data[nonceSize:]

	// Decrypt and verify
	plaintext, err := gcm.Open(nil, nonce, cipherData, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}

// BatchDecrypt decrypts multiple ciphertexts, preserving order. The first
// failure aborts the batch.
func (e *Encryptor) BatchDecrypt(ciphertexts []string) ([]string, error) {
	plaintexts := make([]string, len(ciphertexts))
	for i, ct := range ciphertexts {
		pt, err := e.Decrypt(ct)
		if err != nil {
			return nil, err
		}
		plaintexts[i] = pt
	}
	return plaintexts, nil
}
