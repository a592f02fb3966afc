// Package cryptox implements the at-rest encryption of profile fields:
// AES-256-CBC with a fresh random IV per call, hex-encoded output.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"profilevault/internal/models"
)

const keySize = 32 // AES-256

// ErrDecrypt is returned when a field was not produced by this codec, key
// and IV combination (corrupted or foreign data, wrong key).
var ErrDecrypt = errors.New("decryption failed")

// Parameters for deriving a key from a configured passphrase. The salt is a
// fixed application constant: the derivation must be reproducible across
// restarts with nothing but the passphrase.
const (
	kdfSalt       = "profilevault.key.v1"
	kdfIterations = 4096
)

// Codec encrypts and decrypts individual string fields under one
// process-lifetime key. Safe for concurrent use: the key is read-only.
type Codec struct {
	key []byte
}

// NewCodec builds a codec over a 32-byte AES key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", keySize, len(key))
	}
	return &Codec{key: key}, nil
}

// LoadKey resolves the encryption key from configuration: a hex-encoded key
// takes precedence, then a passphrase run through PBKDF2-SHA256. With neither
// set, a random per-process key is generated and returned with ok=false so
// the caller can warn that encrypted data will not survive a restart.
func LoadKey(hexKey, passphrase string) (key []byte, ok bool, err error) {
	if hexKey != "" {
		key, err = hex.DecodeString(hexKey)
		if err != nil {
			return nil, false, fmt.Errorf("decode encryption key: %w", err)
		}
		if len(key) != keySize {
			return nil, false, fmt.Errorf("encryption key must be %d bytes, got %d", keySize, len(key))
		}
		return key, true, nil
	}
	if passphrase != "" {
		return pbkdf2.Key([]byte(passphrase), []byte(kdfSalt), kdfIterations, keySize, sha256.New), true, nil
	}
	key = make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate encryption key: %w", err)
	}
	return key, false, nil
}

// Encrypt encrypts plaintext under the codec key with a freshly generated
// random IV. Equal plaintexts yield different (iv, data) pairs across calls.
func (c *Codec) Encrypt(plaintext string) (models.EncryptedField, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return models.EncryptedField{}, fmt.Errorf("init cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return models.EncryptedField{}, fmt.Errorf("generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return models.EncryptedField{
		IV:   hex.EncodeToString(iv),
		Data: hex.EncodeToString(ciphertext),
	}, nil
}

// Decrypt reverses Encrypt using the stored IV and the codec key.
func (c *Codec) Decrypt(f models.EncryptedField) (string, error) {
	iv, err := hex.DecodeString(f.IV)
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrDecrypt
	}
	ciphertext, err := hex.DecodeString(f.Data)
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrDecrypt
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(unpadded), nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, errors.New("invalid padding")
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return b[:len(b)-n], nil
}
