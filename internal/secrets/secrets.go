// Package secrets encrypts small values at rest with fernet tokens.
package secrets

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrDecrypt is returned when a token was not produced by this box's key.
var ErrDecrypt = errors.New("failed to decrypt secret")

// Box seals and opens secrets with a single fernet key.
type Box struct {
	key  *fernet.Key
	keys []*fernet.Key
}

// NewBox creates a Box from a base64 encoded fernet key.
func NewBox(encodedKey string) (*Box, error) {
	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret key: %w", err)
	}
	return &Box{key: keys[0], keys: keys}, nil
}

// GenerateKey returns a fresh base64 encoded fernet key.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}
	return k.Encode(), nil
}

// Seal encrypts plaintext into a fernet token.
func (b *Box) Seal(plaintext string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(plaintext), b.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(tok), nil
}

// Open decrypts a token produced by Seal. Tokens never expire.
func (b *Box) Open(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, b.keys)
	if msg == nil {
		return "", ErrDecrypt
	}
	return string(msg), nil
}

// Matches reports whether token decrypts to candidate, comparing in constant time.
func (b *Box) Matches(token, candidate string) bool {
	plain, err := b.Open(token)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(candidate)) == 1
}
