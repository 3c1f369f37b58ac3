// Package cypher implements core.Cypher with XChaCha20-Poly1305.
package cypher

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"github.com/deltegui/pmadmin/core"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// Salt used to derive keys from passwords. Changing it invalidates every
// cookie and token issued before.
var passwordSalt = []byte("pmadmin.cypher.v1")

var ErrShortCiphertext = errors.New("ciphertext too short")

type XChaCha struct {
	key []byte
}

// New creates a cypher with a random key. Anything encrypted with it
// does not survive a restart.
func New() core.Cypher {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		log.Fatalln("[PMADMIN] Cannot generate random key for cypher:", err)
	}
	return XChaCha{key}
}

// NewWithPassword derives the key from password using scrypt.
func NewWithPassword(password []byte) (core.Cypher, error) {
	key, err := scrypt.Key(password, passwordSalt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("cannot derive cypher key: %w", err)
	}
	return XChaCha{key}, nil
}

func NewWithPasswordAsString(password string) core.Cypher {
	cy, err := NewWithPassword([]byte(password))
	if err != nil {
		log.Fatalln("[PMADMIN]", err)
	}
	return cy
}

func (cy XChaCha) Encrypt(data []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(cy.key)
	if err != nil {
		return nil, fmt.Errorf("cannot create aead: %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(data)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("cannot generate nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, data, nil), nil
}

func (cy XChaCha) UnEncrypt(data []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(cy.key)
	if err != nil {
		return nil, fmt.Errorf("cannot create aead: %w", err)
	}
	if len(data) < aead.NonceSize() {
		return nil, ErrShortCiphertext
	}
	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot decrypt: %w", err)
	}
	return plain, nil
}

// EncodeCookie encrypts value and encodes it so it can be stored in a cookie.
func EncodeCookie(cy core.Cypher, value string) (string, error) {
	data, err := cy.Encrypt([]byte(value))
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func DecodeCookie(cy core.Cypher, value string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("cannot decode base64 cookie: %w", err)
	}
	plain, err := cy.UnEncrypt(data)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
