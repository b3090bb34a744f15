// Package hepoc is a SIMULATION of homomorphic royalty aggregation and is
// not a cryptographic subsystem. Ciphertexts are ordinary AES-GCM blobs and
// "homomorphic" addition decrypts, adds and re-encrypts under the hood. It
// exists so the royalty pipeline has a stable seam to swap a real scheme
// into; nothing here must be relied on for confidentiality.
package hepoc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/yigyaps/yigyaps/internal/types"
)

// Sealer seals royalty amounts. Placeholder: AES-GCM, not CKKS.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer expects a 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts a single amount. The result is nonce || ciphertext.
func (s *Sealer) Seal(amount types.USD) ([]byte, error) {
	plaintext := make([]byte, 8)
	binary.BigEndian.PutUint64(plaintext, uint64(amount))

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a sealed amount.
func (s *Sealer) Open(sealed []byte) (types.USD, error) {
	if len(sealed) < s.aead.NonceSize() {
		return 0, fmt.Errorf("sealed amount too short")
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return 0, fmt.Errorf("open sealed amount: %w", err)
	}
	if len(plaintext) != 8 {
		return 0, fmt.Errorf("malformed sealed amount")
	}
	return types.USD(binary.BigEndian.Uint64(plaintext)), nil
}

// AddSealed simulates homomorphic addition by decrypting both operands,
// adding, and re-sealing. A real scheme would add ciphertexts directly.
func (s *Sealer) AddSealed(a, b []byte) ([]byte, error) {
	left, err := s.Open(a)
	if err != nil {
		return nil, err
	}
	right, err := s.Open(b)
	if err != nil {
		return nil, err
	}
	return s.Seal(left + right)
}
