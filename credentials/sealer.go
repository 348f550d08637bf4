package credentials

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltLength  = 16
	nonceLength = 24

	// scrypt cost parameters; interactive-login strength is enough for a
	// per-user credential file.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// sealer encrypts the credential file at rest with a passphrase-derived key.
// File layout: salt || nonce || secretbox ciphertext.
type sealer struct {
	passphrase []byte
}

func newSealer(passphrase string) *sealer {
	return &sealer{passphrase: []byte(passphrase)}
}

func (s *sealer) seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, err
	}

	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, saltLength+nonceLength+len(plaintext)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plaintext, &nonce, key), nil
}

func (s *sealer) open(data []byte) ([]byte, error) {
	if len(data) < saltLength+nonceLength+secretbox.Overhead {
		return nil, fmt.Errorf("sealed data too short")
	}

	key, err := s.deriveKey(data[:saltLength])
	if err != nil {
		return nil, err
	}

	var nonce [nonceLength]byte
	copy(nonce[:], data[saltLength:saltLength+nonceLength])

	plaintext, ok := secretbox.Open(nil, data[saltLength+nonceLength:], &nonce, key)
	if !ok {
		return nil, fmt.Errorf("sealed data cannot be opened")
	}
	return plaintext, nil
}

func (s *sealer) deriveKey(salt []byte) (*[32]byte, error) {
	raw, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}
