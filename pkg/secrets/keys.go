package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the size of HMAC keys handled by this package.
	KeySize = 32

	// derivationSalt separates keys derived here from other uses of the master key.
	derivationSalt = "apikeys-hmac-v1"
)

// GenerateKey creates a new random 32-byte key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrKeyGenerationFailed, err)
	}
	return key, nil
}

// ValidateKey checks that key has the correct length.
func ValidateKey(key []byte) error {
	if len(key) != KeySize {
		return ErrInvalidKey
	}
	return nil
}

// DeriveKey derives a 32-byte HMAC key from master for the given purpose,
// typically a key prefix. Distinct purposes yield independent keys, so one
// master secret can serve several key namespaces.
// The caller should Clear the returned key when it is no longer needed.
func DeriveKey(master []byte, purpose string) ([]byte, error) {
	if err := ValidateKey(master); err != nil {
		return nil, err
	}
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}

	r := hkdf.New(sha256.New, master, []byte(derivationSalt), []byte(purpose))
	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(r, derived); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return derived, nil
}

// EncodeKey returns key as standard base64, suitable for environment variables.
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// DecodeKey parses a base64 key produced by EncodeKey and validates its length.
func DecodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Join(ErrInvalidEncoding, err)
	}
	if err := ValidateKey(key); err != nil {
		Clear(key)
		return nil, err
	}
	return key, nil
}

// GenerateEncodedKey creates a new key and returns it base64 encoded.
func GenerateEncodedKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	defer Clear(key)
	return EncodeKey(key), nil
}

// Clear zeroes b. Use it to shorten the time key material stays in memory.
func Clear(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
