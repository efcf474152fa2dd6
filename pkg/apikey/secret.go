package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"

	"github.com/mr-tron/base58"
)

// GenerateSecret returns SecretSize bytes from crypto/rand.
// It panics if the random source fails.
func GenerateSecret() []byte {
	secret := make([]byte, SecretSize)
	if _, err := rand.Read(secret); err != nil {
		panic("apikey: secure random source failed: " + err.Error())
	}
	return secret
}

// EncodeSecret encodes a SecretSize byte secret as base58check:
// base58(secret || sha256(sha256(secret))[:4]).
func EncodeSecret(secret []byte) (string, error) {
	if len(secret) != SecretSize {
		return "", errors.Join(ErrInputShape, ErrSecretLength)
	}

	buf := make([]byte, 0, SecretSize+ChecksumSize)
	buf = append(buf, secret...)
	buf = append(buf, checksum(secret)...)
	encoded := base58.Encode(buf)
	clearBytes(buf)

	return encoded, nil
}

// DecodeSecret reverses EncodeSecret. Any failure matches ErrDecode.
func DecodeSecret(s string) ([]byte, error) {
	// base58 decoding is quadratic in the input length
	if len(s) > MaxEncodedSecretLength {
		return nil, errors.Join(ErrDecode, ErrSecretLength)
	}

	raw, err := base58.Decode(s)
	if err != nil || len(raw) < ChecksumSize {
		return nil, errors.Join(ErrDecode, ErrInvalidEncoding)
	}

	payload, sum := raw[:len(raw)-ChecksumSize], raw[len(raw)-ChecksumSize:]
	if subtle.ConstantTimeCompare(sum, checksum(payload)) != 1 {
		clearBytes(raw)
		return nil, errors.Join(ErrDecode, ErrChecksumMismatch)
	}
	if len(payload) != SecretSize {
		clearBytes(raw)
		return nil, errors.Join(ErrDecode, ErrSecretLength)
	}

	return payload, nil
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:ChecksumSize]
}

// clearBytes zeroes sensitive buffers once they are no longer needed.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
