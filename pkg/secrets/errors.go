package secrets

import "errors"

var (
	ErrInvalidKey          = errors.New("invalid key: must be 32 bytes")
	ErrInvalidEncoding     = errors.New("invalid key encoding: must be base64")
	ErrEmptyPurpose        = errors.New("key derivation purpose must not be empty")
	ErrKeyGenerationFailed = errors.New("key generation failed")
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
