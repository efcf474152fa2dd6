package apikey

import "errors"

var (
	// Error categories. Every error returned by this package matches exactly one
	// of them via errors.Is (ErrDecode additionally matches ErrParse when it
	// comes from Parse, GetID or Verify).
	ErrInputShape         = errors.New("apikey: invalid input")
	ErrParse              = errors.New("apikey: malformed key")
	ErrDecode             = errors.New("apikey: secret decoding failed")
	ErrTemporalConstraint = errors.New("apikey: invalid time window")

	// Parse causes, one per rule.
	ErrKeyLength         = errors.New("key must be at most 128 characters")
	ErrInvalidCharacters = errors.New("key must use only [a-zA-Z0-9_] characters")
	ErrSegmentCount      = errors.New("key must have between 3 and 8 '_' separated segments")
	ErrInvalidPrefix     = errors.New("prefix must be 1 to 3 groups of 1-16 [a-z0-9] characters separated by '_'")
	ErrInvalidID         = errors.New("id must be a valid ULID")

	// Decode causes.
	ErrInvalidEncoding  = errors.New("secret is not valid base58")
	ErrChecksumMismatch = errors.New("secret checksum mismatch")
	ErrSecretLength     = errors.New("secret must decode to 32 bytes")
)
