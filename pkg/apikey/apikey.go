package apikey

import (
	"errors"
	"regexp"
	"time"

	"github.com/dmitrymomot/apikeys/pkg/validator"
)

const (
	// SecretSize is the length of the client-held secret in bytes.
	SecretSize = 32
	// HMACKeySize is the required length of the server HMAC key in bytes.
	HMACKeySize = 32
	// VerifierSize is the length of HMAC-SHA256 output stored by the server.
	VerifierSize = 32
	// ChecksumSize is the number of checksum bytes appended to an encoded secret.
	ChecksumSize = 4
	// IDLength is the length of a ULID string.
	IDLength = 26
	// MaxEncodedSecretLength bounds the base58 form of SecretSize+ChecksumSize
	// bytes. Longer input is rejected before decoding.
	MaxEncodedSecretLength = 50
	// MaxKeyLength is the longest well-formed key: a 50 character prefix, the
	// id, the encoded secret and two separators.
	MaxKeyLength = 128

	MinSegments = 3
	MaxSegments = 8

	separator = "_"
)

var prefixPattern = regexp.MustCompile(`^[a-z0-9]{1,16}(_[a-z0-9]{1,16}){0,2}$`)

// ServerRecord is what the server persists for an issued key.
// Timestamp is decoded from ID.
type ServerRecord struct {
	ID        string    `json:"id" yaml:"id"`
	Verifier  []byte    `json:"verifier" yaml:"verifier"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// CreateResult holds the client-facing key and the server-facing record.
type CreateResult struct {
	Key    string       `json:"key" yaml:"key"`
	Server ServerRecord `json:"server" yaml:"server"`
}

// Create issues a new key under prefix, bound to hmacKey.
func Create(prefix string, hmacKey []byte) (CreateResult, error) {
	return create(prefix, hmacKey, time.Now())
}

func create(prefix string, hmacKey []byte, now time.Time) (CreateResult, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return CreateResult{}, err
	}
	if err := validateHMACKey(hmacKey); err != nil {
		return CreateResult{}, err
	}

	id := newID(now)
	ts, err := IDTime(id)
	if err != nil {
		// newID always yields a parseable ULID
		panic(err)
	}

	secret := GenerateSecret()
	defer clearBytes(secret)

	encoded, err := EncodeSecret(secret)
	if err != nil {
		return CreateResult{}, err
	}

	return CreateResult{
		Key: Serialize(prefix, id, encoded),
		Server: ServerRecord{
			ID:        id,
			Verifier:  Bind(id, secret, hmacKey),
			Timestamp: ts.UTC(),
		},
	}, nil
}

// ValidatePrefix reports whether prefix is 1 to 3 '_' separated groups of
// 1-16 lowercase alphanumeric characters. Failures match ErrInputShape and
// ErrInvalidPrefix.
func ValidatePrefix(prefix string) error {
	if err := validator.Apply(
		validator.MatchesPattern("prefix", prefix, prefixPattern, "1 to 3 groups of 1-16 [a-z0-9] characters separated by '_'"),
	); err != nil {
		return errors.Join(ErrInputShape, ErrInvalidPrefix, err)
	}
	return nil
}

func validateHMACKey(hmacKey []byte) error {
	if err := validator.Apply(
		validator.ByteLength("hmac_key", hmacKey, HMACKeySize),
	); err != nil {
		return errors.Join(ErrInputShape, err)
	}
	return nil
}
