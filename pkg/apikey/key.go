package apikey

import (
	"errors"
	"strings"
)

// Components are the three parts of a key.
// Secret holds the encoded form, never the raw bytes.
type Components struct {
	Prefix string
	ID     string
	Secret string
}

// Serialize joins the parts of a key with '_'. It does not validate them.
func Serialize(prefix, id, encodedSecret string) string {
	return prefix + separator + id + separator + encodedSecret
}

// Parse validates key and splits it into its components.
// Rules are checked in order and the first failure is returned; every
// failure matches ErrParse, a bad secret also matches ErrDecode.
func Parse(key string) (Components, error) {
	c, secret, err := parse(key)
	if err != nil {
		return Components{}, err
	}
	clearBytes(secret)
	return c, nil
}

// GetID validates key and returns its ID, for looking up the stored verifier.
func GetID(key string) (string, error) {
	c, err := Parse(key)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// parse returns the components and the decoded secret. Callers must clear
// the secret.
func parse(key string) (Components, []byte, error) {
	if len(key) > MaxKeyLength {
		return Components{}, nil, errors.Join(ErrParse, ErrKeyLength)
	}
	if key == "" || !validCharacters(key) {
		return Components{}, nil, errors.Join(ErrParse, ErrInvalidCharacters)
	}

	segments := strings.Split(key, separator)
	n := len(segments)
	if n < MinSegments || n > MaxSegments {
		return Components{}, nil, errors.Join(ErrParse, ErrSegmentCount)
	}

	prefix := strings.Join(segments[:n-2], separator)
	if !prefixPattern.MatchString(prefix) {
		return Components{}, nil, errors.Join(ErrParse, ErrInvalidPrefix)
	}

	id := segments[n-2]
	if _, err := ParseID(id); err != nil {
		return Components{}, nil, errors.Join(ErrParse, err)
	}

	encoded := segments[n-1]
	secret, err := DecodeSecret(encoded)
	if err != nil {
		return Components{}, nil, errors.Join(ErrParse, err)
	}

	return Components{Prefix: prefix, ID: id, Secret: encoded}, secret, nil
}

func validCharacters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
