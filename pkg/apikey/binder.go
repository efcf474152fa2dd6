package apikey

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// Bind computes HMAC-SHA256(hmacKey, id || secret).
// The id is hashed before the secret; swapping them changes every verifier.
func Bind(id string, secret, hmacKey []byte) []byte {
	h := hmac.New(sha256.New, hmacKey)
	h.Write([]byte(id))
	h.Write(secret)
	return h.Sum(nil)
}

// ConstantTimeEqual reports whether a and b are equal. For equal lengths the
// running time does not depend on where the first differing byte is.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
