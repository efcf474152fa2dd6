// Package secrets manages the server-side HMAC keys used to bind API keys.
//
// Keys are always 32 bytes. They can be generated at random, derived from a
// master key with HKDF-SHA-256, and encoded as base64 for storage in
// environment variables.
//
// # Derivation
//
// DeriveKey(master, purpose) expands the master key with a fixed salt and the
// purpose as HKDF info. Using the key prefix as purpose gives every namespace
// its own HMAC key while only one secret has to be provisioned:
//
//	master, _ := secrets.DecodeKey(os.Getenv("APIKEY_HMAC_KEY"))
//	live, _ := secrets.DeriveKey(master, "acme_live")
//	test, _ := secrets.DeriveKey(master, "acme_test")
//
// Changing the purpose string changes every derived key, which invalidates
// all verifiers computed with it.
//
// # Error Handling
//
// Functions return sentinel errors (ErrInvalidKey, ErrInvalidEncoding, ...)
// optionally joined with the underlying cause. Use errors.Is to match them.
package secrets
