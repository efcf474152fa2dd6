// Package apikey issues and verifies opaque API keys that the server can
// authenticate without ever storing the client's secret.
//
// A key has the form
//
//	{prefix}_{id}_{secret}
//
// where prefix is a human readable namespace (1 to 3 '_' separated groups of
// 1-16 [a-z0-9] characters), id is a ULID and secret is 32 random bytes encoded
// as base58check (base58 of the payload followed by the first 4 bytes of a
// double SHA-256 checksum).
//
// The server keeps only the id, the creation timestamp and a verifier:
//
//	verifier = HMAC-SHA256(hmacKey, id || secret)
//
// The id is public and serves as the lookup key for the stored verifier. The
// ULID embeds its creation time, so keys sort by issue time and Verify can
// limit the accepted creation window without a database round trip.
//
// # Usage
//
//	import "github.com/dmitrymomot/apikeys/pkg/apikey"
//
//	hmacKey := loadServerKey() // 32 bytes, never leaves the server
//
//	res, err := apikey.Create("acme_live", hmacKey)
//	if err != nil {
//	    return err
//	}
//	// hand res.Key to the client once, persist res.Server
//
//	id, err := apikey.GetID(presented)
//	if err != nil {
//	    return err // malformed key
//	}
//	rec := lookup(id)
//	ok, err := apikey.Verify(presented, rec.Verifier, hmacKey,
//	    apikey.WithIsAfter(rotationTime),
//	)
//
// # Error Handling
//
// Every error wraps one of four category sentinels, matched with errors.Is:
//
//   - ErrInputShape: bad prefix, HMAC key or verifier length.
//   - ErrParse: the key breaks a shape rule. A more specific cause
//     (ErrKeyLength, ErrInvalidCharacters, ErrSegmentCount, ErrInvalidPrefix,
//     ErrInvalidID) is joined in.
//   - ErrDecode: the secret segment is not valid base58, fails its checksum or
//     has the wrong length. When surfaced from Parse it also matches ErrParse.
//   - ErrTemporalConstraint: the Verify window is inverted or starts in the
//     future.
//
// A key that is well formed but does not match is not an error: Verify returns
// false. The verifier comparison runs in constant time.
//
// # Concurrency
//
// All functions are stateless. The only shared resource is crypto/rand, which
// is safe for concurrent use.
package apikey
