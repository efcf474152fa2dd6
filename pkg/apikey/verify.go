package apikey

import (
	"errors"
	"time"

	"github.com/dmitrymomot/apikeys/pkg/validator"
)

// VerifyOption restricts the keys accepted by Verify.
type VerifyOption func(*verifyOptions)

type verifyOptions struct {
	prefix   *string
	isAfter  *time.Time
	isBefore *time.Time
	now      func() time.Time
}

// WithPrefix rejects keys whose prefix is not exactly p.
func WithPrefix(p string) VerifyOption {
	return func(o *verifyOptions) { o.prefix = &p }
}

// WithIsAfter rejects keys created before t. t must be in the past.
func WithIsAfter(t time.Time) VerifyOption {
	return func(o *verifyOptions) { o.isAfter = &t }
}

// WithIsBefore rejects keys created after t.
func WithIsBefore(t time.Time) VerifyOption {
	return func(o *verifyOptions) { o.isBefore = &t }
}

// Verify reports whether key matches the stored verifier under hmacKey.
//
// A well-formed key that does not match, carries another prefix than the one
// required by WithPrefix, or was created outside the requested window, yields
// false and a nil error. Errors are returned only
// for malformed input: ErrInputShape for bad key material lengths, ErrParse
// (and ErrDecode) for a malformed key, ErrTemporalConstraint for an invalid
// window.
func Verify(key string, verifier, hmacKey []byte, opts ...VerifyOption) (bool, error) {
	o := verifyOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return verify(key, verifier, hmacKey, o)
}

func verify(key string, verifier, hmacKey []byte, o verifyOptions) (bool, error) {
	if err := validator.Apply(
		validator.ByteLength("hmac_key", hmacKey, HMACKeySize),
		validator.ByteLength("verifier", verifier, VerifierSize),
	); err != nil {
		return false, errors.Join(ErrInputShape, err)
	}

	c, secret, err := parse(key)
	if err != nil {
		return false, err
	}
	defer clearBytes(secret)

	if err := validateWindow(o); err != nil {
		return false, err
	}

	if o.prefix != nil && c.Prefix != *o.prefix {
		return false, nil
	}

	created, err := IDTime(c.ID)
	if err != nil {
		return false, errors.Join(ErrParse, err)
	}
	if o.isAfter != nil && created.Before(*o.isAfter) {
		return false, nil
	}
	if o.isBefore != nil && created.After(*o.isBefore) {
		return false, nil
	}

	candidate := Bind(c.ID, secret, hmacKey)
	return ConstantTimeEqual(candidate, verifier), nil
}

func validateWindow(o verifyOptions) error {
	if o.isAfter == nil {
		return nil
	}

	var rules []validator.Rule
	if o.isBefore != nil {
		rules = append(rules, validator.TimeBefore("is_after", *o.isAfter, *o.isBefore, "is_before"))
	}
	rules = append(rules, validator.PastTime("is_after", *o.isAfter, o.now()))

	if err := validator.Apply(rules...); err != nil {
		return errors.Join(ErrTemporalConstraint, err)
	}
	return nil
}
