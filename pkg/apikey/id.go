package apikey

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID returns a fresh ULID string for the current time.
// Two IDs created in the same millisecond differ in their 80 random bits,
// so no counter is shared between callers.
func NewID() string {
	return newID(time.Now())
}

func newID(t time.Time) string {
	// crypto/rand is safe for concurrent use; a failing read panics.
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}

// ParseID strictly decodes a 26 character Crockford Base32 ULID.
// Lowercase input is accepted.
func ParseID(id string) (ulid.ULID, error) {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return ulid.ULID{}, errors.Join(ErrInvalidID, err)
	}
	return u, nil
}

// IDTime returns the creation time embedded in id, with millisecond precision.
func IDTime(id string) (time.Time, error) {
	u, err := ParseID(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}
